package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msomdec/interview-prep/internal/service"
)

func TestKeyedLimiter_AllowsUpToBurst(t *testing.T) {
	kl := service.NewKeyedLimiter(0.001, 3)
	defer kl.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, kl.Allow("test-key"), "request %d should be allowed", i+1)
	}
	assert.False(t, kl.Allow("test-key"), "bucket should be empty")
}

func TestKeyedLimiter_DifferentKeysAreIndependent(t *testing.T) {
	kl := service.NewKeyedLimiter(0.001, 1)
	defer kl.Close()

	assert.True(t, kl.Allow("user-a"))
	assert.False(t, kl.Allow("user-a"))
	assert.True(t, kl.Allow("user-b"), "user-b has its own bucket")
}

func TestKeyedLimiter_ZeroRateNeverRefills(t *testing.T) {
	kl := service.NewKeyedLimiter(0, 2)
	defer kl.Close()

	assert.True(t, kl.Allow("k"))
	assert.True(t, kl.Allow("k"))
	assert.False(t, kl.Allow("k"), "no refill at zero rate")
}

func TestPerMinute(t *testing.T) {
	kl := service.PerMinute(2)
	defer kl.Close()

	assert.True(t, kl.Allow("k"))
	assert.True(t, kl.Allow("k"))
	assert.False(t, kl.Allow("k"), "third request within the minute")
}

func TestKeyedLimiter_CloseIsIdempotent(t *testing.T) {
	kl := service.NewKeyedLimiter(1, 1)
	assert.NotPanics(t, func() {
		kl.Close()
		kl.Close()
	})
}
