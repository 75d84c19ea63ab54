package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter is an in-memory per-key rate limiter built on token buckets.
// It is safe for concurrent use. Stale keys are removed in the background
// until Close is called.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*keyedEntry
	limit    rate.Limit
	burst    int
	done     chan struct{}
	once     sync.Once
}

type keyedEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

// NewKeyedLimiter creates a limiter that allows bursts of up to burst events
// per key, refilling at perSecond events per second.
func NewKeyedLimiter(perSecond float64, burst int) *KeyedLimiter {
	kl := &KeyedLimiter{
		limiters: make(map[string]*keyedEntry),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		done:     make(chan struct{}),
	}
	go kl.cleanup()
	return kl
}

// PerMinute builds a limiter allowing n events per minute per key, with a
// burst of n.
func PerMinute(n int) *KeyedLimiter {
	return NewKeyedLimiter(float64(n)/60, n)
}

// Allow reports whether key may proceed now. Each allowed call consumes one
// token.
func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	e, ok := kl.limiters[key]
	if !ok {
		e = &keyedEntry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.limiters[key] = e
	}
	e.last = time.Now()
	kl.mu.Unlock()

	return e.limiter.Allow()
}

// Close stops the background cleanup.
func (kl *KeyedLimiter) Close() {
	kl.once.Do(func() { close(kl.done) })
}

// cleanup removes keys that haven't been used in 10 minutes.
func (kl *KeyedLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-kl.done:
			return
		case <-ticker.C:
			kl.mu.Lock()
			cutoff := time.Now().Add(-10 * time.Minute)
			for key, e := range kl.limiters {
				if e.last.Before(cutoff) {
					delete(kl.limiters, key)
				}
			}
			kl.mu.Unlock()
		}
	}
}
