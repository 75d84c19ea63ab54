package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/interview-prep/internal/repository/snapshot"
	"github.com/msomdec/interview-prep/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open db")
	require.NoError(t, db.Migrate(context.Background()), "migrate")
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUsers(t *testing.T) *snapshot.UserStore {
	t.Helper()
	users, err := snapshot.Open(context.Background(), newTestDB(t).Snapshots())
	require.NoError(t, err, "open user store")
	return users
}
