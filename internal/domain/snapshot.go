package domain

import "context"

// SnapshotStore abstracts raw snapshot byte storage keyed by a fixed
// storage key. Put overwrites the previous value wholesale.
type SnapshotStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
