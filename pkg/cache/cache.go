// Package cache stores rendered public menu snapshots.
package cache

import (
	"context"
	"time"
)

// Store is implemented by the in-memory and redis backends.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
