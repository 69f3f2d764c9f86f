// Package kvstore provides a small expiring key-value store used for rate
// limit counters and short-lived task state.
package kvstore

import (
	"context"
	"time"
)

// Store is implemented by the Redis and in-memory backends.
type Store interface {
	// IncrWindow increments key and starts its expiry on first use. It returns
	// the new count and the time left in the window.
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	// Get reports ok=false for missing or expired keys.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
