package cache

import (
	"context"
	"time"
)

// Store is a fast, volatile key-value tier with per-entry expiration.
//
// Implementations must be safe for concurrent use. Get returns ok=false for
// absent or expired keys. Put with a non-positive ttl stores nothing.
// Transport failures are reported wrapped in errors.ErrCacheUnavailable.
type Store[K comparable, V any] interface {
	Get(ctx context.Context, key K) (Entry[V], bool, error)
	Put(ctx context.Context, key K, value V, ttl time.Duration) error
	Invalidate(ctx context.Context, key K) error
}

// Loader produces the authoritative value for a key from the system of record.
// Failures should wrap errors.ErrNotFound or errors.ErrSourceUnavailable.
type Loader[K comparable, V any] interface {
	Load(ctx context.Context, key K) (V, error)
}

// LoaderFunc adapts an ordinary function to the Loader interface.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

func (f LoaderFunc[K, V]) Load(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}
