package service

import (
	"context"

	"github.com/dev-mohitbeniwal/postcache/cache"
)

// Lookup is the part of cache.Tiered the services depend on.
type Lookup[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, error)
	Invalidate(ctx context.Context, key K) error
	Name() string
	Stats() cache.StatsSnapshot
}

// StatsReporter exposes counters of one lookup.
type StatsReporter interface {
	Name() string
	Stats() cache.StatsSnapshot
}

// ListingKey is the single key under which full listings are cached.
const ListingKey = "all"
