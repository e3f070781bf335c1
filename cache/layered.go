// cache/layered.go
package cache

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/postcache/logging"
)

// Tier is one named store inside a Layered composite.
type Tier[K comparable, V any] struct {
	Name  string
	Store Store[K, V]
}

// Layered chains stores from fastest to slowest and presents them as a single
// Store. A hit in a slower tier is copied into every faster tier with the
// remaining TTL, so the entry expires at the same instant everywhere.
type Layered[K comparable, V any] struct {
	tiers []Tier[K, V]
	now   func() time.Time
}

func NewLayered[K comparable, V any](tiers ...Tier[K, V]) *Layered[K, V] {
	return &Layered[K, V]{tiers: tiers, now: time.Now}
}

// Get returns the first valid entry. Failing tiers are skipped; an error is
// returned only when every tier failed.
func (l *Layered[K, V]) Get(ctx context.Context, key K) (Entry[V], bool, error) {
	var errs error
	failed := 0

	for i, tier := range l.tiers {
		entry, ok, err := tier.Store.Get(ctx, key)
		if err != nil {
			failed++
			errs = multierr.Append(errs, err)
			logger.Warn("Cache tier read failed",
				zap.String("tier", tier.Name),
				zap.Any("key", key),
				zap.Error(err))
			continue
		}
		if !ok || !entry.Valid(l.now()) {
			continue
		}

		l.backfill(ctx, key, entry, i)
		return entry, true, nil
	}

	if len(l.tiers) > 0 && failed == len(l.tiers) {
		return Entry[V]{}, false, errs
	}
	return Entry[V]{}, false, nil
}

func (l *Layered[K, V]) backfill(ctx context.Context, key K, entry Entry[V], hitIndex int) {
	remaining := entry.Remaining(l.now())
	if remaining <= 0 {
		return
	}
	for _, tier := range l.tiers[:hitIndex] {
		if err := tier.Store.Put(ctx, key, entry.Value, remaining); err != nil {
			logger.Warn("Cache tier backfill failed",
				zap.String("tier", tier.Name),
				zap.Any("key", key),
				zap.Error(err))
		}
	}
}

// Put writes to every tier and returns the combined error of the tiers that
// failed.
func (l *Layered[K, V]) Put(ctx context.Context, key K, value V, ttl time.Duration) error {
	var errs error
	for _, tier := range l.tiers {
		errs = multierr.Append(errs, tier.Store.Put(ctx, key, value, ttl))
	}
	return errs
}

// Invalidate removes the key from the slowest tier first so a concurrent
// reader cannot backfill a faster tier from a slower stale copy.
func (l *Layered[K, V]) Invalidate(ctx context.Context, key K) error {
	var errs error
	for i := len(l.tiers) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, l.tiers[i].Store.Invalidate(ctx, key))
	}
	return errs
}

func (l *Layered[K, V]) Tiers() []string {
	names := make([]string, 0, len(l.tiers))
	for _, tier := range l.tiers {
		names = append(names, tier.Name)
	}
	return names
}
