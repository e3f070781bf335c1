// cache/tiered.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
)

const (
	DefaultTTL             = 10 * time.Minute
	DefaultPopulateTimeout = 5 * time.Second
	DefaultLoadTimeout     = 10 * time.Second
)

// Outcome is the result of a single lookup as seen by a LookupHook.
type Outcome string

const (
	OutcomeHit   Outcome = "hit"
	OutcomeMiss  Outcome = "miss"
	OutcomeError Outcome = "error"
)

// Tiered is a cache-aside lookup over a Store and a Loader.
//
// Get consults the store first and falls through to the loader on a miss,
// populating the store with the loaded value. Store failures never surface
// from Get; loader failures always do. Tiered keeps no state of its own
// besides counters and the optional single-flight group.
type Tiered[K comparable, V any] struct {
	name            string
	store           Store[K, V]
	loader          Loader[K, V]
	ttl             time.Duration
	singleFlight    bool
	asyncPopulate   bool
	populateTimeout time.Duration
	loadTimeout     time.Duration
	now             func() time.Time
	validateKey     func(K) error
	hook            func(ctx context.Context, name string, key K, outcome Outcome, err error)

	group singleflight.Group
	stats Stats
}

type options struct {
	name            string
	ttl             time.Duration
	singleFlight    bool
	asyncPopulate   bool
	populateTimeout time.Duration
	loadTimeout     time.Duration
	now             func() time.Time
	keyValidator    any
	hook            any
}

// Option configures a Tiered lookup.
type Option func(*options)

// WithName labels the lookup in logs and stats.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithTTL sets the TTL used when populating the store. A non-positive TTL
// disables population: loaded values are returned but never cached.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithSingleFlight coalesces concurrent misses for the same key into one load.
func WithSingleFlight(enabled bool) Option {
	return func(o *options) { o.singleFlight = enabled }
}

// WithAsyncPopulate writes loaded values to the store in the background.
func WithAsyncPopulate(enabled bool) Option {
	return func(o *options) { o.asyncPopulate = enabled }
}

// WithPopulateTimeout bounds the store write that follows a successful load.
func WithPopulateTimeout(d time.Duration) Option {
	return func(o *options) { o.populateTimeout = d }
}

// WithLoadTimeout bounds a coalesced load, which runs detached from the
// callers waiting on it.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) { o.loadTimeout = d }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithKeyValidator adds a precondition on keys on top of the zero-value check.
// The function's parameter type must match the key type of the Tiered it is
// passed to.
func WithKeyValidator[K comparable](fn func(K) error) Option {
	return func(o *options) { o.keyValidator = fn }
}

// WithLookupHook registers a callback invoked after every Get.
func WithLookupHook[K comparable](fn func(ctx context.Context, name string, key K, outcome Outcome, err error)) Option {
	return func(o *options) { o.hook = fn }
}

// New builds a Tiered lookup. It panics if a key validator or lookup hook was
// declared for a different key type.
func New[K comparable, V any](store Store[K, V], loader Loader[K, V], opts ...Option) *Tiered[K, V] {
	o := options{
		name:            "cache",
		ttl:             DefaultTTL,
		populateTimeout: DefaultPopulateTimeout,
		loadTimeout:     DefaultLoadTimeout,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loadTimeout <= 0 {
		o.loadTimeout = DefaultLoadTimeout
	}

	t := &Tiered[K, V]{
		name:            o.name,
		store:           store,
		loader:          loader,
		ttl:             o.ttl,
		singleFlight:    o.singleFlight,
		asyncPopulate:   o.asyncPopulate,
		populateTimeout: o.populateTimeout,
		loadTimeout:     o.loadTimeout,
		now:             o.now,
	}

	if o.keyValidator != nil {
		fn, ok := o.keyValidator.(func(K) error)
		if !ok {
			panic(fmt.Sprintf("cache %s: key validator %T does not match key type", o.name, o.keyValidator))
		}
		t.validateKey = fn
	}
	if o.hook != nil {
		fn, ok := o.hook.(func(context.Context, string, K, Outcome, error))
		if !ok {
			panic(fmt.Sprintf("cache %s: lookup hook %T does not match key type", o.name, o.hook))
		}
		t.hook = fn
	}

	return t
}

func (t *Tiered[K, V]) Name() string {
	return t.name
}

func (t *Tiered[K, V]) Stats() StatsSnapshot {
	return t.stats.snapshot(t.name)
}

// Get returns the value for key, from the store when a valid entry exists and
// from the loader otherwise. The returned error, if any, wraps one of
// ErrInvalidKey, ErrNotFound or ErrSourceUnavailable.
func (t *Tiered[K, V]) Get(ctx context.Context, key K) (V, error) {
	var zero V

	if err := t.checkKey(key); err != nil {
		t.observe(ctx, key, OutcomeError, err)
		return zero, err
	}

	entry, ok, err := t.store.Get(ctx, key)
	if err != nil {
		t.stats.StoreErrors.Inc()
		logger.Warn("Cache read failed, falling back to source",
			zap.String("cache", t.name),
			zap.Any("key", key),
			zap.Error(err))
	} else if ok && entry.Valid(t.now()) {
		t.stats.Hits.Inc()
		logger.Debug("Cache hit", zap.String("cache", t.name), zap.Any("key", key))
		t.observe(ctx, key, OutcomeHit, nil)
		return entry.Value, nil
	}

	t.stats.Misses.Inc()
	logger.Debug("Cache miss", zap.String("cache", t.name), zap.Any("key", key))

	value, err := t.load(ctx, key)
	if err != nil {
		t.stats.LoadErrors.Inc()
		t.observe(ctx, key, OutcomeError, err)
		return zero, err
	}

	t.observe(ctx, key, OutcomeMiss, nil)
	return value, nil
}

// Invalidate removes key from the store. Call it only after the write to the
// system of record has succeeded.
func (t *Tiered[K, V]) Invalidate(ctx context.Context, key K) error {
	if err := t.checkKey(key); err != nil {
		return err
	}

	if err := t.store.Invalidate(ctx, key); err != nil {
		t.stats.StoreErrors.Inc()
		return fmt.Errorf("failed to invalidate %s key %v: %w", t.name, key, err)
	}

	t.stats.Invalidations.Inc()
	logger.Debug("Cache entry invalidated", zap.String("cache", t.name), zap.Any("key", key))
	return nil
}

func (t *Tiered[K, V]) checkKey(key K) error {
	var zero K
	if key == zero {
		return fmt.Errorf("%w: empty key", postcache_errors.ErrInvalidKey)
	}
	if t.validateKey != nil {
		if err := t.validateKey(key); err != nil {
			if errors.Is(err, postcache_errors.ErrInvalidKey) {
				return err
			}
			return fmt.Errorf("%w: %w", postcache_errors.ErrInvalidKey, err)
		}
	}
	return nil
}

func (t *Tiered[K, V]) load(ctx context.Context, key K) (V, error) {
	var zero V

	if !t.singleFlight {
		value, err := t.loadAndPopulate(ctx, key)
		if err != nil {
			return zero, sourceError(err)
		}
		return value, nil
	}

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own context ends.
	ch := t.group.DoChan(fmt.Sprint(key), func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.loadTimeout)
		defer cancel()
		return t.loadAndPopulate(lctx, key)
	})

	select {
	case res := <-ch:
		if res.Shared {
			t.stats.Coalesced.Inc()
		}
		if res.Err != nil {
			return zero, sourceError(res.Err)
		}
		value, _ := res.Val.(V)
		return value, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %w", postcache_errors.ErrSourceUnavailable, ctx.Err())
	}
}

// loadAndPopulate fetches key from the loader and writes it to the store once.
func (t *Tiered[K, V]) loadAndPopulate(ctx context.Context, key K) (V, error) {
	t.stats.Loads.Inc()
	value, err := t.loader.Load(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	t.populate(ctx, key, value)
	return value, nil
}

func (t *Tiered[K, V]) populate(ctx context.Context, key K, value V) {
	if t.ttl <= 0 {
		return
	}

	put := func() {
		// Population survives caller cancellation.
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.populateTimeout)
		defer cancel()

		if err := t.store.Put(pctx, key, value, t.ttl); err != nil {
			t.stats.StoreErrors.Inc()
			logger.Warn("Failed to populate cache",
				zap.String("cache", t.name),
				zap.Any("key", key),
				zap.Error(err))
			return
		}
		t.stats.Populates.Inc()
	}

	if t.asyncPopulate {
		go put()
		return
	}
	put()
}

func (t *Tiered[K, V]) observe(ctx context.Context, key K, outcome Outcome, err error) {
	if t.hook != nil {
		t.hook(ctx, t.name, key, outcome, err)
	}
}

// sourceError keeps the taxonomy of loader failures intact and classifies
// anything else as a source outage.
func sourceError(err error) error {
	if errors.Is(err, postcache_errors.ErrNotFound) ||
		errors.Is(err, postcache_errors.ErrSourceUnavailable) ||
		errors.Is(err, postcache_errors.ErrInvalidKey) {
		return err
	}
	return fmt.Errorf("%w: %w", postcache_errors.ErrSourceUnavailable, err)
}
