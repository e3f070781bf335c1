package cache_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/dev-mohitbeniwal/postcache/cache"
	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type post struct {
	ID    int64
	Title string
	Body  string
}

// countingLoader returns values from a fixed table and counts invocations.
type countingLoader struct {
	calls  atomic.Int64
	values map[int64]post
	err    error
}

func (l *countingLoader) Load(_ context.Context, key int64) (post, error) {
	l.calls.Inc()
	if l.err != nil {
		return post{}, l.err
	}
	v, ok := l.values[key]
	if !ok {
		return post{}, postcache_errors.ErrNotFound
	}
	return v, nil
}

var errTransport = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

// brokenStore fails every operation.
type brokenStore struct {
	puts atomic.Int64
}

func (s *brokenStore) Get(context.Context, int64) (cache.Entry[post], bool, error) {
	return cache.Entry[post]{}, false, errTransport
}

func (s *brokenStore) Put(context.Context, int64, post, time.Duration) error {
	s.puts.Inc()
	return errTransport
}

func (s *brokenStore) Invalidate(context.Context, int64) error {
	return errTransport
}

// countingStore records how many writes reach the wrapped store.
type countingStore struct {
	*cache.MemoryStore[int64, post]
	puts atomic.Int64
}

func (s *countingStore) Put(ctx context.Context, key int64, value post, ttl time.Duration) error {
	s.puts.Inc()
	return s.MemoryStore.Put(ctx, key, value, ttl)
}
