package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store guarded by a RWMutex.
//
// Expired entries are purged lazily on Get and in bulk by RemoveExpired,
// which a Cleaner can call periodically.
type MemoryStore[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]Entry[V]
	now  func() time.Time
}

type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now func() time.Time
}

// WithMemoryClock replaces time.Now for insertion and expiry checks.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) { o.now = now }
}

func NewMemoryStore[K comparable, V any](opts ...MemoryOption) *MemoryStore[K, V] {
	o := memoryOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore[K, V]{
		data: make(map[K]Entry[V]),
		now:  o.now,
	}
}

func (s *MemoryStore[K, V]) Get(_ context.Context, key K) (Entry[V], bool, error) {
	s.mu.RLock()
	entry, exists := s.data[key]
	s.mu.RUnlock()

	if !exists {
		return Entry[V]{}, false, nil
	}

	now := s.now()
	if !entry.Valid(now) {
		s.mu.Lock()
		// Only drop what is still expired; a concurrent Put may have replaced it.
		if current, ok := s.data[key]; ok && !current.Valid(now) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return Entry[V]{}, false, nil
	}

	return entry, true, nil
}

func (s *MemoryStore[K, V]) Put(_ context.Context, key K, value V, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = NewEntry(value, ttl, s.now())
	return nil
}

func (s *MemoryStore[K, V]) Invalidate(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// RemoveExpired deletes every expired entry and returns how many were removed.
func (s *MemoryStore[K, V]) RemoveExpired() int {
	now := s.now()
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range s.data {
		if !v.Valid(now) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
