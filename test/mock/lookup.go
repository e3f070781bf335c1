package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/postcache/cache"
)

// MockLookup is a mock implementation of service.Lookup
type MockLookup[K comparable, V any] struct {
	mock.Mock
}

func (m *MockLookup[K, V]) Get(ctx context.Context, key K) (V, error) {
	args := m.Called(ctx, key)
	var zero V
	if v := args.Get(0); v != nil {
		return v.(V), args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockLookup[K, V]) Invalidate(ctx context.Context, key K) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockLookup[K, V]) Name() string {
	return m.Called().String(0)
}

func (m *MockLookup[K, V]) Stats() cache.StatsSnapshot {
	return m.Called().Get(0).(cache.StatsSnapshot)
}
