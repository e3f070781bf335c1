package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/postcache/cache"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("PutAndGet", func(t *testing.T) {
		clock := newFakeClock()
		store := cache.NewMemoryStore[int64, post](cache.WithMemoryClock(clock.Now))

		require.NoError(t, store.Put(ctx, 1, validPost, time.Minute))
		entry, ok, err := store.Get(ctx, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, validPost, entry.Value)
		assert.Equal(t, clock.Now(), entry.InsertedAt)
	})

	t.Run("ExpiredReadKeepsConcurrentPutAtSameInstant", func(t *testing.T) {
		base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		var (
			now   = base
			armed bool
			store *cache.MemoryStore[int64, post]
		)
		// While armed, the next clock read stands in for a Put that lands between
		// the expired read and the purge, stamped with the original insertion time.
		clockFn := func() time.Time {
			if armed {
				armed = false
				reading := now
				now = base
				require.NoError(t, store.Put(ctx, 1, post{ID: 1, Title: "Fresh"}, 5*time.Minute))
				now = reading
			}
			return now
		}
		store = cache.NewMemoryStore[int64, post](cache.WithMemoryClock(clockFn))

		require.NoError(t, store.Put(ctx, 1, validPost, time.Minute))
		now = base.Add(2 * time.Minute)
		armed = true

		_, ok, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)

		entry, ok, err := store.Get(ctx, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Fresh", entry.Value.Title)
	})

	t.Run("ExpiredEntryIsPurgedOnGet", func(t *testing.T) {
		clock := newFakeClock()
		store := cache.NewMemoryStore[int64, post](cache.WithMemoryClock(clock.Now))

		require.NoError(t, store.Put(ctx, 1, validPost, time.Minute))
		clock.Advance(time.Minute)

		_, ok, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, store.Len())
	})

	t.Run("NonPositiveTTLStoresNothing", func(t *testing.T) {
		store := cache.NewMemoryStore[int64, post]()
		require.NoError(t, store.Put(ctx, 1, validPost, 0))
		require.NoError(t, store.Put(ctx, 2, validPost, -time.Second))
		assert.Zero(t, store.Len())
	})

	t.Run("PutReplacesEntry", func(t *testing.T) {
		clock := newFakeClock()
		store := cache.NewMemoryStore[int64, post](cache.WithMemoryClock(clock.Now))

		require.NoError(t, store.Put(ctx, 1, post{ID: 1, Title: "old"}, time.Minute))
		clock.Advance(50 * time.Second)
		require.NoError(t, store.Put(ctx, 1, post{ID: 1, Title: "new"}, time.Minute))
		clock.Advance(50 * time.Second)

		entry, ok, err := store.Get(ctx, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "new", entry.Value.Title)
	})

	t.Run("Invalidate", func(t *testing.T) {
		store := cache.NewMemoryStore[int64, post]()
		require.NoError(t, store.Put(ctx, 1, validPost, time.Minute))
		require.NoError(t, store.Invalidate(ctx, 1))
		require.NoError(t, store.Invalidate(ctx, 2))

		_, ok, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("RemoveExpired", func(t *testing.T) {
		clock := newFakeClock()
		store := cache.NewMemoryStore[int64, post](cache.WithMemoryClock(clock.Now))

		require.NoError(t, store.Put(ctx, 1, validPost, time.Second))
		require.NoError(t, store.Put(ctx, 2, validPost, time.Hour))
		require.NoError(t, store.Put(ctx, 3, validPost, 2*time.Second))
		clock.Advance(3 * time.Second)

		assert.Equal(t, 2, store.RemoveExpired())
		assert.Equal(t, 1, store.Len())
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		store := cache.NewMemoryStore[int64, post]()
		var wg sync.WaitGroup
		for i := int64(1); i <= 50; i++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				_ = store.Put(ctx, id, post{ID: id}, time.Minute)
				_, _, _ = store.Get(ctx, id)
				if id%2 == 0 {
					_ = store.Invalidate(ctx, id)
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 25, store.Len())
	})
}

func TestEntry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := cache.NewEntry("v", time.Minute, now)

	assert.True(t, entry.Valid(now))
	assert.True(t, entry.Valid(now.Add(59*time.Second)))
	assert.False(t, entry.Valid(now.Add(time.Minute)))
	assert.Equal(t, 30*time.Second, entry.Remaining(now.Add(30*time.Second)))
	assert.Zero(t, entry.Remaining(now.Add(2*time.Minute)))
	assert.False(t, cache.NewEntry("v", 0, now).Valid(now))
}
