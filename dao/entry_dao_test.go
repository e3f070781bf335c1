package dao_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/postcache/cache"
	"github.com/dev-mohitbeniwal/postcache/dao"
	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	"github.com/dev-mohitbeniwal/postcache/model"
	mocks "github.com/dev-mohitbeniwal/postcache/test/mock"
)

var samplePost = model.Post{UserID: 1, ID: 1, Title: "Valid Title", Body: "Body"}

func encode(t *testing.T, entry cache.Entry[model.Post]) string {
	t.Helper()
	data, err := cache.JSONCodec[model.Post]{}.Encode(entry)
	require.NoError(t, err)
	return string(data)
}

func keyParams(key string) map[string]any {
	return map[string]any{"namespace": "post", "key": key}
}

func TestEntryDAO(t *testing.T) {
	ctx := context.Background()

	t.Run("Get_Hit", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		payload := encode(t, cache.NewEntry(samplePost, time.Minute, time.Now()))
		querier.On("ExecuteQuery", ctx, mock.AnythingOfType("string"), keyParams("1")).
			Return([]*neo4j.Record{mocks.Record("payload", payload, "expiresAt", int64(0))}, nil)

		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		entry, ok, err := entryDAO.Get(ctx, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, samplePost, entry.Value)
		querier.AssertExpectations(t)
	})

	t.Run("Get_NoRecord", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		querier.On("ExecuteQuery", ctx, mock.Anything, keyParams("2")).Return([]*neo4j.Record{}, nil)

		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		_, ok, err := entryDAO.Get(ctx, 2)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Get_ExpiredRecord", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		payload := encode(t, cache.NewEntry(samplePost, time.Second, time.Now().Add(-time.Hour)))
		querier.On("ExecuteQuery", ctx, mock.Anything, keyParams("1")).
			Return([]*neo4j.Record{mocks.Record("payload", payload)}, nil)

		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		_, ok, err := entryDAO.Get(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Get_QueryFailure", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		querier.On("ExecuteQuery", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		_, _, err := entryDAO.Get(ctx, 1)
		assert.ErrorIs(t, err, postcache_errors.ErrCacheUnavailable)
	})

	t.Run("Put_MergesNode", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		querier.On("ExecuteQuery", ctx, mock.MatchedBy(func(q string) bool {
			return assert.Contains(t, q, "MERGE (e:CacheEntry")
		}), mock.MatchedBy(func(p map[string]any) bool {
			payload, _ := p["payload"].(string)
			_, hasExpiry := p["expiresAt"].(int64)
			return p["namespace"] == "post" && p["key"] == "1" && payload != "" && hasExpiry
		})).Return([]*neo4j.Record{}, nil)

		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		require.NoError(t, entryDAO.Put(ctx, 1, samplePost, time.Minute))
		querier.AssertExpectations(t)
	})

	t.Run("Put_NonPositiveTTL", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		require.NoError(t, entryDAO.Put(ctx, 1, samplePost, 0))
		querier.AssertNotCalled(t, "ExecuteQuery", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalidate", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		querier.On("ExecuteQuery", ctx, mock.MatchedBy(func(q string) bool {
			return assert.Contains(t, q, "DETACH DELETE")
		}), keyParams("1")).Return([]*neo4j.Record{}, nil)

		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		require.NoError(t, entryDAO.Invalidate(ctx, 1))
		querier.AssertExpectations(t)
	})

	t.Run("Invalidate_Failure", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		querier.On("ExecuteQuery", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("unavailable"))

		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		assert.ErrorIs(t, entryDAO.Invalidate(ctx, 1), postcache_errors.ErrCacheUnavailable)
	})

	t.Run("RemoveExpired", func(t *testing.T) {
		querier := new(mocks.MockQuerier)
		querier.On("ExecuteQuery", mock.Anything, mock.Anything, mock.MatchedBy(func(p map[string]any) bool {
			return p["namespace"] == "post"
		})).Return([]*neo4j.Record{mocks.Record("removed", int64(3))}, nil)

		entryDAO := dao.NewEntryDAO[int64, model.Post](querier, "post", nil)
		assert.Equal(t, 3, entryDAO.RemoveExpired())
	})
}
