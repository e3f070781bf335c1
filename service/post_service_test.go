package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/postcache/cache"
	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/service"
	mocks "github.com/dev-mohitbeniwal/postcache/test/mock"
	"github.com/dev-mohitbeniwal/postcache/util"
)

func validPost(id int64) model.Post {
	return model.Post{UserID: 1, ID: id, Title: fmt.Sprintf("Title %d", id), Body: "Body"}
}

type postFixture struct {
	client  *mocks.MockPostClient
	posts   *cache.Tiered[int64, model.Post]
	listing *cache.Tiered[string, []model.Post]
	svc     *service.PostService
	bus     *util.EventBus
}

func newPostFixture() *postFixture {
	client := new(mocks.MockPostClient)
	posts := cache.New[int64, model.Post](cache.NewMemoryStore[int64, model.Post](), service.NewPostLoader(client),
		cache.WithName("posts"), cache.WithTTL(time.Minute))
	listing := cache.New[string, []model.Post](cache.NewMemoryStore[string, []model.Post](), service.NewPostListLoader(client),
		cache.WithName("post-listing"), cache.WithTTL(time.Minute))
	bus := util.NewEventBus()

	return &postFixture{
		client:  client,
		posts:   posts,
		listing: listing,
		bus:     bus,
		svc:     service.NewPostService(posts, listing, client, util.NewValidationUtil(), bus),
	}
}

func TestPostService_GetPost(t *testing.T) {
	ctx := context.Background()

	t.Run("CachesAfterFirstLookup", func(t *testing.T) {
		f := newPostFixture()
		f.client.On("GetPost", mock.Anything, int64(1)).Return(validPost(1), nil).Once()

		first, err := f.svc.GetPost(ctx, 1)
		require.NoError(t, err)
		second, err := f.svc.GetPost(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		f.client.AssertNumberOfCalls(t, "GetPost", 1)
	})

	t.Run("InvalidPostIsNotFoundAndNotCached", func(t *testing.T) {
		f := newPostFixture()
		f.client.On("GetPost", mock.Anything, int64(2)).Return(model.Post{ID: 2}, nil)

		_, err := f.svc.GetPost(ctx, 2)
		assert.ErrorIs(t, err, postcache_errors.ErrPostNotFound)
		_, err = f.svc.GetPost(ctx, 2)
		assert.ErrorIs(t, err, postcache_errors.ErrNotFound)
		f.client.AssertNumberOfCalls(t, "GetPost", 2)
	})

	t.Run("SourceUnavailable", func(t *testing.T) {
		f := newPostFixture()
		f.client.On("GetPost", mock.Anything, int64(3)).
			Return(model.Post{}, fmt.Errorf("%w: 502", postcache_errors.ErrSourceUnavailable))

		_, err := f.svc.GetPost(ctx, 3)
		assert.ErrorIs(t, err, postcache_errors.ErrSourceUnavailable)
	})
}

func TestPostService_ListPosts(t *testing.T) {
	ctx := context.Background()
	f := newPostFixture()
	f.client.On("ListPosts", mock.Anything).
		Return([]model.Post{validPost(1), {ID: 2}, validPost(3), validPost(4)}, nil).Once()

	posts, err := f.svc.ListPosts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	page, err := f.svc.ListPosts(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].ID)

	f.client.AssertNumberOfCalls(t, "ListPosts", 1)
}

func TestPostService_GetPostsByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("KeepsOrderAndSkipsMissing", func(t *testing.T) {
		f := newPostFixture()
		f.client.On("GetPost", mock.Anything, int64(3)).Return(validPost(3), nil)
		f.client.On("GetPost", mock.Anything, int64(1)).Return(validPost(1), nil)
		f.client.On("GetPost", mock.Anything, int64(9)).Return(model.Post{}, postcache_errors.ErrPostNotFound)

		posts, err := f.svc.GetPostsByIDs(ctx, []int64{3, 9, 1})
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, int64(3), posts[0].ID)
		assert.Equal(t, int64(1), posts[1].ID)
	})

	t.Run("SourceFailureFailsBatch", func(t *testing.T) {
		f := newPostFixture()
		f.client.On("GetPost", mock.Anything, int64(1)).Return(validPost(1), nil).Maybe()
		f.client.On("GetPost", mock.Anything, int64(2)).
			Return(model.Post{}, fmt.Errorf("%w: timeout", postcache_errors.ErrSourceUnavailable))

		_, err := f.svc.GetPostsByIDs(ctx, []int64{1, 2})
		assert.ErrorIs(t, err, postcache_errors.ErrSourceUnavailable)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	ctx := context.Background()
	update := model.PostUpdate{UserID: 1, Title: "New Title", Body: "New Body"}

	t.Run("InvalidatesPostAndListing", func(t *testing.T) {
		f := newPostFixture()
		f.client.On("GetPost", mock.Anything, int64(1)).Return(validPost(1), nil)
		f.client.On("ListPosts", mock.Anything).Return([]model.Post{validPost(1)}, nil)
		f.client.On("UpdatePost", mock.Anything, int64(1), update).
			Return(model.Post{UserID: 1, ID: 1, Title: "New Title", Body: "New Body"}, nil)

		_, err := f.svc.GetPost(ctx, 1)
		require.NoError(t, err)
		_, err = f.svc.ListPosts(ctx, 0, 0)
		require.NoError(t, err)

		updated, err := f.svc.UpdatePost(ctx, 1, update)
		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)

		_, err = f.svc.GetPost(ctx, 1)
		require.NoError(t, err)
		_, err = f.svc.ListPosts(ctx, 0, 0)
		require.NoError(t, err)

		f.client.AssertNumberOfCalls(t, "GetPost", 2)
		f.client.AssertNumberOfCalls(t, "ListPosts", 2)
		f.bus.Wait()
	})

	t.Run("InvalidData", func(t *testing.T) {
		f := newPostFixture()
		_, err := f.svc.UpdatePost(ctx, 1, model.PostUpdate{UserID: 1})
		assert.ErrorIs(t, err, postcache_errors.ErrInvalidPostData)
		f.client.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SourceFailureKeepsCache", func(t *testing.T) {
		f := newPostFixture()
		f.client.On("GetPost", mock.Anything, int64(1)).Return(validPost(1), nil).Once()
		f.client.On("UpdatePost", mock.Anything, int64(1), update).
			Return(model.Post{}, fmt.Errorf("%w: 503", postcache_errors.ErrSourceUnavailable))

		_, err := f.svc.GetPost(ctx, 1)
		require.NoError(t, err)

		_, err = f.svc.UpdatePost(ctx, 1, update)
		assert.ErrorIs(t, err, postcache_errors.ErrSourceUnavailable)
		assert.Zero(t, f.posts.Stats().Invalidations)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()
	f := newPostFixture()
	f.client.On("DeletePost", mock.Anything, int64(5)).Return(nil)

	require.NoError(t, f.svc.DeletePost(ctx, 5))
	assert.EqualValues(t, 1, f.posts.Stats().Invalidations)
	assert.EqualValues(t, 1, f.listing.Stats().Invalidations)

	assert.ErrorIs(t, f.svc.DeletePost(ctx, 0), postcache_errors.ErrInvalidKey)
	f.bus.Wait()
}

func TestPostService_InvalidatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("StoreFailureIsReported", func(t *testing.T) {
		posts := new(mocks.MockLookup[int64, model.Post])
		listing := new(mocks.MockLookup[string, []model.Post])
		posts.On("Invalidate", ctx, int64(1)).Return(errors.New("redis down"))
		listing.On("Invalidate", ctx, service.ListingKey).Return(nil)

		svc := service.NewPostService(posts, listing, new(mocks.MockPostClient), util.NewValidationUtil(), util.NewEventBus())
		err := svc.InvalidatePost(ctx, 1)
		assert.ErrorContains(t, err, "redis down")
		listing.AssertExpectations(t)
	})

	t.Run("PublishesInvalidation", func(t *testing.T) {
		posts := new(mocks.MockLookup[int64, model.Post])
		listing := new(mocks.MockLookup[string, []model.Post])
		posts.On("Invalidate", ctx, int64(1)).Return(nil)
		posts.On("Name").Return("posts")
		listing.On("Invalidate", ctx, service.ListingKey).Return(nil)

		bus := util.NewEventBus()
		received := make(chan util.Invalidation, 1)
		bus.Subscribe(util.EventCacheInvalidated, func(_ context.Context, e util.Event) error {
			received <- e.Payload.(util.Invalidation)
			return nil
		})

		svc := service.NewPostService(posts, listing, new(mocks.MockPostClient), util.NewValidationUtil(), bus)
		require.NoError(t, svc.InvalidatePost(ctx, 1))
		bus.Wait()

		inv := <-received
		assert.Equal(t, util.Invalidation{Cache: "posts", Key: "1"}, inv)
	})
}
