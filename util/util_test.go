package util_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/util"
)

func TestValidationUtil(t *testing.T) {
	v := util.NewValidationUtil()

	t.Run("ParseID", func(t *testing.T) {
		id, err := v.ParseID("42")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)

		_, err = v.ParseID("abc")
		assert.ErrorIs(t, err, postcache_errors.ErrInvalidKey)
		_, err = v.ParseID("0")
		assert.ErrorIs(t, err, postcache_errors.ErrInvalidKey)
		_, err = v.ParseID("-1")
		assert.ErrorIs(t, err, postcache_errors.ErrInvalidKey)
	})

	t.Run("ParseIDs", func(t *testing.T) {
		ids, err := v.ParseIDs("3, 1,3,,2")
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1, 2}, ids)

		_, err = v.ParseIDs("1,x")
		assert.ErrorIs(t, err, postcache_errors.ErrInvalidIDList)
		_, err = v.ParseIDs(" , ")
		assert.ErrorIs(t, err, postcache_errors.ErrInvalidIDList)

		tooMany := "1"
		for i := 2; i <= util.MaxBatchIDs+1; i++ {
			tooMany += fmt.Sprintf(",%d", i)
		}
		_, err = v.ParseIDs(tooMany)
		assert.ErrorIs(t, err, postcache_errors.ErrInvalidIDList)
	})

	t.Run("ValidatePostUpdate", func(t *testing.T) {
		assert.NoError(t, v.ValidatePostUpdate(model.PostUpdate{UserID: 1, Title: "t", Body: "b"}))
		assert.ErrorIs(t, v.ValidatePostUpdate(model.PostUpdate{Title: "t", Body: "b"}), postcache_errors.ErrInvalidPostData)
		assert.ErrorIs(t, v.ValidatePostUpdate(model.PostUpdate{UserID: 1, Title: " ", Body: "b"}), postcache_errors.ErrInvalidPostData)
		assert.ErrorIs(t, v.ValidatePostUpdate(model.PostUpdate{UserID: 1, Title: "t"}), postcache_errors.ErrInvalidPostData)
	})
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("x: %w", postcache_errors.ErrInvalidKey):        http.StatusBadRequest,
		postcache_errors.ErrInvalidIDList:                           http.StatusBadRequest,
		fmt.Errorf("%w: id 9", postcache_errors.ErrPostNotFound):    http.StatusNotFound,
		postcache_errors.ErrUserNotFound:                            http.StatusNotFound,
		fmt.Errorf("%w: 502", postcache_errors.ErrSourceUnavailable): http.StatusServiceUnavailable,
		postcache_errors.ErrUnauthorized:                            http.StatusUnauthorized,
		fmt.Errorf("%w: dial", postcache_errors.ErrCacheUnavailable): http.StatusServiceUnavailable,
		errors.New("boom"):                                          http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, util.StatusFor(err), err.Error())
	}
}

func TestRespondWithLookupError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/posts/9", nil)

	util.RespondWithLookupError(c, "post", fmt.Errorf("%w: id 9", postcache_errors.ErrPostNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"post not found"}`, w.Body.String())
}

func TestEventBus(t *testing.T) {
	bus := util.NewEventBus()

	var mu sync.Mutex
	var received []util.PostChange
	bus.Subscribe(util.EventPostUpdated, func(_ context.Context, e util.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e.Payload.(util.PostChange))
		return nil
	})
	bus.Subscribe(util.EventPostDeleted, func(context.Context, util.Event) error {
		return errors.New("handler failed")
	})

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, util.EventPostUpdated, util.PostChange{ChangeType: util.ChangeUpdated, PostID: 1})
	cancel()
	bus.Publish(ctx, util.EventPostDeleted, util.PostChange{ChangeType: util.ChangeDeleted, PostID: 1})
	bus.Publish(ctx, "unknown.event", nil)
	bus.Wait()

	require.Len(t, received, 1)
	assert.Equal(t, int64(1), received[0].PostID)

	select {
	case err := <-bus.Errors():
		assert.ErrorContains(t, err, "handler failed")
	default:
		t.Fatal("expected a handler error")
	}
}

func TestNotificationService(t *testing.T) {
	n := util.NewNotificationService()
	ctx := context.Background()

	assert.NoError(t, n.NotifyPostChange(ctx, util.PostChange{ChangeType: util.ChangeUpdated, PostID: 1, Post: &model.Post{Title: "t"}}))
	assert.NoError(t, n.NotifyPostChange(ctx, util.PostChange{ChangeType: util.ChangeDeleted, PostID: 1}))
	assert.Error(t, n.NotifyPostChange(ctx, util.PostChange{ChangeType: "created"}))

	bus := util.NewEventBus()
	n.Register(bus)
	bus.Publish(ctx, util.EventCacheInvalidated, "not an invalidation")
	bus.Wait()

	select {
	case err := <-bus.Errors():
		assert.ErrorContains(t, err, "unexpected payload")
	default:
		t.Fatal("expected a payload error")
	}
}
