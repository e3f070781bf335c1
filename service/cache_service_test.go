package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/postcache/audit"
	"github.com/dev-mohitbeniwal/postcache/cache"
	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/service"
	mocks "github.com/dev-mohitbeniwal/postcache/test/mock"
	"github.com/dev-mohitbeniwal/postcache/util"
)

func TestCacheService(t *testing.T) {
	ctx := context.Background()

	t.Run("Stats", func(t *testing.T) {
		posts := new(mocks.MockLookup[int64, model.Post])
		posts.On("Stats").Return(cache.StatsSnapshot{Name: "posts", Hits: 3})

		svc := service.NewCacheService(nil, posts)
		stats := svc.Stats()
		require.Len(t, stats, 1)
		assert.Equal(t, "posts", stats[0].Name)
		assert.EqualValues(t, 3, stats[0].Hits)
	})

	t.Run("AuditDisabled", func(t *testing.T) {
		svc := service.NewCacheService(nil)
		_, err := svc.AuditLogs(ctx, time.Now().Add(-time.Hour), time.Now(), "", "")
		assert.ErrorIs(t, err, service.ErrAuditDisabled)
	})

	t.Run("AuditLogs", func(t *testing.T) {
		auditSvc := new(mocks.MockAuditService)
		from, to := time.Now().Add(-time.Hour), time.Now()
		auditSvc.On("QueryLogs", ctx, from, to, "posts", "1").
			Return([]audit.AuditLog{{Cache: "posts", Key: "1", Action: audit.ActionLookup}}, nil)

		logs, err := service.NewCacheService(auditSvc).AuditLogs(ctx, from, to, "posts", "1")
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})
}

func TestAuditSubscriber(t *testing.T) {
	ctx := context.Background()
	auditSvc := new(mocks.MockAuditService)
	bus := util.NewEventBus()
	service.RegisterAuditSubscriber(bus, auditSvc)

	auditSvc.On("LogEvent", mock.Anything, mock.MatchedBy(func(l audit.AuditLog) bool {
		return l.Action == audit.ActionLookup && l.Outcome == "error" && l.Error == "boom" && l.Key == "7"
	})).Return(nil).Once()
	auditSvc.On("LogEvent", mock.Anything, mock.MatchedBy(func(l audit.AuditLog) bool {
		return l.Action == audit.ActionInvalidate && l.Cache == "users"
	})).Return(nil).Once()
	auditSvc.On("LogEvent", mock.Anything, mock.MatchedBy(func(l audit.AuditLog) bool {
		return l.Action == audit.ActionUpdate && len(l.ChangeDetails) > 0
	})).Return(nil).Once()
	auditSvc.On("LogEvent", mock.Anything, mock.MatchedBy(func(l audit.AuditLog) bool {
		return l.Action == audit.ActionDelete && l.Key == "4"
	})).Return(nil).Once()

	hook := service.LookupEventHook[int64](bus)
	hook(ctx, "posts", 7, cache.OutcomeError, errors.New("boom"))
	bus.Publish(ctx, util.EventCacheInvalidated, util.Invalidation{Cache: "users", Key: "1"})
	bus.Publish(ctx, util.EventPostUpdated, util.PostChange{ChangeType: util.ChangeUpdated, PostID: 3, Post: &model.Post{ID: 3}})
	bus.Publish(ctx, util.EventPostDeleted, util.PostChange{ChangeType: util.ChangeDeleted, PostID: 4})
	bus.Wait()

	auditSvc.AssertExpectations(t)
}
