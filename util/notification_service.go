// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/postcache/logging"
	"github.com/dev-mohitbeniwal/postcache/model"
)

const (
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// PostChange is the payload of post.updated and post.deleted events.
type PostChange struct {
	ChangeType string
	PostID     int64
	Post       *model.Post
}

// Invalidation is the payload of cache.invalidated events.
type Invalidation struct {
	Cache string
	Key   string
}

type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyPostChange(ctx context.Context, change PostChange) error {
	switch change.ChangeType {
	case ChangeUpdated:
		fields := []zap.Field{zap.Int64("postID", change.PostID)}
		if change.Post != nil {
			fields = append(fields, zap.String("title", change.Post.Title))
		}
		logger.Info("NOTIFICATION: Post updated", fields...)
	case ChangeDeleted:
		logger.Info("NOTIFICATION: Post deleted", zap.Int64("postID", change.PostID))
	default:
		return fmt.Errorf("unknown change type: %s", change.ChangeType)
	}
	return nil
}

func (n *NotificationService) NotifyInvalidation(ctx context.Context, inv Invalidation) error {
	logger.Info("NOTIFICATION: Cache entry invalidated",
		zap.String("cache", inv.Cache),
		zap.String("key", inv.Key))
	return nil
}

// Register subscribes the notification handlers on the bus.
func (n *NotificationService) Register(bus *EventBus) {
	postHandler := func(ctx context.Context, e Event) error {
		change, ok := e.Payload.(PostChange)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		return n.NotifyPostChange(ctx, change)
	}
	bus.Subscribe(EventPostUpdated, postHandler)
	bus.Subscribe(EventPostDeleted, postHandler)

	bus.Subscribe(EventCacheInvalidated, func(ctx context.Context, e Event) error {
		inv, ok := e.Payload.(Invalidation)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		return n.NotifyInvalidation(ctx, inv)
	})
}
