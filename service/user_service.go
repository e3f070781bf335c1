// service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/util"
	helper_util "github.com/dev-mohitbeniwal/postcache/util/helper"
)

type IUserService interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)
	InvalidateUser(ctx context.Context, id int64) error
}

type UserService struct {
	users    Lookup[int64, model.User]
	listing  Lookup[string, []model.User]
	eventBus *util.EventBus
}

func NewUserService(users Lookup[int64, model.User], listing Lookup[string, []model.User], eventBus *util.EventBus) *UserService {
	return &UserService{
		users:    users,
		listing:  listing,
		eventBus: eventBus,
	}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, postcache_errors.ErrNotFound) {
			logger.Error("Failed to get user", zap.Error(err), zap.Int64("userID", id))
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	users, err := s.listing.Get(ctx, ListingKey)
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	return helper_util.Paginate(users, limit, offset), nil
}

func (s *UserService) InvalidateUser(ctx context.Context, id int64) error {
	err := multierr.Append(
		s.users.Invalidate(ctx, id),
		s.listing.Invalidate(ctx, ListingKey),
	)
	if err != nil {
		return fmt.Errorf("failed to invalidate user %d: %w", id, err)
	}

	s.eventBus.Publish(ctx, util.EventCacheInvalidated, util.Invalidation{Cache: s.users.Name(), Key: fmt.Sprint(id)})
	logger.Info("User cache invalidated", zap.Int64("userID", id))
	return nil
}
