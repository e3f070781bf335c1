// service/post_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dev-mohitbeniwal/postcache/client"
	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/util"
	helper_util "github.com/dev-mohitbeniwal/postcache/util/helper"
)

const batchConcurrency = 10

type IPostService interface {
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error)
	GetPostsByIDs(ctx context.Context, ids []int64) ([]model.Post, error)
	UpdatePost(ctx context.Context, id int64, update model.PostUpdate) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) error
	InvalidatePost(ctx context.Context, id int64) error
}

// PostService serves posts through the post and listing caches and forwards
// writes to the source before invalidating.
type PostService struct {
	posts          Lookup[int64, model.Post]
	listing        Lookup[string, []model.Post]
	writer         client.IPostClient
	validationUtil *util.ValidationUtil
	eventBus       *util.EventBus
}

func NewPostService(posts Lookup[int64, model.Post], listing Lookup[string, []model.Post], writer client.IPostClient, validationUtil *util.ValidationUtil, eventBus *util.EventBus) *PostService {
	return &PostService{
		posts:          posts,
		listing:        listing,
		writer:         writer,
		validationUtil: validationUtil,
		eventBus:       eventBus,
	}
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, postcache_errors.ErrNotFound) {
			logger.Error("Failed to get post", zap.Error(err), zap.Int64("postID", id))
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	posts, err := s.listing.Get(ctx, ListingKey)
	if err != nil {
		logger.Error("Failed to list posts", zap.Error(err))
		return nil, err
	}
	return helper_util.Paginate(posts, limit, offset), nil
}

// GetPostsByIDs looks posts up concurrently and returns them in request order.
// Ids that do not resolve to a post are skipped.
func (s *PostService) GetPostsByIDs(ctx context.Context, ids []int64) ([]model.Post, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	results := make([]*model.Post, len(ids))

	for i, id := range ids {
		g.Go(func() error {
			post, err := s.GetPost(gctx, id)
			if errors.Is(err, postcache_errors.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = post
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Error in batch post lookup", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	posts := make([]model.Post, 0, len(ids))
	for _, p := range results {
		if p != nil {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id int64, update model.PostUpdate) (*model.Post, error) {
	if err := s.validationUtil.ValidateID(id); err != nil {
		return nil, err
	}
	if err := s.validationUtil.ValidatePostUpdate(update); err != nil {
		return nil, err
	}

	updated, err := s.writer.UpdatePost(ctx, id, update)
	if err != nil {
		logger.Error("Failed to update post at source", zap.Error(err), zap.Int64("postID", id))
		return nil, err
	}

	s.invalidateAfterWrite(ctx, id)
	s.eventBus.Publish(ctx, util.EventPostUpdated, util.PostChange{ChangeType: util.ChangeUpdated, PostID: id, Post: &updated})

	logger.Info("Post updated successfully", zap.Int64("postID", id))
	return &updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	if err := s.validationUtil.ValidateID(id); err != nil {
		return err
	}

	if err := s.writer.DeletePost(ctx, id); err != nil {
		logger.Error("Failed to delete post at source", zap.Error(err), zap.Int64("postID", id))
		return err
	}

	s.invalidateAfterWrite(ctx, id)
	s.eventBus.Publish(ctx, util.EventPostDeleted, util.PostChange{ChangeType: util.ChangeDeleted, PostID: id})

	logger.Info("Post deleted successfully", zap.Int64("postID", id))
	return nil
}

// InvalidatePost drops the post and the listing that contains it.
func (s *PostService) InvalidatePost(ctx context.Context, id int64) error {
	err := multierr.Append(
		s.posts.Invalidate(ctx, id),
		s.listing.Invalidate(ctx, ListingKey),
	)
	if err != nil {
		return fmt.Errorf("failed to invalidate post %d: %w", id, err)
	}

	s.eventBus.Publish(ctx, util.EventCacheInvalidated, util.Invalidation{Cache: s.posts.Name(), Key: fmt.Sprint(id)})
	return nil
}

// The source write already succeeded; a failed invalidation only leaves a
// stale entry until its TTL runs out.
func (s *PostService) invalidateAfterWrite(ctx context.Context, id int64) {
	if err := s.InvalidatePost(ctx, id); err != nil {
		logger.Error("Failed to invalidate post cache after write", zap.Error(err), zap.Int64("postID", id))
	}
}
