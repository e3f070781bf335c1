package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/postcache/cache"
	"github.com/dev-mohitbeniwal/postcache/client"
	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
	"github.com/dev-mohitbeniwal/postcache/model"
)

// Invalid records are reported as not found at load time so they never reach
// the cache.

func NewPostLoader(c client.IPostClient) cache.Loader[int64, model.Post] {
	return cache.LoaderFunc[int64, model.Post](func(ctx context.Context, id int64) (model.Post, error) {
		post, err := c.GetPost(ctx, id)
		if err != nil {
			return model.Post{}, err
		}
		if !post.IsValid() {
			logger.Warn("Source returned an invalid post", zap.Int64("postID", id))
			return model.Post{}, fmt.Errorf("%w: id %d is invalid", postcache_errors.ErrPostNotFound, id)
		}
		return post, nil
	})
}

func NewPostListLoader(c client.IPostClient) cache.Loader[string, []model.Post] {
	return cache.LoaderFunc[string, []model.Post](func(ctx context.Context, _ string) ([]model.Post, error) {
		posts, err := c.ListPosts(ctx)
		if err != nil {
			return nil, err
		}
		valid := make([]model.Post, 0, len(posts))
		for _, p := range posts {
			if p.IsValid() {
				valid = append(valid, p)
			}
		}
		return valid, nil
	})
}

func NewUserLoader(c client.IUserClient) cache.Loader[int64, model.User] {
	return cache.LoaderFunc[int64, model.User](func(ctx context.Context, id int64) (model.User, error) {
		user, err := c.GetUser(ctx, id)
		if err != nil {
			return model.User{}, err
		}
		if !user.IsValid() {
			logger.Warn("Source returned an invalid user", zap.Int64("userID", id))
			return model.User{}, fmt.Errorf("%w: id %d is invalid", postcache_errors.ErrUserNotFound, id)
		}
		return user, nil
	})
}

func NewUserListLoader(c client.IUserClient) cache.Loader[string, []model.User] {
	return cache.LoaderFunc[string, []model.User](func(ctx context.Context, _ string) ([]model.User, error) {
		users, err := c.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		valid := make([]model.User, 0, len(users))
		for _, u := range users {
			if u.IsValid() {
				valid = append(valid, u)
			}
		}
		return valid, nil
	})
}
