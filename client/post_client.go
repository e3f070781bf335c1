package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	"github.com/dev-mohitbeniwal/postcache/model"
)

type IPostClient interface {
	GetPost(ctx context.Context, id int64) (model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, id int64, update model.PostUpdate) (model.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

type PostClient struct {
	*Client
}

func NewPostClient(c *Client) *PostClient {
	return &PostClient{Client: c}
}

func (c *PostClient) GetPost(ctx context.Context, id int64) (model.Post, error) {
	var post model.Post
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d", id), &post); err != nil {
		return model.Post{}, postError(id, err)
	}
	return post, nil
}

func (c *PostClient) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.getJSON(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *PostClient) UpdatePost(ctx context.Context, id int64, update model.PostUpdate) (model.Post, error) {
	body := model.Post{
		UserID: update.UserID,
		ID:     id,
		Title:  update.Title,
		Body:   update.Body,
	}

	var updated model.Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), body, &updated); err != nil {
		return model.Post{}, postError(id, err)
	}
	return updated, nil
}

func (c *PostClient) DeletePost(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil); err != nil {
		return postError(id, err)
	}
	return nil
}

func postError(id int64, err error) error {
	if errors.Is(err, postcache_errors.ErrNotFound) {
		return fmt.Errorf("%w: id %d", postcache_errors.ErrPostNotFound, id)
	}
	return err
}
