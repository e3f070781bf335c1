package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/postcache/model"
)

// MockPostClient is a mock implementation of client.IPostClient
type MockPostClient struct {
	mock.Mock
}

func (m *MockPostClient) GetPost(ctx context.Context, id int64) (model.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostClient) ListPosts(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if posts := args.Get(0); posts != nil {
		return posts.([]model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostClient) UpdatePost(ctx context.Context, id int64, update model.PostUpdate) (model.Post, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostClient) DeletePost(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserClient is a mock implementation of client.IUserClient
type MockUserClient struct {
	mock.Mock
}

func (m *MockUserClient) GetUser(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserClient) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if users := args.Get(0); users != nil {
		return users.([]model.User), args.Error(1)
	}
	return nil, args.Error(1)
}
