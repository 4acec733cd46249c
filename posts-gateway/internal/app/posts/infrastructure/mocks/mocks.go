package mocks

import (
	"context"

	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/entity"

	"github.com/stretchr/testify/mock"
)

// MockSpotAPIClient mocks infrastructure.SpotAPIClient.
type MockSpotAPIClient struct {
	mock.Mock
}

func (m *MockSpotAPIClient) CreateList(ctx context.Context, req *entity.ListCreateRequest) (*entity.ListCreateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ListCreateResponse), args.Error(1)
}

func (m *MockSpotAPIClient) AddSpotToList(ctx context.Context, listID int64, req *entity.AddSpotRequest) error {
	args := m.Called(ctx, listID, req)
	return args.Error(0)
}

func (m *MockSpotAPIClient) CreateCommunityPost(ctx context.Context, listID int64, req *entity.CommunityPostRequest) (*entity.CommunityPostResponse, error) {
	args := m.Called(ctx, listID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CommunityPostResponse), args.Error(1)
}

func (m *MockSpotAPIClient) CreateReviewPost(ctx context.Context, req *entity.ReviewPostRequest) (*entity.ReviewPostResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewPostResponse), args.Error(1)
}

func (m *MockSpotAPIClient) CreateListPost(ctx context.Context, req *entity.ListPostRequest) (*entity.ListPostResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ListPostResponse), args.Error(1)
}

// MockMessagePublisher mocks infrastructure.MessagePublisher.
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
