package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"social-service/internal/collection"
	"social-service/internal/models"
	"social-service/internal/pagination"
	"social-service/internal/rabbitmq"
	"social-service/internal/repositories"
)

// repoMock carries the collection.Repository half shared by every table mock.
type repoMock[T any] struct {
	mock.Mock
}

func (m *repoMock[T]) Find(ctx context.Context, filter collection.Filter, window pagination.Query) ([]T, error) {
	args := m.Called(ctx, filter, window)
	var items []T
	if val := args.Get(0); val != nil {
		items = val.([]T)
	}
	return items, args.Error(1)
}

func (m *repoMock[T]) Count(ctx context.Context, filter collection.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockFriendRepository mocks FriendRepository behavior for handlers and services.
type MockFriendRepository struct {
	repoMock[models.FriendRequest]
}

func (m *MockFriendRepository) CreateRequest(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	args := m.Called(ctx, senderID, receiverID)
	return friendRequest(args)
}

func (m *MockFriendRepository) AcceptRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, error) {
	args := m.Called(ctx, requestID, receiverID)
	return friendRequest(args)
}

func (m *MockFriendRepository) DeleteRequest(ctx context.Context, requestID, actorID string, party repositories.Party) (*models.FriendRequest, error) {
	args := m.Called(ctx, requestID, actorID, party)
	return friendRequest(args)
}

func (m *MockFriendRepository) HasPendingRequest(ctx context.Context, userID, otherID string) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}

func (m *MockFriendRepository) DeleteFriendship(ctx context.Context, userID, friendID string) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

func friendRequest(args mock.Arguments) (*models.FriendRequest, error) {
	var req *models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(*models.FriendRequest)
	}
	return req, args.Error(1)
}

type MockUserRepository struct {
	repoMock[models.User]
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockWineRepository struct {
	repoMock[models.Wine]
}

func (m *MockWineRepository) Create(ctx context.Context, wine *models.Wine) error {
	args := m.Called(ctx, wine)
	return args.Error(0)
}

type MockRatingRepository struct {
	repoMock[models.Rating]
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

// MockPublisher mocks RabbitMQ publisher behavior for domain events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, msg rabbitmq.Message) error {
	args := m.Called(ctx, routingKey, msg)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Compile-time assertions
var (
	_ repositories.FriendRepository = (*MockFriendRepository)(nil)
	_ repositories.UserRepository   = (*MockUserRepository)(nil)
	_ repositories.WineRepository   = (*MockWineRepository)(nil)
	_ repositories.RatingRepository = (*MockRatingRepository)(nil)
	_ rabbitmq.Publisher            = (*MockPublisher)(nil)
)
