package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/db/dbtest"
	"social-service/internal/events"
	"social-service/internal/mocks"
	"social-service/internal/models"
	"social-service/internal/repositories"
)

// stack wires every service over a throwaway SQLite database.
type stack struct {
	users     *UserService
	friends   *FriendService
	ratings   *RatingService
	feed      *FeedService
	publisher *mocks.MockPublisher
}

func newStack(t *testing.T) *stack {
	t.Helper()
	conn := dbtest.Open(t)

	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	friendRepo := repositories.NewFriendRepository(conn)
	users := NewUserService(repositories.NewUserRepository(conn), friendRepo, "test-secret")
	ratings := NewRatingService(repositories.NewWineRepository(conn), repositories.NewRatingRepository(conn), users)
	return &stack{
		users:     users,
		friends:   NewFriendService(friendRepo, users, events.NewEmitter(pub, "social-service", "test")),
		ratings:   ratings,
		feed:      NewFeedService(friendRepo, ratings.Ratings()),
		publisher: pub,
	}
}

func (s *stack) signUp(t *testing.T, username string) *models.User {
	t.Helper()
	user, _, err := s.users.SignUp(context.Background(), username, "correct-horse")
	require.NoError(t, err)
	return user
}

func (s *stack) befriend(t *testing.T, a, b *models.User) {
	t.Helper()
	ctx := context.Background()
	req, err := s.friends.Send(ctx, a.ID, b.Username)
	require.NoError(t, err)
	_, err = s.friends.Accept(ctx, req.ID, b.ID)
	require.NoError(t, err)
}

// tickingClock returns a clock that advances one second per call.
func tickingClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}
