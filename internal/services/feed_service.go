package services

import (
	"context"

	"social-service/internal/collection"
	"social-service/internal/metrics"
	"social-service/internal/models"
	"social-service/internal/pagination"
	"social-service/internal/repositories"
)

// FeedService aggregates friends' ratings at read time.
type FeedService struct {
	friends repositories.FriendRepository
	ratings *collection.Service[models.Rating]
}

func NewFeedService(friends repositories.FriendRepository, ratings *collection.Service[models.Rating]) *FeedService {
	return &FeedService{friends: friends, ratings: ratings}
}

// GetFeedForUser pages through ratings authored by userID's friends, always
// sorted by creation time in the requested direction.
func (s *FeedService) GetFeedForUser(ctx context.Context, userID string, req pagination.Request) (page pagination.Page[models.Rating], err error) {
	defer func() { metrics.IncFeedRequest(metrics.Status(err)) }()

	friendIDs, err := s.friends.ListFriendIDs(ctx, userID)
	if err != nil {
		return pagination.Page[models.Rating]{}, err
	}
	if len(friendIDs) == 0 {
		return pagination.Empty[models.Rating](req), nil
	}

	filter := collection.Where(collection.In("user_id", friendIDs))
	return s.ratings.FindPaginated(ctx, req, filter)
}
