package services

import (
	"context"

	"social-service/internal/apperr"
	"social-service/internal/collection"
	"social-service/internal/events"
	"social-service/internal/metrics"
	"social-service/internal/models"
	"social-service/internal/pagination"
	"social-service/internal/repositories"
)

// FriendService runs the friend request lifecycle. Acting users are already
// authenticated; targets are resolved through the user directory.
type FriendService struct {
	friends  repositories.FriendRepository
	requests *collection.Service[models.FriendRequest]
	users    *UserService
	events   *events.Emitter
}

func NewFriendService(friends repositories.FriendRepository, users *UserService, emitter *events.Emitter) *FriendService {
	return &FriendService{
		friends:  friends,
		requests: collection.NewService[models.FriendRequest]("friend request", friends),
		users:    users,
		events:   emitter,
	}
}

// Send proposes a friendship from senderID to the user named receiverUsername.
func (s *FriendService) Send(ctx context.Context, senderID, receiverUsername string) (req *models.FriendRequest, err error) {
	defer func() { metrics.IncFriendRequest(metrics.Status(err)) }()

	receiver, err := s.users.GetByUsername(ctx, receiverUsername)
	if err != nil {
		return nil, err
	}
	if receiver.ID == senderID {
		return nil, apperr.InvalidOperation("cannot send a friend request to yourself")
	}

	req, err = s.friends.CreateRequest(ctx, senderID, receiver.ID)
	if err != nil {
		return nil, err
	}
	s.events.FriendRequest(ctx, events.FriendRequestCreated, req, senderID)
	return req, nil
}

// Accept turns the request into a friendship. Only the receiver may accept.
func (s *FriendService) Accept(ctx context.Context, requestID, actingUserID string) (req *models.FriendRequest, err error) {
	defer func() { metrics.IncFriendAccept(metrics.Status(err)) }()

	req, err = s.friends.AcceptRequest(ctx, requestID, actingUserID)
	if err != nil {
		return nil, err
	}
	s.events.FriendRequest(ctx, events.FriendRequestAccepted, req, actingUserID)
	return req, nil
}

// Decline drops the request without a friendship. Only the receiver may decline.
func (s *FriendService) Decline(ctx context.Context, requestID, actingUserID string) (req *models.FriendRequest, err error) {
	defer func() { metrics.IncFriendDecline(metrics.Status(err)) }()

	req, err = s.friends.DeleteRequest(ctx, requestID, actingUserID, repositories.Receiver)
	if err != nil {
		return nil, err
	}
	s.events.FriendRequest(ctx, events.FriendRequestDeclined, req, actingUserID)
	return req, nil
}

// Revoke withdraws a request. Only the sender may revoke.
func (s *FriendService) Revoke(ctx context.Context, requestID, actingUserID string) (req *models.FriendRequest, err error) {
	defer func() { metrics.IncFriendRevoke(metrics.Status(err)) }()

	req, err = s.friends.DeleteRequest(ctx, requestID, actingUserID, repositories.Sender)
	if err != nil {
		return nil, err
	}
	s.events.FriendRequest(ctx, events.FriendRequestRevoked, req, actingUserID)
	return req, nil
}

// ListReceived returns the pending requests addressed to userID, newest first.
func (s *FriendService) ListReceived(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	return s.listPending(ctx, "receiver_id", userID)
}

// ListSent returns the pending requests userID has sent, newest first.
func (s *FriendService) ListSent(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	return s.listPending(ctx, "sender_id", userID)
}

func (s *FriendService) listPending(ctx context.Context, column, userID string) ([]models.FriendRequest, error) {
	filter := collection.Where(collection.Eq(column, userID)).OrderedBy(collection.DefaultOrderKey, pagination.OrderDesc)
	return s.requests.FindMany(ctx, filter)
}

// RemoveFriend deletes both directions of the friendship with friendUsername.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendUsername string) (err error) {
	defer func() { metrics.IncFriendRemoval(metrics.Status(err)) }()

	friend, err := s.users.GetByUsername(ctx, friendUsername)
	if err != nil {
		return err
	}
	if err := s.friends.DeleteFriendship(ctx, userID, friend.ID); err != nil {
		return err
	}
	s.events.FriendshipRemoved(ctx, userID, friend.ID)
	return nil
}

func (s *FriendService) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	return s.friends.AreFriends(ctx, userID, otherID)
}

func (s *FriendService) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	return s.friends.ListFriendIDs(ctx, userID)
}
