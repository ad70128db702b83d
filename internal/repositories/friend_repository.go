package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"social-service/internal/apperr"
	"social-service/internal/collection"
	"social-service/internal/db"
	"social-service/internal/models"
)

// Party selects which side of a friend request an actor must be.
type Party int

const (
	Receiver Party = iota
	Sender
)

func (p Party) column() string {
	if p == Sender {
		return "sender_id"
	}
	return "receiver_id"
}

func (p Party) String() string {
	if p == Sender {
		return "sender"
	}
	return "receiver"
}

// FriendRepository owns friend requests and the symmetric friendships edge set.
type FriendRepository interface {
	collection.Repository[models.FriendRequest]
	CreateRequest(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, error)
	DeleteRequest(ctx context.Context, requestID, actorID string, party Party) (*models.FriendRequest, error)
	HasPendingRequest(ctx context.Context, userID, otherID string) (bool, error)
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
	DeleteFriendship(ctx context.Context, userID, friendID string) error
}

type friendRepository struct {
	*table[models.FriendRequest]
	now func() time.Time
}

func NewFriendRepository(conn *sqlx.DB) FriendRepository {
	return &friendRepository{
		table: newTable[models.FriendRequest](conn, "friend_requests", "id", "sender_id", "receiver_id", "created_at"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest records a pending request unless the pair is already friends
// or a request exists in either direction. The pair_key unique index settles
// concurrent senders.
func (r *friendRepository) CreateRequest(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	req := &models.FriendRequest{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		CreatedAt:  r.now(),
	}

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		pending, err := hasPendingRequest(ctx, tx, senderID, receiverID)
		if err != nil {
			return err
		}
		if pending {
			return apperr.Conflict("pending friend request already exists")
		}

		friends, err := areFriends(ctx, tx, senderID, receiverID)
		if err != nil {
			return err
		}
		if friends {
			return apperr.Conflict("users are already friends")
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO friend_requests (id, sender_id, receiver_id, pair_key, created_at)
VALUES (?, ?, ?, ?, ?)
`), req.ID, req.SenderID, req.ReceiverID, models.PairKey(senderID, receiverID), req.CreatedAt)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return apperr.Conflict("pending friend request already exists")
			}
			return fmt.Errorf("insert friend request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptRequest deletes the request addressed to receiverID and writes both
// friendship edges in one transaction.
func (r *friendRepository) AcceptRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, error) {
	var snapshot *models.FriendRequest
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		req, err := takeRequest(ctx, tx, requestID, receiverID, Receiver)
		if err != nil {
			return err
		}

		acceptedAt := r.now()
		if err := insertFriendship(ctx, tx, req.SenderID, req.ReceiverID, acceptedAt); err != nil {
			return err
		}
		if err := insertFriendship(ctx, tx, req.ReceiverID, req.SenderID, acceptedAt); err != nil {
			return err
		}
		snapshot = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// DeleteRequest removes a request on behalf of the given party without
// creating a friendship.
func (r *friendRepository) DeleteRequest(ctx context.Context, requestID, actorID string, party Party) (*models.FriendRequest, error) {
	var snapshot *models.FriendRequest
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		req, err := takeRequest(ctx, tx, requestID, actorID, party)
		if err != nil {
			return err
		}
		snapshot = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *friendRepository) HasPendingRequest(ctx context.Context, userID, otherID string) (bool, error) {
	return hasPendingRequest(ctx, r.db, userID, otherID)
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	return areFriends(ctx, r.db, userID, otherID)
}

func (r *friendRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	friends := []string{}
	err := r.db.SelectContext(ctx, &friends, r.db.Rebind(`
SELECT friend_id
FROM friendships
WHERE user_id=?
ORDER BY friend_id
`), userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return friends, nil
}

// DeleteFriendship removes both directions of the edge or neither.
func (r *friendRepository) DeleteFriendship(ctx context.Context, userID, friendID string) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`
DELETE FROM friendships
WHERE (user_id=? AND friend_id=?) OR (user_id=? AND friend_id=?)
`), userID, friendID, friendID, userID)
		if err != nil {
			return fmt.Errorf("delete friendship: %w", err)
		}
		count, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("friendship", fmt.Sprintf("user_id = %s AND friend_id = %s", userID, friendID))
		}
		return nil
	})
}

// takeRequest deletes the request if actorID is the required party and
// returns the row as it was. The delete is guarded by id and party so a
// concurrent taker sees zero affected rows and gets NotFound.
func takeRequest(ctx context.Context, tx *sqlx.Tx, requestID, actorID string, party Party) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := tx.GetContext(ctx, &req, tx.Rebind(`
SELECT id, sender_id, receiver_id, created_at FROM friend_requests WHERE id=?
`), requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, requestNotFound(requestID)
		}
		return nil, fmt.Errorf("load friend request: %w", err)
	}

	owner := req.ReceiverID
	if party == Sender {
		owner = req.SenderID
	}
	if owner != actorID {
		return nil, apperr.Forbidden("only the " + party.String() + " may do this")
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(`
DELETE FROM friend_requests WHERE id=? AND `+party.column()+`=?
`), requestID, actorID)
	if err != nil {
		return nil, fmt.Errorf("delete friend request: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, requestNotFound(requestID)
	}
	return &req, nil
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

func requestNotFound(requestID string) error {
	return apperr.NotFound("friend request", "id = "+requestID)
}

func hasPendingRequest(ctx context.Context, q queryer, userID, otherID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, q.Rebind(`
SELECT EXISTS(
SELECT 1 FROM friend_requests
WHERE (sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)
)
`), userID, otherID, otherID, userID)
	if err != nil {
		return false, fmt.Errorf("check pending request: %w", err)
	}
	return exists, nil
}

func areFriends(ctx context.Context, q queryer, userID, otherID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, q.Rebind(`
SELECT EXISTS(
SELECT 1 FROM friendships WHERE user_id=? AND friend_id=?
)
`), userID, otherID)
	if err != nil {
		return false, fmt.Errorf("check friendship: %w", err)
	}
	return exists, nil
}

func insertFriendship(ctx context.Context, tx *sqlx.Tx, userID, friendID string, at time.Time) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
INSERT INTO friendships (user_id, friend_id, created_at) VALUES (?, ?, ?)
ON CONFLICT (user_id, friend_id) DO NOTHING
`), userID, friendID, at)
	if err != nil {
		return fmt.Errorf("insert friendship: %w", err)
	}
	return nil
}
