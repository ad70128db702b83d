package models

import "time"

// FriendRequest is a pending proposal from Sender to Receiver. Accepting,
// declining or revoking deletes the row.
type FriendRequest struct {
	ID         string    `db:"id" json:"id"`
	SenderID   string    `db:"sender_id" json:"sender_id"`
	ReceiverID string    `db:"receiver_id" json:"receiver_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Friendship is one direction of a symmetric edge.
type Friendship struct {
	UserID    string    `db:"user_id" json:"user_id"`
	FriendID  string    `db:"friend_id" json:"friend_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PairKey orders two user ids so both directions of a pair share one key.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}
