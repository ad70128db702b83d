package models

import "time"

// User is a member of the social graph. Friends is populated on demand from
// the friendships edge set and is never persisted through this struct.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	Friends      []string  `db:"-" json:"friends,omitempty"`
}
