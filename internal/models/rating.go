package models

import "time"

const (
	MinStars = 1
	MaxStars = 5
)

type Wine struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Rating is a user's score for a wine. Author and WineName are filled by
// enrichment after fetch.
type Rating struct {
	ID        string    `db:"id" json:"id"`
	Stars     int       `db:"stars" json:"stars"`
	Text      string    `db:"text" json:"text"`
	UserID    string    `db:"user_id" json:"user_id"`
	WineID    string    `db:"wine_id" json:"wine_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Author    string    `db:"-" json:"author,omitempty"`
	WineName  string    `db:"-" json:"wine_name,omitempty"`
}
