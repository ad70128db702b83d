package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"social-service/internal/collection"
	"social-service/internal/models"
)

type WineRepository interface {
	collection.Repository[models.Wine]
	Create(ctx context.Context, wine *models.Wine) error
}

type RatingRepository interface {
	collection.Repository[models.Rating]
	Create(ctx context.Context, rating *models.Rating) error
}

type wineRepository struct {
	*table[models.Wine]
}

func NewWineRepository(conn *sqlx.DB) WineRepository {
	return &wineRepository{
		table: newTable[models.Wine](conn, "wines", "id", "name", "created_at", "updated_at"),
	}
}

func (r *wineRepository) Create(ctx context.Context, wine *models.Wine) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO wines (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)
`), wine.ID, wine.Name, wine.CreatedAt, wine.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert wine: %w", err)
	}
	return nil
}

type ratingRepository struct {
	*table[models.Rating]
}

func NewRatingRepository(conn *sqlx.DB) RatingRepository {
	return &ratingRepository{
		table: newTable[models.Rating](conn, "ratings", "id", "stars", "text", "user_id", "wine_id", "created_at", "updated_at"),
	}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO ratings (id, stars, text, user_id, wine_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`), rating.ID, rating.Stars, rating.Text, rating.UserID, rating.WineID, rating.CreatedAt, rating.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert rating: %w", err)
	}
	return nil
}
