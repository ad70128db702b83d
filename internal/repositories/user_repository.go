package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"social-service/internal/apperr"
	"social-service/internal/collection"
	"social-service/internal/db"
	"social-service/internal/models"
)

type UserRepository interface {
	collection.Repository[models.User]
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	*table[models.User]
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &userRepository{
		table: newTable[models.User](conn, "users", "id", "username", "password_hash", "created_at", "updated_at"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO users (id, username, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`), user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Conflict("username already taken")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
