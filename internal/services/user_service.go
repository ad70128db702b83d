package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"social-service/internal/apperr"
	"social-service/internal/auth"
	"social-service/internal/collection"
	"social-service/internal/models"
	"social-service/internal/pagination"
	"social-service/internal/repositories"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 8
)

// Lowercase letters and digits, with single dots or underscores between them.
var usernamePattern = regexp.MustCompile(`^[a-z0-9](?:[._]?[a-z0-9])*$`)

// ValidateUsername reports a Validation error for names the directory would reject.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return apperr.Validation(fmt.Sprintf("username must be %d to %d characters", MinUsernameLength, MaxUsernameLength))
	}
	if !usernamePattern.MatchString(username) {
		return apperr.Validation("username may contain lowercase letters, digits, and single dots or underscores between them")
	}
	return nil
}

type UserService struct {
	repo      repositories.UserRepository
	friends   repositories.FriendRepository
	users     *collection.Service[models.User]
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewUserService(repo repositories.UserRepository, friends repositories.FriendRepository, jwtSecret string) *UserService {
	return &UserService{
		repo:      repo,
		friends:   friends,
		users:     collection.NewService[models.User]("user", repo),
		jwtSecret: jwtSecret,
		tokenTTL:  auth.DefaultTokenTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SignUp registers a user and returns it with a bearer token.
func (s *UserService) SignUp(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if len(password) < MinPasswordLength {
		return nil, "", apperr.Validation(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.IssueToken(s.jwtSecret, user.ID, user.Username, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindOne(ctx, collection.Where(collection.Eq("id", id)))
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.FindOne(ctx, collection.Where(collection.Eq("username", username)))
}

func (s *UserService) Find(ctx context.Context, filter collection.Filter) (*models.User, error) {
	return s.users.FindOne(ctx, filter)
}

// ListFriends resolves the user's friend edge set into users sorted by username.
func (s *UserService) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	ids, err := s.friends.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	filter := collection.Where(collection.In("id", ids)).OrderedBy("username", pagination.OrderAsc)
	return s.users.FindMany(ctx, filter)
}

// WithFriends fills user.Friends with the ids of the user's friends.
func (s *UserService) WithFriends(ctx context.Context, user *models.User) error {
	ids, err := s.friends.ListFriendIDs(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Friends = ids
	return nil
}
