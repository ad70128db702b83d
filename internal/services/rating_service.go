package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"social-service/internal/apperr"
	"social-service/internal/collection"
	"social-service/internal/metrics"
	"social-service/internal/models"
	"social-service/internal/pagination"
	"social-service/internal/repositories"
)

type RatingService struct {
	wineRepo   repositories.WineRepository
	ratingRepo repositories.RatingRepository
	wines      *collection.Service[models.Wine]
	ratings    *collection.Service[models.Rating]
	now        func() time.Time
}

func NewRatingService(wines repositories.WineRepository, ratings repositories.RatingRepository, users *UserService) *RatingService {
	s := &RatingService{
		wineRepo:   wines,
		ratingRepo: ratings,
		wines:      collection.NewService[models.Wine]("wine", wines),
		now:        func() time.Time { return time.Now().UTC() },
	}
	s.ratings = collection.NewService[models.Rating]("rating", ratings).WithEnrichment(s.enricher(users))
	return s
}

// enricher fills the author's username and the wine name on each rating.
func (s *RatingService) enricher(users *UserService) collection.Enricher[models.Rating] {
	return func(ctx context.Context, r *models.Rating) error {
		author, err := users.GetByID(ctx, r.UserID)
		if err != nil {
			return err
		}
		wine, err := s.GetWine(ctx, r.WineID)
		if err != nil {
			return err
		}
		r.Author = author.Username
		r.WineName = wine.Name
		return nil
	}
}

// Ratings exposes the enriched rating collection to other services.
func (s *RatingService) Ratings() *collection.Service[models.Rating] {
	return s.ratings
}

func (s *RatingService) CreateWine(ctx context.Context, name string) (*models.Wine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("wine name is required")
	}
	now := s.now()
	wine := &models.Wine{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.wineRepo.Create(ctx, wine); err != nil {
		return nil, err
	}
	return wine, nil
}

func (s *RatingService) GetWine(ctx context.Context, id string) (*models.Wine, error) {
	return s.wines.FindOne(ctx, collection.Where(collection.Eq("id", id)))
}

// Rate records userID's rating of a wine.
func (s *RatingService) Rate(ctx context.Context, userID, wineID string, stars int, text string) (rating *models.Rating, err error) {
	defer func() { metrics.IncRatingCreated(metrics.Status(err)) }()

	if stars < models.MinStars || stars > models.MaxStars {
		return nil, apperr.Validation(fmt.Sprintf("stars must be between %d and %d", models.MinStars, models.MaxStars))
	}
	wine, err := s.GetWine(ctx, wineID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rating = &models.Rating{
		ID:        uuid.NewString(),
		Stars:     stars,
		Text:      strings.TrimSpace(text),
		UserID:    userID,
		WineID:    wine.ID,
		CreatedAt: now,
		UpdatedAt: now,
		WineName:  wine.Name,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) ListForWine(ctx context.Context, wineID string, req pagination.Request) (pagination.Page[models.Rating], error) {
	if _, err := s.GetWine(ctx, wineID); err != nil {
		return pagination.Page[models.Rating]{}, err
	}
	return s.ratings.FindPaginated(ctx, req, collection.Where(collection.Eq("wine_id", wineID)))
}
