// Package collection wraps a repository with existence-checked lookups,
// listing, counting and pagination. It is shared by every domain service.
package collection

import (
	"context"

	"social-service/internal/apperr"
	"social-service/internal/pagination"
)

// DefaultOrderKey is the sort column for paginated listings unless the filter names one.
const DefaultOrderKey = "created_at"

// Repository is the storage contract a Service is built over.
// A zero Limit in the window means no limit; an empty OrderBy means unordered.
type Repository[T any] interface {
	Find(ctx context.Context, filter Filter, window pagination.Query) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Enricher fills computed or cross-aggregate fields on a fetched item.
type Enricher[T any] func(ctx context.Context, item *T) error

type Service[T any] struct {
	entity string
	repo   Repository[T]
	enrich Enricher[T]
}

// NewService builds a Service. entity names the item kind in NotFound errors.
func NewService[T any](entity string, repo Repository[T]) *Service[T] {
	return &Service[T]{entity: entity, repo: repo}
}

// WithEnrichment returns a copy of s that runs fn on every fetched item.
// If fn fails the whole call fails with fn's error and no items.
func (s *Service[T]) WithEnrichment(fn Enricher[T]) *Service[T] {
	clone := *s
	clone.enrich = fn
	return &clone
}

func (s *Service[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	items, err := s.repo.Find(ctx, filter, pagination.Query{OrderBy: filter.OrderBy, Order: filter.Order, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.NotFound(s.entity, filter.String())
	}
	if err := s.apply(ctx, items[:1]); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *Service[T]) FindMany(ctx context.Context, filter Filter) ([]T, error) {
	items, err := s.repo.Find(ctx, filter, pagination.Query{OrderBy: filter.OrderBy, Order: filter.Order})
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

// FindPaginated returns one page ordered by creation time, or by
// filter.OrderBy when set. The request decides the direction.
func (s *Service[T]) FindPaginated(ctx context.Context, req pagination.Request, filter Filter) (pagination.Page[T], error) {
	orderBy := DefaultOrderKey
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	fetch := func(ctx context.Context, q pagination.Query) ([]T, error) {
		items, err := s.repo.Find(ctx, filter, q)
		if err != nil {
			return nil, err
		}
		if err := s.apply(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	}
	count := func(ctx context.Context) (int64, error) {
		return s.repo.Count(ctx, filter)
	}
	return pagination.BuildPage(ctx, fetch, count, req, orderBy)
}

func (s *Service[T]) apply(ctx context.Context, items []T) error {
	if s.enrich == nil {
		return nil
	}
	for i := range items {
		if err := s.enrich(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}
