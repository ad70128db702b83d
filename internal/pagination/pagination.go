// Package pagination computes offset-based page windows and page metadata.
//
// BuildPage counts before it fetches and the two calls are not run in one
// snapshot: under concurrent writes Meta.ItemCount may differ slightly from
// the number of rows reachable across pages.
package pagination

import (
	"context"
	"strings"

	"social-service/internal/apperr"
)

type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
	DefaultOrder    = OrderDesc
)

// ParseOrder accepts asc/desc in any case. Empty input yields DefaultOrder.
func ParseOrder(s string) (Order, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultOrder, nil
	case string(OrderAsc):
		return OrderAsc, nil
	case string(OrderDesc):
		return OrderDesc, nil
	default:
		return "", apperr.Validation("order must be ASC or DESC")
	}
}

// Request is a validated page request.
type Request struct {
	Order    Order `json:"order"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// NewRequest fills zero values with defaults and validates ranges.
func NewRequest(order Order, page, pageSize int) (Request, error) {
	if order == "" {
		order = DefaultOrder
	}
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	req := Request{Order: order, Page: page, PageSize: pageSize}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Default is page 1 of DefaultPageSize in DefaultOrder.
func Default() Request {
	return Request{Order: DefaultOrder, Page: DefaultPage, PageSize: DefaultPageSize}
}

func (r Request) Validate() error {
	if r.Order != OrderAsc && r.Order != OrderDesc {
		return apperr.Validation("order must be ASC or DESC")
	}
	if r.Page < 1 {
		return apperr.Validation("page must be at least 1")
	}
	if r.PageSize < 1 || r.PageSize > MaxPageSize {
		return apperr.Validation("pageSize must be between 1 and 50")
	}
	return nil
}

// Skip is the number of rows before the first row of the page. It may exceed
// the total row count, in which case the page is empty.
func (r Request) Skip() int {
	return (r.Page - 1) * r.PageSize
}

// Meta describes one page of a result set.
type Meta struct {
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	ItemCount       int64 `json:"itemCount"`
	PageCount       int64 `json:"pageCount"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// Page is a bounded slice of a result set with its metadata.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// Paginate derives page metadata from a total item count.
func Paginate(itemCount int64, req Request) Meta {
	size := int64(req.PageSize)
	pageCount := int64(0)
	if size > 0 {
		pageCount = (itemCount + size - 1) / size
	}
	return Meta{
		Page:            req.Page,
		PageSize:        req.PageSize,
		ItemCount:       itemCount,
		PageCount:       pageCount,
		HasPreviousPage: req.Page > 1,
		HasNextPage:     int64(req.Page) < pageCount,
	}
}

// Query is the window a store applies to one fetch.
type Query struct {
	OrderBy string
	Order   Order
	Offset  int
	Limit   int
}

// Query returns the fetch window for r ordered by the given column.
func (r Request) Query(orderBy string) Query {
	return Query{
		OrderBy: orderBy,
		Order:   r.Order,
		Offset:  r.Skip(),
		Limit:   r.PageSize,
	}
}

type FetchFunc[T any] func(ctx context.Context, q Query) ([]T, error)

type CountFunc func(ctx context.Context) (int64, error)

// BuildPage counts, then fetches exactly one page ordered by orderBy.
func BuildPage[T any](ctx context.Context, fetch FetchFunc[T], count CountFunc, req Request, orderBy string) (Page[T], error) {
	total, err := count(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	items, err := fetch(ctx, req.Query(orderBy))
	if err != nil {
		return Page[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Data: items, Meta: Paginate(total, req)}, nil
}

// Empty returns a page with no items and zero counts.
func Empty[T any](req Request) Page[T] {
	return Page[T]{Data: []T{}, Meta: Paginate(0, req)}
}
