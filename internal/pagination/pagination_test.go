package pagination

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-service/internal/apperr"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		itemCount int64
		page      int
		pageSize  int
		want      Meta
	}{
		{
			name: "empty first page", itemCount: 0, page: 1, pageSize: 10,
			want: Meta{Page: 1, PageSize: 10, ItemCount: 0, PageCount: 0},
		},
		{
			name: "empty later page keeps previous flag", itemCount: 0, page: 3, pageSize: 10,
			want: Meta{Page: 3, PageSize: 10, PageCount: 0, HasPreviousPage: true},
		},
		{
			name: "exact multiple", itemCount: 20, page: 1, pageSize: 10,
			want: Meta{Page: 1, PageSize: 10, ItemCount: 20, PageCount: 2, HasNextPage: true},
		},
		{
			name: "remainder rounds up", itemCount: 21, page: 2, pageSize: 10,
			want: Meta{Page: 2, PageSize: 10, ItemCount: 21, PageCount: 3, HasPreviousPage: true, HasNextPage: true},
		},
		{
			name: "last page", itemCount: 21, page: 3, pageSize: 10,
			want: Meta{Page: 3, PageSize: 10, ItemCount: 21, PageCount: 3, HasPreviousPage: true},
		},
		{
			name: "beyond last page", itemCount: 5, page: 9, pageSize: 50,
			want: Meta{Page: 9, PageSize: 50, ItemCount: 5, PageCount: 1, HasPreviousPage: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Paginate(tc.itemCount, Request{Order: OrderAsc, Page: tc.page, PageSize: tc.pageSize})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPaginateInvariants(t *testing.T) {
	for itemCount := int64(0); itemCount <= 120; itemCount++ {
		for pageSize := 1; pageSize <= MaxPageSize; pageSize += 7 {
			for page := 1; page <= 5; page++ {
				meta := Paginate(itemCount, Request{Order: OrderDesc, Page: page, PageSize: pageSize})
				wantPages := itemCount / int64(pageSize)
				if itemCount%int64(pageSize) != 0 {
					wantPages++
				}
				require.Equal(t, wantPages, meta.PageCount)
				require.Equal(t, int64(page) < meta.PageCount, meta.HasNextPage)
				require.Equal(t, page > 1, meta.HasPreviousPage)
			}
		}
	}
}

func TestSkipMayExceedTotal(t *testing.T) {
	req := Request{Order: OrderAsc, Page: 4, PageSize: 25}
	assert.Equal(t, 75, req.Skip())
	assert.Equal(t, Query{OrderBy: "created_at", Order: OrderAsc, Offset: 75, Limit: 25}, req.Query("created_at"))
}

func TestNewRequest(t *testing.T) {
	req, err := NewRequest("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Default(), req)

	_, err = NewRequest(OrderAsc, 1, 51)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = NewRequest(OrderAsc, -1, 10)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = NewRequest("SIDEWAYS", 1, 10)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, OrderAsc, o)

	o, err = ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderDesc, o)

	_, err = ParseOrder("up")
	assert.Error(t, err)
}

func TestBuildPageCountsThenFetches(t *testing.T) {
	var calls []string
	count := func(ctx context.Context) (int64, error) {
		calls = append(calls, "count")
		return 12, nil
	}
	fetch := func(ctx context.Context, q Query) ([]int, error) {
		calls = append(calls, "fetch")
		assert.Equal(t, Query{OrderBy: "created_at", Order: OrderDesc, Offset: 5, Limit: 5}, q)
		return []int{6, 7, 8, 9, 10}, nil
	}

	page, err := BuildPage(context.Background(), fetch, count, Request{Order: OrderDesc, Page: 2, PageSize: 5}, "created_at")
	require.NoError(t, err)
	assert.Equal(t, []string{"count", "fetch"}, calls)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, page.Data)
	assert.Equal(t, int64(3), page.Meta.PageCount)
	assert.True(t, page.Meta.HasNextPage)
}

func TestBuildPagePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(ctx context.Context, q Query) ([]int, error) { return nil, nil }
	count := func(ctx context.Context) (int64, error) { return 0, boom }

	_, err := BuildPage(context.Background(), fetch, count, Default(), "created_at")
	assert.ErrorIs(t, err, boom)

	page, err := BuildPage(context.Background(), fetch, func(ctx context.Context) (int64, error) { return 0, nil }, Default(), "created_at")
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}
