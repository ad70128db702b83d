package repositories

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx"

	"social-service/internal/collection"
	"social-service/internal/pagination"
)

// table implements collection.Repository over one SQL table. Only the
// listed columns may appear in filters and orderings.
type table[T any] struct {
	db      *sqlx.DB
	name    string
	columns []string
	allowed map[string]bool
}

func newTable[T any](db *sqlx.DB, name string, columns ...string) *table[T] {
	allowed := make(map[string]bool, len(columns))
	for _, c := range columns {
		allowed[c] = true
	}
	return &table[T]{db: db, name: name, columns: columns, allowed: allowed}
}

func (t *table[T]) Find(ctx context.Context, filter collection.Filter, window pagination.Query) ([]T, error) {
	where, args, err := t.where(filter)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s%s", strings.Join(t.columns, ", "), t.name, where)

	if window.OrderBy != "" {
		if !t.allowed[window.OrderBy] {
			return nil, fmt.Errorf("%s: cannot order by %q", t.name, window.OrderBy)
		}
		dir := "ASC"
		if window.Order == pagination.OrderDesc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", window.OrderBy, dir)
		if window.OrderBy != "id" && t.allowed["id"] {
			fmt.Fprintf(&sb, ", id %s", dir)
		}
	}
	if window.Limit > 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, window.Limit, window.Offset)
	}

	query, args, err := sqlx.In(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: expand query: %w", t.name, err)
	}

	items := []T{}
	if err := t.db.SelectContext(ctx, &items, t.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%s: select: %w", t.name, err)
	}
	return items, nil
}

func (t *table[T]) Count(ctx context.Context, filter collection.Filter) (int64, error) {
	where, args, err := t.where(filter)
	if err != nil {
		return 0, err
	}
	query, args, err := sqlx.In("SELECT COUNT(*) FROM "+t.name+where, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: expand query: %w", t.name, err)
	}

	var count int64
	if err := t.db.GetContext(ctx, &count, t.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("%s: count: %w", t.name, err)
	}
	return count, nil
}

func (t *table[T]) where(filter collection.Filter) (string, []any, error) {
	if len(filter.Conditions) == 0 {
		return "", nil, nil
	}
	clauses := make([]string, 0, len(filter.Conditions))
	args := make([]any, 0, len(filter.Conditions))
	for _, c := range filter.Conditions {
		if !t.allowed[c.Field] {
			return "", nil, fmt.Errorf("%s: cannot filter by %q", t.name, c.Field)
		}
		switch c.Op {
		case collection.OpEq:
			clauses = append(clauses, c.Field+" = ?")
			args = append(args, c.Value)
		case collection.OpIn:
			v := reflect.ValueOf(c.Value)
			if v.Kind() != reflect.Slice {
				return "", nil, fmt.Errorf("%s: IN on %q needs a slice", t.name, c.Field)
			}
			if v.Len() == 0 {
				clauses = append(clauses, "1 = 0")
				continue
			}
			clauses = append(clauses, c.Field+" IN (?)")
			args = append(args, c.Value)
		default:
			return "", nil, fmt.Errorf("%s: unsupported operator %q", t.name, c.Op)
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}
