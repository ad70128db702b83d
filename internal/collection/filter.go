package collection

import (
	"fmt"
	"strings"

	"social-service/internal/pagination"
)

type Operator string

const (
	OpEq Operator = "="
	OpIn Operator = "IN"
)

// Condition restricts one field. For OpIn, Value is a slice.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// In matches rows whose field is one of values. An empty set matches nothing.
func In[V any](field string, values []V) Condition {
	if values == nil {
		values = []V{}
	}
	return Condition{Field: field, Op: OpIn, Value: values}
}

// Filter is a conjunction of conditions with an optional ordering.
type Filter struct {
	Conditions []Condition
	OrderBy    string
	Order      pagination.Order
}

func Where(conds ...Condition) Filter {
	return Filter{Conditions: conds}
}

// OrderedBy returns a copy of f sorted by field in the given direction.
func (f Filter) OrderedBy(field string, order pagination.Order) Filter {
	f.OrderBy = field
	f.Order = order
	return f
}

func (f Filter) String() string {
	if len(f.Conditions) == 0 {
		return "<all>"
	}
	parts := make([]string, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		parts = append(parts, fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value))
	}
	return strings.Join(parts, " AND ")
}
