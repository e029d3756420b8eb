package todopager

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Getters maps a column to the value it holds on an item. Only the columns
// named by the orderings need a getter.
// Example:
//
//	todopager.Getters[todos.Task]{
//		"created_at": func(t todos.Task) any { return t.CreatedAt },
//		"title":      func(t todos.Task) any { return t.Title },
//	}
type Getters[T any] map[string]func(T) any

// SortItems sorts items in place by orderings, the way ORDER BY would. The
// sort is stable, so items equal on every column keep their order.
func SortItems[T any](items []T, orderings Orderings, getters Getters[T]) error {
	err := orderings.validate()
	if err != nil {
		return fmt.Errorf("cannot sort: %w", err)
	}

	for _, orderBy := range orderings {
		if _, ok := getters[orderBy.Column]; !ok {
			return fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
		}
	}

	slices.SortStableFunc(items, func(a, b T) int {
		for _, orderBy := range orderings {
			get := getters[orderBy.Column]
			if c := compareValues(get(a), get(b)); c != 0 {
				return c * orderBy.Direction.Sign()
			}
		}

		return 0
	})

	return nil
}

// compareValues orders the scalar types getters usually return. Values of
// different or unknown types compare by their formatted form.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return cmp.Compare(boolRank(av), boolRank(bv))
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}

	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}
