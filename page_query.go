package todopager

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// RawPageQuery is intended for API payloads and query strings.
type RawPageQuery struct {
	// Page - 1-based page number. Values below 1 select the first page.
	Page int `json:"page"`
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
}

// Decode converts RawPageQuery into *PageQuery, normalizing Page and Limit.
func (p RawPageQuery) Decode(orderBy ...OrderBy) *PageQuery {
	return NewPageQuery().WithPage(p.Page).WithLimit(p.Limit).WithSubstitutedSort(orderBy...)
}

// PageQuery applies LIMIT/OFFSET pagination addressed by page number to a
// gorm query.
type PageQuery struct {
	lookahead bool
	page      int
	limit     int
	sort      Orderings
}

func NewPageQuery() *PageQuery {
	return &PageQuery{page: 1, limit: DefaultItemsPerPage}
}

// WithLookahead enables lookahead pagination, which fetches one extra record
// to determine whether the current page is the last.
func (q *PageQuery) WithLookahead() *PageQuery {
	if q == nil {
		q = NewPageQuery()
	}

	q.lookahead = true

	return q
}

// WithPage sets the 1-based page number.
func (q *PageQuery) WithPage(page int) *PageQuery {
	if q == nil {
		q = NewPageQuery()
	}

	q.page = max(page, 1)

	return q
}

// WithLimit sets the page size. NormalizeItemsPerPage is applied.
func (q *PageQuery) WithLimit(limit int) *PageQuery {
	if q == nil {
		q = NewPageQuery()
	}

	q.limit = NormalizeItemsPerPage(limit)

	return q
}

// WithSubstitutedSort resets previous orderings and applies the provided ones.
func (q *PageQuery) WithSubstitutedSort(orderBy ...OrderBy) *PageQuery {
	if q == nil {
		q = NewPageQuery()
	}

	q.sort = nil

	return q.WithSort(orderBy...)
}

// WithSort appends sort orderings without overwriting existing ones.
// Order is preserved as if calling:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
func (q *PageQuery) WithSort(orderBy ...OrderBy) *PageQuery {
	if q == nil {
		q = NewPageQuery()
	}

	for _, o := range orderBy {
		idx := slices.IndexFunc(q.sort, func(processed OrderBy) bool {
			return processed.Column == o.Column
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			q.sort = slices.Delete(q.sort, idx, idx+1)
		}

		q.sort = append(q.sort, o)
	}

	return q
}

// Paginate applies ordering, offset and limit to the dataset. Returns an
// error if pagination cannot be applied.
func (q *PageQuery) Paginate(db *gorm.DB) (*gorm.DB, error) {
	if q == nil {
		q = NewPageQuery()
	}

	err := q.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	db = q.sort.Apply(db)
	if offset := q.GetOffset(); offset > 0 {
		db = db.Offset(offset)
	}

	return db.Limit(q.GetDatasetLimit()), nil
}

// GetSort returns orderings that will be applied to the dataset.
func (q *PageQuery) GetSort() Orderings {
	if q == nil {
		return nil
	}

	return q.sort
}

// IsLookahead returns true if lookahead pagination is enabled.
func (q *PageQuery) IsLookahead() bool {
	if q == nil {
		return false
	}

	return q.lookahead
}

// GetPage returns the 1-based page number.
func (q *PageQuery) GetPage() int {
	if q == nil {
		return 1
	}

	return q.page
}

// GetLimit returns the page size.
func (q *PageQuery) GetLimit() int {
	if q == nil {
		return DefaultItemsPerPage
	}

	return q.limit
}

// GetOffset returns the number of records skipped before the page.
func (q *PageQuery) GetOffset() int {
	return (q.GetPage() - 1) * q.GetLimit()
}

// GetDatasetLimit returns the limit adjusted for lookahead:
//   - if Lookahead = true → GetLimit() + 1
//   - if Lookahead = false → GetLimit()
func (q *PageQuery) GetDatasetLimit() int {
	limit := q.GetLimit()

	return lo.Ternary(q.IsLookahead(), limit+1, limit)
}

func (q *PageQuery) validate() error {
	if q == nil {
		return fmt.Errorf("page query is nil")
	}

	// OFFSET without a deterministic order may skip or repeat rows.
	return q.sort.validate()
}

// IsLastPage returns true if the result set is the last page in the dataset.
//
// The last page is determined by one of two conditions:
//  1. The number of returned records is less than Limit.
//  2. Lookahead = true and the number of returned records is less than or equal to Limit.
func IsLastPage[T any](q *PageQuery, resultSet []T) bool {
	limit := q.GetLimit()

	return len(resultSet) < limit || (q.IsLookahead() && len(resultSet) <= limit)
}

// TrimResultSet drops the lookahead record, if it was fetched.
func TrimResultSet[T any](q *PageQuery, resultSet []T) []T {
	if q.IsLookahead() && len(resultSet) > q.GetLimit() {
		resultSet = resultSet[:q.GetLimit()]
	}

	return resultSet
}

// GormFetch returns a FetchFunc paging the rows selected by query. query is
// called once per statement and must return a fresh *gorm.DB, typically
// db.WithContext(ctx).Model(&Row{}).Where(...).
func GormFetch[T any](query func(ctx context.Context) *gorm.DB, orderBy ...OrderBy) FetchFunc[T] {
	return func(ctx context.Context, page, itemsPerPage int) (Page[T], error) {
		var total int64

		err := query(ctx).Count(&total).Error
		if err != nil {
			return Page[T]{}, fmt.Errorf("count rows: %w", err)
		}

		paged, err := NewPageQuery().
			WithPage(page).
			WithLimit(itemsPerPage).
			WithSubstitutedSort(orderBy...).
			Paginate(query(ctx))
		if err != nil {
			return Page[T]{}, err
		}

		items := make([]T, 0, itemsPerPage)

		err = paged.Find(&items).Error
		if err != nil {
			return Page[T]{}, fmt.Errorf("find rows: %w", err)
		}

		return Page[T]{Items: items, Total: int(total)}, nil
	}
}
