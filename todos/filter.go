package todos

import (
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/Alp4ka/todopager"
)

const (
	SortByCreatedAt = "created_at"
	OrderDesc       = "desc"
	OrderAsc        = "asc"
)

// SortColumns are the sortBy values the API understands.
var SortColumns = todopager.ColumnMapping{
	"id":         "id",
	"title":      "title",
	"completed":  "completed",
	"created_at": "created_at",
	"starts_at":  "starts_at",
	"ends_at":    "ends_at",
}

// TaskGetters reads SortColumns off a Task for in-memory sorting.
var TaskGetters = todopager.Getters[Task]{
	"id":         func(t Task) any { return t.ID },
	"title":      func(t Task) any { return t.Title },
	"completed":  func(t Task) any { return t.Completed },
	"created_at": func(t Task) any { return t.CreatedAt },
	"starts_at":  func(t Task) any { return t.StartsAt },
	"ends_at":    func(t Task) any { return t.EndsAt },
}

// Filter narrows a task listing. CreatedAt is matched by calendar day on the
// client, the API cannot filter dates; the other keys are sent as query
// parameters when set.
type Filter struct {
	CreatedAt *time.Time
	Completed *bool
	SortBy    string
	Order     string

	// Location decides calendar days for CreatedAt. Nil means time.Local.
	Location *time.Location
}

// DefaultFilter lists every task, newest first.
func DefaultFilter() Filter {
	return Filter{SortBy: SortByCreatedAt, Order: OrderDesc}
}

// Applied reports whether the filter narrows the listing.
func (f Filter) Applied() bool {
	return f.CreatedAt != nil || f.Completed != nil
}

// Ordering resolves SortBy/Order against SortColumns.
func (f Filter) Ordering() (todopager.OrderBy, error) {
	return todopager.ParseOrdering(lo.CoalesceOrEmpty(f.SortBy, SortByCreatedAt), f.Order, SortColumns)
}

// Query returns the server-side part of the filter. Empty values are left
// out.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Completed != nil {
		q.Set("completed", strconv.FormatBool(*f.Completed))
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.Order != "" {
		q.Set("order", f.Order)
	}

	return q
}

// Apply runs the client-side part of the filter over tasks.
func (f Filter) Apply(tasks []Task) []Task {
	if f.CreatedAt == nil {
		return tasks
	}

	return FilterByDay(tasks, *f.CreatedAt, f.Location, func(t Task) string {
		return t.CreatedAt
	})
}

// FilterByDay keeps the items whose date falls on the same calendar day as
// target in loc. Items with an unparsable date are dropped.
func FilterByDay[T any](items []T, target time.Time, loc *time.Location, dateGetter func(T) string) []T {
	day := DayKey(target, loc)

	return lo.Filter(items, func(item T, _ int) bool {
		t, err := ParseTime(dateGetter(item))
		return err == nil && DayKey(t, loc) == day
	})
}
