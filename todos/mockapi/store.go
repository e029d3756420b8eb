// Package mockapi is an in-process implementation of the todos API, backed
// by memory or a SQL database. It answers the same routes as the hosted API
// and additionally supports page/limit paging with an X-Total-Count header.
package mockapi

import (
	"context"
	"errors"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/todos"
)

// ErrNotFound is returned by stores for an unknown task id.
var ErrNotFound = errors.New("task not found")

// Query selects tasks for Store.List.
type Query struct {
	Completed *bool
	// Order nil keeps the store's natural order.
	Order *todopager.OrderBy
	// Page is nil for an unpaged listing.
	Page *todopager.PageQuery
}

// Paged reports whether the query asks for a single page.
func (q Query) Paged() bool {
	return q.Page != nil
}

// Store persists tasks.
type Store interface {
	// List returns the selected tasks and the number of tasks matching the
	// query before paging.
	List(ctx context.Context, q Query) ([]todos.Task, int, error)
	Get(ctx context.Context, id string) (todos.Task, error)
	Create(ctx context.Context, task todos.Task) (todos.Task, error)
	Replace(ctx context.Context, patch todos.Patch) (todos.Task, error)
	Delete(ctx context.Context, id string) (todos.Task, error)
}
