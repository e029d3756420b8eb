package todopager

import (
	"context"
	"errors"
)

// ErrPending is returned by BeginPage while another remote page change is in
// flight.
var ErrPending = errors.New("page change already pending")

// Page is a generic paginated result container.
type Page[T any] struct {
	// Items result elements of the requested page.
	Items []T
	// Total number of elements in the whole dataset.
	Total int
}

// FetchFunc loads one page of the dataset. page is 1-based.
type FetchFunc[T any] func(ctx context.Context, page, itemsPerPage int) (Page[T], error)

// Strategy selects how a View changes pages. It is fixed when the View is
// built. The only implementations are LocalSlicing and RemoteFetch.
type Strategy[T any] interface {
	strategyName() string
}

// LocalSlicing pages through a list that is fully held by the client.
type LocalSlicing[T any] struct{}

func (LocalSlicing[T]) strategyName() string { return "local" }

// RemoteFetch delegates every page change to Fetch. The view only moves to
// the requested page after Fetch succeeds.
type RemoteFetch[T any] struct {
	Fetch FetchFunc[T]
}

func (RemoteFetch[T]) strategyName() string { return "remote" }

var (
	_ Strategy[any] = LocalSlicing[any]{}
	_ Strategy[any] = RemoteFetch[any]{}
)
