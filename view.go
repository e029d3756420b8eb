package todopager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
)

var (
	// ErrPageOutOfRange is returned by BeginPage for a page outside
	// 1..TotalPages. RequestPage swallows it.
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrNotRemote is returned by BeginPage on a LocalSlicing view.
	ErrNotRemote = errors.New("view does not fetch pages remotely")
)

// Directive is everything a host needs to draw one page of a View.
type Directive[T any] struct {
	VisibleItems []T
	Markers      []Marker
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	IsPending    bool
}

// HasPrev reports whether a previous page exists.
func (d Directive[T]) HasPrev() bool {
	return d.CurrentPage > 1
}

// HasNext reports whether a next page exists.
func (d Directive[T]) HasNext() bool {
	return d.CurrentPage < d.TotalPages
}

// PageRequest is an in-flight remote page change created by BeginPage.
type PageRequest struct {
	Page int

	generation uint64
}

// View pages through a client-held list of T.
//
// Page state is (currentPage, itemOffset) and starts at (1, 0). It resets
// whenever a list with a different identity is handed to SetItems. The held
// list is never mutated.
type View[T any] struct {
	mu sync.Mutex

	strategy     Strategy[T]
	itemsPerPage int

	items []T
	total int
	// windowStart is the dataset offset of items[0]. With RemoteFetch the
	// held items are the fetched page only; with LocalSlicing it is 0.
	windowStart int

	page    int
	offset  int
	pending bool

	// generation changes with every dataset reset so that a remote page
	// resolving after a reset is discarded.
	generation uint64
}

// NewView builds a View with the given strategy. A nil strategy means
// LocalSlicing. itemsPerPage is normalized with NormalizeItemsPerPage.
func NewView[T any](strategy Strategy[T], itemsPerPage int) *View[T] {
	if strategy == nil {
		strategy = LocalSlicing[T]{}
	}

	return &View[T]{
		strategy:     strategy,
		itemsPerPage: NormalizeItemsPerPage(itemsPerPage),
		page:         1,
	}
}

// NewLocalView is NewView with LocalSlicing over items.
func NewLocalView[T any](items []T, itemsPerPage int) *View[T] {
	v := NewView[T](LocalSlicing[T]{}, itemsPerPage)
	v.SetItems(items)

	return v
}

// NewRemoteView is NewView with RemoteFetch calling fetch.
func NewRemoteView[T any](fetch FetchFunc[T], itemsPerPage int) *View[T] {
	return NewView[T](RemoteFetch[T]{Fetch: fetch}, itemsPerPage)
}

// IsRemote reports whether page changes go through a fetch.
func (v *View[T]) IsRemote() bool {
	_, ok := v.strategy.(RemoteFetch[T])
	return ok
}

// SetItems hands a new version of the dataset to the view. If its identity
// differs from the held list, page state resets to (1, 0).
func (v *View[T]) SetItems(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if sameList(v.items, items) && v.windowStart == 0 {
		return
	}

	v.items = items
	v.total = len(items)
	v.windowStart = 0
	v.resetLocked()
}

// SetItemsPerPage changes the page size. Offsets computed with the old size
// are meaningless, so page state resets.
func (v *View[T]) SetItemsPerPage(itemsPerPage int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	itemsPerPage = NormalizeItemsPerPage(itemsPerPage)
	if itemsPerPage == v.itemsPerPage {
		return
	}

	v.itemsPerPage = itemsPerPage
	v.resetLocked()
}

// Reset moves back to page 1.
func (v *View[T]) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resetLocked()
}

func (v *View[T]) resetLocked() {
	v.page = 1
	v.offset = 0
	v.pending = false
	v.generation++
}

// Reload fetches page 1 through the RemoteFetch strategy and treats the
// result as a new dataset.
func (v *View[T]) Reload(ctx context.Context) error {
	remote, ok := v.strategy.(RemoteFetch[T])
	if !ok {
		return ErrNotRemote
	}

	v.mu.Lock()
	v.resetLocked()
	v.pending = true
	generation := v.generation
	perPage := v.itemsPerPage
	v.mu.Unlock()

	page, err := remote.Fetch(ctx, 1, perPage)

	v.mu.Lock()
	defer v.mu.Unlock()

	if generation != v.generation {
		return nil
	}

	v.pending = false
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	v.items = page.Items
	v.total = page.Total
	v.windowStart = 0

	return nil
}

// RequestPage moves the view to page n.
//
// Pages outside 1..TotalPages and requests made while a remote fetch is
// pending are ignored. With RemoteFetch the state only changes after the
// fetch succeeds; its error is returned unchanged otherwise.
func (v *View[T]) RequestPage(ctx context.Context, n int) error {
	remote, ok := v.strategy.(RemoteFetch[T])
	if !ok {
		v.mu.Lock()
		defer v.mu.Unlock()

		if v.inRangeLocked(n) {
			v.page = n
			v.offset = PageOffset(n, v.itemsPerPage, v.total)
		}

		return nil
	}

	req, err := v.BeginPage(n)
	if errors.Is(err, ErrPending) || errors.Is(err, ErrPageOutOfRange) {
		return nil
	} else if err != nil {
		return err
	}

	page, err := remote.Fetch(ctx, req.Page, v.ItemsPerPage())

	return v.CompletePage(req, page, err)
}

// BeginPage marks a remote page change as pending and returns the request
// to resolve with CompletePage once the page has been fetched. Use it from
// event loops that run the fetch off the loop; RequestPage does both steps.
func (v *View[T]) BeginPage(n int) (PageRequest, error) {
	if !v.IsRemote() {
		return PageRequest{}, ErrNotRemote
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pending {
		return PageRequest{}, ErrPending
	}

	if !v.inRangeLocked(n) {
		return PageRequest{}, fmt.Errorf("%w: %d not in 1..%d", ErrPageOutOfRange, n, v.totalPagesLocked())
	}

	v.pending = true

	return PageRequest{Page: n, generation: v.generation}, nil
}

// FetchPage runs the RemoteFetch strategy for req without touching page
// state.
func (v *View[T]) FetchPage(ctx context.Context, req PageRequest) (Page[T], error) {
	remote, ok := v.strategy.(RemoteFetch[T])
	if !ok {
		return Page[T]{}, ErrNotRemote
	}

	return remote.Fetch(ctx, req.Page, v.ItemsPerPage())
}

// CompletePage resolves a request from BeginPage. On fetchErr nothing but the
// pending flag changes and fetchErr is returned. A request that outlived a
// dataset reset is dropped.
func (v *View[T]) CompletePage(req PageRequest, page Page[T], fetchErr error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if req.generation != v.generation {
		return nil
	}

	v.pending = false
	if fetchErr != nil {
		return fetchErr
	}

	v.items = page.Items
	v.total = page.Total
	v.page = req.Page
	v.offset = PageOffset(req.Page, v.itemsPerPage, v.total)
	v.windowStart = v.offset

	return nil
}

// VisibleItems returns the slice of the held list shown on the current page.
func (v *View[T]) VisibleItems() []T {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.visibleLocked()
}

func (v *View[T]) visibleLocked() []T {
	start := v.offset - v.windowStart
	if start < 0 || start >= len(v.items) {
		return []T{}
	}

	end := min(start+v.itemsPerPage, len(v.items))

	return v.items[start:end]
}

// Render builds the directive for the current state.
func (v *View[T]) Render(siblingCount int) Directive[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	pageRange := ComputeRange(v.total, v.itemsPerPage, v.page, siblingCount)

	return Directive[T]{
		VisibleItems: v.visibleLocked(),
		Markers:      pageRange.Markers,
		CurrentPage:  v.page,
		TotalPages:   pageRange.TotalPages,
		TotalItems:   v.total,
		IsPending:    v.pending,
	}
}

// CurrentPage returns the 1-based current page.
func (v *View[T]) CurrentPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.page
}

// Offset returns the dataset offset of the first visible item.
func (v *View[T]) Offset() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.offset
}

// Pending reports whether a remote page change is in flight.
func (v *View[T]) Pending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pending
}

// ItemsPerPage returns the normalized page size.
func (v *View[T]) ItemsPerPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.itemsPerPage
}

// TotalItems returns the size of the whole dataset.
func (v *View[T]) TotalItems() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.total
}

// TotalPages returns ceil(TotalItems / ItemsPerPage).
func (v *View[T]) TotalPages() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.totalPagesLocked()
}

func (v *View[T]) totalPagesLocked() int {
	return TotalPages(v.total, v.itemsPerPage)
}

func (v *View[T]) inRangeLocked(n int) bool {
	return n >= 1 && n <= v.totalPagesLocked()
}

// sameList reports whether a and b are the same list version: same length
// and same backing array start.
func sameList[T any](a, b []T) bool {
	if len(a) != len(b) || (a == nil) != (b == nil) {
		return false
	}

	return len(a) == 0 || &a[0] == &b[0]
}

// PageOffset returns ((page-1) * itemsPerPage) mod totalItems, or 0 when the
// dataset is empty.
func PageOffset(page, itemsPerPage, totalItems int) int {
	if totalItems <= 0 || page < 1 {
		return 0
	}

	return lo.Ternary(itemsPerPage > 0, ((page-1)*itemsPerPage)%totalItems, 0)
}
