package todopager

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intsUpTo(n int) []int {
	return lo.Range(n)
}

func Test_View_LocalSlicing(t *testing.T) {
	ctx := context.Background()
	items := intsUpTo(25)
	v := NewLocalView(items, 10)

	require.Equal(t, 1, v.CurrentPage())
	require.Equal(t, 0, v.Offset())
	require.Equal(t, 3, v.TotalPages())
	require.Equal(t, items[0:10], v.VisibleItems())

	require.NoError(t, v.RequestPage(ctx, 3))
	require.Equal(t, 3, v.CurrentPage())
	require.Equal(t, 20, v.Offset())
	require.Equal(t, items[20:25], v.VisibleItems())
	require.Len(t, v.VisibleItems(), 5)

	require.NoError(t, v.RequestPage(ctx, 2))
	require.Equal(t, 10, v.Offset())
	require.Equal(t, items[10:20], v.VisibleItems())
}

func Test_View_RequestPage_OutOfRangeIsNoop(t *testing.T) {
	ctx := context.Background()
	v := NewLocalView(intsUpTo(25), 10)
	require.NoError(t, v.RequestPage(ctx, 2))

	for _, page := range []int{-1, 0, 4, 100} {
		require.NoError(t, v.RequestPage(ctx, page))
		assert.Equal(t, 2, v.CurrentPage(), "page %d", page)
		assert.Equal(t, 10, v.Offset(), "page %d", page)
	}
}

func Test_View_EmptyDataset(t *testing.T) {
	ctx := context.Background()
	v := NewLocalView([]int{}, 10)

	for _, page := range []int{0, 1, 2} {
		require.NoError(t, v.RequestPage(ctx, page))
		require.Equal(t, 0, v.Offset())
		require.Equal(t, 1, v.CurrentPage())
	}

	d := v.Render(1)
	require.Empty(t, d.VisibleItems)
	require.Empty(t, d.Markers)
	require.Equal(t, 0, d.TotalPages)
	require.False(t, d.HasPrev())
	require.False(t, d.HasNext())
}

func Test_View_SetItems_ResetsOnIdentityChange(t *testing.T) {
	ctx := context.Background()
	items := intsUpTo(50)
	v := NewLocalView(items, 10)
	require.NoError(t, v.RequestPage(ctx, 4))
	require.Equal(t, 30, v.Offset())

	// Same list again: no reset.
	v.SetItems(items)
	require.Equal(t, 4, v.CurrentPage())

	// A filtered, shorter list: reset so the offset cannot overrun it.
	filtered := items[:12]
	v.SetItems(filtered)
	require.Equal(t, 1, v.CurrentPage())
	require.Equal(t, 0, v.Offset())
	require.Equal(t, filtered[:10], v.VisibleItems())
	require.Equal(t, 2, v.TotalPages())

	// A copy with identical contents is still a new list.
	require.NoError(t, v.RequestPage(ctx, 2))
	v.SetItems(append([]int(nil), filtered...))
	require.Equal(t, 1, v.CurrentPage())
}

func Test_View_SetItemsPerPage_Resets(t *testing.T) {
	ctx := context.Background()
	v := NewLocalView(intsUpTo(100), 10)
	require.NoError(t, v.RequestPage(ctx, 5))

	v.SetItemsPerPage(25)
	require.Equal(t, 1, v.CurrentPage())
	require.Equal(t, 4, v.TotalPages())
	require.Len(t, v.VisibleItems(), 25)
}

func Test_View_Render(t *testing.T) {
	ctx := context.Background()
	items := intsUpTo(100)
	v := NewLocalView(items, 10)
	require.NoError(t, v.RequestPage(ctx, 5))

	d := v.Render(1)
	require.Equal(t, []Marker{1, E, 4, 5, 6, E, 10}, d.Markers)
	require.Equal(t, 5, d.CurrentPage)
	require.Equal(t, 10, d.TotalPages)
	require.Equal(t, 100, d.TotalItems)
	require.Equal(t, items[40:50], d.VisibleItems)
	require.False(t, d.IsPending)
	require.True(t, d.HasPrev())
	require.True(t, d.HasNext())
}

type fakeBackend struct {
	data  []int
	calls []int
	err   error
}

func (f *fakeBackend) fetch(_ context.Context, page, itemsPerPage int) (Page[int], error) {
	f.calls = append(f.calls, page)
	if f.err != nil {
		return Page[int]{}, f.err
	}

	start := min((page-1)*itemsPerPage, len(f.data))
	end := min(start+itemsPerPage, len(f.data))

	return Page[int]{Items: f.data[start:end], Total: len(f.data)}, nil
}

func Test_View_RemoteFetch(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{data: intsUpTo(25)}
	v := NewRemoteView(backend.fetch, 10)
	require.True(t, v.IsRemote())

	// Nothing is known before the first load.
	require.NoError(t, v.RequestPage(ctx, 2))
	require.Empty(t, backend.calls)

	require.NoError(t, v.Reload(ctx))
	require.Equal(t, []int{1}, backend.calls)
	require.Equal(t, 25, v.TotalItems())
	require.Equal(t, backend.data[0:10], v.VisibleItems())

	require.NoError(t, v.RequestPage(ctx, 3))
	require.Equal(t, []int{1, 3}, backend.calls)
	require.Equal(t, 3, v.CurrentPage())
	require.Equal(t, 20, v.Offset())
	require.Equal(t, backend.data[20:25], v.VisibleItems())
	require.False(t, v.Pending())
}

func Test_View_RemoteFetch_FailureKeepsState(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{data: intsUpTo(25)}
	v := NewRemoteView(backend.fetch, 10)
	require.NoError(t, v.Reload(ctx))

	boom := errors.New("boom")
	backend.err = boom

	err := v.RequestPage(ctx, 2)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, v.CurrentPage())
	require.Equal(t, 0, v.Offset())
	require.Equal(t, backend.data[0:10], v.VisibleItems())
	require.False(t, v.Pending())
}

func Test_View_RemoteFetch_PendingRejectsRequests(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{data: intsUpTo(50)}
	v := NewRemoteView(backend.fetch, 10)
	require.NoError(t, v.Reload(ctx))

	req, err := v.BeginPage(3)
	require.NoError(t, err)
	require.True(t, v.Pending())
	require.True(t, v.Render(1).IsPending)

	_, err = v.BeginPage(4)
	require.ErrorIs(t, err, ErrPending)

	// RequestPage is a silent no-op while pending.
	require.NoError(t, v.RequestPage(ctx, 4))
	require.Equal(t, []int{1}, backend.calls)

	page, err := v.FetchPage(ctx, req)
	require.NoError(t, v.CompletePage(req, page, err))
	require.False(t, v.Pending())
	require.Equal(t, 3, v.CurrentPage())
	require.Equal(t, 20, v.Offset())
	require.Equal(t, backend.data[20:30], v.VisibleItems())
}

func Test_View_RemoteFetch_StaleCompletionDropped(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{data: intsUpTo(50)}
	v := NewRemoteView(backend.fetch, 10)
	require.NoError(t, v.Reload(ctx))

	req, err := v.BeginPage(2)
	require.NoError(t, err)

	v.Reset()
	require.False(t, v.Pending())

	page, err := v.FetchPage(ctx, req)
	require.NoError(t, v.CompletePage(req, page, err))
	require.Equal(t, 1, v.CurrentPage())
}

func Test_View_BeginPage_Errors(t *testing.T) {
	local := NewLocalView(intsUpTo(10), 5)
	_, err := local.BeginPage(2)
	require.ErrorIs(t, err, ErrNotRemote)
	require.ErrorIs(t, local.Reload(context.Background()), ErrNotRemote)

	backend := &fakeBackend{data: intsUpTo(10)}
	remote := NewRemoteView(backend.fetch, 5)
	require.NoError(t, remote.Reload(context.Background()))

	_, err = remote.BeginPage(3)
	require.ErrorIs(t, err, ErrPageOutOfRange)
	require.False(t, remote.Pending())
}

func Test_View_NormalizesItemsPerPage(t *testing.T) {
	v := NewView[int](nil, 0)
	require.Equal(t, DefaultItemsPerPage, v.ItemsPerPage())
	require.False(t, v.IsRemote())
}

func Test_PageOffset(t *testing.T) {
	tests := []struct {
		name                 string
		page, perPage, total int
		want                 int
	}{
		{"first page", 1, 10, 25, 0},
		{"third page", 3, 10, 25, 20},
		{"wraps modulo total", 4, 10, 25, 5},
		{"empty dataset", 3, 10, 0, 0},
		{"page zero", 0, 10, 25, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PageOffset(tt.page, tt.perPage, tt.total))
		})
	}
}

func Test_sameList(t *testing.T) {
	a := []int{1, 2, 3}
	require.True(t, sameList(a, a))
	require.False(t, sameList(a, a[:2]))
	require.False(t, sameList(a, a[1:]))
	require.False(t, sameList(a, []int{1, 2, 3}))
	require.True(t, sameList([]int(nil), nil))
	require.False(t, sameList(nil, []int{}))
}
