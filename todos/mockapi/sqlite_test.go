package mockapi

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/todos"
)

func openSQLiteStore(t *testing.T) *GormStore {
	t.Helper()

	store, err := OpenGormStore(DriverSQLite, filepath.Join(t.TempDir(), "todos.db"))
	if err != nil && strings.Contains(err.Error(), "cgo") {
		t.Skip("sqlite needs cgo")
	}
	require.NoError(t, err)

	return store
}

func TestGormStore_SQLite(t *testing.T) {
	ctx := context.Background()
	store := openSQLiteStore(t)

	for _, task := range sampleTasks() {
		_, err := store.Create(ctx, task)
		require.NoError(t, err)
	}

	desc := todopager.OrderBy{Column: "created_at", Direction: todopager.DirectionDESC}

	tasks, total, err := store.List(ctx, Query{Order: &desc, Page: todopager.NewPageQuery().WithPage(2).WithLimit(2)})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Equal(t, []string{"c", "a"}, ids(tasks))

	completed := true
	tasks, total, err = store.List(ctx, Query{Completed: &completed})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, []string{"b", "d"}, ids(tasks))

	title := "Buy oat milk"
	task, err := store.Replace(ctx, todos.Patch{ID: "c", Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", task.Title)
	require.Equal(t, "2026-10-14T18:30:00.000Z", task.CreatedAt)

	task, err = store.Get(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", task.Title)

	_, err = store.Delete(ctx, "c")
	require.NoError(t, err)

	_, err = store.Get(ctx, "c")
	require.ErrorIs(t, err, ErrNotFound)

	_, total, err = store.List(ctx, Query{})
	require.NoError(t, err)
	require.Equal(t, 4, total)
}
