package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/internal/cli"
	"github.com/Alp4ka/todopager/internal/log"
	"github.com/Alp4ka/todopager/todos"
	"github.com/Alp4ka/todopager/todos/mockapi"
)

type listOutput struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	TotalItems int          `json:"total_items"`
	Tasks      []todos.Task `json:"tasks"`
}

// seedTasks returns n tasks created one minute apart on 2026-10-15, ids "1".."n".
func seedTasks(n int) []todos.Task {
	base := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
	day := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

	tasks := make([]todos.Task, 0, n)
	for i := range n {
		starts := day.Add(9 * time.Hour)
		payload := todos.NewPayload(fmt.Sprintf("task %d", i+1), base.Add(time.Duration(i)*time.Minute), starts, starts.Add(time.Hour))
		tasks = append(tasks, payload.WithID(fmt.Sprint(i+1)))
	}

	return tasks
}

type env struct {
	store  *mockapi.MemoryStore
	url    string
	config string
}

func newEnv(t *testing.T, tasks []todos.Task) *env {
	t.Helper()

	store := mockapi.NewMemoryStore(tasks...)
	srv := httptest.NewServer(mockapi.NewServer(store, mockapi.WithLogger(log.Discard())))
	t.Cleanup(srv.Close)

	config := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("location: UTC\nretry_max: -1\n"), 0o600))

	return &env{store: store, url: srv.URL, config: config}
}

func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	cmd := cli.NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--api-url", e.url, "--config", e.config))

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func (e *env) list(t *testing.T, args ...string) listOutput {
	t.Helper()

	out, err := e.run(t, append([]string{"list", "-o", "json"}, args...)...)
	require.NoError(t, err)

	var got listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	return got
}

func ids(tasks []todos.Task) []string {
	ret := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ret = append(ret, t.ID)
	}

	return ret
}

func TestList_Text(t *testing.T) {
	t.Parallel()

	e := newEnv(t, seedTasks(12))

	out, err := e.run(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "task 12")
	assert.NotContains(t, out, "task 2 ")
	assert.Contains(t, out, "09:00 am - 10:00 am")
	assert.Contains(t, out, "‹ prev [1] 2 next ›")
	assert.Contains(t, out, "page 1 of 2, 12 tasks")
}

func TestList_Empty(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	out, err := e.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No records has been added yet.")

	out, err = e.run(t, "list", "--completed=true")
	require.NoError(t, err)
	assert.Contains(t, out, "No Records Found")
}

func TestList_LocalPaging(t *testing.T) {
	t.Parallel()

	e := newEnv(t, seedTasks(12))

	got := e.list(t, "--page", "2")
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 2, got.TotalPages)
	assert.Equal(t, 12, got.TotalItems)
	assert.Equal(t, []string{"2", "1"}, ids(got.Tasks))

	got = e.list(t, "--order", "asc", "--limit", "5")
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(got.Tasks))
}

func TestList_RemotePaging(t *testing.T) {
	t.Parallel()

	e := newEnv(t, seedTasks(12))

	got := e.list(t, "--remote", "--limit", "5", "--page", "3")
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, 12, got.TotalItems)
	assert.Equal(t, []string{"2", "1"}, ids(got.Tasks))
}

func TestList_Filters(t *testing.T) {
	t.Parallel()

	tasks := seedTasks(4)
	tasks[1].Completed = true
	tasks[3].CreatedAt = "2026-10-16T10:00:00.000Z"

	e := newEnv(t, tasks)

	got := e.list(t, "--completed=true")
	assert.Equal(t, []string{"2"}, ids(got.Tasks))

	got = e.list(t, "--day", "2026-10-16")
	assert.Equal(t, []string{"4"}, ids(got.Tasks))

	// Day filters always list the whole dataset.
	got = e.list(t, "--day", "2026-10-15", "--remote", "--order", "asc")
	assert.Equal(t, []string{"1", "2", "3"}, ids(got.Tasks))
}

func TestList_YAML(t *testing.T) {
	t.Parallel()

	e := newEnv(t, seedTasks(1))

	out, err := e.run(t, "list", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "total_items: 1")
	assert.Contains(t, out, "title: task 1")
}

func TestList_Errors(t *testing.T) {
	t.Parallel()

	e := newEnv(t, seedTasks(12))

	_, err := e.run(t, "list", "--page", "5")
	require.ErrorIs(t, err, todopager.ErrPageOutOfRange)

	_, err = e.run(t, "list", "--sort-by", "createdat")
	require.ErrorContains(t, err, "closest: 'created_at'")

	_, err = e.run(t, "list", "--day", "15.10.2026")
	require.ErrorContains(t, err, "day:")

	_, err = e.run(t, "list", "-o", "xml")
	require.ErrorContains(t, err, "unknown output format")
}

func TestAdd(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	out, err := e.run(t, "add", "Call the bank", "--day", "2026-10-20", "--starts", "02:30 PM", "--ends", "15:00")
	require.NoError(t, err)
	assert.Contains(t, out, "added")
	assert.Contains(t, out, "20th October, 2026")

	tasks, _, err := e.store.List(t.Context(), mockapi.Query{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, "Call the bank", tasks[0].Title)
	assert.Equal(t, "2026-10-20T00:00:00.000Z", tasks[0].CreatedAt)
	assert.Equal(t, "2026-10-20T14:30:00.000Z", tasks[0].StartsAt)
	assert.Equal(t, "2026-10-20T15:00:00.000Z", tasks[0].EndsAt)
	assert.Equal(t, todos.DefaultNotifyAtValue, tasks[0].NotifyAtValue)

	_, err = e.run(t, "add", "backwards", "--starts", "11:00", "--ends", "10:00")
	require.ErrorContains(t, err, "end is before start")

	_, err = e.run(t, "add", "bad", "--starts", "noonish")
	require.ErrorIs(t, err, cli.ErrInvalidClock)
}

func TestEdit(t *testing.T) {
	t.Parallel()

	e := newEnv(t, seedTasks(4))

	out, err := e.run(t, "edit", "4", "--title", "renamed", "--day", "2026-10-21")
	require.NoError(t, err)
	assert.Contains(t, out, "updated 4")

	task, err := e.store.Get(t.Context(), "4")
	require.NoError(t, err)
	assert.Equal(t, "renamed", task.Title)
	assert.Equal(t, "2026-10-21T00:00:00.000Z", task.CreatedAt)
	assert.Equal(t, "2026-10-21T09:00:00.000Z", task.StartsAt)
	assert.Equal(t, "2026-10-21T10:00:00.000Z", task.EndsAt)

	_, err = e.run(t, "edit", "3", "--ends", "11:30 am")
	require.NoError(t, err)

	task, err = e.store.Get(t.Context(), "3")
	require.NoError(t, err)
	assert.Equal(t, "task 3", task.Title)
	assert.Equal(t, "2026-10-15T09:00:00.000Z", task.StartsAt)
	assert.Equal(t, "2026-10-15T11:30:00.000Z", task.EndsAt)

	_, err = e.run(t, "edit", "3", "--ends", "08:00")
	require.ErrorContains(t, err, "end is before start")

	_, err = e.run(t, "edit", "99", "--title", "x")
	require.ErrorIs(t, err, todos.ErrNotFound)
}

func TestDoneAndDelete(t *testing.T) {
	t.Parallel()

	e := newEnv(t, seedTasks(3))

	_, err := e.run(t, "done", "2")
	require.NoError(t, err)

	task, err := e.store.Get(t.Context(), "2")
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, "task 2", task.Title)

	_, err = e.run(t, "done", "2", "--undo")
	require.NoError(t, err)

	task, err = e.store.Get(t.Context(), "2")
	require.NoError(t, err)
	assert.False(t, task.Completed)

	out, err := e.run(t, "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 1")
	assert.Equal(t, 2, e.store.Len())

	_, err = e.run(t, "delete", "1")
	require.ErrorIs(t, err, todos.ErrNotFound)
	require.ErrorContains(t, err, "Resource not found")
}

func TestConfig(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	out, err := e.run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "api_url:")
	assert.Contains(t, out, e.url)
	assert.Contains(t, out, "location: UTC")
	assert.Contains(t, out, "retry_max: -1")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cmd := cli.NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"config", "--write", "--config", path})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.FileExists(t, path)
}

func TestInvalidAPIURL(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)
	e.url = "ftp://example.com"

	_, err := e.run(t, "list")
	require.ErrorContains(t, err, "api_url")
}
