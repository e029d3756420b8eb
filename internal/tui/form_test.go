package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/todopager/todos"
)

func Test_taskForm_payload(t *testing.T) {
	valid := func() *taskForm {
		f := newTaskForm(testNow)
		f.Title = " stand-up "
		return f
	}

	t.Run("defaults", func(t *testing.T) {
		p, err := valid().payload(time.UTC)
		require.NoError(t, err)

		require.Equal(t, todos.CreatePayload{
			Title:         "stand-up",
			CreatedAt:     "2026-10-15T00:00:00.000Z",
			StartsAt:      "2026-10-15T09:00:00.000Z",
			EndsAt:        "2026-10-15T10:00:00.000Z",
			NotifyAt:      todos.DefaultNotifyAt,
			NotifyAtValue: todos.DefaultNotifyAtValue,
		}, p)
	})

	t.Run("noon and midnight", func(t *testing.T) {
		f := valid()
		f.StartsAt, f.StartsMeridiem = "12:00", "am"
		f.EndsAt, f.EndsMeridiem = "12:15", "pm"

		p, err := f.payload(time.UTC)
		require.NoError(t, err)
		require.Equal(t, "2026-10-15T00:00:00.000Z", p.StartsAt)
		require.Equal(t, "2026-10-15T12:15:00.000Z", p.EndsAt)
	})

	t.Run("location", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)

		p, err := valid().payload(loc)
		require.NoError(t, err)
		require.Equal(t, "2026-10-15T06:00:00.000Z", p.StartsAt)
	})

	tests := []struct {
		name   string
		modify func(f *taskForm)
		msg    string
	}{
		{"empty title", func(f *taskForm) { f.Title = "  " }, "title is required"},
		{"bad date", func(f *taskForm) { f.Day = "15/10/2026" }, "date must look like"},
		{"bad start", func(f *taskForm) { f.StartsAt = "9am" }, "start: time must look like 09:30"},
		{"bad meridiem", func(f *taskForm) { f.EndsMeridiem = "noon" }, "end:"},
		{"end before start", func(f *taskForm) { f.EndsMeridiem, f.StartsMeridiem = "am", "pm" }, "end is before start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.modify(f)

			_, err := f.payload(time.UTC)
			require.ErrorIs(t, err, ErrInvalidTask)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func Test_editTaskForm(t *testing.T) {
	task := todos.Task{
		ID:        "7",
		Title:     "gym",
		Completed: true,
		CreatedAt: "2026-10-20T00:00:00.000Z",
		StartsAt:  "2026-10-20T18:30:00.000Z",
		EndsAt:    "2026-10-20T19:45:00.000Z",
	}

	f := editTaskForm(task, time.UTC)
	require.True(t, f.editing())
	require.Equal(t, "2026-10-20", f.Day)
	require.Equal(t, "06:30", f.StartsAt)
	require.Equal(t, "pm", f.StartsMeridiem)
	require.Equal(t, "07:45", f.EndsAt)
	require.Equal(t, "pm", f.EndsMeridiem)

	p, err := f.payload(time.UTC)
	require.NoError(t, err)
	require.True(t, p.Completed)
	require.Equal(t, task.StartsAt, p.StartsAt)
	require.Equal(t, task.EndsAt, p.EndsAt)
	require.Equal(t, task.CreatedAt, p.CreatedAt)

	require.False(t, newTaskForm(testNow).editing())
}
