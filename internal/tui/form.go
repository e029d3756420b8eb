package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/Alp4ka/todopager/todos"
)

const (
	formDayLayout   = "2006-01-02"
	formClockLayout = "03:04"
)

var ErrInvalidTask = errors.New("invalid task")

// taskForm holds what the add/edit form edits. Clock fields are on a 12-hour
// dial with a separate am/pm choice.
type taskForm struct {
	Title          string
	Day            string
	StartsAt       string
	StartsMeridiem string
	EndsAt         string
	EndsMeridiem   string

	// id and completed carry over from the edited task.
	id        string
	completed bool
}

func newTaskForm(day time.Time) *taskForm {
	return &taskForm{
		Day:            day.Format(formDayLayout),
		StartsAt:       "09:00",
		StartsMeridiem: "am",
		EndsAt:         "10:00",
		EndsMeridiem:   "am",
	}
}

func editTaskForm(t todos.Task, loc *time.Location) *taskForm {
	f := newTaskForm(time.Now().In(loc))
	f.Title = t.Title
	f.id = t.ID
	f.completed = t.Completed

	if created, err := t.CreatedTime(); err == nil {
		f.Day = created.In(loc).Format(formDayLayout)
	}
	if starts, err := t.StartsTime(); err == nil {
		f.StartsAt = starts.In(loc).Format(formClockLayout)
		f.StartsMeridiem = todos.Meridiem(starts.In(loc))
	}
	if ends, err := t.EndsTime(); err == nil {
		f.EndsAt = ends.In(loc).Format(formClockLayout)
		f.EndsMeridiem = todos.Meridiem(ends.In(loc))
	}

	return f
}

func (f *taskForm) editing() bool {
	return f.id != ""
}

// payload validates the form and builds the request body.
func (f *taskForm) payload(loc *time.Location) (todos.CreatePayload, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return todos.CreatePayload{}, fmt.Errorf("%w: title is required", ErrInvalidTask)
	}

	day, err := time.ParseInLocation(formDayLayout, strings.TrimSpace(f.Day), loc)
	if err != nil {
		return todos.CreatePayload{}, fmt.Errorf("%w: date must look like 2026-10-15", ErrInvalidTask)
	}

	starts, err := clockOn(day, f.StartsAt, f.StartsMeridiem)
	if err != nil {
		return todos.CreatePayload{}, fmt.Errorf("%w: start: %w", ErrInvalidTask, err)
	}

	ends, err := clockOn(day, f.EndsAt, f.EndsMeridiem)
	if err != nil {
		return todos.CreatePayload{}, fmt.Errorf("%w: end: %w", ErrInvalidTask, err)
	}

	if ends.Before(starts) {
		return todos.CreatePayload{}, fmt.Errorf("%w: end is before start", ErrInvalidTask)
	}

	p := todos.NewPayload(title, day, starts, ends)
	p.Completed = f.completed

	return p, nil
}

// clockOn places a 12-hour clock reading on day.
func clockOn(day time.Time, clock, meridiem string) (time.Time, error) {
	c, err := time.Parse(formClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, errors.New("time must look like 09:30")
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location())

	return todos.SetMeridiem(t, meridiem)
}

func validateClock(s string) error {
	_, err := time.Parse(formClockLayout, strings.TrimSpace(s))
	if err != nil {
		return errors.New("use hh:mm on a 12-hour clock")
	}

	return nil
}

// huhForm builds the interactive form over f.
func (f *taskForm) huhForm() *huh.Form {
	title := "Add Todo"
	if f.editing() {
		title = "Edit Task"
	}

	meridiems := huh.NewOptions("am", "pm")

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("What needs doing?").
				Value(&f.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date").
				Value(&f.Day).
				Validate(func(s string) error {
					_, err := time.Parse(formDayLayout, strings.TrimSpace(s))
					if err != nil {
						return errors.New("use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().Title("Starts").Value(&f.StartsAt).Validate(validateClock),
			huh.NewSelect[string]().Options(meridiems...).Value(&f.StartsMeridiem).Inline(true),
			huh.NewInput().Title("Ends").Value(&f.EndsAt).Validate(validateClock),
			huh.NewSelect[string]().Options(meridiems...).Value(&f.EndsMeridiem).Inline(true),
		),
	).WithShowHelp(false)
}
