package viewstate

import (
	"time"

	"github.com/Alp4ka/todopager/todos"
)

// Action is a state transition handled by Reduce.
type Action interface {
	apply(State) State
}

type (
	// OpenAdd shows the new task form.
	OpenAdd struct{}
	// OpenEdit shows the edit form for the selected task. Without a
	// selection it does nothing.
	OpenEdit struct{}
	// OpenCalendar shows the calendar panel in the compact layout.
	OpenCalendar struct{}
	// ClosePanel returns to the default panel and clears the selection.
	ClosePanel struct{}
	// SelectTask selects a task and previews it.
	SelectTask struct{ Task todos.Task }
	// ToggleDay filters by Day, or clears the day filter when Day is
	// already selected.
	ToggleDay struct{ Day time.Time }
	// SetCompleted filters by completion. Nil shows every task.
	SetCompleted struct{ Completed *bool }
	// SetSort changes the list order.
	SetSort struct{ SortBy, Order string }
	// ResetFilter restores the default filter.
	ResetFilter struct{}
	// ShiftMonth moves the date strip by Months.
	ShiftMonth struct{ Months int }
	// SetCompact switches layouts.
	SetCompact struct{ Compact bool }
	// SaveStarted marks a create or replace as in flight.
	SaveStarted struct{}
	// SaveSucceeded closes the form and confirms with Message.
	SaveSucceeded struct{ Message string }
	// SaveFailed keeps the form open and reports Err.
	SaveFailed struct{ Err error }
	// Notify shows a notice.
	Notify struct{ Notice Notice }
	// DismissNotice hides the notice.
	DismissNotice struct{}
)

// Reduce returns the state after a. s is not modified.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}

	return a.apply(s)
}

func (OpenAdd) apply(s State) State {
	s.Panel = PanelAdd
	return s
}

func (OpenEdit) apply(s State) State {
	if s.Selected != nil {
		s.Panel = PanelEdit
	}

	return s
}

func (OpenCalendar) apply(s State) State {
	s.Panel = PanelCalendar
	return s
}

func (ClosePanel) apply(s State) State {
	if s.Saving {
		return s
	}

	s.Panel = PanelDefault
	s.Selected = nil

	return s
}

func (a SelectTask) apply(s State) State {
	task := a.Task
	s.Selected = &task
	s.Panel = PanelPreview

	return s
}

func (a ToggleDay) apply(s State) State {
	loc := s.Filter.Location
	if current, ok := s.SelectedDay(); ok && todos.SameDay(current, a.Day, loc) {
		s.Filter.CreatedAt = nil
		return s
	}

	day := a.Day
	s.Filter.CreatedAt = &day
	s.Month = firstOfMonth(day)

	return s
}

func (a SetCompleted) apply(s State) State {
	if a.Completed == nil {
		s.Filter.Completed = nil
		return s
	}

	completed := *a.Completed
	s.Filter.Completed = &completed

	return s
}

func (a SetSort) apply(s State) State {
	s.Filter.SortBy = a.SortBy
	s.Filter.Order = a.Order

	return s
}

func (ResetFilter) apply(s State) State {
	loc := s.Filter.Location
	s.Filter = todos.DefaultFilter()
	s.Filter.Location = loc

	return s
}

func (a ShiftMonth) apply(s State) State {
	s.Month = firstOfMonth(s.Month).AddDate(0, a.Months, 0)
	return s
}

func (a SetCompact) apply(s State) State {
	s.Compact = a.Compact
	return s
}

func (SaveStarted) apply(s State) State {
	s.Saving = true
	return s
}

func (a SaveSucceeded) apply(s State) State {
	s.Saving = false
	s.Panel = PanelDefault
	s.Selected = nil
	s.Notice = &Notice{Kind: NoticeSuccess, Text: a.Message}

	return s
}

func (a SaveFailed) apply(s State) State {
	s.Saving = false
	s.Notice = &Notice{Kind: NoticeError, Text: todos.Message(a.Err)}

	return s
}

func (a Notify) apply(s State) State {
	notice := a.Notice
	s.Notice = &notice

	return s
}

func (DismissNotice) apply(s State) State {
	s.Notice = nil
	return s
}
