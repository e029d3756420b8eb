// Package viewstate holds the screen state around a task list: the open
// side panel, the selected task, the list filter and transient notices.
//
// State is a plain value. Every change goes through Reduce, which never
// mutates its input, so hosts can keep the previous state for comparison.
package viewstate

import (
	"time"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/todos"
)

// Panel is what the side panel shows.
type Panel int

const (
	// PanelDefault is the calendar. In the compact layout it stays hidden.
	PanelDefault Panel = iota
	// PanelCalendar is the calendar opened explicitly in the compact layout.
	PanelCalendar
	PanelAdd
	PanelEdit
	PanelPreview
)

func (p Panel) String() string {
	switch p {
	case PanelDefault:
		return "default"
	case PanelCalendar:
		return "calendar"
	case PanelAdd:
		return "add"
	case PanelEdit:
		return "edit"
	case PanelPreview:
		return "preview"
	}

	return "unknown"
}

// NoticeKind tells a success notice from an error one.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a transient message for the user.
type Notice struct {
	Kind NoticeKind
	Text string
}

// EmptyState is shown instead of the list when it has no items.
type EmptyState struct {
	Title       string
	Description string
}

var (
	noMatches = EmptyState{
		Title:       "No Records Found",
		Description: "there are no records that matches your query",
	}
	noRecords = EmptyState{
		Title:       "No records has been added yet.",
		Description: "Add a new record by simpley clicking the button on top right side.",
	}
)

type State struct {
	Panel    Panel
	Selected *todos.Task
	Filter   todos.Filter
	// Month is the month shown by the date strip.
	Month time.Time
	// Compact selects the narrow layout.
	Compact bool
	// Saving is set while a create or replace is in flight. Panels cannot be
	// closed meanwhile.
	Saving bool
	Notice *Notice
}

// New returns the initial state: calendar panel, default filter, the month
// of now.
func New(now time.Time, compact bool) State {
	return State{
		Panel:   PanelDefault,
		Filter:  todos.DefaultFilter(),
		Month:   firstOfMonth(now),
		Compact: compact,
	}
}

// PanelVisible reports whether the side panel is drawn. The default calendar
// is hidden in the compact layout.
func (s State) PanelVisible() bool {
	return !s.Compact || s.Panel != PanelDefault
}

// PageLimits returns page size and sibling count for the layout.
func (s State) PageLimits() (itemsPerPage, siblingCount int) {
	return todopager.LayoutLimits(s.Compact)
}

// Empty returns the text shown for an empty list.
func (s State) Empty() EmptyState {
	if s.Filter.Applied() {
		return noMatches
	}

	return noRecords
}

// SelectedDay returns the filtered day, if any.
func (s State) SelectedDay() (time.Time, bool) {
	if s.Filter.CreatedAt == nil {
		return time.Time{}, false
	}

	return *s.Filter.CreatedAt, true
}

// IsSelected reports whether t is the selected task.
func (s State) IsSelected(t todos.Task) bool {
	return s.Selected != nil && s.Selected.ID == t.ID
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
