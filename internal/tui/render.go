package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/todos"
	"github.com/Alp4ka/todopager/viewstate"
)

const (
	stripDays   = 7
	clockLayout = "03:04 pm"
)

// RenderPagination draws the prev/next controls around the page markers.
// Nothing is drawn for a single page.
func RenderPagination[T any](d todopager.Directive[T]) string {
	if d.TotalPages <= 1 {
		return ""
	}

	parts := make([]string, 0, len(d.Markers)+3)
	parts = append(parts, control("‹ prev", d.HasPrev() && !d.IsPending))

	for _, m := range d.Markers {
		switch {
		case m.IsEllipsis():
			parts = append(parts, dimStyle.Render("…"))
		case m.Page() == d.CurrentPage:
			parts = append(parts, currentPage.Render(fmt.Sprintf("[%d]", m.Page())))
		default:
			parts = append(parts, otherPage.Render(m.String()))
		}
	}

	parts = append(parts, control("next ›", d.HasNext() && !d.IsPending))
	if d.IsPending {
		parts = append(parts, pendingStyle.Render("loading…"))
	}

	return strings.Join(parts, " ")
}

func control(label string, enabled bool) string {
	if !enabled {
		return disabledStyle.Render(label)
	}

	return otherPage.Render(label)
}

// RenderTask draws one list row.
func RenderTask(t todos.Task, selected bool, now time.Time, loc *time.Location) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	title := t.Title
	if t.Completed {
		title = doneStyle.Render(title)
	}

	details := []string{}
	if span := timeSpan(t, loc); span != "" {
		details = append(details, span)
	}
	if created, err := t.CreatedTime(); err == nil {
		details = append(details, humanize.RelTime(created, now, "ago", "from now"))
	}

	row := check + " " + title
	if len(details) > 0 {
		row += "  " + dimStyle.Render(strings.Join(details, " · "))
	}

	if selected {
		return selectedRow.Render("›") + " " + row
	}

	return "  " + row
}

func timeSpan(t todos.Task, loc *time.Location) string {
	starts, err := t.StartsTime()
	if err != nil {
		return ""
	}

	ends, err := t.EndsTime()
	if err != nil {
		return starts.In(loc).Format(clockLayout)
	}

	return starts.In(loc).Format(clockLayout) + " - " + ends.In(loc).Format(clockLayout)
}

// RenderPreview draws the task preview panel.
func RenderPreview(t todos.Task, loc *time.Location) string {
	lines := []string{headingStyle.Render(t.Title)}

	if created, err := t.CreatedTime(); err == nil {
		lines = append(lines, longDate(created.In(loc)))
	}
	if span := timeSpan(t, loc); span != "" {
		lines = append(lines, span)
	}
	if t.NotifyAtValue != "" {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("reminder %s %s", t.NotifyAtValue, t.NotifyAt)))
	}

	status := "open"
	if t.Completed {
		status = "completed"
	}
	lines = append(lines, dimStyle.Render(status), "", dimStyle.Render("e edit · esc close"))

	return strings.Join(lines, "\n")
}

// longDate formats like "15th October, 2026".
func longDate(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", humanize.Ordinal(t.Day()), t.Month(), t.Year())
}

// RenderDateStrip draws a week of days centred on center.
func RenderDateStrip(center time.Time, selected *time.Time, today time.Time, loc *time.Location) string {
	center = center.In(loc)
	first := time.Date(center.Year(), center.Month(), center.Day()-stripDays/2, 0, 0, 0, 0, loc)

	cells := make([]string, 0, stripDays)
	for i := range stripDays {
		day := first.AddDate(0, 0, i)
		cells = append(cells, dayCell(day, fmt.Sprintf("%s\n%2d", todos.DayOfWeek(day), day.Day()), selected, today, loc))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// RenderCalendar draws a month grid.
func RenderCalendar(month time.Time, selected *time.Time, today time.Time, loc *time.Location) string {
	month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)

	header := make([]string, 0, 7)
	for i := range 7 {
		header = append(header, fmt.Sprintf("%-5s", todos.DayOfWeek(month.AddDate(0, 0, i-int(month.Weekday())))))
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(todos.MonthAndYear(month)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Join(header, "")))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("     ", int(month.Weekday())))

	for _, day := range todos.DaysOfMonth(month) {
		b.WriteString(dayCell(day, fmt.Sprintf("%3d", day.Day()), selected, today, loc))

		if day.Weekday() == time.Saturday {
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), " \n")
}

func dayCell(day time.Time, label string, selected *time.Time, today time.Time, loc *time.Location) string {
	switch {
	case selected != nil && todos.SameDay(day, *selected, loc):
		return selectedDay.Padding(0, 1).Render(label)
	case todos.SameDay(day, today, loc):
		return todayStyle.Padding(0, 1).Render(label)
	default:
		return lipgloss.NewStyle().Padding(0, 1).Render(label)
	}
}

// RenderEmpty draws the empty list placeholder.
func RenderEmpty(e viewstate.EmptyState) string {
	return headingStyle.Render(e.Title) + "\n" + dimStyle.Render(e.Description)
}

// RenderNotice draws a transient notice, or nothing.
func RenderNotice(n *viewstate.Notice) string {
	if n == nil {
		return ""
	}

	if n.Kind == viewstate.NoticeError {
		return errorStyle.Render("✗ " + n.Text)
	}

	return successStyle.Render("✓ " + n.Text)
}
