package todos

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// isoLayout matches what JavaScript's Date.toISOString produces, which is
// what the API stores.
const isoLayout = "2006-01-02T15:04:05.000Z"

const dayLayout = "2006-01-02"

var (
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidMeridiem = errors.New("meridiem must be 'am' or 'pm'")

	daysOfWeek = [...]string{"Sun", "Mon", "Tue", "Wed", "Thur", "Fri", "Sat"}

	parseLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		dayLayout,
	}
)

// FormatTime renders t in UTC with millisecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseTime accepts RFC 3339 timestamps (with or without fraction or zone)
// and bare dates.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// DayKey returns the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return t.In(loc).Format(dayLayout)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayKey(a, loc) == DayKey(b, loc)
}

// DayOfWeek returns the short weekday name used by the date strip.
func DayOfWeek(t time.Time) string {
	return daysOfWeek[t.Weekday()]
}

// MonthAndYear returns e.g. "October 2026".
func MonthAndYear(t time.Time) string {
	return t.Format("January 2006")
}

// LastDayOfMonth returns the number of days in t's month.
func LastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// DaysOfMonth returns midnight of every day in t's month.
func DaysOfMonth(t time.Time) []time.Time {
	last := LastDayOfMonth(t)
	ret := make([]time.Time, 0, last)
	for day := 1; day <= last; day++ {
		ret = append(ret, time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, t.Location()))
	}

	return ret
}

// Meridiem returns "am" or "pm" for t.
func Meridiem(t time.Time) string {
	if t.Hour() < 12 {
		return "am"
	}

	return "pm"
}

// SetMeridiem moves t into the requested half of the day, keeping the clock
// time on a 12-hour dial.
func SetMeridiem(t time.Time, meridiem string) (time.Time, error) {
	switch meridiem {
	case "am", "pm":
	default:
		return t, fmt.Errorf("%w: %q", ErrInvalidMeridiem, meridiem)
	}

	current := Meridiem(t)
	switch {
	case current == "am" && meridiem == "pm":
		return t.Add(12 * time.Hour), nil
	case current == "pm" && meridiem == "am":
		return t.Add(-12 * time.Hour), nil
	}

	return t, nil
}
