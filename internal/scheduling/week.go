// Package scheduling holds the core scheduling logic: materializing weekly
// schedules from recurring shift templates, the draft→published lifecycle,
// and shift assignment. It talks to storage through narrow interfaces so the
// logic stays independent of the persistence layer.
package scheduling

import "time"

// WeekStartDay is the application-wide week convention. Schedules always run
// Sunday through Saturday; this is a fixed policy constant, not a locale
// setting.
const WeekStartDay = time.Sunday

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// NormalizeDate strips the clock and time zone from t, leaving a pure
// calendar date at UTC midnight.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekStart reports whether d falls on the week-start day.
func IsWeekStart(d time.Time) bool {
	return d.Weekday() == WeekStartDay
}

// WeekEnd returns the last day of the week beginning at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}

// DateForWeekday returns the single date within the week beginning at
// weekStart whose weekday equals day (0 = Sunday .. 6 = Saturday).
func DateForWeekday(weekStart time.Time, day int32) time.Time {
	offset := (int(day) - int(WeekStartDay) + 7) % 7
	return weekStart.AddDate(0, 0, offset)
}
