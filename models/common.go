package models

import (
	"time"
)

// DateRange represents a range of dates
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range (inclusive).
func (r DateRange) Contains(t time.Time) bool {
	day := Midnight(t)
	return !day.Before(Midnight(r.Start)) && !day.After(Midnight(r.End))
}

// Midnight truncates a time to the start of its day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MondayOf returns the Monday of the week containing the given date.
func MondayOf(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return Midnight(date).AddDate(0, 0, -(weekday - 1))
}

// NextMonday returns the upcoming Monday. If today is Monday, it returns
// today — the form should default to the week being planned, not skip it.
func NextMonday(now time.Time) time.Time {
	today := Midnight(now)
	daysUntil := (8 - int(today.Weekday())) % 7
	return today.AddDate(0, 0, daysUntil)
}

// WeekStartingFrom returns a date range covering the seven days from date.
func WeekStartingFrom(date time.Time) DateRange {
	start := Midnight(date)
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// FormatDate formats a time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD string into a time.Time
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}
