package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// EntryType distinguishes planned allocations from recorded ones.
type EntryType string

const (
	EntryTypeForecast EntryType = "forecast"
	EntryTypeActual   EntryType = "actual"
)

// ParseEntryType normalizes a wire value to an EntryType.
// An empty value defaults to actual, matching what the form submits
// when the user has not switched modes.
func ParseEntryType(s string) (EntryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return EntryTypeActual, nil
	case "forecast":
		return EntryTypeForecast, nil
	case "actual":
		return EntryTypeActual, nil
	default:
		return "", fmt.Errorf("unknown entry type %q", s)
	}
}

// TimesheetEntry represents a single project allocation within a week
type TimesheetEntry struct {
	ID             int       `json:"id" db:"id"`
	UserEmail      string    `json:"user_email" db:"user_email"`
	WeekCommencing string    `json:"week_commencing" db:"week_commencing"` // YYYY-MM-DD, always a Monday
	EntryType      EntryType `json:"entry_type" db:"entry_type"`
	ProjectName    string    `json:"project_name" db:"project_name"`
	Days           float64   `json:"days" db:"days"`
	Notes          string    `json:"notes" db:"notes"`
	SubmittedAt    time.Time `json:"submitted_at" db:"submitted_at"`
}

// SubmissionRow is one (project, days, notes) line of a weekly submission.
type SubmissionRow struct {
	Project string  `json:"project" validate:"max=255"`
	Days    float64 `json:"days" validate:"min=0"`
	Notes   string  `json:"notes"`
}

// SubmissionForm represents a full-week replacement submitted by the client.
type SubmissionForm struct {
	WeekCommencing string          `json:"date" validate:"required"`
	EntryType      string          `json:"type"`
	Rows           []SubmissionRow `json:"rows" validate:"required,dive"`
}

// IsHalfDayIncrement reports whether days lands on a 0.5 step.
func IsHalfDayIncrement(days float64) bool {
	scaled := days * 2
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// Validate validates the submission form data
func (f *SubmissionForm) Validate() []string {
	var errors []string

	if f.WeekCommencing == "" {
		errors = append(errors, "Week commencing date is required")
	} else if _, err := ParseDate(f.WeekCommencing); err != nil {
		errors = append(errors, "Week commencing date must be in YYYY-MM-DD format")
	}

	if _, err := ParseEntryType(f.EntryType); err != nil {
		errors = append(errors, "Entry type must be forecast or actual")
	}

	for i, row := range f.Rows {
		if row.Days < 0 {
			errors = append(errors, fmt.Sprintf("Row %d: days cannot be negative", i+1))
		}
		if row.Days > 7 {
			errors = append(errors, fmt.Sprintf("Row %d: days cannot exceed 7 in a single week", i+1))
		}
		if !IsHalfDayIncrement(row.Days) {
			errors = append(errors, fmt.Sprintf("Row %d: days must be in 0.5 increments", i+1))
		}
	}

	return errors
}

// CleanRows returns the rows that will actually be stored: project trimmed,
// empty projects and zero-day rows dropped. The client applies the same
// filter before submitting, but it cannot be trusted to.
func (f *SubmissionForm) CleanRows() []SubmissionRow {
	var cleaned []SubmissionRow
	for _, row := range f.Rows {
		project := strings.TrimSpace(row.Project)
		if project == "" || row.Days <= 0 {
			continue
		}
		cleaned = append(cleaned, SubmissionRow{
			Project: project,
			Days:    row.Days,
			Notes:   strings.TrimSpace(row.Notes),
		})
	}
	return cleaned
}

// TotalDays sums the days across all rows.
func (f *SubmissionForm) TotalDays() float64 {
	var total float64
	for _, row := range f.Rows {
		total += row.Days
	}
	return total
}

// ProjectShare is one project's slice of a user's recorded time.
type ProjectShare struct {
	Project    string  `json:"project"`
	Days       float64 `json:"days"`
	Percentage int     `json:"percentage"`
}
