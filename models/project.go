package models

// Project is one entry in the project reference list. Only active projects
// are offered on the form; inactive ones are kept in the source file so
// historic entries still resolve to a known name.
type Project struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// DayStatus is the display classification of a single day cell on the
// activity map.
type DayStatus string

const (
	StatusGreen DayStatus = "green" // submitted entry exists
	StatusRed   DayStatus = "red"   // missing within the actionable window
	StatusBlue  DayStatus = "blue"  // open for input, not yet due
	StatusGray  DayStatus = "gray"  // expired or locked, not editable
)

// DayStatusCell is one day on the activity map.
type DayStatusCell struct {
	Date   string    `json:"date"`
	Status DayStatus `json:"status"`
}

// WeekStatus groups a week's cells per entry type.
type WeekStatus struct {
	WeekCommencing string          `json:"week_commencing"`
	Forecast       []DayStatusCell `json:"forecast"`
	Actual         []DayStatusCell `json:"actual"`
}
