package services

import (
	"context"
	"fmt"
	"time"

	"github.com/seamless/timesheet/config"
	"github.com/seamless/timesheet/models"
	"github.com/seamless/timesheet/repositories"
)

// StatusService classifies days on the activity map and decides which weeks
// are still editable. Classification is a pure function of the day, the entry
// type, entry presence and "today"; the window offsets come from config.
type StatusService struct {
	forecastGraceDays       int
	forecastOpenHorizonDays int
	mapWeeks                int

	timesheetRepo repositories.TimesheetRepository
	now           func() time.Time
}

// NewStatusService creates a new status service
func NewStatusService(timesheetRepo repositories.TimesheetRepository, cfg *config.Config) *StatusService {
	return &StatusService{
		forecastGraceDays:       cfg.Status.ForecastGraceDays,
		forecastOpenHorizonDays: cfg.Status.ForecastOpenHorizonDays,
		mapWeeks:                cfg.Status.MapWeeks,
		timesheetRepo:           timesheetRepo,
		now:                     time.Now,
	}
}

// Classify returns the display status for one day cell. Exactly one status
// applies to every (day, type) pair:
//
//	forecast: green when submitted; gray (expired) once the day is more than
//	the grace window behind today; red while the day is between the grace
//	cutoff and the open horizon; blue beyond the horizon.
//	actual: green when submitted; gray (locked) for days after today; blue
//	for today itself; red for any earlier day still missing an entry.
func (s *StatusService) Classify(day time.Time, entryType models.EntryType, hasEntry bool, today time.Time) models.DayStatus {
	if hasEntry {
		return models.StatusGreen
	}

	day = models.Midnight(day)
	today = models.Midnight(today)

	switch entryType {
	case models.EntryTypeForecast:
		graceCutoff := today.AddDate(0, 0, -s.forecastGraceDays)
		horizon := today.AddDate(0, 0, s.forecastOpenHorizonDays)
		if day.Before(graceCutoff) {
			return models.StatusGray
		}
		if day.Before(horizon) {
			return models.StatusRed
		}
		return models.StatusBlue
	default: // actual
		if day.After(today) {
			return models.StatusGray
		}
		if day.Equal(today) {
			return models.StatusBlue
		}
		return models.StatusRed
	}
}

// CheckWeekEditable rejects submissions targeting a gray week. A forecast
// week only expires once its last day has fallen out of the grace window; an
// actual week is locked until its first day has arrived.
func (s *StatusService) CheckWeekEditable(weekCommencing time.Time, entryType models.EntryType, today time.Time) error {
	today = models.Midnight(today)
	week := models.WeekStartingFrom(weekCommencing)

	switch entryType {
	case models.EntryTypeForecast:
		graceCutoff := today.AddDate(0, 0, -s.forecastGraceDays)
		if week.End.Before(graceCutoff) {
			return models.NewValidationError(fmt.Sprintf(
				"forecast for week of %s has expired and can no longer be edited",
				models.FormatDate(week.Start),
			))
		}
	default: // actual
		if week.Start.After(today) {
			return models.NewValidationError(fmt.Sprintf(
				"actuals for week of %s are locked and cannot be entered yet",
				models.FormatDate(week.Start),
			))
		}
	}

	return nil
}

// BuildStatusMap classifies every day of the rolling window for both entry
// types. The window starts two weeks behind the current week so recent gaps
// stay visible, and extends forward to cover weeks weeks in total; a weeks
// value of 0 or less falls back to the configured default.
func (s *StatusService) BuildStatusMap(ctx context.Context, userEmail string, weeks int) ([]models.WeekStatus, error) {
	if weeks <= 0 {
		weeks = s.mapWeeks
	}

	today := models.Midnight(s.now())
	firstWeek := models.MondayOf(today).AddDate(0, 0, -14)
	lastWeek := firstWeek.AddDate(0, 0, 7*(weeks-1))

	forecastWeeks, err := s.weekSet(ctx, userEmail, models.EntryTypeForecast, firstWeek, lastWeek)
	if err != nil {
		return nil, err
	}
	actualWeeks, err := s.weekSet(ctx, userEmail, models.EntryTypeActual, firstWeek, lastWeek)
	if err != nil {
		return nil, err
	}

	var result []models.WeekStatus
	for week := 0; week < weeks; week++ {
		span := models.WeekStartingFrom(firstWeek.AddDate(0, 0, 7*week))
		weekKey := models.FormatDate(span.Start)

		status := models.WeekStatus{WeekCommencing: weekKey}
		for date := span.Start; span.Contains(date); date = date.AddDate(0, 0, 1) {
			status.Forecast = append(status.Forecast, models.DayStatusCell{
				Date:   models.FormatDate(date),
				Status: s.Classify(date, models.EntryTypeForecast, forecastWeeks[weekKey], today),
			})
			status.Actual = append(status.Actual, models.DayStatusCell{
				Date:   models.FormatDate(date),
				Status: s.Classify(date, models.EntryTypeActual, actualWeeks[weekKey], today),
			})
		}
		result = append(result, status)
	}

	return result, nil
}

// weekSet returns the weeks in range with stored entries, keyed for lookup.
// A day "has an entry" when its containing week has stored rows of the type.
func (s *StatusService) weekSet(ctx context.Context, userEmail string, entryType models.EntryType, fromWeek, toWeek time.Time) (map[string]bool, error) {
	weeks, err := s.timesheetRepo.WeeksWithEntries(
		ctx,
		userEmail,
		entryType,
		models.FormatDate(fromWeek),
		models.FormatDate(toWeek),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s weeks: %w", entryType, err)
	}

	set := make(map[string]bool, len(weeks))
	for _, week := range weeks {
		set[week] = true
	}
	return set, nil
}
