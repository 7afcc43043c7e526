package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seamless/timesheet/config"
	"github.com/seamless/timesheet/models"
	"github.com/seamless/timesheet/repositories/mocks"
)

// defaults: forecast grace 3 days, open horizon 7 days, 6 map weeks
func newTestStatusService() *StatusService {
	return NewStatusService(nil, config.Default())
}

func TestClassify(t *testing.T) {
	service := newTestStatusService()
	today := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC) // Wednesday

	testCases := []struct {
		name      string
		dayOffset int
		entryType models.EntryType
		hasEntry  bool
		expected  models.DayStatus
	}{
		{"submitted forecast is green", 2, models.EntryTypeForecast, true, models.StatusGreen},
		{"submitted actual is green", -2, models.EntryTypeActual, true, models.StatusGreen},
		{"forecast far in future is open", 10, models.EntryTypeForecast, false, models.StatusBlue},
		{"forecast at horizon is open", 7, models.EntryTypeForecast, false, models.StatusBlue},
		{"forecast inside horizon is due", 6, models.EntryTypeForecast, false, models.StatusRed},
		{"forecast today is due", 0, models.EntryTypeForecast, false, models.StatusRed},
		{"forecast at grace cutoff is still due", -3, models.EntryTypeForecast, false, models.StatusRed},
		{"forecast past grace is expired", -4, models.EntryTypeForecast, false, models.StatusGray},
		{"actual in future is locked", 1, models.EntryTypeActual, false, models.StatusGray},
		{"actual today is open", 0, models.EntryTypeActual, false, models.StatusBlue},
		{"actual in past is missing", -1, models.EntryTypeActual, false, models.StatusRed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			day := today.AddDate(0, 0, tc.dayOffset)
			got := service.Classify(day, tc.entryType, tc.hasEntry, today)
			assert.Equal(t, tc.expected, got)
		})
	}
}

// Classification must be total: every day in a wide range gets exactly one
// status for each type.
func TestClassifyIsTotal(t *testing.T) {
	service := newTestStatusService()
	today := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)

	known := map[models.DayStatus]bool{
		models.StatusGreen: true,
		models.StatusRed:   true,
		models.StatusBlue:  true,
		models.StatusGray:  true,
	}

	for offset := -60; offset <= 60; offset++ {
		day := today.AddDate(0, 0, offset)
		for _, entryType := range []models.EntryType{models.EntryTypeForecast, models.EntryTypeActual} {
			status := service.Classify(day, entryType, false, today)
			assert.True(t, known[status], "day %s type %s got unknown status %q", models.FormatDate(day), entryType, status)
		}
	}
}

func TestCheckWeekEditable(t *testing.T) {
	service := newTestStatusService()
	today := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)

	// Current week is editable for both types
	currentMonday := time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, service.CheckWeekEditable(currentMonday, models.EntryTypeForecast, today))
	assert.NoError(t, service.CheckWeekEditable(currentMonday, models.EntryTypeActual, today))

	// Future week: forecast open, actuals locked
	nextMonday := currentMonday.AddDate(0, 0, 7)
	assert.NoError(t, service.CheckWeekEditable(nextMonday, models.EntryTypeForecast, today))
	err := service.CheckWeekEditable(nextMonday, models.EntryTypeActual, today)
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrKindValidation))
	assert.Contains(t, err.Error(), "locked")

	// Last week ended 2025-12-07, the grace cutoff: forecast still editable
	lastMonday := currentMonday.AddDate(0, 0, -7)
	assert.NoError(t, service.CheckWeekEditable(lastMonday, models.EntryTypeForecast, today))

	// Two weeks back the forecast has expired; actuals stay open
	expiredMonday := currentMonday.AddDate(0, 0, -14)
	err = service.CheckWeekEditable(expiredMonday, models.EntryTypeForecast, today)
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrKindValidation))
	assert.Contains(t, err.Error(), "expired")
	assert.NoError(t, service.CheckWeekEditable(expiredMonday, models.EntryTypeActual, today))
}

func TestBuildStatusMap(t *testing.T) {
	mockRepo := mocks.NewMockTimesheetRepository(t)
	service := NewStatusService(mockRepo, config.Default())
	today := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC) // Wednesday
	service.now = func() time.Time { return today }

	// Window: two weeks back from the current Monday (2025-12-08), six weeks total
	mockRepo.On("WeeksWithEntries", mock.Anything, "user@example.com", models.EntryTypeForecast, "2025-11-24", "2025-12-29").
		Return([]string{"2025-12-08"}, nil)
	mockRepo.On("WeeksWithEntries", mock.Anything, "user@example.com", models.EntryTypeActual, "2025-11-24", "2025-12-29").
		Return([]string{}, nil)

	weeks, err := service.BuildStatusMap(context.Background(), "user@example.com", 0)
	require.NoError(t, err)
	require.Len(t, weeks, 6)

	current := weeks[2]
	assert.Equal(t, "2025-12-08", current.WeekCommencing)
	require.Len(t, current.Forecast, 7)
	require.Len(t, current.Actual, 7)

	// Forecast submitted: green across the whole week
	for _, cell := range current.Forecast {
		assert.Equal(t, models.StatusGreen, cell.Status, "forecast cell %s", cell.Date)
	}

	// Actual missing: past days red, today blue, future locked
	assert.Equal(t, models.StatusRed, current.Actual[0].Status)  // Monday
	assert.Equal(t, models.StatusBlue, current.Actual[2].Status) // Wednesday (today)
	assert.Equal(t, models.StatusGray, current.Actual[3].Status) // Thursday
}

func TestBuildStatusMapHonorsWeeksOverride(t *testing.T) {
	mockRepo := mocks.NewMockTimesheetRepository(t)
	service := NewStatusService(mockRepo, config.Default())
	today := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return today }

	// Two weeks narrows the window to [2025-11-24, 2025-12-01]
	mockRepo.On("WeeksWithEntries", mock.Anything, "user@example.com", models.EntryTypeForecast, "2025-11-24", "2025-12-01").
		Return([]string{}, nil)
	mockRepo.On("WeeksWithEntries", mock.Anything, "user@example.com", models.EntryTypeActual, "2025-11-24", "2025-12-01").
		Return([]string{}, nil)

	weeks, err := service.BuildStatusMap(context.Background(), "user@example.com", 2)
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, "2025-11-24", weeks[0].WeekCommencing)
	assert.Equal(t, "2025-12-01", weeks[1].WeekCommencing)
}
