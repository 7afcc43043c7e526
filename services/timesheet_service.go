package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/seamless/timesheet/models"
	"github.com/seamless/timesheet/repositories"
)

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TimesheetService interface defines timesheet business logic
type TimesheetService interface {
	Submit(ctx context.Context, userEmail string, form *models.SubmissionForm) (*SubmitResult, error)
	GetLastWeekEntries(ctx context.Context, userEmail string) ([]models.SubmissionRow, error)
	GetProjectBreakdown(ctx context.Context, userEmail, fromWeek, toWeek string) ([]models.ProjectShare, error)
}

// timesheetService implements TimesheetService interface
type timesheetService struct {
	timesheetRepo repositories.TimesheetRepository
	status        *StatusService
	now           func() time.Time
}

// NewTimesheetService creates a new timesheet service
func NewTimesheetService(timesheetRepo repositories.TimesheetRepository, status *StatusService) TimesheetService {
	return &timesheetService{
		timesheetRepo: timesheetRepo,
		status:        status,
		now:           time.Now,
	}
}

// Submit replaces the stored row set for the submitted (user, week, type)
// key. Rows the client should already have filtered are re-filtered here;
// an empty result after filtering is a validation failure, so a submission
// can never silently wipe a week.
func (s *timesheetService) Submit(ctx context.Context, userEmail string, form *models.SubmissionForm) (*SubmitResult, error) {
	if userEmail == "" {
		return nil, models.NewNotFoundError("user context is unresolvable")
	}

	if errs := form.Validate(); len(errs) > 0 {
		return nil, models.NewValidationError(strings.Join(errs, "; "))
	}

	entryType, err := models.ParseEntryType(form.EntryType)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	weekDate, err := models.ParseDate(form.WeekCommencing)
	if err != nil {
		return nil, models.NewValidationError("week commencing date must be in YYYY-MM-DD format")
	}
	// Normalize to the Monday so a mid-week date still keys the right week.
	week := models.FormatDate(models.MondayOf(weekDate))

	if err := s.status.CheckWeekEditable(models.MondayOf(weekDate), entryType, s.now()); err != nil {
		return nil, err
	}

	rows := form.CleanRows()
	if len(rows) == 0 {
		return nil, models.NewValidationError("timesheet must contain at least one entry with a project and days greater than zero")
	}

	if err := s.replaceWithRetry(ctx, userEmail, week, entryType, rows); err != nil {
		return nil, err
	}

	return &SubmitResult{
		Success: true,
		Message: fmt.Sprintf("Timesheet submitted successfully for week of %s", week),
	}, nil
}

// replaceWithRetry retries the transaction once before surfacing a storage
// error; a transient commit failure under sqlite's writer lock usually
// succeeds on the second attempt.
func (s *timesheetService) replaceWithRetry(ctx context.Context, userEmail, week string, entryType models.EntryType, rows []models.SubmissionRow) error {
	err := s.timesheetRepo.ReplaceWeek(ctx, userEmail, week, entryType, rows)
	if err == nil {
		return nil
	}

	if retryErr := s.timesheetRepo.ReplaceWeek(ctx, userEmail, week, entryType, rows); retryErr == nil {
		return nil
	}

	return models.NewStorageError("failed to save timesheet", err)
}

// GetLastWeekEntries returns the rows of the most recent week strictly
// before the current week with any stored entries, for pre-populating a new
// week ("copy last week"). Actual rows win over forecast rows when both
// exist for that week.
func (s *timesheetService) GetLastWeekEntries(ctx context.Context, userEmail string) ([]models.SubmissionRow, error) {
	if userEmail == "" {
		return nil, models.NewNotFoundError("user context is unresolvable")
	}

	currentWeek := models.FormatDate(models.MondayOf(s.now()))
	week, err := s.timesheetRepo.LatestWeekBefore(ctx, userEmail, currentWeek)
	if err != nil {
		return nil, models.NewStorageError("failed to look up previous week", err)
	}
	if week == "" {
		return []models.SubmissionRow{}, nil
	}

	entries, err := s.timesheetRepo.GetWeek(ctx, userEmail, week, models.EntryTypeActual)
	if err != nil {
		return nil, models.NewStorageError("failed to load previous week", err)
	}
	if len(entries) == 0 {
		entries, err = s.timesheetRepo.GetWeek(ctx, userEmail, week, models.EntryTypeForecast)
		if err != nil {
			return nil, models.NewStorageError("failed to load previous week", err)
		}
	}

	rows := make([]models.SubmissionRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, models.SubmissionRow{
			Project: entry.ProjectName,
			Days:    entry.Days,
			Notes:   entry.Notes,
		})
	}

	return rows, nil
}

// GetProjectBreakdown returns each project's whole-percent share of the
// user's recorded days. Percentages are rounded per project, so the sum may
// drift a point or two from 100.
func (s *timesheetService) GetProjectBreakdown(ctx context.Context, userEmail, fromWeek, toWeek string) ([]models.ProjectShare, error) {
	if userEmail == "" {
		return nil, models.NewNotFoundError("user context is unresolvable")
	}

	totals, err := s.timesheetRepo.SumActualDaysByProject(ctx, userEmail, fromWeek, toWeek)
	if err != nil {
		return nil, models.NewStorageError("failed to load project totals", err)
	}

	var totalDays float64
	for _, days := range totals {
		totalDays += days
	}
	if totalDays == 0 {
		return []models.ProjectShare{}, nil
	}

	shares := make([]models.ProjectShare, 0, len(totals))
	for project, days := range totals {
		shares = append(shares, models.ProjectShare{
			Project:    project,
			Days:       days,
			Percentage: int(math.Round(days / totalDays * 100)),
		})
	}

	// Largest share first; name breaks ties so output is stable.
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Days != shares[j].Days {
			return shares[i].Days > shares[j].Days
		}
		return shares[i].Project < shares[j].Project
	})

	return shares, nil
}
