package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/seamless/timesheet/models"
)

// MockTimesheetRepository is a testify mock of TimesheetRepository.
type MockTimesheetRepository struct {
	mock.Mock
}

func NewMockTimesheetRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTimesheetRepository {
	m := &MockTimesheetRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTimesheetRepository) GetWeek(ctx context.Context, userEmail, weekCommencing string, entryType models.EntryType) ([]models.TimesheetEntry, error) {
	args := m.Called(ctx, userEmail, weekCommencing, entryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimesheetEntry), args.Error(1)
}

func (m *MockTimesheetRepository) ReplaceWeek(ctx context.Context, userEmail, weekCommencing string, entryType models.EntryType, rows []models.SubmissionRow) error {
	args := m.Called(ctx, userEmail, weekCommencing, entryType, rows)
	return args.Error(0)
}

func (m *MockTimesheetRepository) LatestWeekBefore(ctx context.Context, userEmail, weekCommencing string) (string, error) {
	args := m.Called(ctx, userEmail, weekCommencing)
	return args.String(0), args.Error(1)
}

func (m *MockTimesheetRepository) WeeksWithEntries(ctx context.Context, userEmail string, entryType models.EntryType, fromWeek, toWeek string) ([]string, error) {
	args := m.Called(ctx, userEmail, entryType, fromWeek, toWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTimesheetRepository) SumActualDaysByProject(ctx context.Context, userEmail, fromWeek, toWeek string) (map[string]float64, error) {
	args := m.Called(ctx, userEmail, fromWeek, toWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}
