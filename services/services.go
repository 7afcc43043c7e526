package services

import (
	"github.com/seamless/timesheet/config"
	"github.com/seamless/timesheet/repositories"
)

// Services holds all service instances
type Services struct {
	Timesheet TimesheetService
	Status    *StatusService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, cfg *config.Config) *Services {
	status := NewStatusService(repos.Timesheet, cfg)
	return &Services{
		Timesheet: NewTimesheetService(repos.Timesheet, status),
		Status:    status,
	}
}
