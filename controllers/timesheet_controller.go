package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/seamless/timesheet/config"
	"github.com/seamless/timesheet/metrics"
	"github.com/seamless/timesheet/models"
	"github.com/seamless/timesheet/projects"
	"github.com/seamless/timesheet/services"
	"github.com/seamless/timesheet/userctx"
)

// TimesheetController handles the form shell and the timesheet API
type TimesheetController struct {
	services *services.Services
	cfg      *config.Config
	validate *validator.Validate
}

// NewTimesheetController creates a new timesheet controller
func NewTimesheetController(services *services.Services, cfg *config.Config) *TimesheetController {
	return &TimesheetController{
		services: services,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Index handles GET /
func (c *TimesheetController) Index(w http.ResponseWriter, r *http.Request) {
	identity, ok := userctx.GetIdentity(r.Context())
	if !ok {
		writeError(w, models.NewAuthError("unable to identify user, please ensure you are logged in"))
		return
	}

	activeProjects, err := projects.LoadActive(c.cfg.Projects.File)
	if err != nil {
		writeError(w, models.NewStorageError("failed to load project list", err))
		return
	}

	templateData := struct {
		Title       string
		UserEmail   string
		DefaultDate string
		Projects    []string
	}{
		Title:       "Weekly Timesheet",
		UserEmail:   identity.Email,
		DefaultDate: models.FormatDate(models.NextMonday(time.Now())),
		Projects:    activeProjects,
	}

	renderTemplate(w, "templates/index.html", templateData)
}

// GetHistory handles GET /api/get_history
func (c *TimesheetController) GetHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := c.services.Timesheet.GetLastWeekEntries(r.Context(), userctx.Email(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// Submit handles POST /submit
func (c *TimesheetController) Submit(w http.ResponseWriter, r *http.Request) {
	var form models.SubmissionForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, models.NewValidationError("invalid request body"))
		return
	}

	if err := c.validate.Struct(&form); err != nil {
		writeError(w, models.NewValidationError("submission is missing required fields"))
		return
	}

	// An unparsable type still gets counted, under its own label rather
	// than an empty one.
	typeLabel := "invalid"
	if entryType, err := models.ParseEntryType(form.EntryType); err == nil {
		typeLabel = string(entryType)
	}

	result, err := c.services.Timesheet.Submit(r.Context(), userctx.Email(r.Context()), &form)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(typeLabel, "error").Inc()
		writeError(w, err)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues(typeLabel, "success").Inc()
	metrics.SubmissionDaysHistogram.WithLabelValues(typeLabel).Observe(form.TotalDays())

	writeJSON(w, http.StatusOK, result)
}

// maxMapWeeks caps the ?weeks= override so one request cannot ask for an
// unbounded map.
const maxMapWeeks = 52

// StatusMap handles GET /api/status_map
func (c *TimesheetController) StatusMap(w http.ResponseWriter, r *http.Request) {
	// ?weeks=N overrides the configured window size; anything unparsable
	// or out of range falls back to the default.
	mapWeeks := 0
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= maxMapWeeks {
			mapWeeks = n
		}
	}

	weeks, err := c.services.Status.BuildStatusMap(r.Context(), userctx.Email(r.Context()), mapWeeks)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weeks": weeks,
	})
}

// Breakdown handles GET /api/breakdown
func (c *TimesheetController) Breakdown(w http.ResponseWriter, r *http.Request) {
	fromWeek := r.URL.Query().Get("from")
	toWeek := r.URL.Query().Get("to")

	shares, err := c.services.Timesheet.GetProjectBreakdown(r.Context(), userctx.Email(r.Context()), fromWeek, toWeek)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, shares)
}
