package controllers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"github.com/seamless/timesheet/config"
	"github.com/seamless/timesheet/models"
	"github.com/seamless/timesheet/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Timesheet *TimesheetController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, cfg *config.Config) *Controllers {
	return &Controllers{
		Timesheet: NewTimesheetController(services, cfg),
	}
}

// renderTemplate parses and renders a page template with the provided data
func renderTemplate(w http.ResponseWriter, pageTemplate string, data interface{}) error {
	tmpl, err := template.ParseFiles(pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// writeJSON writes a JSON response body with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps an error to a structured {error} body. The full error
// chain goes to the log; the client only sees the classified message.
func writeError(w http.ResponseWriter, err error) {
	log.Printf("Request failed: %v", err)
	writeJSON(w, models.StatusCode(err), map[string]string{
		"error": models.ClientMessage(err),
	})
}
