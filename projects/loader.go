// Package projects loads the project reference list offered on the form.
// The list lives in a flat file maintained outside this app, either
// projects.csv or an Excel export with the same ProjectName/Active columns.
package projects

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/seamless/timesheet/models"
)

// LoadActive returns the sorted names of active projects from the reference
// file. A missing file is not an error: the form renders with an empty
// dropdown and a warning in the log, matching how the app behaves on a
// fresh deploy before the list is uploaded.
func LoadActive(path string) ([]string, error) {
	all, err := Load(path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, project := range all {
		if project.Active {
			names = append(names, project.Name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// Load reads the full project list, inactive entries included.
func Load(path string) ([]models.Project, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Warning: %s not found, using empty project list", path)
		return nil, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadXLSX(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) ([]models.Project, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open project list %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse project list %s: %w", path, err)
	}

	return parseRows(records, path)
}

func loadXLSX(path string) ([]models.Project, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open project list %s: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("project list %s has no sheets", path)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read project list %s: %w", path, err)
	}

	return parseRows(rows, path)
}

// parseRows maps a header row plus data rows to projects. Column order is
// not assumed; only ProjectName and Active are read.
func parseRows(rows [][]string, path string) ([]models.Project, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	nameCol, activeCol := -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "projectname", "project name", "project":
			nameCol = i
		case "active":
			activeCol = i
		}
	}
	if nameCol < 0 || activeCol < 0 {
		return nil, fmt.Errorf("project list %s must have ProjectName and Active columns", path)
	}

	var projects []models.Project
	for _, row := range rows[1:] {
		if nameCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			continue
		}

		active := false
		if activeCol < len(row) {
			active = parseActive(row[activeCol])
		}

		projects = append(projects, models.Project{Name: name, Active: active})
	}

	return projects, nil
}

func parseActive(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
