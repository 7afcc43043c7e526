package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/seamless/timesheet/models"
)

// TimesheetRepository interface defines timesheet database operations
type TimesheetRepository interface {
	GetWeek(ctx context.Context, userEmail, weekCommencing string, entryType models.EntryType) ([]models.TimesheetEntry, error)
	ReplaceWeek(ctx context.Context, userEmail, weekCommencing string, entryType models.EntryType, rows []models.SubmissionRow) error
	LatestWeekBefore(ctx context.Context, userEmail, weekCommencing string) (string, error)
	WeeksWithEntries(ctx context.Context, userEmail string, entryType models.EntryType, fromWeek, toWeek string) ([]string, error)
	SumActualDaysByProject(ctx context.Context, userEmail, fromWeek, toWeek string) (map[string]float64, error)
}

// timesheetRepository implements TimesheetRepository interface
type timesheetRepository struct {
	db *sql.DB
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *sql.DB) TimesheetRepository {
	return &timesheetRepository{db: db}
}

// GetWeek retrieves all entries for one (user, week, type) key
func (r *timesheetRepository) GetWeek(ctx context.Context, userEmail, weekCommencing string, entryType models.EntryType) ([]models.TimesheetEntry, error) {
	query := `
		SELECT id, user_email, week_commencing, entry_type, project_name, days, notes, submitted_at
		FROM timesheet_entries
		WHERE user_email = ? AND week_commencing = ? AND entry_type = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userEmail, weekCommencing, string(entryType))
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheet entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ReplaceWeek atomically replaces all entries for one (user, week, type) key.
// Delete and insert run inside a single transaction: a reader sees either the
// full prior row set or the full new one, never a mix, and a failed insert
// leaves the prior rows untouched.
func (r *timesheetRepository) ReplaceWeek(ctx context.Context, userEmail, weekCommencing string, entryType models.EntryType, rows []models.SubmissionRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := `
		DELETE FROM timesheet_entries
		WHERE user_email = ? AND week_commencing = ? AND entry_type = ?
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, userEmail, weekCommencing, string(entryType)); err != nil {
		return fmt.Errorf("failed to delete prior entries: %w", err)
	}

	insertQuery := `
		INSERT INTO timesheet_entries (user_email, week_commencing, entry_type, project_name, days, notes, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	submittedAt := time.Now().UTC()
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insertQuery,
			userEmail,
			weekCommencing,
			string(entryType),
			row.Project,
			row.Days,
			row.Notes,
			submittedAt,
		); err != nil {
			return fmt.Errorf("failed to insert entry for project %s: %w", row.Project, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}

	return nil
}

// LatestWeekBefore returns the most recent week strictly before the given
// week that has any stored entries for the user, or "" if none exists.
func (r *timesheetRepository) LatestWeekBefore(ctx context.Context, userEmail, weekCommencing string) (string, error) {
	query := `
		SELECT week_commencing
		FROM timesheet_entries
		WHERE user_email = ? AND week_commencing < ?
		ORDER BY week_commencing DESC
		LIMIT 1
	`

	var week string
	err := r.db.QueryRowContext(ctx, query, userEmail, weekCommencing).Scan(&week)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find latest week: %w", err)
	}

	return week, nil
}

// WeeksWithEntries returns the distinct weeks in [fromWeek, toWeek] that have
// stored entries of the given type for the user.
func (r *timesheetRepository) WeeksWithEntries(ctx context.Context, userEmail string, entryType models.EntryType, fromWeek, toWeek string) ([]string, error) {
	query := `
		SELECT DISTINCT week_commencing
		FROM timesheet_entries
		WHERE user_email = ? AND entry_type = ? AND week_commencing >= ? AND week_commencing <= ?
		ORDER BY week_commencing ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userEmail, string(entryType), fromWeek, toWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to query weeks with entries: %w", err)
	}
	defer rows.Close()

	var weeks []string
	for rows.Next() {
		var week string
		if err := rows.Scan(&week); err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, week)
	}

	return weeks, rows.Err()
}

// SumActualDaysByProject sums recorded (actual) days per project for the
// user. Empty fromWeek/toWeek leave that end of the range unbounded.
func (r *timesheetRepository) SumActualDaysByProject(ctx context.Context, userEmail, fromWeek, toWeek string) (map[string]float64, error) {
	query := `
		SELECT project_name, SUM(days)
		FROM timesheet_entries
		WHERE user_email = ? AND entry_type = ?
	`
	args := []interface{}{userEmail, string(models.EntryTypeActual)}

	if fromWeek != "" {
		query += " AND week_commencing >= ?"
		args = append(args, fromWeek)
	}
	if toWeek != "" {
		query += " AND week_commencing <= ?"
		args = append(args, toWeek)
	}
	query += " GROUP BY project_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var project string
		var days float64
		if err := rows.Scan(&project, &days); err != nil {
			return nil, fmt.Errorf("failed to scan project total: %w", err)
		}
		totals[project] = days
	}

	return totals, rows.Err()
}

// scanEntries reads timesheet entry rows from a query result
func scanEntries(rows *sql.Rows) ([]models.TimesheetEntry, error) {
	var entries []models.TimesheetEntry
	for rows.Next() {
		var entry models.TimesheetEntry
		var entryType string
		var notes sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.UserEmail,
			&entry.WeekCommencing,
			&entryType,
			&entry.ProjectName,
			&entry.Days,
			&notes,
			&entry.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}

		entry.EntryType = models.EntryType(entryType)
		if notes.Valid {
			entry.Notes = notes.String
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timesheet entries: %w", err)
	}

	return entries, nil
}
