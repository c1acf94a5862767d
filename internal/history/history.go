// Package history stores local activity in SQLite: application status
// changes seen on the event stream and interview practice runs, so the
// dashboard works through timelines without round-tripping the API.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hireflux/cli/internal/config"
	"github.com/hireflux/cli/internal/migrations"
	"github.com/hireflux/cli/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// PracticeRun is one recorded interview practice attempt.
type PracticeRun struct {
	ID        int64
	Timestamp time.Time
	Role      string
	Category  string
	Question  string
	Prompt    string
	Score     int
	Summary   string
}

// ActivityEntry is one recorded application status change.
type ActivityEntry struct {
	ID            int64
	Timestamp     time.Time
	ApplicationID string
	JobTitle      string
	Company       string
	OldStatus     string
	NewStatus     string
}

// Manager owns the local SQLite database.
type Manager struct {
	db *sql.DB
}

// NewManager opens (or creates) the database at dbPath and brings the
// schema up to date.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// SaveEvent records an application status change.
func (m *Manager) SaveEvent(event types.ApplicationEvent) error {
	query := `
		INSERT INTO activity (timestamp, application_id, job_title, company, old_status, new_status)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	ts := event.OccurredAt
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := m.db.Exec(query,
		ts.Local().Format(timestampLayout),
		event.ApplicationID,
		event.JobTitle,
		event.Company,
		event.OldStatus,
		event.NewStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity entry: %w", err)
	}

	return nil
}

// Activity returns the most recent status changes, newest first.
func (m *Manager) Activity(limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, application_id, job_title, company, COALESCE(old_status, ''), new_status
		FROM activity
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.ApplicationID, &e.JobTitle, &e.Company, &e.OldStatus, &e.NewStatus); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		e.Timestamp, _ = time.ParseInLocation(timestampLayout, ts, time.Local)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ActivityForApplication returns all recorded changes for one application,
// newest first.
func (m *Manager) ActivityForApplication(applicationID string) ([]ActivityEntry, error) {
	rows, err := m.db.Query(`
		SELECT id, timestamp, application_id, job_title, company, COALESCE(old_status, ''), new_status
		FROM activity
		WHERE application_id = ?
		ORDER BY timestamp DESC
	`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.ApplicationID, &e.JobTitle, &e.Company, &e.OldStatus, &e.NewStatus); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		e.Timestamp, _ = time.ParseInLocation(timestampLayout, ts, time.Local)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// SavePracticeRun records an interview practice attempt.
func (m *Manager) SavePracticeRun(question types.PracticeQuestion, feedback types.PracticeFeedback) error {
	query := `
		INSERT INTO practice_runs (timestamp, role, category, question_id, prompt, score, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		time.Now().Local().Format(timestampLayout),
		question.Role,
		question.Category,
		question.ID,
		question.Prompt,
		feedback.Score,
		feedback.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to save practice run: %w", err)
	}

	return nil
}

// PracticeRuns returns recorded practice attempts, newest first.
func (m *Manager) PracticeRuns(limit int) ([]PracticeRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, role, category, question_id, prompt, score, COALESCE(summary, '')
		FROM practice_runs
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice runs: %w", err)
	}
	defer rows.Close()

	var runs []PracticeRun
	for rows.Next() {
		var r PracticeRun
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.Role, &r.Category, &r.Question, &r.Prompt, &r.Score, &r.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan practice run: %w", err)
		}
		r.Timestamp, _ = time.ParseInLocation(timestampLayout, ts, time.Local)
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// AverageScore returns the mean practice score for a role, and the number
// of runs it covers.
func (m *Manager) AverageScore(role string) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := m.db.QueryRow(`
		SELECT AVG(score), COUNT(*) FROM practice_runs WHERE role = ?
	`, role).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute average score: %w", err)
	}
	return avg.Float64, count, nil
}

// Clear deletes all recorded activity and practice runs.
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM activity"); err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	if _, err := m.db.Exec("DELETE FROM practice_runs"); err != nil {
		return fmt.Errorf("failed to clear practice runs: %w", err)
	}
	return nil
}
