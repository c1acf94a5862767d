// Package migrations owns the local database schema: activity log entries
// for application events and interview practice runs, plus the versioned
// migration runner.
package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add composite index for per-company activity queries",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_activity_company_timestamp ON activity(company, timestamp DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_activity_company_timestamp;
		`,
	},
	{
		Version: 2,
		Name:    "Add role index for practice run lookups",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_practice_runs_role ON practice_runs(role);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_practice_runs_role;
		`,
	},
}

// InitSchema creates all tables required across all modules.
// This must be called before running migrations to ensure all tables exist.
func InitSchema(db *sql.DB) error {
	schema := `
	-- Application activity log
	CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		application_id TEXT NOT NULL,
		job_title TEXT NOT NULL,
		company TEXT NOT NULL,
		old_status TEXT,
		new_status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_activity_application ON activity(application_id);

	-- Interview practice runs
	CREATE TABLE IF NOT EXISTS practice_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		role TEXT NOT NULL,
		category TEXT NOT NULL,
		question_id TEXT NOT NULL,
		prompt TEXT NOT NULL,
		score INTEGER NOT NULL,
		summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_practice_runs_timestamp ON practice_runs(timestamp DESC);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return err
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		if _, err := db.Exec(migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
