// Package migrations owns the SQLite schema of the commit history database.
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
		Name:    "Add file and timestamp indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_commits_file_name ON commits(file_name);
			CREATE INDEX IF NOT EXISTS idx_commits_timestamp ON commits(timestamp DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_commits_file_name;
			DROP INDEX IF EXISTS idx_commits_timestamp;
		`,
	},
	{
		Version: 2,
		Name:    "Add composite index for per-file history",
		Up: `
			-- ListForFile filters by name and orders by time
			CREATE INDEX IF NOT EXISTS idx_commits_file_timestamp ON commits(file_name, timestamp DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_commits_file_timestamp;
		`,
	},
	{
		Version: 3,
		Name:    "Add inspector query bookmarks",
		Up: `
			CREATE TABLE IF NOT EXISTS query_bookmarks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				expression TEXT NOT NULL UNIQUE,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
		Down: `
			DROP TABLE IF EXISTS query_bookmarks;
		`,
	},
}

// InitSchema creates all tables.
// This must be called before running migrations to ensure all tables exist
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS commits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		file_name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		destination TEXT NOT NULL,
		backups TEXT NOT NULL,
		checksum TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		guardian_injection INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Initialize schema first to ensure all tables exist
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
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

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to start migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
