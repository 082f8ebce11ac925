// Package history records every committed file in a SQLite ledger so the
// user can find the backup taken before any write.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/bl3edit/internal/config"
	"github.com/studiowebux/bl3edit/internal/migrations"
	"github.com/studiowebux/bl3edit/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// Entry is one committed write
type Entry struct {
	ID                int64
	Timestamp         time.Time
	FileName          string
	Kind              types.HeaderType
	Destination       string
	Backups           []string
	Checksum          string
	Size              int
	GuardianInjection bool
}

type Manager struct {
	db *sql.DB
}

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
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record stores e. A zero timestamp is replaced by the current time.
func (m *Manager) Record(e Entry) error {
	backupsJSON, err := json.Marshal(e.Backups)
	if err != nil {
		return fmt.Errorf("failed to marshal backups: %w", err)
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
		INSERT INTO commits (
			timestamp, file_name, kind, destination, backups, checksum, size, guardian_injection
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = m.db.Exec(query,
		ts.UTC().Format(timestampLayout),
		e.FileName,
		int(e.Kind),
		e.Destination,
		string(backupsJSON),
		e.Checksum,
		e.Size,
		e.GuardianInjection,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// List returns the newest entries first. limit <= 0 returns everything.
func (m *Manager) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, timestamp, file_name, kind, destination, backups, checksum, size, guardian_injection
		FROM commits
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListForFile returns the entries written to fileName, newest first
func (m *Manager) ListForFile(fileName string) ([]Entry, error) {
	query := `
		SELECT id, timestamp, file_name, kind, destination, backups, checksum, size, guardian_injection
		FROM commits
		WHERE file_name = ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := m.db.Query(query, filepath.Base(fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to load history for file: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry

	for rows.Next() {
		var (
			e           Entry
			timestamp   string
			kind        int
			backupsJSON string
		)

		err := rows.Scan(
			&e.ID,
			&timestamp,
			&e.FileName,
			&kind,
			&e.Destination,
			&backupsJSON,
			&e.Checksum,
			&e.Size,
			&e.GuardianInjection,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		e.Kind = types.HeaderType(kind)

		if err := json.Unmarshal([]byte(backupsJSON), &e.Backups); err != nil {
			e.Backups = nil
		}

		e.Timestamp = parseTimestamp(timestamp)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// parseTimestamp reads a stored UTC time. The driver may hand DATETIME
// columns back in RFC3339.
func parseTimestamp(s string) time.Time {
	t, err := time.ParseInLocation(timestampLayout, s, time.UTC)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
	}
	return t.Local()
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM commits").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
