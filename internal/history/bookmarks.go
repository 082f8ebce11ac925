package history

import (
	"fmt"
	"strings"
	"time"
)

// Bookmark is a saved inspector query
type Bookmark struct {
	ID         int64
	Expression string
	CreatedAt  time.Time
}

// SaveQuery bookmarks expression. It reports false when it was already saved.
func (m *Manager) SaveQuery(expression string) (bool, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return false, fmt.Errorf("expression cannot be empty")
	}

	result, err := m.db.Exec(`
		INSERT OR IGNORE INTO query_bookmarks (expression, created_at)
		VALUES (?, ?)
	`, expression, time.Now().UTC().Format(timestampLayout))
	if err != nil {
		return false, fmt.Errorf("failed to save bookmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return rows > 0, nil
}

// Queries returns the bookmarks, oldest first
func (m *Manager) Queries() ([]Bookmark, error) {
	rows, err := m.db.Query(`
		SELECT id, expression, created_at
		FROM query_bookmarks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var createdAt string
		if err := rows.Scan(&b.ID, &b.Expression, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		b.CreatedAt = parseTimestamp(createdAt)
		bookmarks = append(bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}
	return bookmarks, nil
}

// DeleteQuery removes a bookmark by ID
func (m *Manager) DeleteQuery(id int64) error {
	result, err := m.db.Exec("DELETE FROM query_bookmarks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("bookmark not found")
	}
	return nil
}
