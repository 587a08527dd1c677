// SPDX-License-Identifier: Unlicense OR MIT

// Package state remembers the card a pager last settled on, so a
// relaunched window reopens on it.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists pager positions in SQLite.
type Store struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS pager_state (
	name       TEXT PRIMARY KEY,
	page       INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("state: path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("state: open sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("state: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the page saved for the pager name. It reports false if
// nothing was saved.
func (s *Store) Load(ctx context.Context, name string) (int, bool, error) {
	var page int
	err := s.db.QueryRowContext(ctx, `SELECT page FROM pager_state WHERE name = ?`, name).Scan(&page)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("state: load %q: %w", name, err)
	}
	return page, true, nil
}

// Save records page for the pager name.
func (s *Store) Save(ctx context.Context, name string, page int) error {
	if page < 0 {
		return fmt.Errorf("state: negative page %d", page)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pager_state (name, page, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET page = excluded.page, updated_at = excluded.updated_at`,
		name, page, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("state: save %q: %w", name, err)
	}
	return nil
}
