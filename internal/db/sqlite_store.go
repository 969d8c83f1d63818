// Package db persists operator settings in SQLite. The entry workflow itself
// is deliberately session-scoped; only the recognition credential survives a
// restart.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SettingsStore struct {
	db *sql.DB
}

// Open opens (or creates) the settings database at path and applies the
// schema. Pass ":memory:" for an ephemeral store.
func Open(path string) (*SettingsStore, error) {
	if path == "" {
		path = ":memory:"
	}
	handle, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := handle.Exec(stmt); err != nil {
			handle.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if err := RunMigrations(handle); err != nil {
		handle.Close()
		return nil, err
	}
	return &SettingsStore{db: handle}, nil
}

// Get returns the value for key, or "" when the key is absent.
func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, nil
}

// Set writes (or overwrites) the value for key.
func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (s *SettingsStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

func (s *SettingsStore) Close() error {
	return s.db.Close()
}
