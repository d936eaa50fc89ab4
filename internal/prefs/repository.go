// Package prefs is the durable key-value store for user preferences.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store is the key-value surface the rest of the application depends on
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Repository persists preferences in the SQLite preferences table
type Repository struct {
	db *sql.DB
}

// NewRepository creates a preference repository on an opened database
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the value stored under key; ok is false when nothing is stored
func (r *Repository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (r *Repository) Set(key, value string) error {
	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("saving preference %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *Repository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting preference %q: %w", key, err)
	}
	return nil
}

var _ Store = (*Repository)(nil)
