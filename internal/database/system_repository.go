package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// SystemRepository stores small key/value state, such as the id of the
// persistent menu message in the iFLY chat.
type SystemRepository struct {
	db *sql.DB
}

func NewSystemRepository(db *sql.DB) *SystemRepository {
	return &SystemRepository{db: db}
}

func (r *SystemRepository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO system_data (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set system value: %v", err)
	}
	return nil
}

func (r *SystemRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM system_data WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get system value: %v", err)
	}
	return value, nil
}
