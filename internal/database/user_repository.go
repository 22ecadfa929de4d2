package database

import (
	"database/sql"
	"errors"
	"fmt"

	"ifly-videos-bot/internal/models"
)

// UserRepository persists member records keyed by their Telegram chat id.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert records a member on first contact and refreshes their username
// on later ones.
func (r *UserRepository) Upsert(chatID int64, username string) error {
	_, err := r.db.Exec(`
		INSERT INTO users (chat_id, username) VALUES (?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET username = excluded.username`,
		chatID, username)
	if err != nil {
		return fmt.Errorf("upsert user: %v", err)
	}
	return nil
}

func (r *UserRepository) ByChatID(chatID int64) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(
		"SELECT id, chat_id, COALESCE(username, ''), created_at FROM users WHERE chat_id = ?",
		chatID,
	).Scan(&u.ID, &u.ChatID, &u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by chat id: %v", err)
	}
	return u, nil
}

// ByUsername looks a member up case-insensitively, without the leading @.
func (r *UserRepository) ByUsername(username string) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(
		"SELECT id, chat_id, COALESCE(username, ''), created_at FROM users WHERE LOWER(username) = LOWER(?)",
		username,
	).Scan(&u.ID, &u.ChatID, &u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by username: %v", err)
	}
	return u, nil
}
