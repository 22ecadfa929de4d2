package database

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"ifly-videos-bot/internal/models"
	"ifly-videos-bot/internal/session"
)

// SessionRepository implements session.Store on the sessions table. The
// partial unique index idx_sessions_live backs the one-live-session-per-chat
// invariant even if two updates race.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ session.Store = (*SessionRepository)(nil)

func (r *SessionRepository) Create(s models.Session) error {
	_, err := r.db.Exec(`
		INSERT INTO sessions (id, ifly_chat_id, target_chat_id, username, status, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.IFLYChatID, s.TargetChatID, s.Username, string(s.Status), s.ExpiresAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return session.ErrSessionExists
		}
		return fmt.Errorf("insert session: %v", err)
	}
	return nil
}

func (r *SessionRepository) Live(iflyChatID int64) (models.Session, error) {
	return r.scanOne(r.db.QueryRow(`
		SELECT id, ifly_chat_id, target_chat_id, username, status, expires_at, created_at
		FROM sessions
		WHERE ifly_chat_id = ? AND status IN ('pending', 'active')
		ORDER BY created_at DESC
		LIMIT 1`, iflyChatID))
}

func (r *SessionRepository) Get(id string) (models.Session, error) {
	return r.scanOne(r.db.QueryRow(`
		SELECT id, ifly_chat_id, target_chat_id, username, status, expires_at, created_at
		FROM sessions
		WHERE id = ?`, id))
}

func (r *SessionRepository) SetStatus(id string, status models.SessionStatus) error {
	result, err := r.db.Exec(
		"UPDATE sessions SET status = ? WHERE id = ?",
		string(status), id)
	if err != nil {
		return fmt.Errorf("update session status: %v", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) Activate(id string, expiresAt int64) error {
	result, err := r.db.Exec(
		"UPDATE sessions SET status = 'active', expires_at = ? WHERE id = ? AND status = 'pending'",
		expiresAt, id)
	if err != nil {
		return fmt.Errorf("activate session: %v", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) scanOne(row *sql.Row) (models.Session, error) {
	var s models.Session
	var status string
	err := row.Scan(&s.ID, &s.IFLYChatID, &s.TargetChatID, &s.Username, &status, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, session.ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("scan session: %v", err)
	}
	s.Status = models.SessionStatus(status)
	return s, nil
}
