// Package session implements the upload-session lifecycle for the shared
// iFLY chat: none → pending → active → expired. A pending session is
// created when an uploader names a member, becomes active on explicit
// confirmation and expires lazily, on the first access past its deadline.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ifly-videos-bot/internal/models"
)

var (
	// ErrNotFound indicates the store holds no matching session row.
	ErrNotFound = errors.New("session not found")
	// ErrSessionExists indicates a pending or active session already holds the chat.
	ErrSessionExists = errors.New("an upload session is already in progress")
	// ErrNoSession indicates there is no live session to act on.
	ErrNoSession = errors.New("no live upload session")
)

// Store persists session rows so sessions survive process restarts.
type Store interface {
	Create(s models.Session) error
	// Live returns the newest pending or active session for the chat,
	// regardless of expiry. Expiry is the Manager's concern.
	Live(iflyChatID int64) (models.Session, error)
	Get(id string) (models.Session, error)
	SetStatus(id string, status models.SessionStatus) error
	// Activate flips a pending session to active with a fresh deadline.
	Activate(id string, expiresAt int64) error
}

// Manager drives the session state machine. It holds no session state of
// its own; everything lives in the store.
type Manager struct {
	store  Store
	length time.Duration
	now    func() time.Time
}

func NewManager(store Store, length time.Duration) *Manager {
	if store == nil {
		panic("session: store must not be nil")
	}
	return &Manager{store: store, length: length, now: time.Now}
}

// Begin creates a pending session for the chat. It is rejected with
// ErrSessionExists while any pending or active session exists.
func (m *Manager) Begin(iflyChatID, targetChatID int64, username string) (models.Session, error) {
	_, err := m.live(iflyChatID)
	if err == nil {
		return models.Session{}, ErrSessionExists
	}
	if !errors.Is(err, ErrNoSession) {
		return models.Session{}, err
	}

	s := models.Session{
		ID:           uuid.NewString(),
		IFLYChatID:   iflyChatID,
		TargetChatID: targetChatID,
		Username:     username,
		Status:       models.SessionPending,
		ExpiresAt:    m.now().Add(m.length).Unix(),
	}
	if err := m.store.Create(s); err != nil {
		if errors.Is(err, ErrSessionExists) {
			return models.Session{}, ErrSessionExists
		}
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// Confirm transitions a pending session to active and re-arms its deadline.
func (m *Manager) Confirm(id string) (models.Session, error) {
	s, err := m.store.Get(id)
	if errors.Is(err, ErrNotFound) {
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		return models.Session{}, err
	}

	if s.ExpiresAt <= m.now().Unix() {
		_ = m.store.SetStatus(s.ID, models.SessionExpired)
		return models.Session{}, ErrNoSession
	}
	if s.Status != models.SessionPending {
		return models.Session{}, ErrNoSession
	}

	expiresAt := m.now().Add(m.length).Unix()
	if err := m.store.Activate(s.ID, expiresAt); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Session{}, ErrNoSession
		}
		return models.Session{}, fmt.Errorf("activate session: %w", err)
	}
	s.Status = models.SessionActive
	s.ExpiresAt = expiresAt
	return s, nil
}

// Active returns the chat's active session, if one is live.
func (m *Manager) Active(iflyChatID int64) (models.Session, error) {
	s, err := m.live(iflyChatID)
	if err != nil {
		return models.Session{}, err
	}
	if s.Status != models.SessionActive {
		return models.Session{}, ErrNoSession
	}
	return s, nil
}

// Pending returns the chat's pending session, if one is live.
func (m *Manager) Pending(iflyChatID int64) (models.Session, error) {
	s, err := m.live(iflyChatID)
	if err != nil {
		return models.Session{}, err
	}
	if s.Status != models.SessionPending {
		return models.Session{}, ErrNoSession
	}
	return s, nil
}

// Stop expires whatever live session the chat has. Stopping a chat with
// no live session is not an error.
func (m *Manager) Stop(iflyChatID int64) error {
	s, err := m.store.Live(iflyChatID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return m.store.SetStatus(s.ID, models.SessionExpired)
}

// live loads the chat's live session and applies lazy expiry: a row past
// its deadline is flipped to expired and reported absent.
func (m *Manager) live(iflyChatID int64) (models.Session, error) {
	s, err := m.store.Live(iflyChatID)
	if errors.Is(err, ErrNotFound) {
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		return models.Session{}, err
	}
	if s.ExpiresAt <= m.now().Unix() {
		_ = m.store.SetStatus(s.ID, models.SessionExpired)
		return models.Session{}, ErrNoSession
	}
	return s, nil
}
