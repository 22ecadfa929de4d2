package session

import (
	"errors"
	"testing"
	"time"

	"ifly-videos-bot/internal/models"
)

const (
	chatID   = int64(-100123)
	memberID = int64(555)
)

func newTestManager(length time.Duration) (*Manager, *InMemoryStore, *time.Time) {
	store := NewInMemoryStore()
	m := NewManager(store, length)
	current := time.Date(2025, time.August, 21, 14, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }
	return m, store, &current
}

func TestBeginCreatesPending(t *testing.T) {
	m, _, _ := newTestManager(30 * time.Minute)

	s, err := m.Begin(chatID, memberID, "bob")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if s.ID == "" {
		t.Fatal("expected a session id")
	}
	if s.Status != models.SessionPending {
		t.Fatalf("expected pending, got %s", s.Status)
	}

	if _, err := m.Pending(chatID); err != nil {
		t.Fatalf("pending: %v", err)
	}
	if _, err := m.Active(chatID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession before confirm, got %v", err)
	}
}

func TestBeginRejectsSecondSession(t *testing.T) {
	m, _, _ := newTestManager(30 * time.Minute)

	if _, err := m.Begin(chatID, memberID, "bob"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := m.Begin(chatID, 777, "alice"); !errors.Is(err, ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	// Still rejected after confirmation.
	s, _ := m.Pending(chatID)
	if _, err := m.Confirm(s.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := m.Begin(chatID, 777, "alice"); !errors.Is(err, ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists while active, got %v", err)
	}
}

func TestConfirmActivatesAndRearmsExpiry(t *testing.T) {
	m, _, current := newTestManager(30 * time.Minute)

	s, err := m.Begin(chatID, memberID, "bob")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	*current = current.Add(10 * time.Minute)
	confirmed, err := m.Confirm(s.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != models.SessionActive {
		t.Fatalf("expected active, got %s", confirmed.Status)
	}
	if want := current.Add(30 * time.Minute).Unix(); confirmed.ExpiresAt != want {
		t.Fatalf("expected expiry %d, got %d", want, confirmed.ExpiresAt)
	}

	active, err := m.Active(chatID)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.TargetChatID != memberID {
		t.Fatalf("expected target %d, got %d", memberID, active.TargetChatID)
	}
}

func TestConfirmTwiceFails(t *testing.T) {
	m, _, _ := newTestManager(30 * time.Minute)

	s, _ := m.Begin(chatID, memberID, "bob")
	if _, err := m.Confirm(s.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := m.Confirm(s.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession on second confirm, got %v", err)
	}
}

func TestLazyExpiry(t *testing.T) {
	m, store, current := newTestManager(30 * time.Minute)

	s, _ := m.Begin(chatID, memberID, "bob")
	if _, err := m.Confirm(s.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	*current = current.Add(31 * time.Minute)
	if _, err := m.Active(chatID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession past expiry, got %v", err)
	}

	// The row was flipped to expired on access.
	row, err := store.Get(s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.Status != models.SessionExpired {
		t.Fatalf("expected expired, got %s", row.Status)
	}

	// The chat is free again.
	if _, err := m.Begin(chatID, 777, "alice"); err != nil {
		t.Fatalf("begin after expiry: %v", err)
	}
}

func TestConfirmExpiredPending(t *testing.T) {
	m, _, current := newTestManager(30 * time.Minute)

	s, _ := m.Begin(chatID, memberID, "bob")
	*current = current.Add(time.Hour)

	if _, err := m.Confirm(s.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired pending, got %v", err)
	}
	if _, err := m.Begin(chatID, memberID, "bob"); err != nil {
		t.Fatalf("begin after expired pending: %v", err)
	}
}

func TestStop(t *testing.T) {
	m, _, _ := newTestManager(30 * time.Minute)

	if err := m.Stop(chatID); err != nil {
		t.Fatalf("stop without session: %v", err)
	}

	s, _ := m.Begin(chatID, memberID, "bob")
	if _, err := m.Confirm(s.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := m.Stop(chatID); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, err := m.Active(chatID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after stop, got %v", err)
	}
	if _, err := m.Begin(chatID, memberID, "bob"); err != nil {
		t.Fatalf("begin after stop: %v", err)
	}
}
