package session

import (
	"sync"

	"ifly-videos-bot/internal/models"
)

// NewInMemoryStore returns a Store backed by an in-memory map, for tests
// and local experiments. Production uses the sessions table.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]models.Session)}
}

type InMemoryStore struct {
	mu       sync.Mutex
	order    []string
	sessions map[string]models.Session
}

func (s *InMemoryStore) Create(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		existing := s.sessions[id]
		if existing.IFLYChatID == sess.IFLYChatID && existing.Status != models.SessionExpired {
			return ErrSessionExists
		}
	}
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	return nil
}

func (s *InMemoryStore) Live(iflyChatID int64) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.order) - 1; i >= 0; i-- {
		sess := s.sessions[s.order[i]]
		if sess.IFLYChatID == iflyChatID && sess.Status != models.SessionExpired {
			return sess, nil
		}
	}
	return models.Session{}, ErrNotFound
}

func (s *InMemoryStore) Get(id string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *InMemoryStore) SetStatus(id string, status models.SessionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.Status = status
	s.sessions[id] = sess
	return nil
}

func (s *InMemoryStore) Activate(id string, expiresAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Status != models.SessionPending {
		return ErrNotFound
	}
	sess.Status = models.SessionActive
	sess.ExpiresAt = expiresAt
	s.sessions[id] = sess
	return nil
}
