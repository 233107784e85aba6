package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Suitable for a single instance only.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uint, ttl time.Duration) (string, error) {
	id := newSessionID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[id] = entry{userID: userID, expiresAt: s.now().Add(ttl)}
	return id, nil
}

func (s *MemoryStore) Lookup(_ context.Context, sessionID string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, sessionID)
		return 0, ErrSessionNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Destroy(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
