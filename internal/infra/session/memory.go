package session

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/turnolibre/internal/auth"
)

// MemoryStore is the single-process registry used when no redis is
// configured. Sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

var _ auth.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expires: map[string]time.Time{},
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, sess auth.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expires[sess.ID] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expires[id]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.expires, id)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.expires, id)
	return nil
}
