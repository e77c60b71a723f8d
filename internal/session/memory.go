package session

import (
	"context"
	"sync"

	"parkflow/internal/domain"
)

// MemoryStore is an in-process Store used in tests and single-node
// setups without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (s *MemoryStore) Get(ctx context.Context, sid string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sid], nil
}

func (s *MemoryStore) Set(ctx context.Context, sid string, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = sess
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
