// internal/adapters/session/memory.go
package session

import (
	"context"
	"sync"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// MemoryStore keeps the session for the lifetime of the process
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ ports.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, _ := decodeUser(s.values[domain.KeyUser])
	return domain.Session{Token: s.values[domain.KeyToken], User: user}, nil
}

func (s *MemoryStore) Set(_ context.Context, session domain.Session) error {
	user, err := encodeUser(session.User)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[domain.KeyToken] = session.Token
	s.values[domain.KeyUser] = user
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, domain.KeyToken)
	delete(s.values, domain.KeyUser)
	return nil
}

// Keys returns the keys currently stored
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
