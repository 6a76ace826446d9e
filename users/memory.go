package users

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store implementation. It backs the test suite and
// mirrors the Postgres store's behavior, including the uniqueness guarantee.
type MemStore struct {
	mu    sync.RWMutex
	users map[string]User // keyed by username
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{users: make(map[string]User)}
}

func (s *MemStore) Create(_ context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return nil, ErrDuplicateUsername
	}
	user.ID = uuid.NewString()
	s.users[user.Username] = *user
	return user, nil
}

func (s *MemStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}
