package resources

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store implementation mirroring the Postgres
// store's behavior, including the atomicity of its find-and-update
// operations. It backs the test suite.
type MemStore struct {
	mu    sync.RWMutex
	byID  map[string]*Resource
	order []string // ids in insertion order
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{byID: make(map[string]*Resource)}
}

func (s *MemStore) Create(_ context.Context, res *Resource) (*Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[res.ID]; exists {
		return nil, ErrDuplicateID
	}
	stored := *res
	stored.Data = append([]any(nil), res.Data...)
	s.byID[res.ID] = &stored
	s.order = append(s.order, res.ID)
	return res, nil
}

func (s *MemStore) FindAll(_ context.Context) ([]Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Resource, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out, nil
}

func (s *MemStore) UpdateData(_ context.Context, id string, data []any, modified int64) (*Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	res.Data = append([]any(nil), data...)
	res.Modified = modified
	copied := *res
	return &copied, nil
}

func (s *MemStore) SoftDelete(_ context.Context, id string, now int64) (*Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.byID[id]
	if !ok || res.Deleted != nil {
		return nil, ErrNotFound
	}
	res.Data = []any{}
	res.Modified = now
	deleted := now
	res.Deleted = &deleted
	copied := *res
	return &copied, nil
}
