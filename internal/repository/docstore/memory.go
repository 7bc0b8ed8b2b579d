package docstore

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an in-process Store, used by tests and as a
// throwaway backend for local development.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string][]byte)}
}

// Load implements Store.
func (s *memoryStore) Load(ctx context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[collection]
	if !ok {
		return nil, nil
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Save implements Store.
func (s *memoryStore) Save(ctx context.Context, collection string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[collection] = cp
	return nil
}
