package preferences

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return clone(value), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = clone(value)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
