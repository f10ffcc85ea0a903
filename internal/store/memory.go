package store

import (
	"context"
	"encoding/json"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

// NewMemoryStore создает хранилище в памяти для тестов и локальных запусков.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]json.RawMessage)}
}

// Get возвращает документ коллекции целиком.
func (s *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out, nil
}

// Set заменяет документ коллекции целиком.
func (s *MemoryStore) Set(_ context.Context, key string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)
	s.docs[key] = stored
	return nil
}

// Close ничего не освобождает.
func (s *MemoryStore) Close() error {
	return nil
}
