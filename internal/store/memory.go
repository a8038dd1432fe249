package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process provider used by tests and the memory
// driver. Contents do not survive a restart.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]json.RawMessage),
	}
}

// Load returns a copy of the stored documents, or nil if the collection
// has never been written.
func (s *MemoryStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, nil
	}
	out := make([]json.RawMessage, len(docs))
	copy(out, docs)
	return out, nil
}

// Replace overwrites the collection with the given documents.
func (s *MemoryStore) Replace(ctx context.Context, collection string, docs []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]json.RawMessage, len(docs))
	copy(stored, docs)
	s.collections[collection] = stored
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
