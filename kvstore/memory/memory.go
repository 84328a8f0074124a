package memory

import (
	"context"
	"sync"
)

// Store is an in-memory implementation of kvstore.KVStore
// Used when no durable storage medium is available; entries do not
// survive process restart. Also suitable for testing
type Store struct {
	data sync.Map // map[string][]byte
}

// New creates a new in-memory KVStore
func New() *Store {
	return &Store{}
}

// Put stores a key-value pair
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	s.data.Store(key, value)
	return nil
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := s.data.Load(key)
	if !ok {
		return nil, nil
	}
	return val.([]byte), nil
}

// Delete removes a key-value pair
func (s *Store) Delete(ctx context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

// Close releases any resources
func (s *Store) Close() error {
	return nil
}
