package kvstore

import (
	"context"
)

// KVStore defines a generic durable key-value store interface
// Keys are short fixed strings (one per dataset kind), values are
// serialized cache envelopes
type KVStore interface {
	// Put stores a key-value pair
	Put(ctx context.Context, key string, value []byte) error

	// Get retrieves a value by key
	// Returns nil if key doesn't exist
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key-value pair
	Delete(ctx context.Context, key string) error

	// Close releases any resources
	Close() error
}
