package store

import (
	"context"
	"errors"
)

// ErrNotFound reports an absent key.
var ErrNotFound = errors.New("store: not found")

// Store is the durable key-value contract the directory mirrors itself to:
// string keys mapped to serialized JSON blobs, surviving process restarts.
// Capacity and availability are not guaranteed; the directory treats the
// store as a passive mirror and never trusts it over its in-memory state
// except at cold-start load. Concrete drivers (sqlite, bolt, memory)
// implement this.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes the blob under key, replacing any previous value.
	// Last writer wins; there is no versioning across instances.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
