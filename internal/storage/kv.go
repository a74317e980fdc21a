// Package storage provides the durable key-value layer behind per-user
// collections. Values are whole serialized JSON documents written
// atomically; there are no partial updates at this layer.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for keys that have never been written.
var ErrKeyNotFound = errors.New("key not found")

// Store is a minimal durable KV abstraction. Set replaces the whole value
// for a key atomically, so readers never observe a torn write.
type Store interface {
	// Get returns the value stored at key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value at key, replacing any previous value. Entries do
	// not expire.
	Set(ctx context.Context, key string, value []byte) error
}
