// Package store provides the key-value persistence port and its SQLite implementation.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a durable key-value store. Each key holds one serialized blob;
// writes replace the whole value.
type Store interface {
	// Get returns the raw value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value at key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Close closes the store.
	Close() error
}
