// Package memory implements an in-memory document store for development and testing.
package memory

import (
	"context"
	"sync"

	"bodylog/internal/domain"
)

// DB implements an in-memory document storage.
type DB struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{docs: make(map[string][]byte)}
}

// Ensure interfaces are met.
var _ domain.DocumentStore = (*DB)(nil)

// Get returns a copy of the document stored at key, or nil.
func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	doc, ok := db.docs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, doc...), nil
}

// Put replaces the document stored at key.
func (db *DB) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	db.docs[key] = append([]byte{}, data...)
	return nil
}

// Close is a no-op kept for parity with the durable stores.
func (db *DB) Close() error {
	return nil
}
