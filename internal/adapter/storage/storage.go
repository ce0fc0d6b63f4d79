// Package storage adapts the hierarchical key-value catalog store to
// the core product repository port. Two interchangeable backends exist:
// an embedded LevelDB database and a PostgreSQL table, both keyed by
// full record paths.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is the store-level missing-key condition, distinct
// from connectivity failures.
var ErrKeyNotFound = errors.New("key not found")

// An Entry is one raw key-to-record pair of the catalog snapshot.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the minimal surface the repository needs from a backend.
// List returns entries in lexicographic key order.
type Store interface {
	List(ctx context.Context, prefix string) ([]Entry, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
