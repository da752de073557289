// Package kv is the thin adapter over the persistence substrate. It
// moves opaque byte values keyed by string and performs no domain
// validation; every rule about what the bytes mean lives above it.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key is absent. Delete
// never returns it; deleting a missing key is a no-op.
var ErrKeyNotFound = errors.New("kv: key not found")

// Entry is one key/value pair returned by a prefix scan.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the substrate contract: get, set, delete and list-by-prefix.
// Scan order is not guaranteed by this layer. Substrate failures are
// surfaced as-is, never swallowed.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Scan(ctx context.Context, prefix string) ([]Entry, error)
}
