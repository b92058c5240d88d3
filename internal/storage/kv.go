// Package storage provides the persistent key-value store backing the card
// collection and the active session record. Values are opaque byte slices;
// a Set replaces the full value atomically.
package storage

import "context"

// KV is the store contract consumed by the repositories.
type KV interface {
	// Get returns the value for key and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set writes the full value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Compile-time interface checks.
var (
	_ KV = (*SQLKV)(nil)
	_ KV = (*Memory)(nil)
)
