// ABOUTME: Adapter interface and data types for field persistence
// ABOUTME: Defines the Row type and the minimal contract the engine requires from a store

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no row exists for a requested key.
var ErrNotFound = errors.New("not found")

// Row is one persisted field value in the backing table.
type Row struct {
	Key       string
	Value     string // serialized text form of the field value
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Adapter is the contract the persistence engine requires from a durable
// store. Implementations must treat EnsureSchema as idempotent; the engine
// calls it exactly once per attachment, never per field access.
type Adapter interface {
	// EnsureSchema creates the backing table if it does not exist.
	EnsureSchema(ctx context.Context) error

	// Lookup returns the row for key, or ErrNotFound if none exists.
	Lookup(ctx context.Context, key string) (*Row, error)

	// Upsert inserts or replaces the value for key. created_at is preserved
	// on replace; updated_at is set to ts.
	Upsert(ctx context.Context, key, value string, ts time.Time) error

	// Close releases any resources held by the store.
	Close() error
}
