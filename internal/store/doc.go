// ABOUTME: Package documentation for the backing store
// ABOUTME: Describes the Adapter contract, the SQLite implementation, and the mock

// Package store provides the durable key-value backing for persisted fields.
//
// # Architecture
//
// The engine consumes the Adapter interface and nothing more:
//
//   - EnsureSchema: idempotent creation of the single key-value table
//   - Lookup: point read by storage key
//   - Upsert: insert-or-replace by storage key
//
// SQLiteStore is the production implementation. MockStore is an in-memory
// double with failure injection for tests.
//
// # Schema
//
// One flat table holds every persisted field:
//
//	CREATE TABLE IF NOT EXISTS persistent_fields (
//		key        TEXT PRIMARY KEY,
//		value      TEXT NOT NULL,
//		created_at DATETIME NOT NULL,
//		updated_at DATETIME NOT NULL
//	);
//
// value holds the field's canonical text encoding (see package portable).
// created_at is set on first insert and preserved across upserts; updated_at
// is bumped on every write.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//
// # Error Handling
//
// Lookup returns ErrNotFound when no row exists for a key. All methods accept
// context.Context for cancellation support.
//
// # Testing
//
// Use NewMockStore() for unit tests and NewSQLiteStore with a t.TempDir()
// path for integration tests with real SQLite.
package store
