// ABOUTME: SQLite implementation of the Adapter interface using modernc.org/sqlite
// ABOUTME: Provides the single key-value table with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Adapter interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
// Parent directories are created if needed. The schema itself is not created
// here; the engine calls EnsureSchema once at attachment time.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	logger.Info("SQLite store opened", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

// EnsureSchema creates the key-value table if it doesn't exist.
// Safe to call multiple times.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS persistent_fields (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Lookup returns the row for key, or ErrNotFound if none exists.
func (s *SQLiteStore) Lookup(ctx context.Context, key string) (*Row, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT key, value, created_at, updated_at
		FROM persistent_fields
		WHERE key = ?
	`, key)

	var r Row
	err := row.Scan(&r.Key, &r.Value, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up key %q: %w", key, err)
	}
	return &r, nil
}

// Upsert inserts or replaces the value for key. The original created_at is
// preserved on replace; updated_at is always set to ts.
func (s *SQLiteStore) Upsert(ctx context.Context, key, value string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO persistent_fields (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, ts, ts)
	if err != nil {
		return fmt.Errorf("upserting key %q: %w", key, err)
	}
	return nil
}

// ListRows returns every row in the backing table ordered by key. Not part
// of the Adapter contract; used by inspection tooling.
func (s *SQLiteStore) ListRows(ctx context.Context) ([]*Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value, created_at, updated_at
		FROM persistent_fields
		ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("listing rows: %w", err)
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Key, &r.Value, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
