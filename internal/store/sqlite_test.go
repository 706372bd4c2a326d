// ABOUTME: Tests for the SQLite Adapter implementation
// ABOUTME: Covers schema creation, lookup/upsert semantics, timestamps, and durability

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return s
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer s.Close()

	// Verify the database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	ctx := context.Background()
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("third EnsureSchema failed: %v", err)
	}
}

func TestLookup_NotFound(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	_, err := s.Lookup(context.Background(), "missing")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsert_InsertAndLookup(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Second)

	if err := s.Upsert(ctx, "counter", "5", ts); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	row, err := s.Lookup(ctx, "counter")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if row.Key != "counter" {
		t.Errorf("Key mismatch: got %q, want %q", row.Key, "counter")
	}
	if row.Value != "5" {
		t.Errorf("Value mismatch: got %q, want %q", row.Value, "5")
	}
	if !row.CreatedAt.Equal(ts) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", row.CreatedAt, ts)
	}
	if !row.UpdatedAt.Equal(ts) {
		t.Errorf("UpdatedAt mismatch: got %v, want %v", row.UpdatedAt, ts)
	}
}

func TestUpsert_ReplacePreservesCreatedAt(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	ctx := context.Background()
	first := time.Now().UTC().Truncate(time.Second)
	second := first.Add(10 * time.Second)

	if err := s.Upsert(ctx, "counter", "5", first); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if err := s.Upsert(ctx, "counter", "7", second); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	row, err := s.Lookup(ctx, "counter")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if row.Value != "7" {
		t.Errorf("Value mismatch: got %q, want %q", row.Value, "7")
	}
	if !row.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt was not preserved: got %v, want %v", row.CreatedAt, first)
	}
	if !row.UpdatedAt.Equal(second) {
		t.Errorf("UpdatedAt was not bumped: got %v, want %v", row.UpdatedAt, second)
	}
}

func TestListRows(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Second)

	for _, key := range []string{"b", "a", "c"} {
		if err := s.Upsert(ctx, key, "1", ts); err != nil {
			t.Fatalf("Upsert %q failed: %v", key, err)
		}
	}

	rows, err := s.ListRows(ctx)
	if err != nil {
		t.Fatalf("ListRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Ordered by key
	for i, want := range []string{"a", "b", "c"} {
		if rows[i].Key != want {
			t.Errorf("row %d: got key %q, want %q", i, rows[i].Key, want)
		}
	}
}

func TestDurability_AcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Second)

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if err := s.Upsert(ctx, "counter", "5", ts); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopening store failed: %v", err)
	}
	defer reopened.Close()

	row, err := reopened.Lookup(ctx, "counter")
	if err != nil {
		t.Fatalf("Lookup after reopen failed: %v", err)
	}
	if row.Value != "5" {
		t.Errorf("Value mismatch after reopen: got %q, want %q", row.Value, "5")
	}
}
