// ABOUTME: Mock Adapter implementation for testing
// ABOUTME: Allows tests to run without SQLite and to inject store failures

package store

import (
	"context"
	"sync"
	"time"
)

// MockStore is an in-memory Adapter implementation for testing. Failures can
// be injected by setting the Fail* fields; call counters record how often
// each operation was invoked.
type MockStore struct {
	mu   sync.RWMutex
	rows map[string]*Row

	// Injected failures. When non-nil, the corresponding operation returns
	// the error without touching the rows.
	FailEnsureSchema error
	FailLookup       error
	FailUpsert       error

	// Call counters.
	EnsureSchemaCalls int
	LookupCalls       int
	UpsertCalls       int
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{rows: make(map[string]*Row)}
}

// EnsureSchema records the call and returns any injected failure.
func (m *MockStore) EnsureSchema(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnsureSchemaCalls++
	return m.FailEnsureSchema
}

// Lookup returns the row for key, or ErrNotFound.
func (m *MockStore) Lookup(ctx context.Context, key string) (*Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LookupCalls++
	if m.FailLookup != nil {
		return nil, m.FailLookup
	}

	row, ok := m.rows[key]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to avoid external modification
	r := *row
	return &r, nil
}

// Upsert inserts or replaces the value for key.
func (m *MockStore) Upsert(ctx context.Context, key, value string, ts time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpsertCalls++
	if m.FailUpsert != nil {
		return m.FailUpsert
	}

	if existing, ok := m.rows[key]; ok {
		existing.Value = value
		existing.UpdatedAt = ts
		return nil
	}

	m.rows[key] = &Row{Key: key, Value: value, CreatedAt: ts, UpdatedAt: ts}
	return nil
}

// RowCount returns the number of stored rows.
func (m *MockStore) RowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

// Close is a no-op.
func (m *MockStore) Close() error {
	return nil
}
