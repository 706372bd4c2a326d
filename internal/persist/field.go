// ABOUTME: Per-field persistence interception: lazy load on first read, write-through on write
// ABOUTME: Holds the cached value and the Uninitialized/Loaded state machine

package persist

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/2389/fieldstore/internal/portable"
	"github.com/2389/fieldstore/internal/store"
)

type fieldState uint8

const (
	stateUninitialized fieldState = iota
	stateLoaded
)

// Field is the accessor wrapper for one declared field. All access to the
// underlying value goes through Get and Set. A Field is not safe for
// concurrent use; the hosting runtime serializes access per instance.
type Field struct {
	name   string
	key    string
	def    any
	cached any
	state  fieldState
	store  store.Adapter // nil when the field is not wrapped
	logger *slog.Logger
}

// Name returns the declared field name.
func (f *Field) Name() string { return f.name }

// StorageKey returns the fully qualified key addressing this field's row.
// Empty for fields that are not wrapped.
func (f *Field) StorageKey() string { return f.key }

// Loaded reports whether the field has been hydrated. Fields that are not
// wrapped have nothing to hydrate and are born Loaded.
func (f *Field) Loaded() bool { return f.state == stateLoaded }

// Persistent reports whether reads and writes reach the store.
func (f *Field) Persistent() bool { return f.store != nil }

// Get returns the field's current value. The first read hydrates the field:
// the store row wins if one exists, otherwise the default captured at wrap
// time. A failed lookup or an unreadable row degrades to the default. The
// field becomes Loaded exactly once, on this first read, whatever the
// outcome.
func (f *Field) Get(ctx context.Context) any {
	if f.state == stateUninitialized {
		f.hydrate(ctx)
	}
	return f.cached
}

func (f *Field) hydrate(ctx context.Context) {
	f.state = stateLoaded
	f.cached = f.def

	row, err := f.store.Lookup(ctx, f.key)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		f.logger.Warn("field load failed, using default", "field", f.name, "key", f.key, "error", err)
		return
	}

	v, err := portable.Decode(row.Value)
	if err != nil {
		f.logger.Warn("stored value unreadable, using default", "field", f.name, "key", f.key, "error", err)
		return
	}
	f.cached = v
}

// Set caches v immediately, then writes it through to the store.
// Non-serializable values stay in memory only. A failed upsert keeps the
// cached value; memory and store then disagree until the next successful
// write of this field.
//
// Set never marks the field Loaded: a field written before its first read is
// still hydrated on that read, and the durable value (or the default)
// replaces the pending in-memory one. Known hazard, preserved deliberately;
// see DESIGN.md.
func (f *Field) Set(ctx context.Context, v any) {
	f.cached = v

	if f.store == nil {
		return
	}

	if !portable.IsSerializable(v) {
		f.logger.Warn("value not serializable, kept in memory only", "field", f.name, "key", f.key)
		return
	}

	encoded, err := portable.Encode(v)
	if err != nil {
		f.logger.Warn("value failed to encode, kept in memory only", "field", f.name, "key", f.key, "error", err)
		return
	}

	if err := f.store.Upsert(ctx, f.key, encoded, time.Now().UTC()); err != nil {
		f.logger.Error("field write failed, memory and store diverge", "field", f.name, "key", f.key, "error", err)
	}
}
