// ABOUTME: Attachment protocol binding an object instance to a backing store
// ABOUTME: Wraps eligible fields once at construction; persistence is optional and self-disabling

package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/2389/fieldstore/internal/store"
)

// ErrUnknownField is returned for field names that were never declared.
var ErrUnknownField = errors.New("unknown field")

// StorageProvider supplies the backing store handle at construction time.
// A hosting runtime without a store passes nil and gets a plain in-memory
// object.
type StorageProvider interface {
	Storage() store.Adapter
}

// Object owns the wrapped fields of one persisted instance. The store handle
// is shared with the hosting runtime, not owned; durable rows outlive the
// Object. Not safe for concurrent use; the hosting runtime serializes access
// per instance.
type Object struct {
	id       string
	fields   map[string]*Field
	order    []string      // declaration order of all retained fields
	eligible []string      // registry output, in discovery order
	adapter  store.Adapter // nil when persistence is disabled
	logger   *slog.Logger
}

// New binds a freshly constructed instance to its backing store and wraps
// every eligible declared field. Setup runs exactly once, here. The schema
// is ensured once per attachment, never per field access. If provider is
// nil, supplies no adapter, or schema creation fails, persistence is
// disabled for the instance and every field behaves as a plain in-memory
// value. Declared fields the registry drops are retained unwrapped: their
// reads and writes never touch the store.
func New(ctx context.Context, provider StorageProvider, descs []Descriptor, opts Options) *Object {
	o := &Object{
		id:     uuid.NewString(),
		fields: make(map[string]*Field, len(descs)),
	}
	o.logger = slog.Default().With("component", "persist", "instance", o.id)

	if provider != nil {
		o.adapter = provider.Storage()
	}
	if o.adapter != nil {
		if err := o.adapter.EnsureSchema(ctx); err != nil {
			o.logger.Error("schema initialization failed, persistence disabled", "error", err)
			o.adapter = nil
		}
	}

	o.eligible = DiscoverFields(descs, opts)
	wrapped := make(map[string]bool, len(o.eligible))
	for _, name := range o.eligible {
		wrapped[name] = true
	}

	for _, d := range descs {
		if _, ok := o.fields[d.Name]; ok {
			// first declaration wins
			continue
		}
		f := &Field{
			name:   d.Name,
			def:    d.Default,
			logger: o.logger,
		}
		if o.adapter != nil && wrapped[d.Name] {
			f.key = opts.Prefix + d.Name
			f.store = o.adapter
		} else {
			// Plain in-memory fields have nothing to hydrate; they are born
			// Loaded so a write before the first read survives that read.
			f.state = stateLoaded
			f.cached = d.Default
		}
		o.fields[d.Name] = f
		o.order = append(o.order, d.Name)
	}

	return o
}

// Get reads the named field, hydrating it on first access.
func (o *Object) Get(ctx context.Context, name string) (any, error) {
	f, ok := o.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f.Get(ctx), nil
}

// Set writes the named field through to the store. Store failures are logged
// and degrade to in-memory behavior; the only error Set returns is for an
// undeclared name.
func (o *Object) Set(ctx context.Context, name string, v any) error {
	f, ok := o.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.Set(ctx, v)
	return nil
}

// Field returns the accessor wrapper for a declared name.
func (o *Object) Field(name string) (*Field, bool) {
	f, ok := o.fields[name]
	return f, ok
}

// FieldNames returns every retained field name in declaration order.
func (o *Object) FieldNames() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

// EligibleFields returns the registry output: the names selected for
// persistence, in discovery order.
func (o *Object) EligibleFields() []string {
	out := make([]string, len(o.eligible))
	copy(out, o.eligible)
	return out
}

// Persistent reports whether this instance is backed by a store.
func (o *Object) Persistent() bool {
	return o.adapter != nil
}
