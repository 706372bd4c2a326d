// ABOUTME: Package documentation for the persistence engine
// ABOUTME: Describes field wrapping, the lazy-load/write-through contract, and failure behavior

// Package persist transparently persists declared fields of an object into a
// durable key-value table.
//
// Fields are declared statically as Descriptors (name plus default value).
// At construction, New binds the object to a backing store supplied by a
// StorageProvider, ensures the schema once, and wraps every field the
// registry selects. Each wrapped Field lazily hydrates from the store on its
// first read and writes through on every Set: the in-memory cache updates
// immediately, then the durable upsert is attempted.
//
// No failure here is ever fatal to the hosting object. A missing or
// unreachable store, a failed load, a failed write, or a non-serializable
// value all degrade to plain in-memory behavior for that operation, with a
// log line. Durability is only guaranteed for writes whose upsert succeeded.
//
// Instances assume the hosting runtime serializes all access per object;
// there is no internal locking.
package persist
