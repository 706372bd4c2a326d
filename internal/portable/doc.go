// ABOUTME: Package documentation for the portable value codec
// ABOUTME: Explains the serializability rules and the canonical encoding

// Package portable decides which values can be persisted and converts them
// to and from the store's text encoding.
//
// A value is serializable when it is nil, a string, a boolean, a number, a
// time.Time, a value exposing its own portable form (Portable,
// json.Marshaler, or encoding.TextMarshaler), or a slice, array, string-keyed
// map, or plain struct whose contents are all serializable. Functions,
// channels, and complex numbers are not serializable and never reach the
// store.
//
// The canonical encoding is JSON; time values render as RFC 3339 strings.
// Decoding yields JSON's dynamic shapes (float64 numbers, []any arrays,
// map[string]any objects).
package portable
