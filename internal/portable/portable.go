// ABOUTME: Serializability validation and canonical text encoding for field values
// ABOUTME: Decides what can round-trip through the store's TEXT column and performs the codec

package portable

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Portable is implemented by values that supply their own portable form.
// Encode stores the result of PortableForm instead of the value itself.
type Portable interface {
	PortableForm() any
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	portableType      = reflect.TypeOf((*Portable)(nil)).Elem()
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// IsSerializable reports whether v can round-trip through the store's text
// encoding. It is pure: v is never mutated, and cyclic values terminate.
func IsSerializable(v any) bool {
	return isSerializable(reflect.ValueOf(v), make(map[uintptr]bool))
}

func isSerializable(rv reflect.Value, seen map[uintptr]bool) bool {
	if !rv.IsValid() {
		// untyped nil
		return true
	}

	t := rv.Type()
	if t == timeType {
		return true
	}
	if t.Implements(portableType) || t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return true
	}

	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true

	case reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isSerializable(rv.Elem(), seen)

	case reflect.Pointer:
		if rv.IsNil() {
			return true
		}
		if seen[rv.Pointer()] {
			return true
		}
		seen[rv.Pointer()] = true
		return isSerializable(rv.Elem(), seen)

	case reflect.Slice:
		if rv.IsNil() {
			return true
		}
		if seen[rv.Pointer()] {
			return true
		}
		seen[rv.Pointer()] = true
		for i := 0; i < rv.Len(); i++ {
			if !isSerializable(rv.Index(i), seen) {
				return false
			}
		}
		return true

	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !isSerializable(rv.Index(i), seen) {
				return false
			}
		}
		return true

	case reflect.Map:
		if rv.IsNil() {
			return true
		}
		// Only string-keyed mappings have a stable text form.
		if t.Key().Kind() != reflect.String {
			return false
		}
		if seen[rv.Pointer()] {
			return true
		}
		seen[rv.Pointer()] = true
		iter := rv.MapRange()
		for iter.Next() {
			if !isSerializable(iter.Value(), seen) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if !isSerializable(rv.Field(i), seen) {
				return false
			}
		}
		return true

	default:
		// Func, Chan, Complex64/128, Uintptr, UnsafePointer
		return false
	}
}

// Encode renders v in the canonical text encoding (JSON; time values become
// RFC 3339 strings). Values implementing Portable are converted first.
func Encode(v any) (string, error) {
	if p, ok := v.(Portable); ok {
		v = p.PortableForm()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding value: %w", err)
	}
	return string(data), nil
}

// Decode parses a canonical text encoding produced by Encode. The result
// carries JSON's dynamic shapes: numbers as float64, arrays as []any,
// objects as map[string]any.
func Decode(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	return v, nil
}
