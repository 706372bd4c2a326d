// ABOUTME: Static field descriptors and eligibility filtering for persistence
// ABOUTME: Applies the registry rules: private marker, reserved names, callables, include/exclude

package persist

import (
	"reflect"
	"strings"
)

// Descriptor statically declares one persistable field: its name and the
// default value adopted when the store holds no row for it.
type Descriptor struct {
	Name    string
	Default any
}

// Options controls which declared fields are wrapped and how their storage
// keys are formed. Applied once, at attachment time.
type Options struct {
	// Exclude lists field names that are never wrapped.
	Exclude []string
	// Include, when non-nil, is the sole filter: only listed names are
	// wrapped, irrespective of Exclude.
	Include []string
	// Prefix namespaces storage keys as prefix+name. Defaults to "".
	Prefix string
}

// privateMarker prefixes field names that are never persisted.
const privateMarker = "_"

// reservedNames collide with the hosting runtime's own machinery and are
// never persisted.
var reservedNames = map[string]bool{
	"constructor": true,
}

// DiscoverFields returns the names eligible for persistence, in declaration
// order with duplicates removed (first declaration wins). A name is dropped
// when it carries the private marker, is reserved, holds a callable default,
// is excluded, or is absent from a non-nil Include list.
func DiscoverFields(descs []Descriptor, opts Options) []string {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	var included map[string]bool
	if opts.Include != nil {
		included = make(map[string]bool, len(opts.Include))
		for _, name := range opts.Include {
			included[name] = true
		}
	}

	seen := make(map[string]bool, len(descs))
	var out []string
	for _, d := range descs {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true

		if d.Name == "" || strings.HasPrefix(d.Name, privateMarker) || reservedNames[d.Name] {
			continue
		}
		if isCallable(d.Default) {
			continue
		}
		if included != nil {
			if !included[d.Name] {
				continue
			}
		} else if excluded[d.Name] {
			continue
		}

		out = append(out, d.Name)
	}
	return out
}

func isCallable(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
