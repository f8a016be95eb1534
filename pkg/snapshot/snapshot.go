// Package snapshot provides ready-made [changeset.Snapshot] implementations
// for plain Go data: string-keyed maps, slices and structs.
//
// Constructors wrap nested maps, slices and structs into snapshots of their
// own, so the changeset engine recurses into them instead of comparing them
// as opaque values.
package snapshot

import "reflect"

// wrapValue turns nestable values into snapshots and leaves everything else
// untouched.
func wrapValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return FromMap(t)
	case []any:
		return FromSlice(t)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return v
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		if obj, err := FromStruct(v); err == nil {
			return obj
		}
	}
	return v
}
