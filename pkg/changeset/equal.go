package changeset

import "reflect"

// equalStrict is a tight equality test over unwrapped raw values that avoids
// reflection for the common scalar types. Both type and value must match, so
// int(1) and int64(1) compare unequal.
//
// Composite values (maps, slices, structs, pointers, ...) fall back to
// reflect.DeepEqual, which also rejects mismatched types.
func equalStrict(a, b any) bool {
	switch va := a.(type) {
	case nil:
		return b == nil
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case int:
		vb, ok := b.(int)
		return ok && va == vb
	case int64:
		vb, ok := b.(int64)
		return ok && va == vb
	case float64:
		vb, ok := b.(float64)
		return ok && va == vb
	}
	return reflect.DeepEqual(a, b)
}
