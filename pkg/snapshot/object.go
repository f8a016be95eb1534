package snapshot

import (
	"fmt"
	"reflect"

	"github.com/totem-project/totem/pkg/changeset"
)

// Object is a snapshot of a struct's exported fields, in declaration order.
// Field names can be renamed or skipped with a `totem` struct tag:
//
//	type User struct {
//		Name     string `totem:"name"`
//		internal int           // unexported, ignored
//		Secret   string `totem:"-"` // skipped
//	}
//
// Two Objects are comparable only when they snapshot the same Go type.
type Object struct {
	raw     any
	typ     reflect.Type
	keys    []string
	entries map[string]any
}

var _ changeset.Snapshot = (*Object)(nil)

// FromStruct snapshots v, which must be a struct or a non-nil pointer to
// one.
func FromStruct(v any) (*Object, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("snapshot: cannot snapshot nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("snapshot: cannot snapshot %T: not a struct", v)
	}

	typ := rv.Type()
	s := &Object{
		raw:     v,
		typ:     typ,
		entries: make(map[string]any, typ.NumField()),
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("totem"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		s.keys = append(s.keys, name)
		s.entries[name] = wrapValue(rv.Field(i).Interface())
	}
	return s, nil
}

func (s *Object) Keys() []string { return s.keys }

func (s *Object) Entry(key string) (any, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *Object) Raw() any { return s.raw }

// ComparableWith only accepts Objects built from the same struct type;
// anything else surfaces as a flat modification.
func (s *Object) ComparableWith(other changeset.Snapshot) bool {
	o, ok := other.(*Object)
	return ok && o.typ == s.typ
}
