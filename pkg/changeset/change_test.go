package changeset_test

import (
	"reflect"
	"testing"

	"github.com/totem-project/totem/pkg/changeset"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		kind changeset.Kind
		want string
	}{
		{changeset.Addition, "addition"},
		{changeset.Removal, "removal"},
		{changeset.Modification, "modification"},
		{changeset.NestedSet, "nested"},
		{changeset.Kind(0), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Fatalf("Kind(%d).String(): want %q, got %q", tc.kind, tc.want, got)
		}
	}
}

func TestChangeShapes(t *testing.T) {
	add := changeset.Added("v")
	if add.Kind() != changeset.Addition || add.Old() != nil || add.New() != "v" {
		t.Fatalf("Added: got %s(%v, %v)", add.Kind(), add.Old(), add.New())
	}
	rem := changeset.Removed("v")
	if rem.Kind() != changeset.Removal || rem.Old() != "v" || rem.New() != nil {
		t.Fatalf("Removed: got %s(%v, %v)", rem.Kind(), rem.Old(), rem.New())
	}
	mod := changeset.Modified(1, 2)
	if mod.Kind() != changeset.Modification || mod.Old() != 1 || mod.New() != 2 {
		t.Fatalf("Modified: got %s(%v, %v)", mod.Kind(), mod.Old(), mod.New())
	}
	if mod.Nested() != nil {
		t.Fatal("flat changes must not carry a nested set")
	}
}

func TestUnwrap(t *testing.T) {
	snap := newFake("x", 1)
	if got := changeset.Unwrap(snap); !reflect.DeepEqual(got, map[string]any{"x": 1}) {
		t.Fatalf("Unwrap(snapshot): got %v", got)
	}
	if got := changeset.Unwrap(42); got != 42 {
		t.Fatalf("Unwrap(plain): got %v", got)
	}
	if got := changeset.Unwrap(nil); got != nil {
		t.Fatalf("Unwrap(nil): got %v", got)
	}
}

// TestEqualityIsTypeStrict pins the modification rule down to exact
// value+type equality: int(1) and int64(1) are different values.
func TestEqualityIsTypeStrict(t *testing.T) {
	s := changeset.Diff(newFake("n", 1), newFake("n", int64(1)))
	c := mustChange(t, s, "n")
	if c.Kind() != changeset.Modification {
		t.Fatalf("differently typed equal values must be a modification, got %s", c.Kind())
	}
}

// TestEqualityOfComposites pins the open equality question for composite raw
// values: plain nested maps and slices not modeled as snapshots compare by
// deep structural equality, Go's default for dynamic values.
func TestEqualityOfComposites(t *testing.T) {
	oldSnap := newFake("m", map[string]any{"a": []any{1, 2}})
	newSnap := newFake("m", map[string]any{"a": []any{1, 2}})
	s := changeset.Diff(oldSnap, newSnap)
	if n := mustLen(t, s); n != 0 {
		t.Fatalf("structurally equal composites must not register, got %d changes", n)
	}

	s = changeset.Diff(oldSnap, newFake("m", map[string]any{"a": []any{1, 3}}))
	if c := mustChange(t, s, "m"); c.Kind() != changeset.Modification {
		t.Fatalf("want modification, got %s", c.Kind())
	}
}
