package changeset

// Kind tags the variant of a [Change].
type Kind uint8

const (
	// Addition marks a key present only in the new snapshot.
	Addition Kind = iota + 1
	// Removal marks a key present only in the old snapshot.
	Removal
	// Modification marks a key whose raw value differs between snapshots.
	Modification
	// NestedSet marks a key whose comparable sub-snapshots differ; the
	// change carries their recursively computed change-set.
	NestedSet
)

func (k Kind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Removal:
		return "removal"
	case Modification:
		return "modification"
	case NestedSet:
		return "nested"
	default:
		return "unknown"
	}
}

// Change records how the value under a single key differs between two
// snapshots. It is a tagged union over the four [Kind] variants; only the
// payload accessors matching the kind return meaningful values.
type Change struct {
	kind   Kind
	old    any
	new    any
	nested *Set
}

// Added builds an addition change carrying the new raw value.
func Added(value any) Change {
	return Change{kind: Addition, new: value}
}

// Removed builds a removal change carrying the old raw value.
func Removed(value any) Change {
	return Change{kind: Removal, old: value}
}

// Modified builds a modification change carrying both raw values.
func Modified(oldValue, newValue any) Change {
	return Change{kind: Modification, old: oldValue, new: newValue}
}

// nestedChange wraps a non-empty recursively computed set. Only Compute
// produces these.
func nestedChange(set *Set) Change {
	return Change{kind: NestedSet, nested: set}
}

// Kind returns the variant tag of the change.
func (c Change) Kind() Kind { return c.kind }

// Old returns the raw value before the change. It is nil for additions and
// nested sets.
func (c Change) Old() any { return c.old }

// New returns the raw value after the change. It is nil for removals and
// nested sets.
func (c Change) New() any { return c.new }

// Nested returns the recursively computed change-set for a [NestedSet]
// change and nil for every other kind. The returned set is never empty.
func (c Change) Nested() *Set { return c.nested }
