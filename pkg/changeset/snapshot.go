package changeset

// Snapshot is an immutable, point-in-time, comparable view of a piece of
// data. Implementations expose an ordered key-indexed view for diffing and
// the plain value they were built from.
type Snapshot interface {
	// Keys returns the comparable keys in a stable order. Callers must not
	// mutate the returned slice.
	Keys() []string

	// Entry returns the comparable value stored under key and whether the
	// key is present at all. The value may itself be a Snapshot, which makes
	// [Set.Compute] recurse into it.
	Entry(key string) (any, bool)

	// Raw returns the underlying plain value this snapshot represents, with
	// nested snapshots fully unwrapped.
	Raw() any

	// ComparableWith reports whether other is structurally compatible with
	// this snapshot. Only mutually comparable snapshots are diffed
	// recursively; any other difference surfaces as a flat modification.
	ComparableWith(other Snapshot) bool
}

// Collection marks a Snapshot whose entries form an ordered list rather than
// a keyed record. When both operands of [Set.Compute] implement Collection,
// the resulting keys are discarded and the changes re-indexed "0".."n-1" in
// insertion order.
type Collection interface {
	Snapshot

	// OrderedCollection is a marker method and carries no behaviour.
	OrderedCollection()
}

func isCollection(s Snapshot) bool {
	_, ok := s.(Collection)
	return ok
}
