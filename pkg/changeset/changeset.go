// Package changeset computes the structural change-set between two immutable
// snapshots of a piece of data.
//
// A change-set is an ordered, write-once mapping from key to [Change]. It
// contains only the keys that differ: added keys yield an addition, missing
// keys a removal, differing values a modification, and nested comparable
// snapshots are diffed recursively into a nested [Set]. Unchanged keys are
// never stored.
//
// The package consumes the [Snapshot] contract but does not construct
// snapshots itself; see the snapshot package for ready-made implementations.
package changeset

// Unwrap returns the plain value behind v. If v is a [Snapshot] it returns
// its raw data, otherwise v unchanged.
func Unwrap(v any) any {
	if s, ok := v.(Snapshot); ok {
		return s.Raw()
	}
	return v
}
