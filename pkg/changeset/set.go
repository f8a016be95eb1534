package changeset

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
)

var (
	// ErrNotComputed is returned by every read operation on a Set whose
	// Compute has never run.
	ErrNotComputed = errors.New("changeset: set has not been computed")
	// ErrOutOfRange is returned by [Set.Change] for a key that did not
	// change.
	ErrOutOfRange = errors.New("changeset: key did not change")
	// ErrImmutable is returned by every write operation: a Set is written
	// exactly once, by Compute.
	ErrImmutable = errors.New("changeset: computed sets are read-only")
)

// Set is an ordered mapping from key to [Change], populated exactly once by
// [Set.Compute] and read-only afterwards. The zero value is ready to use;
// every read on it fails with [ErrNotComputed] until Compute has run.
type Set struct {
	computed bool
	keys     []string // insertion order
	changes  map[string]Change
}

// New returns an empty, uncomputed Set.
func New() *Set {
	return &Set{}
}

// Diff computes the change-set between two snapshots in one call.
func Diff(oldSnap, newSnap Snapshot) *Set {
	s := New()
	s.Compute(oldSnap, newSnap)
	return s
}

// Compute populates the set with the differences between oldSnap and
// newSnap. Both must be non-nil snapshots of the same comparable kind; the
// engine does not enforce cross-kind safety beyond the recursion rule.
//
// Calling Compute on an already computed set is a no-op: the first result
// stays authoritative.
func (s *Set) Compute(oldSnap, newSnap Snapshot) {
	if s.computed {
		return
	}
	s.computed = true

	s.changes = make(map[string]Change)
	for _, key := range unionKeys(oldSnap, newSnap) {
		change, changed := computeEntry(oldSnap, newSnap, key)
		if !changed {
			continue
		}
		s.keys = append(s.keys, key)
		s.changes[key] = change
	}

	// Two ordered collections compare positionally: the original keys are
	// dropped and the changes re-indexed 0..n-1 in insertion order.
	if isCollection(oldSnap) && isCollection(newSnap) {
		s.reindex()
	}
}

// unionKeys merges the key sets of both snapshots, deduplicated, keeping
// first-seen order: a's keys first, then b's keys not already seen.
func unionKeys(a, b Snapshot) []string {
	keys := slices.Clone(a.Keys())
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}
	for _, k := range b.Keys() {
		if _, dup := seen[k]; !dup {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

// computeEntry decides the kind of difference under a single key. The second
// return is false when the key did not change.
func computeEntry(oldSnap, newSnap Snapshot, key string) (Change, bool) {
	oldVal, inOld := oldSnap.Entry(key)
	newVal, inNew := newSnap.Entry(key)

	if !inOld {
		return Added(Unwrap(newVal)), true
	}
	if !inNew {
		return Removed(Unwrap(oldVal)), true
	}

	// Mutually comparable sub-snapshots are diffed recursively. A non-empty
	// nested set wins over the flat raw comparison below; an empty one means
	// "no change" and falls through.
	if oldChild, ok := oldVal.(Snapshot); ok {
		if newChild, ok := newVal.(Snapshot); ok && newChild.ComparableWith(oldChild) {
			child := New()
			child.Compute(oldChild, newChild)
			if len(child.keys) > 0 {
				return nestedChange(child), true
			}
		}
	}

	rawOld, rawNew := Unwrap(oldVal), Unwrap(newVal)
	if !equalStrict(rawOld, rawNew) {
		return Modified(rawOld, rawNew), true
	}
	return Change{}, false
}

// reindex rewrites the stored keys to sequential decimal indexes, keeping
// the changes in insertion order.
func (s *Set) reindex() {
	indexed := make(map[string]Change, len(s.keys))
	for i, key := range s.keys {
		idx := strconv.Itoa(i)
		indexed[idx] = s.changes[key]
		s.keys[i] = idx
	}
	s.changes = indexed
}

// Len returns the number of changed keys.
func (s *Set) Len() (int, error) {
	if !s.computed {
		return 0, ErrNotComputed
	}
	return len(s.keys), nil
}

// HasChanged reports whether key changed. Absence means "no change at that
// key", not an error.
func (s *Set) HasChanged(key string) (bool, error) {
	if !s.computed {
		return false, ErrNotComputed
	}
	_, ok := s.changes[key]
	return ok, nil
}

// Change returns the change recorded under key.
func (s *Set) Change(key string) (Change, error) {
	if !s.computed {
		return Change{}, ErrNotComputed
	}
	c, ok := s.changes[key]
	if !ok {
		return Change{}, fmt.Errorf("%w: %q", ErrOutOfRange, key)
	}
	return c, nil
}

// All returns an iterator over the key/change pairs in storage order.
func (s *Set) All() (iter.Seq2[string, Change], error) {
	if !s.computed {
		return nil, ErrNotComputed
	}
	return func(yield func(string, Change) bool) {
		for _, key := range s.keys {
			if !yield(key, s.changes[key]) {
				return
			}
		}
	}, nil
}

// Store always fails with [ErrImmutable]; sets are populated by Compute
// alone.
func (s *Set) Store(string, Change) error {
	return ErrImmutable
}

// Remove always fails with [ErrImmutable].
func (s *Set) Remove(string) error {
	return ErrImmutable
}
