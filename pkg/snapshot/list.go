package snapshot

import (
	"strconv"

	"github.com/totem-project/totem/pkg/changeset"
)

// List is an ordered-collection snapshot of a slice. It implements the
// [changeset.Collection] marker, so diffing two Lists re-indexes the result
// positionally. Any two Lists are mutually comparable.
type List struct {
	raw     []any
	keys    []string
	entries []any
}

var _ changeset.Collection = (*List)(nil)

// FromSlice snapshots items; element order is the key order.
func FromSlice(items []any) *List {
	s := &List{
		raw:     items,
		keys:    make([]string, len(items)),
		entries: make([]any, len(items)),
	}
	for i, item := range items {
		s.keys[i] = strconv.Itoa(i)
		s.entries[i] = wrapValue(item)
	}
	return s
}

func (s *List) Keys() []string { return s.keys }

func (s *List) Entry(key string) (any, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= len(s.entries) {
		return nil, false
	}
	return s.entries[i], true
}

func (s *List) Raw() any { return s.raw }

func (s *List) ComparableWith(other changeset.Snapshot) bool {
	_, ok := other.(*List)
	return ok
}

// OrderedCollection marks the list for positional re-indexing.
func (s *List) OrderedCollection() {}
