package snapshot

import (
	"sort"

	"github.com/totem-project/totem/pkg/changeset"
)

// Map is a keyed-record snapshot of a string-keyed map. Nested maps and
// slices are wrapped recursively. Any two Maps are mutually comparable.
type Map struct {
	raw     map[string]any
	keys    []string
	entries map[string]any
}

var _ changeset.Snapshot = (*Map)(nil)

// FromMap snapshots m. Keys are ordered lexicographically since Go map
// iteration order is not stable.
func FromMap(m map[string]any) *Map {
	s := &Map{
		raw:     m,
		keys:    make([]string, 0, len(m)),
		entries: make(map[string]any, len(m)),
	}
	for key := range m {
		s.keys = append(s.keys, key)
	}
	sort.Strings(s.keys)
	for key, value := range m {
		s.entries[key] = wrapValue(value)
	}
	return s
}

func (s *Map) Keys() []string { return s.keys }

func (s *Map) Entry(key string) (any, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *Map) Raw() any { return s.raw }

func (s *Map) ComparableWith(other changeset.Snapshot) bool {
	_, ok := other.(*Map)
	return ok
}
