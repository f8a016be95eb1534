package store

import (
	"fmt"
	"time"

	"github.com/totem-project/totem/pkg/changeset"
)

type RevisionID uint64

func (id RevisionID) String() string {
	return fmt.Sprintf("%08x", uint64(id))
}

// Revision is one recorded state of a tracked object together with the
// changes that separate it from its predecessor. Revisions always carry the
// full object: change records are audit data and are never applied back.
type Revision struct {
	/// Revision Metadata
	// ID of the revision
	ID RevisionID `msgpack:"i"`
	// PreviousID is the ID of the previous revision. It equals ID for the
	// first revision of an object.
	PreviousID RevisionID `msgpack:"p,omitempty"`
	// RecordedAt is the commit time in UTC.
	RecordedAt time.Time `msgpack:"t"`

	/// Payload
	// Object is the full object state at this revision.
	Object map[string]any `msgpack:"o"`
	// Changes describes the difference to the previous revision, in storage
	// order. Empty for the first revision.
	Changes []Record `msgpack:"c,omitempty"`
}

// Record is the storable, flattened form of a [changeset.Change].
type Record struct {
	Key  string `msgpack:"k"`
	Kind string `msgpack:"d"`
	Old  any    `msgpack:"o,omitempty"`
	New  any    `msgpack:"n,omitempty"`
	// Nested holds the records of a nested change-set, in storage order.
	Nested []Record `msgpack:"s,omitempty"`
}

// Records flattens a computed change-set into storable records, preserving
// storage order recursively. It fails only when set has not been computed.
func Records(set *changeset.Set) ([]Record, error) {
	all, err := set.All()
	if err != nil {
		return nil, err
	}
	var records []Record
	for key, change := range all {
		rec := Record{Key: key, Kind: change.Kind().String()}
		if change.Kind() == changeset.NestedSet {
			// nested sets are always computed, the error path is dead here
			rec.Nested, _ = Records(change.Nested())
		} else {
			rec.Old = change.Old()
			rec.New = change.New()
		}
		records = append(records, rec)
	}
	return records, nil
}

// ChangedKeys returns the top-level keys named by records, in order.
func ChangedKeys(records []Record) []string {
	keys := make([]string, len(records))
	for i, rec := range records {
		keys[i] = rec.Key
	}
	return keys
}
