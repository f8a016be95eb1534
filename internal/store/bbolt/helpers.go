package bbolt

import (
	"encoding/binary"

	"go.etcd.io/bbolt"

	"github.com/totem-project/totem/internal/store"
)

func keyObjectRevision(objectID string, id store.RevisionID) []byte {
	buf := make([]byte, len(objectID)+1+8)
	copy(buf, objectID)
	buf[len(objectID)] = '|'
	binary.BigEndian.PutUint64(buf[len(objectID)+1:], uint64(id))
	return buf
}

// claimNextRevision atomically increments the revision counter in
// bucketLatest *and* updates the in-memory cache. It returns the newly
// assigned revision number.
func (s *Store) claimNextRevision(tx *bbolt.Tx, objectID string) (store.RevisionID, error) {
	latest := tx.Bucket(bucketLatest)

	var next uint64
	if raw := latest.Get([]byte(objectID)); raw != nil {
		next = binary.BigEndian.Uint64(raw)
	}
	revisionNumber := store.RevisionID(next)
	next++

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := latest.Put([]byte(objectID), buf); err != nil {
		return 0, err
	}

	s.counterMu.Lock()
	s.counter[objectID] = next
	s.counterMu.Unlock()

	return revisionNumber, nil
}
