package bbolt

import (
	"context"
	"encoding/binary"

	"go.etcd.io/bbolt"

	"github.com/totem-project/totem/internal/store"
)

// Save stores a revision and bumps the per-object counter.
func (s *Store) Save(_ context.Context, objectID string, rev *store.Revision) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		revNum, err := s.claimNextRevision(tx, objectID)
		if err != nil {
			return err
		}
		rev.ID = revNum

		payload, err := s.codec.Marshal(rev)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketRevisions).Put(keyObjectRevision(objectID, revNum), payload)
	})
}

// Get returns the revision stored for objectID under id.
func (s *Store) Get(_ context.Context, objectID string, id store.RevisionID) (*store.Revision, error) {
	var rev store.Revision
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketRevisions).Get(keyObjectRevision(objectID, id))
		if v == nil {
			return store.ErrNotFound
		}
		return s.codec.Unmarshal(v, &rev)
	})
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// LatestRevision returns the highest committed revision for objectID.
func (s *Store) LatestRevision(_ context.Context, objectID string) (store.RevisionID, error) {
	// check cache first
	s.counterMu.RLock()
	if next, ok := s.counter[objectID]; ok {
		s.counterMu.RUnlock()
		return store.RevisionID(next - 1), nil
	}
	s.counterMu.RUnlock()

	var next uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketLatest).Get([]byte(objectID))
		if v == nil {
			return store.ErrNotFound
		}
		next = binary.BigEndian.Uint64(v)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.counterMu.Lock()
	s.counter[objectID] = next
	s.counterMu.Unlock()
	return store.RevisionID(next - 1), nil
}
