package bbolt

import (
	"fmt"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/totem-project/totem/internal/store"
)

var (
	bucketRevisions = []byte("revisions") // <obj>|rev -> Revision
	bucketLatest    = []byte("latest")    // <obj>     -> uint64(next)
)

type Store struct {
	db    *bbolt.DB
	codec store.Codec

	counterMu sync.RWMutex
	counter   map[string]uint64 // objectID -> next revision number
}

var _ store.RevisionStore = (*Store)(nil)

// New opens (or creates) a BoltDB database file. Pass nil for codec to use
// the default MessagePack implementation. With durableSync disabled the DB
// skips fsync on commit, trading crash safety for throughput.
func New(path string, codec store.Codec, durableSync bool) (*Store, error) {
	if codec == nil {
		codec = store.DefaultCodec
	}
	db, err := bbolt.Open(path, 0666, &bbolt.Options{
		Timeout:      0,
		FreelistType: bbolt.FreelistMapType,
	})
	if err != nil {
		return nil, err
	}
	db.NoSync = !durableSync

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRevisions, bucketLatest} {
			if _, e := tx.CreateBucketIfNotExists(b); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create default buckets: %w", err)
	}
	return &Store{
		db:      db,
		codec:   codec,
		counter: make(map[string]uint64),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
