package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/totem-project/totem/internal/store"
)

var _ store.RevisionStore = (*revisionStore)(nil)

type revisionStore struct {
	db    *badger.DB
	codec store.Codec
}

// New returns a RevisionStore backed by a Badger database in dir. Pass nil
// for codec to use the default MessagePack implementation.
func New(dir string, codec store.Codec, syncWrites bool) (store.RevisionStore, error) {
	if codec == nil {
		codec = store.DefaultCodec
	}
	opts := badger.
		DefaultOptions(filepath.Clean(dir)).
		WithSyncWrites(syncWrites).
		WithCompression(options.ZSTD).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return &revisionStore{db: db, codec: codec}, nil
}

func (b *revisionStore) keyRevision(objectID string, id store.RevisionID) []byte {
	buf := make([]byte, 0, len(objectID)+2+8)
	buf = append(buf, 'r', '/')
	buf = append(buf, objectID...)
	buf = append(buf, '/')
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

func (b *revisionStore) keyLatest(objectID string) []byte {
	return []byte("l/" + objectID)
}

// Save stores the revision and bumps the per-object counter in one
// transaction.
func (b *revisionStore) Save(_ context.Context, objectID string, rev *store.Revision) error {
	return b.db.Update(func(txn *badger.Txn) error {
		var next uint64
		item, err := txn.Get(b.keyLatest(objectID))
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				next = binary.BigEndian.Uint64(val)
				return nil
			}); err != nil {
				return fmt.Errorf("failed to read counter for %s: %w", objectID, err)
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return fmt.Errorf("failed to get counter for %s: %w", objectID, err)
		}

		rev.ID = store.RevisionID(next)
		payload, err := b.codec.Marshal(rev)
		if err != nil {
			return err
		}
		if err := txn.Set(b.keyRevision(objectID, rev.ID), payload); err != nil {
			return fmt.Errorf("failed to set revision %s: %w", rev.ID, err)
		}
		return txn.Set(b.keyLatest(objectID), binary.BigEndian.AppendUint64(nil, next+1))
	})
}

// Get returns the revision stored for objectID under id.
func (b *revisionStore) Get(_ context.Context, objectID string, id store.RevisionID) (*store.Revision, error) {
	var rev store.Revision
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.keyRevision(objectID, id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return b.codec.Unmarshal(val, &rev)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// LatestRevision retrieves the latest committed revision for objectID.
func (b *revisionStore) LatestRevision(_ context.Context, objectID string) (store.RevisionID, error) {
	var next uint64
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.keyLatest(objectID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return fmt.Errorf("failed to get counter for %s: %w", objectID, err)
		}
		return item.Value(func(val []byte) error {
			next = binary.BigEndian.Uint64(val)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return store.RevisionID(next - 1), nil
}

// Close flushes and closes the underlying DB.
func (b *revisionStore) Close() error {
	return b.db.Close()
}
