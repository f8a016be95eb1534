package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidRevision = errors.New("invalid revision")
)

// RevisionStore persists the recorded revisions of tracked objects.
// Implementations assign contiguous per-object revision IDs starting at 0.
type RevisionStore interface {
	// Save persists rev for objectID and assigns rev.ID.
	Save(ctx context.Context, objectID string, rev *Revision) error

	// Get returns the revision stored for objectID under id.
	Get(ctx context.Context, objectID string, id RevisionID) (*Revision, error)

	// LatestRevision returns the highest committed revision for objectID.
	LatestRevision(ctx context.Context, objectID string) (RevisionID, error)

	Close() error
}
