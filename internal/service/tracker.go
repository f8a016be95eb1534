package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expr-lang/expr/vm"

	"github.com/totem-project/totem/internal/store"
	"github.com/totem-project/totem/pkg/changeset"
	"github.com/totem-project/totem/pkg/snapshot"
)

// Tracker records the history of tracked objects. Every commit diffs the new
// object state against the previous revision and persists the full state
// together with its change records. Commits that change nothing, or that a
// configured filter rejects, are skipped.
type Tracker struct {
	rs     store.RevisionStore
	filter *vm.Program // optional, compiled against CommitEnv
	cache  *stateCache // optional last-state cache
}

// NewTracker creates a new Tracker. filter may be nil to record every
// non-empty commit; see [CompileFilter].
func NewTracker(rs store.RevisionStore, filter *vm.Program, useCache bool) *Tracker {
	t := &Tracker{rs: rs, filter: filter}
	if useCache {
		t.cache = newStateCache()
	}
	return t
}

// Commit persists object as a new revision of objectID and returns the
// revision ID. The boolean is false when nothing was recorded: either the
// object did not change or the filter rejected the commit (the returned ID
// is then the latest existing revision).
func (t *Tracker) Commit(ctx context.Context, objectID string, object map[string]any) (store.RevisionID, bool, error) {
	object = normalizeObject(object)

	latest, err := t.rs.LatestRevision(ctx, objectID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return 0, false, err
		}

		// first revision: full state, no change records
		rev := &store.Revision{
			RecordedAt: time.Now().UTC(),
			Object:     object,
		}
		if err := t.rs.Save(ctx, objectID, rev); err != nil {
			return 0, false, err
		}
		t.cacheState(objectID, rev)
		return rev.ID, true, nil
	}

	previous, err := t.previousState(ctx, objectID, latest)
	if err != nil {
		return 0, false, err
	}

	set := changeset.Diff(snapshot.FromMap(previous), snapshot.FromMap(object))
	if n, _ := set.Len(); n == 0 {
		return latest, false, nil
	}
	records, err := store.Records(set)
	if err != nil {
		return 0, false, err
	}

	if t.filter != nil {
		keep, err := runFilter(t.filter, CommitEnv{ObjectID: objectID, Changes: records})
		if err != nil {
			return 0, false, fmt.Errorf("commit filter: %w", err)
		}
		if !keep {
			return latest, false, nil
		}
	}

	rev := &store.Revision{
		PreviousID: latest,
		RecordedAt: time.Now().UTC(),
		Object:     object,
		Changes:    records,
	}
	if err := t.rs.Save(ctx, objectID, rev); err != nil {
		return 0, false, err
	}
	t.cacheState(objectID, rev)
	return rev.ID, true, nil
}

// Revision returns a single stored revision.
func (t *Tracker) Revision(ctx context.Context, objectID string, id store.RevisionID) (*store.Revision, error) {
	return t.rs.Get(ctx, objectID, id)
}

// History returns all revisions of objectID in commit order. Revision IDs
// are contiguous per object, so it walks 0..latest.
func (t *Tracker) History(ctx context.Context, objectID string) ([]*store.Revision, error) {
	latest, err := t.rs.LatestRevision(ctx, objectID)
	if err != nil {
		return nil, err
	}
	revisions := make([]*store.Revision, 0, uint64(latest)+1)
	for id := store.RevisionID(0); id <= latest; id++ {
		rev, err := t.rs.Get(ctx, objectID, id)
		if err != nil {
			return nil, fmt.Errorf("broken history at %s: %w", id, err)
		}
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

// Close releases the tracker's cache. The revision store stays open; it is
// owned by the caller.
func (t *Tracker) Close() {
	if t.cache != nil {
		t.cache.close()
	}
}

func (t *Tracker) previousState(ctx context.Context, objectID string, latest store.RevisionID) (map[string]any, error) {
	if t.cache != nil {
		if state := t.cache.get(objectID); state != nil && state.rev == latest {
			return state.obj, nil
		}
	}
	rev, err := t.rs.Get(ctx, objectID, latest)
	if err != nil {
		return nil, err
	}
	return normalizeObject(rev.Object), nil
}

func (t *Tracker) cacheState(objectID string, rev *store.Revision) {
	if t.cache != nil {
		t.cache.set(objectID, &trackedState{obj: rev.Object, rev: rev.ID})
	}
}
