package service_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/totem-project/totem/internal/service"
	"github.com/totem-project/totem/internal/store"
	bboltStore "github.com/totem-project/totem/internal/store/bbolt"
)

var ctx = context.Background()

func newTracker(t testing.TB, filter string) *service.Tracker {
	t.Helper()
	rs, err := bboltStore.New(filepath.Join(t.TempDir(), "test.db"), nil, false)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = rs.Close() })

	var tracker *service.Tracker
	if filter == "" {
		tracker = service.NewTracker(rs, nil, true)
	} else {
		prog, err := service.CompileFilter(filter)
		if err != nil {
			t.Fatalf("compile filter: %v", err)
		}
		tracker = service.NewTracker(rs, prog, true)
	}
	t.Cleanup(tracker.Close)
	return tracker
}

func TestCommitRecordsChanges(t *testing.T) {
	tracker := newTracker(t, "")

	first, recorded, err := tracker.Commit(ctx, "obj", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if !recorded || first != 0 {
		t.Fatalf("first commit: want recorded rev 0, got %d (recorded=%v)", first, recorded)
	}

	second, recorded, err := tracker.Commit(ctx, "obj", map[string]any{"a": 1, "b": 5, "c": 3})
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}
	if !recorded || second != 1 {
		t.Fatalf("second commit: want recorded rev 1, got %d (recorded=%v)", second, recorded)
	}

	rev, err := tracker.Revision(ctx, "obj", second)
	if err != nil {
		t.Fatalf("get revision: %v", err)
	}
	if len(rev.Changes) != 2 {
		t.Fatalf("want 2 change records, got %+v", rev.Changes)
	}
	keys := store.ChangedKeys(rev.Changes)
	if keys[0] != "b" || keys[1] != "c" {
		t.Fatalf("changed keys: got %v", keys)
	}
	if rev.Changes[0].Kind != "modification" || rev.Changes[1].Kind != "addition" {
		t.Fatalf("record kinds: got %+v", rev.Changes)
	}
}

func TestCommitSkipsUnchangedObjects(t *testing.T) {
	tracker := newTracker(t, "")

	object := map[string]any{"a": 1}
	if _, _, err := tracker.Commit(ctx, "obj", object); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	id, recorded, err := tracker.Commit(ctx, "obj", map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}
	if recorded {
		t.Fatal("unchanged object must not be recorded")
	}
	if id != 0 {
		t.Fatalf("want latest rev 0, got %d", id)
	}
}

func TestCommitFilter(t *testing.T) {
	tracker := newTracker(t, `Changed("important")`)

	if _, _, err := tracker.Commit(ctx, "obj", map[string]any{"important": 1, "noise": 1}); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	// noise-only change: filter rejects
	_, recorded, err := tracker.Commit(ctx, "obj", map[string]any{"important": 1, "noise": 2})
	if err != nil {
		t.Fatalf("noise commit: %v", err)
	}
	if recorded {
		t.Fatal("filter must reject noise-only commits")
	}

	// important change: filter accepts
	id, recorded, err := tracker.Commit(ctx, "obj", map[string]any{"important": 2, "noise": 2})
	if err != nil {
		t.Fatalf("important commit: %v", err)
	}
	if !recorded || id != 1 {
		t.Fatalf("want recorded rev 1, got %d (recorded=%v)", id, recorded)
	}

	// the skipped noise change is part of the next diff
	rev, err := tracker.Revision(ctx, "obj", id)
	if err != nil {
		t.Fatalf("get revision: %v", err)
	}
	if len(rev.Changes) != 2 {
		t.Fatalf("want noise+important records, got %+v", rev.Changes)
	}
}

func TestHistory(t *testing.T) {
	tracker := newTracker(t, "")

	for i := 0; i < 3; i++ {
		if _, _, err := tracker.Commit(ctx, "obj", map[string]any{"n": i}); err != nil {
			t.Fatalf("commit %d: %v", i, err)
		}
	}

	history, err := tracker.History(ctx, "obj")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("want 3 revisions, got %d", len(history))
	}
	for i, rev := range history {
		if rev.ID != store.RevisionID(i) {
			t.Fatalf("revision %d has ID %d", i, rev.ID)
		}
	}
}

func BenchmarkCommit(b *testing.B) {
	tracker := newTracker(b, "")

	// make this object large
	data := map[string]any{}
	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("key-%03d", i)
		data[key] = key
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		object := map[string]any{
			"name": "obj-" + strconv.Itoa(i),
			"gen":  int64(i + 1),
			"data": data,
		}
		if _, _, err := tracker.Commit(ctx, "bench-uid", object); err != nil {
			b.Fatalf("commit error: %v", err)
		}
	}
}
