package bbolt

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/totem-project/totem/internal/store"
)

// handy constants -----------------------------------------------------------

var (
	ctx = context.Background()
	id  = "object-uid"
)

// TestNewAndBuckets checks that the DB opens and buckets exist.
func TestNewAndBuckets(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "db.bb"), nil, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	// verify buckets truly created in file
	info, _ := os.Stat(s.db.Path())
	if info.Size() == 0 {
		t.Fatal("DB file should not be empty")
	}
}

// TestRevisionRoundtrip covers:
//   - claimNextRevision
//   - Save
//   - Get / LatestRevision
func TestRevisionRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(filepath.Join(dir, "db.bb"), nil, false)
	t.Cleanup(func() { _ = s.Close() })

	// -------- 1st revision -------------------------------------------------
	first := &store.Revision{
		RecordedAt: time.Now().UTC(),
		Object:     map[string]any{"foo": "bar"},
	}
	if err := s.Save(ctx, id, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if first.ID != 0 {
		t.Fatalf("first revision should have ID 0, got %d", first.ID)
	}

	latest, err := s.LatestRevision(ctx, id)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest != 0 {
		t.Fatalf("latest want 0, got %d", latest)
	}

	// -------- 2nd revision with change records -----------------------------
	second := &store.Revision{
		PreviousID: first.ID,
		RecordedAt: time.Now().UTC(),
		Object:     map[string]any{"foo": "baz"},
		Changes: []store.Record{
			{Key: "foo", Kind: "modification", Old: "bar", New: "baz"},
		},
	}
	if err := s.Save(ctx, id, second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	if second.ID != 1 {
		t.Fatalf("second revision should receive ID 1, got %d", second.ID)
	}
	if latest, _ := s.LatestRevision(ctx, id); latest != 1 {
		t.Fatalf("latest want 1, got %d", latest)
	}

	// -------- read back -----------------------------------------------------
	got, err := s.Get(ctx, id, 1)
	if err != nil {
		t.Fatalf("get rev1: %v", err)
	}
	if got.Object["foo"] != "baz" {
		t.Fatalf("rev1 object: got %v", got.Object)
	}
	if len(got.Changes) != 1 || got.Changes[0].Kind != "modification" {
		t.Fatalf("rev1 changes: got %+v", got.Changes)
	}

	if _, err := s.Get(ctx, id, 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing revision: want ErrNotFound, got %v", err)
	}
	if _, err := s.LatestRevision(ctx, "unknown"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown object: want ErrNotFound, got %v", err)
	}
}

// TestConcurrentClaims ensures claimNextRevision is atomic.
func TestConcurrentClaims(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(filepath.Join(dir, "db.bb"), nil, false)
	t.Cleanup(func() { _ = s.Close() })

	// race 20 goroutines
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			errs <- s.Save(ctx, id, &store.Revision{Object: map[string]any{"x": i}})
		}()
	}
	for i := 0; i < 20; i++ {
		if e := <-errs; e != nil {
			t.Fatalf("concurrent Save failed: %v", e)
		}
	}

	if latest, _ := s.LatestRevision(ctx, id); latest != 19 {
		t.Fatalf("after 20 writes, latest should be 19, got %d", latest)
	}
}

// TestPersistedValues verifies that bytes written are real MessagePack.
func TestPersistedValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.bb")
	s, _ := New(path, nil, true)
	_ = s.Save(ctx, id, &store.Revision{Object: map[string]any{"k": "v"}})
	_ = s.Close()

	// reopen raw file and search for MessagePack prefix 0x81 (map of 1)
	blob, _ := os.ReadFile(path)
	if !bytes.Contains(blob, []byte{0x81}) {
		t.Fatal("file does not appear to contain msgpack map header")
	}
}
