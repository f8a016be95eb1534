package store_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/totem-project/totem/internal/store"
	"github.com/totem-project/totem/pkg/changeset"
	"github.com/totem-project/totem/pkg/snapshot"
)

func TestRecordsFlattenInStorageOrder(t *testing.T) {
	set := changeset.Diff(
		snapshot.FromMap(map[string]any{"a": 1, "b": 2, "meta": map[string]any{"name": "x"}}),
		snapshot.FromMap(map[string]any{"a": 1, "c": 3, "meta": map[string]any{"name": "y"}}),
	)

	records, err := store.Records(set)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if want := []string{"b", "meta", "c"}; !reflect.DeepEqual(store.ChangedKeys(records), want) {
		t.Fatalf("keys: want %v, got %v", want, store.ChangedKeys(records))
	}

	wantMeta := store.Record{
		Key:  "meta",
		Kind: "nested",
		Nested: []store.Record{
			{Key: "name", Kind: "modification", Old: "x", New: "y"},
		},
	}
	if diff := cmp.Diff(wantMeta, records[1]); diff != "" {
		t.Fatalf("meta record mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordsRequireComputedSet(t *testing.T) {
	if _, err := store.Records(changeset.New()); !errors.Is(err, changeset.ErrNotComputed) {
		t.Fatalf("want ErrNotComputed, got %v", err)
	}
}
