package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSnapshotHydrateRoundTrip(t *testing.T) {
	s := NewState()
	s.Items = []int{0, 2, 5}
	s.EnsureItem()
	s.AddTag("vintage")
	s.AddTag("rare")
	s.SetTagFilter([]string{"rare"})
	s.SetItemName(0, "Rookie Card") // per-item, must NOT survive

	snap := s.Snapshot()

	restored := NewState()
	restored.Hydrate(snap)

	if !reflect.DeepEqual(restored.Items, []int{0, 2, 5}) {
		t.Errorf("Items = %v, want [0 2 5]", restored.Items)
	}
	if !reflect.DeepEqual(restored.Tags, []string{"vintage", "rare"}) {
		t.Errorf("Tags = %v, want [vintage rare]", restored.Tags)
	}
	if !reflect.DeepEqual(restored.TagFilter, []string{"rare"}) {
		t.Errorf("TagFilter = %v, want [rare]", restored.TagFilter)
	}

	// Per-item fields are outside the persisted whitelist.
	rec, ok := restored.Record(0)
	if !ok || rec.Name != DefaultItemName {
		t.Errorf("record 0 = %+v, want default record", rec)
	}
}

func TestSnapshotUsesLegacyKeyNames(t *testing.T) {
	s := NewState()
	s.EnsureItem()
	s.AddTag("foo")

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"main_tags_list", "main_tags_input", "main_tags_select", "Items"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("snapshot JSON missing key %q", key)
		}
	}
	if len(raw) != 4 {
		t.Errorf("snapshot has %d keys, want exactly 4", len(raw))
	}
}

func TestHydrateLegacyBlobWithoutSelection(t *testing.T) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(`{"main_tags_list":["a","b"],"Items":[3]}`), &snap); err != nil {
		t.Fatal(err)
	}

	s := NewState()
	s.Hydrate(snap)

	if !reflect.DeepEqual(s.TagFilter, []string{"a", "b"}) {
		t.Errorf("TagFilter = %v, want all tags selected by default", s.TagFilter)
	}
	if !reflect.DeepEqual(s.Items, []int{3}) {
		t.Errorf("Items = %v, want [3]", s.Items)
	}
}

func TestHydrateDropsSelectionOutsideTagList(t *testing.T) {
	s := NewState()
	s.Hydrate(Snapshot{
		TagList:   []string{"a"},
		TagFilter: []string{"a", "ghost"},
		Items:     []int{0},
	})

	if !reflect.DeepEqual(s.TagFilter, []string{"a"}) {
		t.Errorf("TagFilter = %v, want [a]", s.TagFilter)
	}
}
