package catalog

import (
	"reflect"
	"testing"
)

func TestAddTag(t *testing.T) {
	tests := []struct {
		name     string
		inputs   []string
		wantTags []string
	}{
		{name: "empty is a no-op", inputs: []string{""}, wantTags: nil},
		{name: "whitespace only is a no-op", inputs: []string{"  "}, wantTags: nil},
		{name: "trims input", inputs: []string{"  foo "}, wantTags: []string{"foo"}},
		{name: "duplicate kept once", inputs: []string{"foo", "foo"}, wantTags: []string{"foo"}},
		{name: "case sensitive match", inputs: []string{"foo", "Foo"}, wantTags: []string{"foo", "Foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			for _, in := range tt.inputs {
				s.AddTag(in)
			}
			if !reflect.DeepEqual(s.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", s.Tags, tt.wantTags)
			}
			if s.TagInput != "" {
				t.Errorf("TagInput = %q, want cleared", s.TagInput)
			}
		})
	}
}

func TestTagFilterDefaultsToAllTags(t *testing.T) {
	s := NewState()
	s.AddTag("vintage")
	s.AddTag("rare")

	if !reflect.DeepEqual(s.TagFilter, []string{"vintage", "rare"}) {
		t.Errorf("TagFilter = %v, want all tags while default", s.TagFilter)
	}
	if s.CanAddItems() {
		t.Error("CanAddItems should be false while filter is non-empty")
	}

	// Once the user picks a selection, new tags no longer auto-join.
	s.SetTagFilter([]string{"rare"})
	s.AddTag("signed")
	if !reflect.DeepEqual(s.TagFilter, []string{"rare"}) {
		t.Errorf("TagFilter = %v, want [rare]", s.TagFilter)
	}

	s.SetTagFilter(nil)
	if !s.CanAddItems() {
		t.Error("CanAddItems should be true with empty filter")
	}
}

func TestRemoveTagPrunesSelections(t *testing.T) {
	s := NewState()
	s.Items = []int{0, 1}
	s.EnsureItem()
	s.AddTag("vintage")
	s.AddTag("rare")
	s.SetItemTags(0, []string{"vintage", "rare"})
	s.SetItemTags(1, []string{"rare"})

	if !s.RemoveTag("rare") {
		t.Fatal("RemoveTag returned false")
	}

	if !reflect.DeepEqual(s.Tags, []string{"vintage"}) {
		t.Errorf("Tags = %v, want [vintage]", s.Tags)
	}
	if !reflect.DeepEqual(s.TagFilter, []string{"vintage"}) {
		t.Errorf("TagFilter = %v, want [vintage]", s.TagFilter)
	}
	rec0, _ := s.Record(0)
	if !reflect.DeepEqual(rec0.TagSelection, []string{"vintage"}) {
		t.Errorf("item 0 selection = %v, want [vintage]", rec0.TagSelection)
	}
	rec1, _ := s.Record(1)
	if len(rec1.TagSelection) != 0 {
		t.Errorf("item 1 selection = %v, want empty", rec1.TagSelection)
	}

	if s.RemoveTag("missing") {
		t.Error("RemoveTag should return false for unknown tag")
	}
}

func TestSetTagFilterDropsUnknownTags(t *testing.T) {
	s := NewState()
	s.AddTag("vintage")

	s.SetTagFilter([]string{"vintage", "ghost", "vintage"})
	if !reflect.DeepEqual(s.TagFilter, []string{"vintage"}) {
		t.Errorf("TagFilter = %v, want [vintage]", s.TagFilter)
	}
}

func TestSetItemTagsDropsUnknownTags(t *testing.T) {
	s := NewState()
	s.EnsureItem()
	s.AddTag("vintage")

	if !s.SetItemTags(0, []string{"ghost", "vintage"}) {
		t.Fatal("SetItemTags returned false")
	}
	rec, _ := s.Record(0)
	if !reflect.DeepEqual(rec.TagSelection, []string{"vintage"}) {
		t.Errorf("selection = %v, want [vintage]", rec.TagSelection)
	}

	if s.SetItemTags(42, []string{"vintage"}) {
		t.Error("SetItemTags should fail for unknown id")
	}
}
