package catalog

// Snapshot is the persisted subset of a session. The JSON key names match
// the blobs written by earlier versions of the product, so existing state
// objects keep loading. Per-item records are deliberately not persisted.
type Snapshot struct {
	TagList   []string `json:"main_tags_list"`
	TagInput  string   `json:"main_tags_input"`
	TagFilter []string `json:"main_tags_select"`
	Items     []int    `json:"Items"`
}

// Snapshot copies the whitelisted keys out of the live state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		TagList:   append([]string(nil), s.Tags...),
		TagInput:  s.TagInput,
		TagFilter: append([]string(nil), s.TagFilter...),
		Items:     append([]int(nil), s.Items...),
	}
}

// Hydrate applies a snapshot onto a fresh state. It runs once, right after
// the session is created; later mutations during the same session are never
// overwritten because loading never happens again for a cached session.
func (s *State) Hydrate(snap Snapshot) {
	if snap.TagList != nil {
		s.Tags = append([]string(nil), snap.TagList...)
	}
	s.TagInput = snap.TagInput
	if snap.TagFilter != nil {
		s.TagFilter = intersectTags(snap.TagFilter, s.Tags)
		s.filterSet = true
	} else {
		// Legacy blobs without the selection key fall back to the default
		// "all tags selected".
		s.TagFilter = append([]string(nil), s.Tags...)
	}
	if snap.Items != nil {
		s.Items = append([]int(nil), snap.Items...)
	}
	s.ensureRecords()
}
