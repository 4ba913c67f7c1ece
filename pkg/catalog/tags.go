package catalog

import "strings"

// AddTag consumes the tag input: the trimmed value is appended when
// non-empty and not already present (case-sensitive exact match). The input
// field is cleared afterward in every case, duplicates included.
func (s *State) AddTag(input string) bool {
	s.TagInput = ""
	name := strings.TrimSpace(input)
	if name == "" || containsTag(s.Tags, name) {
		return false
	}
	s.Tags = append(s.Tags, name)
	if !s.filterSet {
		// Default selection is "all tags", so a new tag joins the filter
		// until the user picks a selection of their own.
		s.TagFilter = append(s.TagFilter, name)
	}
	return true
}

// RemoveTag deletes the exact tag and prunes it from the filter selection
// and from every item's tag selection, keeping selections subsets of the
// tag list.
func (s *State) RemoveTag(name string) bool {
	idx := -1
	for i, t := range s.Tags {
		if t == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Tags = append(s.Tags[:idx], s.Tags[idx+1:]...)
	s.TagFilter = withoutTag(s.TagFilter, name)
	for _, rec := range s.Records {
		rec.TagSelection = withoutTag(rec.TagSelection, name)
	}
	return true
}

// SetTagFilter replaces the filter selection, dropping anything not in the
// tag list.
func (s *State) SetTagFilter(selected []string) {
	s.TagFilter = intersectTags(selected, s.Tags)
	s.filterSet = true
}

// SetItemTags replaces the item's tag selection, dropping anything not in
// the tag list.
func (s *State) SetItemTags(id int, tags []string) bool {
	rec, ok := s.Records[id]
	if !ok {
		return false
	}
	rec.TagSelection = intersectTags(tags, s.Tags)
	return true
}

func containsTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

func withoutTag(tags []string, name string) []string {
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != name {
			result = append(result, t)
		}
	}
	return result
}

func intersectTags(selected, tags []string) []string {
	result := make([]string, 0, len(selected))
	for _, t := range selected {
		if containsTag(tags, t) && !containsTag(result, t) {
			result = append(result, t)
		}
	}
	return result
}
