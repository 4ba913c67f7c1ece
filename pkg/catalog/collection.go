// Package catalog holds the per-user collection state and the pure state
// transitions applied by the catalog service. No I/O happens here.
package catalog

import "errors"

const DefaultItemName = "Default Item Name"

var (
	ErrLastItem     = errors.New("cannot delete the last remaining item")
	ErrItemMismatch = errors.New("item id does not match the item at that index")
)

// ItemRecord is the full widget state of one cataloged item. Deleting an
// item drops the record wholesale; there is no key-suffix bookkeeping.
type ItemRecord struct {
	Name         string   `json:"name"`
	FrontImage   string   `json:"front_image"`
	BackImage    string   `json:"back_image"`
	Transcript   string   `json:"transcript"`
	TagSelection []string `json:"tag_selection"`
}

// State is one user's live session: the ordered item list, the typed item
// records, and the tag widget state.
type State struct {
	Items     []int
	Records   map[int]*ItemRecord
	Tags      []string
	TagInput  string
	TagFilter []string

	// filterSet flips once the user (or a persisted snapshot) has chosen a
	// filter selection. Until then the filter tracks "all tags selected".
	filterSet bool
}

func NewState() *State {
	return &State{
		Items:   make([]int, 0),
		Records: make(map[int]*ItemRecord),
	}
}

// EnsureItem guarantees at least one item exists, seeding id 0 for a fresh
// session. Runs every request cycle; a non-empty list is untouched.
func (s *State) EnsureItem() {
	if len(s.Items) == 0 {
		s.Items = append(s.Items, 0)
	}
	s.ensureRecords()
}

// ensureRecords backfills default records for ids restored from a snapshot,
// since per-item fields are not part of the persisted state.
func (s *State) ensureRecords() {
	if s.Records == nil {
		s.Records = make(map[int]*ItemRecord)
	}
	for _, id := range s.Items {
		if _, ok := s.Records[id]; !ok {
			s.Records[id] = &ItemRecord{Name: DefaultItemName, TagSelection: []string{}}
		}
	}
}

// AddItem inserts a new item after afterIndex and returns its id. Ids are
// max(existing)+1 and never reused, so widget state keyed by id stays
// stable across deletions. An out-of-range afterIndex appends.
func (s *State) AddItem(afterIndex int) int {
	nextID := -1
	for _, id := range s.Items {
		if id > nextID {
			nextID = id
		}
	}
	nextID++

	pos := afterIndex + 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.Items) {
		pos = len(s.Items)
	}

	s.Items = append(s.Items, 0)
	copy(s.Items[pos+1:], s.Items[pos:])
	s.Items[pos] = nextID

	s.ensureRecords()
	return nextID
}

// DeleteItem removes the item at index, which must carry the given id, and
// drops its record. The last remaining item cannot be deleted.
func (s *State) DeleteItem(index, id int) error {
	if len(s.Items) <= 1 {
		return ErrLastItem
	}
	if index < 0 || index >= len(s.Items) || s.Items[index] != id {
		return ErrItemMismatch
	}
	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	delete(s.Records, id)
	return nil
}

func (s *State) Record(id int) (*ItemRecord, bool) {
	rec, ok := s.Records[id]
	return rec, ok
}

// SetItemName renames the item if it exists.
func (s *State) SetItemName(id int, name string) bool {
	rec, ok := s.Records[id]
	if !ok {
		return false
	}
	rec.Name = name
	return true
}

// CanAddItems mirrors the legacy gate: the add-item affordance is offered
// only while the tag filter selection is empty. Items themselves are never
// hidden by the filter.
func (s *State) CanAddItems() bool {
	return len(s.TagFilter) == 0
}
