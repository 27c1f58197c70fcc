package emojiart

import "sort"

// Selection tracks which items are selected.
//
// An empty selection means gestures act on the whole canvas; a non-empty one
// means pinch and drag act on the selected items only. The mode is always
// derived from Empty and never stored separately.
type Selection struct {
	ids map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{})}
}

// Toggle adds id if absent and removes it if present.
func (s *Selection) Toggle(id int) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// Clear deselects everything.
func (s *Selection) Clear() {
	clear(s.ids)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.ids) == 0
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Prune drops ids that no longer exist in doc.
func (s *Selection) Prune(doc *Document) {
	for id := range s.ids {
		if _, ok := doc.Item(id); !ok {
			delete(s.ids, id)
		}
	}
}

// TracksLiveZoom reports whether an item renders with the in-gesture zoom.
// With an empty selection everything does; otherwise only selected items.
func (s *Selection) TracksLiveZoom(id int) bool {
	return s.Empty() || s.Contains(id)
}
