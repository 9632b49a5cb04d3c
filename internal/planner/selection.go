package planner

import "sort"

// Selection tracks bulk-selection mode and the set of selected post IDs.
// Entering the mode clears any prior selection; a completed batch action
// clears the set but does not exit the mode on its own.
type Selection struct {
	active bool
	ids    map[int64]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[int64]struct{})}
}

func (s *Selection) Active() bool {
	return s.active
}

func (s *Selection) SetActive(on bool) {
	s.active = on
	if on {
		s.Clear()
	}
}

// Toggle flips a post in or out of the selection. Ignored outside
// selection mode.
func (s *Selection) Toggle(id int64) {
	if !s.active {
		return
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected IDs in ascending order.
func (s *Selection) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Selection) Clear() {
	s.ids = make(map[int64]struct{})
}
