package planner

import (
	"errors"
	"sort"
	"time"
)

// DefaultSlots is the registry used until a brand configures its own.
var DefaultSlots = []string{"09:00", "13:00", "18:00", "21:00"}

var ErrInvalidSlot = errors.New("slot must be a HH:MM time")

// SlotSet is the ordered unique set of recurring daily posting times for
// one brand. Zero-padded HH:MM strings sort lexicographically in
// chronological order.
type SlotSet struct {
	times map[string]struct{}
}

func NewSlotSet(times ...string) *SlotSet {
	s := &SlotSet{times: make(map[string]struct{})}
	for _, t := range times {
		s.Add(t)
	}
	return s
}

func (s *SlotSet) Add(t string) error {
	if _, err := time.Parse("15:04", t); err != nil {
		return ErrInvalidSlot
	}
	s.times[t] = struct{}{}
	return nil
}

func (s *SlotSet) Remove(t string) {
	delete(s.times, t)
}

func (s *SlotSet) Contains(t string) bool {
	_, ok := s.times[t]
	return ok
}

func (s *SlotSet) Len() int {
	return len(s.times)
}

func (s *SlotSet) Sorted() []string {
	out := make([]string, 0, len(s.times))
	for t := range s.times {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
