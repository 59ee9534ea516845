package jsonview

import "sort"

// CollapsedSet holds the block-opening lines the viewer has folded.
// The zero value is an empty set ready to use. Render only reads it.
type CollapsedSet struct {
	lines map[int]struct{}
}

// NewCollapsedSet returns a set containing lines.
func NewCollapsedSet(lines ...int) *CollapsedSet {
	s := &CollapsedSet{}
	for _, l := range lines {
		s.Add(l)
	}
	return s
}

// Contains reports membership. A nil set contains nothing.
func (s *CollapsedSet) Contains(line int) bool {
	if s == nil {
		return false
	}
	_, ok := s.lines[line]
	return ok
}

// Add folds line.
func (s *CollapsedSet) Add(line int) {
	if s.lines == nil {
		s.lines = make(map[int]struct{})
	}
	s.lines[line] = struct{}{}
}

// Toggle flips membership of line and reports whether it is now folded.
func (s *CollapsedSet) Toggle(line int) bool {
	if s.Contains(line) {
		delete(s.lines, line)
		return false
	}
	s.Add(line)
	return true
}

// Clear unfolds everything.
func (s *CollapsedSet) Clear() {
	s.lines = nil
}

func (s *CollapsedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}

// Lines returns the folded lines in ascending order.
func (s *CollapsedSet) Lines() []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, len(s.lines))
	for l := range s.lines {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}
