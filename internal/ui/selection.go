package ui

// selection tracks the highlighted row of one list. Navigation wraps
// circularly and is a no-op on an empty list; replacing the underlying list
// must go through [selection.Reset] so the index never dangles.
type selection struct {
	index  int
	length int
	active bool
}

// Reset rebinds the selection to a list of the given length, highlighting the
// first element or unsetting the selection when the list is empty.
func (s *selection) Reset(length int) {
	s.length = length
	s.index = 0
	s.active = length > 0
}

// Next advances the highlight, wrapping from the last element to the first.
func (s *selection) Next() {
	if s.length == 0 {
		return
	}
	if !s.active {
		s.active = true
		s.index = 0
		return
	}
	s.index = (s.index + 1) % s.length
}

// Prev moves the highlight back, wrapping from the first element to the last.
func (s *selection) Prev() {
	if s.length == 0 {
		return
	}
	if !s.active {
		s.active = true
		s.index = 0
		return
	}
	if s.index == 0 {
		s.index = s.length - 1
		return
	}
	s.index--
}

// Index returns the highlighted position and whether anything is selected.
func (s *selection) Index() (int, bool) {
	return s.index, s.active
}
