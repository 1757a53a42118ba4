package decor

import (
	"sort"

	"github.com/dshills/orgbullets/internal/host"
)

// Overlay records a decoration currently painted on a line: the paint
// surface id plus the full snapshot needed to repaint it (the reveal
// controller restores from this).
type Overlay struct {
	ID       host.OverlayID
	Line     int
	StartCol int
	EndCol   int
	Glyph    string
	Class    string
}

// Store maps line indices to their painted overlay. At most one
// overlay exists per line; every stored id corresponds to a currently
// painted decoration. Mutations are always paired with the matching
// paint/unpaint call by the engine, keeping the map and the paint
// surface consistent.
type Store struct {
	overlays map[int]Overlay
}

// NewStore creates an empty overlay store.
func NewStore() *Store {
	return &Store{overlays: make(map[int]Overlay)}
}

// Put records an overlay for its line, returning any overlay it
// replaced so the caller can unpaint it.
func (s *Store) Put(o Overlay) (prev Overlay, replaced bool) {
	prev, replaced = s.overlays[o.Line]
	s.overlays[o.Line] = o
	return prev, replaced
}

// Get returns the overlay recorded for a line.
func (s *Store) Get(line int) (Overlay, bool) {
	o, ok := s.overlays[line]
	return o, ok
}

// Delete removes and returns the overlay recorded for a line.
func (s *Store) Delete(line int) (Overlay, bool) {
	o, ok := s.overlays[line]
	if ok {
		delete(s.overlays, line)
	}
	return o, ok
}

// Reset empties the store.
func (s *Store) Reset() {
	s.overlays = make(map[int]Overlay)
}

// Len returns the number of recorded overlays.
func (s *Store) Len() int {
	return len(s.overlays)
}

// Lines returns the decorated line indices in ascending order.
func (s *Store) Lines() []int {
	lines := make([]int, 0, len(s.overlays))
	for line := range s.overlays {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}
