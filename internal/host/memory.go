package host

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryBuffer is an in-memory line buffer implementing LineReader.
// Edits go through Splice, which returns the Change record a host
// change feed would deliver for that edit.
type MemoryBuffer struct {
	mu    sync.RWMutex
	lines []string
}

// NewMemoryBuffer creates a buffer holding the given lines.
func NewMemoryBuffer(lines ...string) *MemoryBuffer {
	b := &MemoryBuffer{lines: make([]string, len(lines))}
	copy(b.lines, lines)
	return b
}

// Lines returns the lines in [start, end), clamped to the buffer.
func (b *MemoryBuffer) Lines(start, end int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if start < 0 {
		start = 0
	}
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if start >= end {
		return nil
	}
	out := make([]string, end-start)
	copy(out, b.lines[start:end])
	return out
}

// LineCount returns the number of lines in the buffer.
func (b *MemoryBuffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns a single line and whether the index is in range.
func (b *MemoryBuffer) Line(i int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i], true
}

// Splice replaces the lines in [first, oldLast) with repl and returns
// the matching Change record. Indices are clamped to the buffer.
func (b *MemoryBuffer) Splice(first, oldLast int, repl ...string) Change {
	b.mu.Lock()
	defer b.mu.Unlock()

	if first < 0 {
		first = 0
	}
	if first > len(b.lines) {
		first = len(b.lines)
	}
	if oldLast < first {
		oldLast = first
	}
	if oldLast > len(b.lines) {
		oldLast = len(b.lines)
	}

	removed := 0
	for _, ln := range b.lines[first:oldLast] {
		removed += len(ln) + 1
	}
	added := 0
	for _, ln := range repl {
		added += len(ln) + 1
	}

	next := make([]string, 0, len(b.lines)-(oldLast-first)+len(repl))
	next = append(next, b.lines[:first]...)
	next = append(next, repl...)
	next = append(next, b.lines[oldLast:]...)
	b.lines = next

	return Change{
		FirstLine:   first,
		OldLastLine: oldLast,
		NewLastLine: first + len(repl),
		ByteDelta:   added - removed,
	}
}

// SetLine replaces the text of a single line.
func (b *MemoryBuffer) SetLine(i int, text string) Change {
	return b.Splice(i, i+1, text)
}

// PaintedOverlay is a decoration recorded by MemoryPainter.
type PaintedOverlay struct {
	Line     int
	StartCol int
	EndCol   int
	Glyph    string
	Class    string
}

// MemoryPainter implements Painter against a MemoryBuffer. It
// validates spans against the buffer's current text and records every
// painted decoration, making it the reference paint surface for
// tests.
type MemoryPainter struct {
	mu      sync.Mutex
	buf     *MemoryBuffer
	nextID  OverlayID
	painted map[OverlayID]PaintedOverlay

	paintCalls   int
	unpaintCalls int
}

// NewMemoryPainter creates a painter validating against buf.
func NewMemoryPainter(buf *MemoryBuffer) *MemoryPainter {
	return &MemoryPainter{
		buf:     buf,
		nextID:  1,
		painted: make(map[OverlayID]PaintedOverlay),
	}
}

// Paint records a decoration spanning [startCol, endCol) on line.
func (p *MemoryPainter) Paint(line, startCol, endCol int, glyph, class string) (OverlayID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paintCalls++

	text, ok := p.buf.Line(line)
	if !ok {
		return 0, fmt.Errorf("paint line %d: %w", line, ErrLineOutOfRange)
	}
	if startCol < 0 || endCol <= startCol || endCol > len(text) {
		return 0, fmt.Errorf("paint line %d cols [%d,%d): %w", line, startCol, endCol, ErrInvalidRange)
	}

	id := p.nextID
	p.nextID++
	p.painted[id] = PaintedOverlay{
		Line:     line,
		StartCol: startCol,
		EndCol:   endCol,
		Glyph:    glyph,
		Class:    class,
	}
	return id, nil
}

// Unpaint removes a decoration. Unknown ids are ignored.
func (p *MemoryPainter) Unpaint(id OverlayID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unpaintCalls++
	delete(p.painted, id)
}

// Clear removes every recorded decoration.
func (p *MemoryPainter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.painted = make(map[OverlayID]PaintedOverlay)
}

// Count returns the number of currently painted decorations.
func (p *MemoryPainter) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.painted)
}

// Painted returns the decoration on the given line, if any.
func (p *MemoryPainter) Painted(line int) (PaintedOverlay, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, o := range p.painted {
		if o.Line == line {
			return o, true
		}
	}
	return PaintedOverlay{}, false
}

// Overlays returns all painted decorations ordered by line.
func (p *MemoryPainter) Overlays() []PaintedOverlay {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PaintedOverlay, 0, len(p.painted))
	for _, o := range p.painted {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// PaintCalls returns the total number of Paint invocations.
func (p *MemoryPainter) PaintCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paintCalls
}

// UnpaintCalls returns the total number of Unpaint invocations.
func (p *MemoryPainter) UnpaintCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unpaintCalls
}
