// Package host defines the contracts between the decoration engine and
// the editor that embeds it: a line-read interface, a paint primitive
// for column-ranged decorations, a user-visible message surface, and
// the payloads delivered on the change and cursor feeds.
//
// The package also ships an in-memory reference host (MemoryBuffer,
// MemoryPainter) used by tests and by embedders that want to drive the
// engine without a terminal.
package host

// OverlayID identifies a painted decoration within a single Painter.
type OverlayID uint64

// Change describes an edit that replaced the line range
// [FirstLine, OldLastLine) with NewLastLine-FirstLine new lines.
// Line indices are 0-based; ranges are half-open.
type Change struct {
	// FirstLine is the first line affected by the edit.
	FirstLine int

	// OldLastLine is the exclusive end of the replaced range before
	// the edit.
	OldLastLine int

	// NewLastLine is the exclusive end of the replacement range after
	// the edit. Smaller than OldLastLine when lines were deleted.
	NewLastLine int

	// ByteDelta is the net change in buffer size in bytes.
	ByteDelta int
}

// IsNoop reports whether the change describes no actual edit. Some
// hosts double-fire their change feed on undo with a zero-length,
// zero-byte event; handlers skip those.
func (c Change) IsNoop() bool {
	return c.ByteDelta == 0 && c.FirstLine == c.OldLastLine && c.FirstLine == c.NewLastLine
}

// Cursor is a cursor-position report from the host's cursor feed.
type Cursor struct {
	Line int
	Col  int
}

// LineReader provides read access to buffer lines.
type LineReader interface {
	// Lines returns the lines in [start, end), clamped to the buffer.
	Lines(start, end int) []string

	// LineCount returns the number of lines in the buffer.
	LineCount() int
}

// Painter places and removes column-ranged decorations. Each Painter
// instance is its own namespace: Clear removes exactly the overlays
// painted through it and nothing else.
type Painter interface {
	// Paint places a decoration rendered as a visual replacement of
	// the byte-column span [startCol, endCol) on line. Returns
	// ErrInvalidRange when the span falls outside the line.
	Paint(line, startCol, endCol int, glyph, class string) (OverlayID, error)

	// Unpaint removes a painted decoration. Removing an unknown or
	// already-removed id is a no-op, never an error.
	Unpaint(id OverlayID)

	// Clear removes every decoration painted through this Painter.
	Clear()
}

// Messenger is the user-visible message surface. Decoration failures
// are reported here rather than aborting a pass.
type Messenger interface {
	Warnf(format string, args ...any)
}
