package decor

// CursorMoved consumes one cursor-position event. When the
// show-current-line option is off this is a no-op.
//
// The reveal protocol runs in three phases whose order is pinned by
// tests (swapping them changes user-visible flicker):
//
//  1. If the tracked line changed, restore the previously revealed
//     line's snapshot with a fresh paint and re-record it.
//  2. Advance the tracked-line bookkeeping unconditionally.
//  3. If the new line is decorated, snapshot it, unpaint it, and drop
//     it from the store.
//
// Moves within the same line fall out at the top: no capture, no
// self-restore.
func (e *Engine) CursorMoved(line int) {
	if !e.cfg.ShowCurrentLine {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if line == e.revealLine {
		return
	}

	// Phase 1: restore the previous reveal.
	if snap := e.revealSnap; snap != nil {
		e.revealSnap = nil
		id, err := e.painter.Paint(snap.Line, snap.StartCol, snap.EndCol, snap.Glyph, snap.Class)
		if err != nil {
			// The snapshot's line may have vanished under an edit.
			e.warnf("restoring line %d: %v", snap.Line, err)
		} else {
			restored := *snap
			restored.ID = id
			if prev, replaced := e.store.Put(restored); replaced {
				e.painter.Unpaint(prev.ID)
			}
		}
	}

	// Phase 2: track the new line.
	e.revealLine = line

	// Phase 3: hide the overlay under the cursor.
	if o, ok := e.store.Delete(line); ok {
		e.painter.Unpaint(o.ID)
		snap := o
		e.revealSnap = &snap
	}
}

// RevealedLine returns the currently tracked cursor line, or -1 when
// no cursor event has been seen.
func (e *Engine) RevealedLine() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revealLine
}
