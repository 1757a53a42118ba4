package decor

import (
	"sync"
	"time"

	"github.com/dshills/orgbullets/internal/config"
	"github.com/dshills/orgbullets/internal/host"
	"github.com/dshills/orgbullets/internal/rule"
)

// DefaultDebounce is the interval used to coalesce change events when
// no other interval is configured.
const DefaultDebounce = 50 * time.Millisecond

// Engine owns the decoration state for one buffer session: the
// resolved configuration, the compiled rule set, the overlay store,
// and the reveal memento. Construct one per buffer with New.
type Engine struct {
	mu sync.Mutex

	cfg     config.Config
	rules   *rule.Set
	store   *Store
	buf     host.LineReader
	painter host.Painter
	msgs    host.Messenger

	deb *debouncer

	// Reveal state: the tracked cursor line and the snapshot of the
	// overlay hidden beneath it, if any.
	revealLine int
	revealSnap *Overlay
}

// Option configures an Engine.
type Option func(*Engine)

// WithMessenger directs decoration warnings to m.
func WithMessenger(m host.Messenger) Option {
	return func(e *Engine) {
		e.msgs = m
	}
}

// WithDebounce sets the change-coalescing interval. Zero makes change
// handling synchronous.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		e.deb = newDebouncer(e.applyChange, d)
	}
}

// New creates an engine for the given buffer and paint surface. The
// configuration is snapshotted; later mutation of cfg has no effect.
// Call ResyncAll to paint the initial state.
func New(buf host.LineReader, painter host.Painter, cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg,
		rules:      rule.NewSet(cfg),
		store:      NewStore(),
		buf:        buf,
		painter:    painter,
		revealLine: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.deb == nil {
		e.deb = newDebouncer(e.applyChange, DefaultDebounce)
	}
	return e
}

// Config returns the engine's resolved configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// ResyncAll clears every overlay and re-decorates the whole buffer.
// Idempotent: running it twice yields the same visible state.
func (e *Engine) ResyncAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.painter.Clear()
	e.store.Reset()
	e.revealLine = -1
	e.revealSnap = nil

	for i, text := range e.buf.Lines(0, e.buf.LineCount()) {
		e.decorateLine(i, text)
	}
}

// HandleChange consumes one change-notification event. Events are
// coalesced by the debounce interval; Flush forces pending work.
func (e *Engine) HandleChange(c host.Change) {
	e.deb.add(c)
}

// Flush applies any pending change events immediately.
func (e *Engine) Flush() {
	e.deb.flush()
}

// Close stops the debouncer, applying pending work first.
func (e *Engine) Close() {
	e.deb.stop()
}

// ResyncRange re-decorates the edited range described by c. Lines at
// or beyond c.NewLastLine keep their decorations untouched, except
// that overlays stranded beyond a shrunk buffer are pruned.
func (e *Engine) ResyncRange(c host.Change) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resyncRange(c)
}

func (e *Engine) applyChange(c host.Change) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resyncRange(c)
}

func (e *Engine) resyncRange(c host.Change) {
	// The host change feed double-fires a zero-length, zero-byte
	// event on undo; skip it before touching any state.
	if c.IsNoop() {
		return
	}

	for line := c.FirstLine; line < c.NewLastLine; line++ {
		e.removeOverlay(line)
	}

	// An edit that shrank the buffer strands overlays recorded for
	// line indices past the new end; prune them now. Unpainting an
	// id the surface already dropped is a no-op by contract.
	if c.NewLastLine < c.OldLastLine {
		count := e.buf.LineCount()
		for _, line := range e.store.Lines() {
			if line >= count {
				e.removeOverlay(line)
			}
		}
	}

	for i, text := range e.buf.Lines(c.FirstLine, c.NewLastLine) {
		e.decorateLine(c.FirstLine+i, text)
	}

	// If the edit rewrote the revealed line, its snapshot describes
	// text that no longer exists. Re-hide from the fresh decoration so
	// the cursor line stays raw and a later restore paints current
	// content. Edits elsewhere leave the snapshot alone.
	if e.cfg.ShowCurrentLine && e.revealLine >= c.FirstLine && e.revealLine < c.NewLastLine {
		e.revealSnap = nil
		if o, ok := e.store.Delete(e.revealLine); ok {
			e.painter.Unpaint(o.ID)
			snap := o
			e.revealSnap = &snap
		}
	}
}

// DecorateLine classifies one line and paints its overlay, replacing
// any prior overlay for that line. Lines matching no rule are left
// alone (clearing is the resync caller's job).
func (e *Engine) DecorateLine(line int, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.decorateLine(line, text)
}

func (e *Engine) decorateLine(line int, text string) {
	m, ok := e.rules.Classify(text)
	if !ok {
		return
	}

	id, err := e.painter.Paint(line, m.StartCol, m.EndCol, m.Glyph, m.Class)
	if err != nil {
		// The line stays undecorated; the pass continues.
		e.warnf("decorating line %d: %v", line, err)
		return
	}

	prev, replaced := e.store.Put(Overlay{
		ID:       id,
		Line:     line,
		StartCol: m.StartCol,
		EndCol:   m.EndCol,
		Glyph:    m.Glyph,
		Class:    m.Class,
	})
	if replaced {
		e.painter.Unpaint(prev.ID)
	}
}

// removeOverlay unpaints and forgets the overlay for a line, if any.
func (e *Engine) removeOverlay(line int) {
	if o, ok := e.store.Delete(line); ok {
		e.painter.Unpaint(o.ID)
	}
}

// Overlays returns a snapshot of the current overlay store, ordered
// by line.
func (e *Engine) Overlays() []Overlay {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Overlay, 0, e.store.Len())
	for _, line := range e.store.Lines() {
		o, _ := e.store.Get(line)
		out = append(out, o)
	}
	return out
}

// OverlayCount returns the number of decorated lines.
func (e *Engine) OverlayCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

func (e *Engine) warnf(format string, args ...any) {
	if e.msgs != nil {
		e.msgs.Warnf(format, args...)
	}
}
