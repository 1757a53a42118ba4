package decor

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/dshills/orgbullets/internal/config"
	"github.com/dshills/orgbullets/internal/host"
	"github.com/dshills/orgbullets/internal/rule"
)

// newTestEngine builds an engine over an in-memory host with
// synchronous change handling.
func newTestEngine(cfg config.Config, lines ...string) (*Engine, *host.MemoryBuffer, *host.MemoryPainter) {
	buf := host.NewMemoryBuffer(lines...)
	painter := host.NewMemoryPainter(buf)
	engine := New(buf, painter, cfg, WithDebounce(0))
	return engine, buf, painter
}

// recordingMessenger captures engine warnings.
type recordingMessenger struct {
	msgs []string
}

func (r *recordingMessenger) Warnf(format string, args ...any) {
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func TestResyncAllDecorates(t *testing.T) {
	e, _, p := newTestEngine(config.Default(),
		"* Top",
		"- [x] done task",
		"- bullet item",
		"plain prose line",
	)

	e.ResyncAll()

	want := []host.PaintedOverlay{
		{Line: 0, StartCol: 0, EndCol: 1, Glyph: "◉", Class: "HeadlineLevel1"},
		{Line: 1, StartCol: 3, EndCol: 4, Glyph: rule.GlyphCheckDone, Class: rule.ClassDone},
		{Line: 2, StartCol: 0, EndCol: 2, Glyph: "• ", Class: rule.ClassBulletDash},
	}
	if got := p.Overlays(); !reflect.DeepEqual(got, want) {
		t.Errorf("painted overlays = %+v, want %+v", got, want)
	}
	if e.OverlayCount() != 3 {
		t.Errorf("OverlayCount() = %d, want 3", e.OverlayCount())
	}
}

func TestResyncAllIdempotent(t *testing.T) {
	e, _, p := newTestEngine(config.Default(),
		"** TODO write spec",
		"- [x] done task",
		"plain",
	)

	e.ResyncAll()
	first := p.Overlays()

	e.ResyncAll()
	second := p.Overlays()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second resync differs:\n first = %+v\nsecond = %+v", first, second)
	}
	if p.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (no duplicate overlays)", p.Count())
	}
}

func TestResyncRangeSingleLine(t *testing.T) {
	e, buf, p := newTestEngine(config.Default(),
		"* zero",
		"* one",
		"- bullet item",
		"* three",
	)
	e.ResyncAll()

	before := e.Overlays()

	change := buf.SetLine(2, "** now a headline")
	e.HandleChange(change)

	after := e.Overlays()
	if len(after) != len(before) {
		t.Fatalf("overlay count changed: %d -> %d", len(before), len(after))
	}

	for i := range after {
		if after[i].Line == 2 {
			if after[i].Class != "HeadlineLevel2" {
				t.Errorf("line 2 class = %q, want HeadlineLevel2", after[i].Class)
			}
			continue
		}
		// Untouched lines keep their exact overlays, ids included.
		if after[i] != before[i] {
			t.Errorf("line %d mutated: %+v -> %+v", after[i].Line, before[i], after[i])
		}
	}
	if _, ok := p.Painted(2); !ok {
		t.Error("line 2 should be painted")
	}
}

func TestResyncRangeBoundsWork(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("* headline %d", i)
	}
	e, buf, _ := newTestEngine(config.Default(), lines...)
	e.ResyncAll()

	before := e.Overlays()

	// Replace lines 3 and 4 with two bullet lines.
	change := buf.Splice(3, 5, "- a", "- b")
	e.HandleChange(change)

	after := e.Overlays()
	for i := range after {
		line := after[i].Line
		switch {
		case line == 3 || line == 4:
			if after[i].Class != rule.ClassBulletDash {
				t.Errorf("line %d class = %q, want %q", line, after[i].Class, rule.ClassBulletDash)
			}
		default:
			if after[i] != before[i] {
				t.Errorf("line %d touched outside edited range: %+v -> %+v", line, before[i], after[i])
			}
		}
	}
}

func TestResyncRangeShrinkPrunes(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("* headline %d", i)
	}
	e, buf, _ := newTestEngine(config.Default(), lines...)
	e.ResyncAll()

	// Delete three lines: [3,6) replaced with nothing.
	change := buf.Splice(3, 6)
	e.HandleChange(change)

	count := buf.LineCount()
	for _, o := range e.Overlays() {
		if o.Line >= count {
			t.Errorf("stale overlay for line %d past buffer end %d", o.Line, count)
		}
	}

	// And a full resync settles everything.
	e.ResyncAll()
	if got := e.OverlayCount(); got != count {
		t.Errorf("OverlayCount() = %d, want %d", got, count)
	}
}

func TestNoopChangeIgnored(t *testing.T) {
	e, _, p := newTestEngine(config.Default(), "* a", "* b")
	e.ResyncAll()

	paints := p.PaintCalls()
	unpaints := p.UnpaintCalls()

	e.HandleChange(host.Change{FirstLine: 1, OldLastLine: 1, NewLastLine: 1, ByteDelta: 0})

	if p.PaintCalls() != paints {
		t.Errorf("no-op change issued %d paint calls", p.PaintCalls()-paints)
	}
	if p.UnpaintCalls() != unpaints {
		t.Errorf("no-op change issued %d unpaint calls", p.UnpaintCalls()-unpaints)
	}
}

// failingPainter rejects paints on one line to exercise the error
// path.
type failingPainter struct {
	*host.MemoryPainter
	failLine int
}

func (f *failingPainter) Paint(line, startCol, endCol int, glyph, class string) (host.OverlayID, error) {
	if line == f.failLine {
		return 0, fmt.Errorf("paint line %d: %w", line, host.ErrInvalidRange)
	}
	return f.MemoryPainter.Paint(line, startCol, endCol, glyph, class)
}

func TestPaintFailureSkipsLineOnly(t *testing.T) {
	buf := host.NewMemoryBuffer("* a", "* b", "* c")
	painter := &failingPainter{MemoryPainter: host.NewMemoryPainter(buf), failLine: 1}
	msgs := &recordingMessenger{}
	e := New(buf, painter, config.Default(), WithDebounce(0), WithMessenger(msgs))

	e.ResyncAll()

	if e.OverlayCount() != 2 {
		t.Errorf("OverlayCount() = %d, want 2 (failed line skipped)", e.OverlayCount())
	}
	if _, ok := painter.Painted(1); ok {
		t.Error("failed line should stay undecorated")
	}
	if len(msgs.msgs) != 1 {
		t.Fatalf("warnings = %v, want exactly one", msgs.msgs)
	}
}

func TestDecorateLineReplacesPrior(t *testing.T) {
	e, buf, p := newTestEngine(config.Default(), "* old")
	e.ResyncAll()

	buf.SetLine(0, "- new")
	e.DecorateLine(0, "- new")

	if p.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (prior overlay replaced)", p.Count())
	}
	o, _ := p.Painted(0)
	if o.Class != rule.ClassBulletDash {
		t.Errorf("class = %q, want %q", o.Class, rule.ClassBulletDash)
	}
}

func TestDecorateLineNoMatchLeavesExisting(t *testing.T) {
	e, _, p := newTestEngine(config.Default(), "* headline")
	e.ResyncAll()

	// Classifying non-matching text is a no-op; clearing is the
	// resync caller's job.
	e.DecorateLine(0, "plain now")

	if p.Count() != 1 {
		t.Errorf("Count() = %d, want 1", p.Count())
	}
}
