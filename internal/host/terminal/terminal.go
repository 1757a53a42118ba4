// Package terminal provides a tcell-backed paint surface: a
// host.Painter that records column-ranged decorations and a Draw pass
// that composites them over buffer lines on a terminal screen.
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/orgbullets/internal/host"
)

// decoration is one painted overlay.
type decoration struct {
	line     int
	startCol int
	endCol   int
	glyph    string
	class    string
}

// Painter implements host.Painter for a terminal screen. Paint calls
// validate spans against the reader's current text; Draw composites
// the recorded decorations as full visual replacements of their
// spans.
type Painter struct {
	mu       sync.Mutex
	reader   host.LineReader
	theme    *Theme
	nextID   host.OverlayID
	overlays map[host.OverlayID]decoration
}

// NewPainter creates a painter over the given buffer and theme.
func NewPainter(reader host.LineReader, theme *Theme) *Painter {
	return &Painter{
		reader:   reader,
		theme:    theme,
		nextID:   1,
		overlays: make(map[host.OverlayID]decoration),
	}
}

// Paint records a decoration replacing [startCol, endCol) on line.
func (p *Painter) Paint(line, startCol, endCol int, glyph, class string) (host.OverlayID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	text, ok := p.lineText(line)
	if !ok {
		return 0, fmt.Errorf("paint line %d: %w", line, host.ErrLineOutOfRange)
	}
	if startCol < 0 || endCol <= startCol || endCol > len(text) {
		return 0, fmt.Errorf("paint line %d cols [%d,%d): %w", line, startCol, endCol, host.ErrInvalidRange)
	}

	id := p.nextID
	p.nextID++
	p.overlays[id] = decoration{
		line:     line,
		startCol: startCol,
		endCol:   endCol,
		glyph:    glyph,
		class:    class,
	}
	return id, nil
}

// Unpaint removes a decoration; unknown ids are ignored.
func (p *Painter) Unpaint(id host.OverlayID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.overlays, id)
}

// Clear removes every decoration painted through this painter.
func (p *Painter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overlays = make(map[host.OverlayID]decoration)
}

// Count returns the number of painted decorations.
func (p *Painter) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.overlays)
}

// Draw renders buffer lines [top, top+height) to screen rows
// [0, height), compositing decorations over their spans.
func (p *Painter) Draw(screen tcell.Screen, top, height int) {
	p.mu.Lock()
	byLine := make(map[int]decoration, len(p.overlays))
	for _, d := range p.overlays {
		byLine[d.line] = d
	}
	p.mu.Unlock()

	width, _ := screen.Size()
	lines := p.reader.Lines(top, top+height)

	for row := 0; row < height; row++ {
		line := top + row
		var text string
		if row < len(lines) {
			text = lines[row]
		}

		x := 0
		if d, ok := byLine[line]; ok && d.endCol <= len(text) {
			x = drawString(screen, x, row, width, text[:d.startCol], tcell.StyleDefault)
			x = drawString(screen, x, row, width, d.glyph, p.theme.Style(d.class))
			x = drawString(screen, x, row, width, text[d.endCol:], tcell.StyleDefault)
		} else {
			x = drawString(screen, x, row, width, text, tcell.StyleDefault)
		}
		for ; x < width; x++ {
			screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

// drawString writes s starting at cell (x, y) and returns the next
// free column. Grapheme clusters are kept together.
func drawString(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if x >= width {
			break
		}
		runes := g.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		w := g.Width()
		if w < 1 {
			w = 1
		}
		x += w
	}
	return x
}

func (p *Painter) lineText(line int) (string, bool) {
	lines := p.reader.Lines(line, line+1)
	if len(lines) == 0 {
		return "", false
	}
	return lines[0], true
}
