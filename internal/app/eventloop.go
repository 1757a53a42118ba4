package app

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// handleKey dispatches one key event. Cursor motion feeds the
// engine's cursor feed; edits go through the buffer and feed the
// change feed.
func (a *App) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ, tcell.KeyEscape:
		return ErrQuit
	case tcell.KeyUp:
		a.moveCursorLine(-1)
	case tcell.KeyDown:
		a.moveCursorLine(1)
	case tcell.KeyLeft:
		a.moveCursorCol(-1)
	case tcell.KeyRight:
		a.moveCursorCol(1)
	case tcell.KeyPgUp:
		_, height := a.screen.Size()
		a.moveCursorLine(-(height - 1))
	case tcell.KeyPgDn:
		_, height := a.screen.Size()
		a.moveCursorLine(height - 1)
	case tcell.KeyHome:
		a.cursor.Col = 0
	case tcell.KeyEnd:
		a.cursor.Col = len(a.currentLine())
	case tcell.KeyEnter:
		a.splitLine()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.deleteBack()
	case tcell.KeyRune:
		a.insertRune(ev.Rune())
	}
	return nil
}

func (a *App) currentLine() string {
	text, _ := a.buf.Line(a.cursor.Line)
	return text
}

func (a *App) moveCursorLine(delta int) {
	line := a.cursor.Line + delta
	if line < 0 {
		line = 0
	}
	if max := a.buf.LineCount() - 1; line > max {
		line = max
	}
	a.cursor.Line = line
	a.clampCol()
}

func (a *App) moveCursorCol(delta int) {
	text := a.currentLine()
	if delta > 0 && a.cursor.Col < len(text) {
		_, size := utf8.DecodeRuneInString(text[a.cursor.Col:])
		a.cursor.Col += size
	}
	if delta < 0 && a.cursor.Col > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:a.cursor.Col])
		a.cursor.Col -= size
	}
}

func (a *App) clampCol() {
	if text := a.currentLine(); a.cursor.Col > len(text) {
		a.cursor.Col = len(text)
	}
}

func (a *App) insertRune(r rune) {
	text := a.currentLine()
	col := a.cursor.Col
	edited := text[:col] + string(r) + text[col:]

	change := a.buf.SetLine(a.cursor.Line, edited)
	a.cursor.Col += utf8.RuneLen(r)
	a.engine.HandleChange(change)
}

func (a *App) splitLine() {
	text := a.currentLine()
	col := a.cursor.Col

	change := a.buf.Splice(a.cursor.Line, a.cursor.Line+1, text[:col], text[col:])
	a.cursor.Line++
	a.cursor.Col = 0
	a.engine.HandleChange(change)
}

func (a *App) deleteBack() {
	text := a.currentLine()
	col := a.cursor.Col

	if col > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:col])
		edited := text[:col-size] + text[col:]
		change := a.buf.SetLine(a.cursor.Line, edited)
		a.cursor.Col -= size
		a.engine.HandleChange(change)
		return
	}

	// Column zero: join with the previous line.
	if a.cursor.Line == 0 {
		return
	}
	prev, _ := a.buf.Line(a.cursor.Line - 1)
	change := a.buf.Splice(a.cursor.Line-1, a.cursor.Line+1, prev+text)
	a.cursor.Line--
	a.cursor.Col = len(prev)
	a.engine.HandleChange(change)
}

// cursorScreenX converts the cursor's byte column to a display
// column.
func (a *App) cursorScreenX() int {
	text := a.currentLine()
	col := a.cursor.Col
	if col > len(text) {
		col = len(text)
	}
	return uniseg.StringWidth(text[:col])
}
