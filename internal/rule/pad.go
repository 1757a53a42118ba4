package rule

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Pad formats a glyph so its visual width lines up with the text it
// replaces. Leading padding yields width-wide output (spaces then
// glyph, accounting for wide glyphs); trailing padding appends width
// spaces after the glyph. Widths at or below zero degrade to no
// padding.
func Pad(glyph string, width int, leading bool) string {
	if width <= 0 {
		return glyph
	}
	if leading {
		n := width - uniseg.StringWidth(glyph)
		if n <= 0 {
			return glyph
		}
		return strings.Repeat(" ", n) + glyph
	}
	return glyph + strings.Repeat(" ", width)
}
