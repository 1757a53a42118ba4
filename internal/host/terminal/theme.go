package terminal

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/orgbullets/internal/rule"
)

// Theme resolves highlight classes to terminal styles. Unknown
// classes fall back to the default style, never to invisible text.
type Theme struct {
	styles   map[string]tcell.Style
	fallback tcell.Style
}

// DefaultTheme builds the built-in theme. Headline level colors are
// generated around the hue wheel so any table length gets distinct,
// evenly spaced colors.
func DefaultTheme(levels int) *Theme {
	if levels < 1 {
		levels = 1
	}
	t := &Theme{
		styles:   make(map[string]tcell.Style),
		fallback: tcell.StyleDefault,
	}

	for i := 1; i <= levels; i++ {
		hue := float64(i-1) * 360.0 / float64(levels)
		t.styles[rule.ClassHeadlinePrefix+strconv.Itoa(i)] = styleFromColor(colorful.Hsv(hue, 0.55, 0.95)).Bold(true)
	}

	t.styles[rule.ClassDone] = styleFromColor(colorful.Hsv(130, 0.60, 0.85))
	t.styles[rule.ClassBulletDash] = styleFromColor(colorful.Hsv(200, 0.45, 0.90))
	t.styles[rule.ClassBulletPlus] = styleFromColor(colorful.Hsv(40, 0.45, 0.90))
	t.styles[rule.ClassBulletStar] = styleFromColor(colorful.Hsv(280, 0.45, 0.90))
	t.styles[rule.ClassBullet] = styleFromColor(colorful.Hsv(0, 0, 0.75))

	return t
}

// Style resolves a highlight class.
func (t *Theme) Style(class string) tcell.Style {
	if s, ok := t.styles[class]; ok {
		return s
	}
	return t.fallback
}

// Set overrides the style for a class.
func (t *Theme) Set(class string, style tcell.Style) {
	t.styles[class] = style
}

// Has reports whether the theme defines a style for the class.
func (t *Theme) Has(class string) bool {
	_, ok := t.styles[class]
	return ok
}

func styleFromColor(c colorful.Color) tcell.Style {
	r, g, b := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}
