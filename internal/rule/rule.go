// Package rule classifies outline markup lines — headline stars,
// checkboxes, plain list bullets — into the glyph and highlight class
// that decorate them. Rules are held in an explicitly ordered set and
// evaluated first-match-wins, so overlapping patterns (a level-1
// headline star vs. a `*` list bullet) resolve deterministically.
package rule

import (
	"regexp"
	"strconv"

	"github.com/rivo/uniseg"

	"github.com/dshills/orgbullets/internal/config"
)

// Highlight classes emitted by the built-in rules.
const (
	ClassHeadlinePrefix = "HeadlineLevel"
	ClassDone           = "OrgDone"
	ClassBulletDash     = "OrgBulletDash"
	ClassBulletPlus     = "OrgBulletPlus"
	ClassBulletStar     = "OrgBulletStar"
	ClassBullet         = "OrgBullet"
)

// Checkbox glyphs. Both collapse to the done highlight class.
const (
	GlyphCheckDone    = "✓"
	GlyphCheckPartial = "˜"
)

// Match is a classified line prefix: the byte-column span to replace
// and the decoration that replaces it.
type Match struct {
	StartCol int
	EndCol   int
	Glyph    string
	Class    string
}

// Handler maps a regexp match location on a line to a decoration.
// loc is the pattern's FindStringSubmatchIndex result.
type Handler func(line string, loc []int) Match

// Rule pairs an anchored pattern with its decoration handler.
type Rule struct {
	Pattern *regexp.Regexp
	Handle  Handler
}

// Set is an ordered collection of rules.
type Set struct {
	rules []Rule
}

var (
	headlineRE = regexp.MustCompile(`^(\*+)[ \t]`)
	doneRE     = regexp.MustCompile(`^[ \t]*(?:[-+*]|\d+[.)])[ \t]+\[(x)\]`)
	partialRE  = regexp.MustCompile(`^[ \t]*(?:[-+*]|\d+[.)])[ \t]+\[(-)\]`)
)

// NewSet compiles the classifier rules for the given configuration.
// Order matters: headline before bullets, checkboxes before bullets.
func NewSet(cfg config.Config) *Set {
	s := &Set{}

	// A hand-built Config may bypass Options.Resolve; an empty symbol
	// table would panic the headline handler.
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = config.Default().Symbols
	}

	s.add(headlineRE, headlineHandler(cfg))
	s.add(doneRE, checkboxHandler(GlyphCheckDone))
	s.add(partialRE, checkboxHandler(GlyphCheckPartial))

	for _, ch := range cfg.BulletChars {
		pat := regexp.MustCompile(`^([ \t]*)(` + regexp.QuoteMeta(string(ch)) + `)[ \t]`)
		s.add(pat, bulletHandler(ch, cfg.BulletSymbol))
	}

	return s
}

func (s *Set) add(pattern *regexp.Regexp, h Handler) {
	s.rules = append(s.rules, Rule{Pattern: pattern, Handle: h})
}

// Classify runs the rules against a line. The first matching rule
// wins; lines matching no rule report ok=false.
func (s *Set) Classify(line string) (Match, bool) {
	for _, r := range s.rules {
		loc := r.Pattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		return r.Handle(line, loc), true
	}
	return Match{}, false
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// headlineHandler decorates `*+ ` prefixes. Depth is the star count;
// depths beyond the symbol table clamp to its last entry, for both
// glyph and class.
func headlineHandler(cfg config.Config) Handler {
	symbols := cfg.Symbols
	return func(line string, loc []int) Match {
		start, end := loc[2], loc[3]
		stars := line[start:end]
		depth := uniseg.StringWidth(stars)

		level := depth
		if level > len(symbols) {
			level = len(symbols)
		}

		return Match{
			StartCol: start,
			EndCol:   end,
			Glyph:    Pad(symbols[level-1], depth, cfg.Indent),
			Class:    ClassHeadlinePrefix + strconv.Itoa(level),
		}
	}
}

// checkboxHandler decorates the state character inside `[x]`/`[-]`.
// The span covers only that character.
func checkboxHandler(glyph string) Handler {
	return func(line string, loc []int) Match {
		return Match{
			StartCol: loc[2],
			EndCol:   loc[3],
			Glyph:    glyph,
			Class:    ClassDone,
		}
	}
}

// bulletHandler decorates a `- ` style prefix. Leading whitespace is
// left outside the span so indentation stays visible; the replaced
// width is the bullet char plus the following space.
func bulletHandler(ch rune, symbol string) Handler {
	class := bulletClass(ch)
	return func(line string, loc []int) Match {
		start, end := loc[4], loc[5]+1
		width := uniseg.StringWidth(line[start:end])

		return Match{
			StartCol: start,
			EndCol:   end,
			Glyph:    Pad(symbol, width-1, false),
			Class:    class,
		}
	}
}

// bulletClass maps a bullet character to its highlight class. Extra
// user-configured characters beyond the default three share a generic
// class; an empty class is never produced.
func bulletClass(ch rune) string {
	switch ch {
	case '-':
		return ClassBulletDash
	case '+':
		return ClassBulletPlus
	case '*':
		return ClassBulletStar
	default:
		return ClassBullet
	}
}
