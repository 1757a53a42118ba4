// Package config holds the decoration configuration: the headline
// symbol table, bullet characters, and display toggles. Callers supply
// an Options struct (from code, a JSON file, or a Lua file) which is
// resolved once against the defaults into an immutable Config
// snapshot. Mutating a returned Config does not affect the engine it
// was resolved for.
package config

// Config is the resolved, effective configuration for one session.
type Config struct {
	// ShowCurrentLine reveals the raw markup of the cursor line by
	// temporarily removing its decoration.
	ShowCurrentLine bool

	// Symbols are the headline glyphs indexed by outline depth
	// (Symbols[0] decorates depth 1). Depths beyond the table clamp
	// to the last entry.
	Symbols []string

	// Indent front-pads headline glyphs so they align with the last
	// marker character instead of the first.
	Indent bool

	// BulletChars are the characters recognized as plain list
	// bullets.
	BulletChars string

	// BulletSymbol is the glyph substituted for a recognized bullet.
	BulletSymbol string
}

// Options is caller-supplied configuration prior to resolution.
// Nil/zero fields fall back to the defaults; Symbols and BulletChars
// may be transforms of the defaults.
type Options struct {
	ShowCurrentLine *bool
	Symbols         Value[[]string]
	Indent          *bool
	BulletChars     Value[string]
	BulletSymbol    string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ShowCurrentLine: false,
		Symbols:         []string{"◉", "○", "✸", "✿"},
		Indent:          true,
		BulletChars:     "-+*",
		BulletSymbol:    "•",
	}
}

// Resolve merges the options over the defaults. User values win;
// transform values receive the default and return the effective value.
func (o Options) Resolve() Config {
	cfg := Default()

	if o.ShowCurrentLine != nil {
		cfg.ShowCurrentLine = *o.ShowCurrentLine
	}
	if o.Indent != nil {
		cfg.Indent = *o.Indent
	}
	cfg.Symbols = o.Symbols.Resolve(cfg.Symbols)
	cfg.BulletChars = o.BulletChars.Resolve(cfg.BulletChars)
	if o.BulletSymbol != "" {
		cfg.BulletSymbol = o.BulletSymbol
	}

	// An empty symbol table cannot decorate anything.
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = Default().Symbols
	}
	return cfg
}
