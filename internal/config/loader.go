package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// LoadFile reads a configuration file into Options. Files ending in
// .lua are evaluated as Lua (function-valued fields transform the
// defaults); anything else is parsed as JSON.
func LoadFile(path string) (Options, error) {
	if filepath.Ext(path) == ".lua" {
		return loadLua(path)
	}
	return loadJSON(path)
}

func loadJSON(path string) (Options, error) {
	var opts Options

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading config: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return opts, fmt.Errorf("%s: %w", path, ErrInvalidFile)
	}

	if r := gjson.GetBytes(data, "show_current_line"); r.Exists() {
		v := r.Bool()
		opts.ShowCurrentLine = &v
	}
	if r := gjson.GetBytes(data, "indent"); r.Exists() {
		v := r.Bool()
		opts.Indent = &v
	}
	if r := gjson.GetBytes(data, "symbols"); r.Exists() {
		if !r.IsArray() {
			return opts, fmt.Errorf("%s: symbols: %w", path, ErrBadValue)
		}
		var symbols []string
		for _, el := range r.Array() {
			symbols = append(symbols, el.String())
		}
		opts.Symbols = Literal(symbols)
	}
	if r := gjson.GetBytes(data, "bullet_chars"); r.Exists() {
		opts.BulletChars = Literal(r.String())
	}
	if r := gjson.GetBytes(data, "bullet_symbol"); r.Exists() {
		opts.BulletSymbol = r.String()
	}

	return opts, nil
}

// Dump renders a resolved configuration as JSON, suitable for seeding
// a user config file.
func Dump(cfg Config) (string, error) {
	out := "{}"
	var err error

	if out, err = sjson.Set(out, "show_current_line", cfg.ShowCurrentLine); err != nil {
		return "", err
	}
	if out, err = sjson.Set(out, "symbols", cfg.Symbols); err != nil {
		return "", err
	}
	if out, err = sjson.Set(out, "indent", cfg.Indent); err != nil {
		return "", err
	}
	if out, err = sjson.Set(out, "bullet_chars", cfg.BulletChars); err != nil {
		return "", err
	}
	if out, err = sjson.Set(out, "bullet_symbol", cfg.BulletSymbol); err != nil {
		return "", err
	}

	return out, nil
}
