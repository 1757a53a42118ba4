package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tidwall/gjson"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "conf.json", `{
		"show_current_line": true,
		"indent": false,
		"symbols": ["●", "◦"],
		"bullet_chars": "-",
		"bullet_symbol": "∙"
	}`)

	opts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	cfg := opts.Resolve()
	if !cfg.ShowCurrentLine {
		t.Error("show_current_line not applied")
	}
	if cfg.Indent {
		t.Error("indent not applied")
	}
	if want := []string{"●", "◦"}; !reflect.DeepEqual(cfg.Symbols, want) {
		t.Errorf("Symbols = %v, want %v", cfg.Symbols, want)
	}
	if cfg.BulletChars != "-" {
		t.Errorf("BulletChars = %q, want %q", cfg.BulletChars, "-")
	}
	if cfg.BulletSymbol != "∙" {
		t.Errorf("BulletSymbol = %q, want %q", cfg.BulletSymbol, "∙")
	}
}

func TestLoadJSONPartial(t *testing.T) {
	path := writeFile(t, "conf.json", `{"bullet_symbol": "∘"}`)

	opts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	cfg := opts.Resolve()
	if cfg.BulletSymbol != "∘" {
		t.Errorf("BulletSymbol = %q, want %q", cfg.BulletSymbol, "∘")
	}
	// Everything else stays at defaults.
	if !reflect.DeepEqual(cfg.Symbols, Default().Symbols) {
		t.Errorf("Symbols = %v, want defaults", cfg.Symbols)
	}
}

func TestLoadJSONInvalid(t *testing.T) {
	path := writeFile(t, "conf.json", `{not json`)

	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidFile) {
		t.Errorf("err = %v, want ErrInvalidFile", err)
	}
}

func TestLoadJSONBadSymbols(t *testing.T) {
	path := writeFile(t, "conf.json", `{"symbols": "not-an-array"}`)

	if _, err := LoadFile(path); !errors.Is(err, ErrBadValue) {
		t.Errorf("err = %v, want ErrBadValue", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDump(t *testing.T) {
	out, err := Dump(Default())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !gjson.Valid(out) {
		t.Fatalf("Dump produced invalid JSON: %s", out)
	}

	if got := gjson.Get(out, "bullet_symbol").String(); got != "•" {
		t.Errorf("bullet_symbol = %q, want %q", got, "•")
	}
	if got := gjson.Get(out, "symbols.#").Int(); got != 4 {
		t.Errorf("symbols length = %d, want 4", got)
	}
	if got := gjson.Get(out, "indent").Bool(); !got {
		t.Error("indent should dump as true")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	want := Config{
		ShowCurrentLine: true,
		Symbols:         []string{"a"},
		Indent:          false,
		BulletChars:     "-",
		BulletSymbol:    "x",
	}

	out, err := Dump(want)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	path := writeFile(t, "conf.json", out)

	opts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := opts.Resolve(); !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadLua(t *testing.T) {
	path := writeFile(t, "conf.lua", `
return {
	show_current_line = true,
	indent = false,
	bullet_chars = "-",
	bullet_symbol = "∙",
	symbols = { "●", "◦" },
}
`)

	opts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	cfg := opts.Resolve()
	if !cfg.ShowCurrentLine {
		t.Error("show_current_line not applied")
	}
	if cfg.Indent {
		t.Error("indent not applied")
	}
	if want := []string{"●", "◦"}; !reflect.DeepEqual(cfg.Symbols, want) {
		t.Errorf("Symbols = %v, want %v", cfg.Symbols, want)
	}
	if cfg.BulletChars != "-" {
		t.Errorf("BulletChars = %q, want %q", cfg.BulletChars, "-")
	}
	if cfg.BulletSymbol != "∙" {
		t.Errorf("BulletSymbol = %q, want %q", cfg.BulletSymbol, "∙")
	}
}

func TestLoadLuaTransforms(t *testing.T) {
	path := writeFile(t, "conf.lua", `
return {
	symbols = function(defaults)
		table.insert(defaults, "◆")
		return defaults
	end,
	bullet_chars = function(defaults)
		return defaults .. "~"
	end,
}
`)

	opts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	cfg := opts.Resolve()
	if want := append(Default().Symbols, "◆"); !reflect.DeepEqual(cfg.Symbols, want) {
		t.Errorf("Symbols = %v, want %v", cfg.Symbols, want)
	}
	if cfg.BulletChars != "-+*~" {
		t.Errorf("BulletChars = %q, want %q", cfg.BulletChars, "-+*~")
	}
}

func TestLoadLuaNotATable(t *testing.T) {
	path := writeFile(t, "conf.lua", `return 42`)

	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidFile) {
		t.Errorf("err = %v, want ErrInvalidFile", err)
	}
}

func TestLoadLuaSyntaxError(t *testing.T) {
	path := writeFile(t, "conf.lua", `return {`)

	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for lua syntax error")
	}
}
