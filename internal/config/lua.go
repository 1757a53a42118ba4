package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// loadLua evaluates a Lua configuration file. The chunk must return a
// table; fields may be literals or functions, in which case they are
// called with the built-in default and their return value becomes the
// effective setting. Functions are applied here, once, so the Lua
// state does not outlive loading.
func loadLua(path string) (Options, error) {
	var opts Options

	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return opts, fmt.Errorf("%s: %w", path, err)
	}

	ret := L.Get(-1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return opts, fmt.Errorf("%s: config chunk must return a table: %w", path, ErrInvalidFile)
	}

	def := Default()

	if lv := tbl.RawGetString("show_current_line"); lv != lua.LNil {
		b := lua.LVAsBool(lv)
		opts.ShowCurrentLine = &b
	}
	if lv := tbl.RawGetString("indent"); lv != lua.LNil {
		b := lua.LVAsBool(lv)
		opts.Indent = &b
	}

	if lv := tbl.RawGetString("symbols"); lv != lua.LNil {
		resolved, err := resolveLuaValue(L, lv, stringsToLua(L, def.Symbols))
		if err != nil {
			return opts, fmt.Errorf("%s: symbols: %w", path, err)
		}
		symbols, ok := luaToStrings(resolved)
		if !ok {
			return opts, fmt.Errorf("%s: symbols: %w", path, ErrBadValue)
		}
		opts.Symbols = Literal(symbols)
	}

	if lv := tbl.RawGetString("bullet_chars"); lv != lua.LNil {
		resolved, err := resolveLuaValue(L, lv, lua.LString(def.BulletChars))
		if err != nil {
			return opts, fmt.Errorf("%s: bullet_chars: %w", path, err)
		}
		s, ok := resolved.(lua.LString)
		if !ok {
			return opts, fmt.Errorf("%s: bullet_chars: %w", path, ErrBadValue)
		}
		opts.BulletChars = Literal(string(s))
	}

	if lv := tbl.RawGetString("bullet_symbol"); lv != lua.LNil {
		s, ok := lv.(lua.LString)
		if !ok {
			return opts, fmt.Errorf("%s: bullet_symbol: %w", path, ErrBadValue)
		}
		opts.BulletSymbol = string(s)
	}

	return opts, nil
}

// resolveLuaValue returns lv itself, or its result when lv is a
// function taking the default value.
func resolveLuaValue(L *lua.LState, lv, def lua.LValue) (lua.LValue, error) {
	fn, ok := lv.(*lua.LFunction)
	if !ok {
		return lv, nil
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, def); err != nil {
		return lua.LNil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

func stringsToLua(L *lua.LState, ss []string) *lua.LTable {
	tbl := L.NewTable()
	for _, s := range ss {
		tbl.Append(lua.LString(s))
	}
	return tbl
}

func luaToStrings(lv lua.LValue) ([]string, bool) {
	tbl, ok := lv.(*lua.LTable)
	if !ok {
		return nil, false
	}
	var out []string
	n := tbl.Len()
	for i := 1; i <= n; i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, false
		}
		out = append(out, string(s))
	}
	return out, true
}
