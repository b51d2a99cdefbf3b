package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/northfield-quizbowl/quizdraw/bracket"
)

// LoadStyleScript runs a small Lua script and interprets its single
// return value as a bracket style table, for callers who want to
// compute the `(quiz_letter -> (slot_offset, room_index))` mapping
// programmatically (e.g. a venue with a nonstandard room count) instead
// of hand-writing a YAML document. The script must end with a single
// `return` of a table shaped:
//
//	return {
//	  style = "full",
//	  rows = {
//	    {letter = "A", slot_offset = 0, room_index = 0},
//	    {letter = "J", slot_offset = 3, room_index = 0, finals_repeat = 1},
//	  },
//	}
//
// This never "fixes" a known-buggy table on the caller's behalf; it is
// exactly as data-driven as the YAML path, just computed instead of
// written out by hand.
func LoadStyleScript(path string) (bracket.Style, bracket.StyleTable, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return "", bracket.StyleTable{}, &ConfigError{Reason: fmt.Sprintf("running bracket style script %s: %v", path, err)}
	}

	ret := L.Get(-1)
	L.Pop(1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return "", bracket.StyleTable{}, &ConfigError{Reason: fmt.Sprintf("bracket style script %s must return a table", path)}
	}

	styleName, ok := tbl.RawGetString("style").(lua.LString)
	if !ok {
		return "", bracket.StyleTable{}, &ConfigError{Reason: fmt.Sprintf("bracket style script %s: missing string field 'style'", path)}
	}
	style, err := bracket.ParseStyle(string(styleName))
	if err != nil {
		return "", bracket.StyleTable{}, &ConfigError{Reason: err.Error()}
	}

	rowsTbl, ok := tbl.RawGetString("rows").(*lua.LTable)
	if !ok {
		return "", bracket.StyleTable{}, &ConfigError{Reason: fmt.Sprintf("bracket style script %s: missing table field 'rows'", path)}
	}

	table := bracket.StyleTable{Style: style}
	var parseErr error
	rowsTbl.ForEach(func(_, rowVal lua.LValue) {
		if parseErr != nil {
			return
		}
		row, ok := rowVal.(*lua.LTable)
		if !ok {
			parseErr = &ConfigError{Reason: fmt.Sprintf("bracket style script %s: each row must be a table", path)}
			return
		}
		letter, ok := row.RawGetString("letter").(lua.LString)
		if !ok || letter == "" {
			parseErr = &ConfigError{Reason: fmt.Sprintf("bracket style script %s: row missing string field 'letter'", path)}
			return
		}
		table.Rows = append(table.Rows, bracket.Row{
			Letter:        string(letter),
			BracketOffset: luaIntOr(row.RawGetString("bracket_offset"), -1),
			SlotOffset:    luaIntOr(row.RawGetString("slot_offset"), 0),
			RoomIndex:     luaIntOr(row.RawGetString("room_index"), 0),
			FinalsRepeat:  luaIntOr(row.RawGetString("finals_repeat"), 0),
		})
	})
	if parseErr != nil {
		return "", bracket.StyleTable{}, parseErr
	}

	return style, table, nil
}

func luaIntOr(v lua.LValue, fallback int) int {
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return fallback
}
