package config

import (
	"fmt"

	"github.com/northfield-quizbowl/quizdraw/bracket"
)

// parseBracketTablesYAML reads the `bracket_tables` document: a map from
// style name to a list of `{letter, bracket_offset, slot_offset,
// room_index, finals_repeat}` rows, exactly the schema spec §9 calls
// for so the known-buggy per-instance values can be supplied (or
// corrected) as data rather than guessed at in Go. A row may omit
// bracket_offset (defaults to -1, the wildcard every bracket instance
// shares) and finals_repeat (defaults to 0, not a finals letter).
func parseBracketTablesYAML(raw map[string]interface{}) (map[bracket.Style]bracket.StyleTable, error) {
	out := make(map[bracket.Style]bracket.StyleTable, len(raw))
	for styleName, rowsRaw := range raw {
		style, err := bracket.ParseStyle(styleName)
		if err != nil {
			return nil, &ConfigError{Reason: err.Error()}
		}

		rows, ok := rowsRaw.([]interface{})
		if !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("bracket_tables.%s must be a list of rows", styleName)}
		}

		table := bracket.StyleTable{Style: style}
		for i, rowRaw := range rows {
			row, ok := rowRaw.(map[string]interface{})
			if !ok {
				return nil, &ConfigError{Reason: fmt.Sprintf("bracket_tables.%s[%d] must be a mapping", styleName, i)}
			}
			letter, ok := row["letter"].(string)
			if !ok || letter == "" {
				return nil, &ConfigError{Reason: fmt.Sprintf("bracket_tables.%s[%d].letter is required", styleName, i)}
			}
			table.Rows = append(table.Rows, bracket.Row{
				Letter:        letter,
				BracketOffset: intOr(row["bracket_offset"], -1),
				SlotOffset:    intOr(row["slot_offset"], 0),
				RoomIndex:     intOr(row["room_index"], 0),
				FinalsRepeat:  intOr(row["finals_repeat"], 0),
			})
		}
		out[style] = table
	}
	return out, nil
}

func intOr(v interface{}, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}
