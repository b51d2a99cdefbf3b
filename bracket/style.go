// Package bracket implements the deterministic post-prelim expansion:
// semifinal/consolation brackets and the finals-only shortcut, plus a
// round-robin fallback for teams left over after 9-team bracket groups
// are carved out of the field.
package bracket

import "fmt"

// Style selects how the post-prelim schedule is built. Each style ships
// a fixed StyleTable (see DefaultStyleTable) that a caller may override
// wholesale via config.
type Style string

const (
	// StyleFull runs one 3-room, 4-slot bracket per 9 teams.
	StyleFull Style = "full"
	// StyleCondensed runs the same per-bracket quiz structure as Full,
	// but packs it into 2 rooms per bracket (at the cost of additional
	// slots), letting a pair of brackets share a third room.
	StyleCondensed Style = "condensed"
	// StyleFinalsOnly skips the bracket entirely and schedules a single
	// championship quiz among the top 3 prelim finishers.
	StyleFinalsOnly Style = "finals_only"
	// StyleNone emits no post-prelim records at all.
	StyleNone Style = "none"
)

// ParseStyle validates a style name from a flag or config file.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleFull, StyleCondensed, StyleFinalsOnly, StyleNone:
		return Style(s), nil
	default:
		return "", &UnknownStyleError{Name: s}
	}
}

// UnknownStyleError reports a bracket style name this package does not
// recognize.
type UnknownStyleError struct{ Name string }

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("bracket: unknown style %q", e.Name)
}

// Row is one entry of a StyleTable: a quiz letter and the slot/room it
// occupies within a single bracket instance, before the per-instance
// room/slot shift is applied.
//
// BracketOffset, when >= 0, pins this row to exactly one bracket
// instance (0 = S, 1 = A, 2 = B), letting a caller override the
// computed placement for a single bracket without touching the rest of
// the table — the mechanism spec-mandated for supplying (or correcting)
// the historically buggy per-instance values without this package ever
// guessing at them. BracketOffset == -1 means the row applies, via the
// shift rule, to every bracket instance.
type Row struct {
	Letter        string
	BracketOffset int
	SlotOffset    int
	RoomIndex     int
	// FinalsRepeat, when > 0, marks this letter as a finals letter whose
	// default repeat count (absent an explicit finals_repeats[b]
	// override at Compose time) is FinalsRepeat.
	FinalsRepeat int
}

// StyleTable is the data a Style composes records from. It is a plain
// struct, never a Go literal baked into Compose's control flow, so a
// caller can replace it wholesale (from YAML or a Lua script) per
// spec's data-bug note.
type StyleTable struct {
	Style Style
	Rows  []Row
}

// DefaultStyleTable returns this package's built-in table for style.
// These are internally-consistent, collision-free defaults; they do not
// reproduce the known-buggy literal table from the source this spec was
// distilled from (see DESIGN.md) — a caller who needs that exact value
// supplies it as data, via config.
func DefaultStyleTable(style Style) (StyleTable, error) {
	switch style {
	case StyleFull:
		return StyleTable{Style: style, Rows: []Row{
			{Letter: "A", BracketOffset: -1, SlotOffset: 0, RoomIndex: 0},
			{Letter: "B", BracketOffset: -1, SlotOffset: 0, RoomIndex: 1},
			{Letter: "C", BracketOffset: -1, SlotOffset: 0, RoomIndex: 2},
			{Letter: "D", BracketOffset: -1, SlotOffset: 1, RoomIndex: 0},
			{Letter: "E", BracketOffset: -1, SlotOffset: 1, RoomIndex: 1},
			{Letter: "F", BracketOffset: -1, SlotOffset: 1, RoomIndex: 2},
			{Letter: "G", BracketOffset: -1, SlotOffset: 2, RoomIndex: 0},
			{Letter: "H", BracketOffset: -1, SlotOffset: 2, RoomIndex: 1},
			{Letter: "I", BracketOffset: -1, SlotOffset: 2, RoomIndex: 2},
			{Letter: "J", BracketOffset: -1, SlotOffset: 3, RoomIndex: 0, FinalsRepeat: 1},
		}}, nil
	case StyleCondensed:
		return StyleTable{Style: style, Rows: []Row{
			{Letter: "A", BracketOffset: -1, SlotOffset: 0, RoomIndex: 0},
			{Letter: "B", BracketOffset: -1, SlotOffset: 0, RoomIndex: 1},
			{Letter: "C", BracketOffset: -1, SlotOffset: 1, RoomIndex: 0},
			{Letter: "D", BracketOffset: -1, SlotOffset: 1, RoomIndex: 1},
			{Letter: "E", BracketOffset: -1, SlotOffset: 2, RoomIndex: 0},
			{Letter: "F", BracketOffset: -1, SlotOffset: 2, RoomIndex: 1},
			{Letter: "G", BracketOffset: -1, SlotOffset: 3, RoomIndex: 0},
			{Letter: "H", BracketOffset: -1, SlotOffset: 3, RoomIndex: 1},
			{Letter: "I", BracketOffset: -1, SlotOffset: 4, RoomIndex: 0},
			{Letter: "J", BracketOffset: -1, SlotOffset: 5, RoomIndex: 0, FinalsRepeat: 1},
		}}, nil
	case StyleFinalsOnly:
		return StyleTable{Style: style, Rows: []Row{
			{Letter: "K", BracketOffset: -1, SlotOffset: 0, RoomIndex: 0, FinalsRepeat: 1},
		}}, nil
	case StyleNone:
		return StyleTable{Style: style, Rows: nil}, nil
	default:
		return StyleTable{}, &UnknownStyleError{Name: string(style)}
	}
}

// shift maps a row's bracket-local (slot, room) to the board-absolute
// (slot, room) for bracket instance b, per style. Full gives each
// instance its own 3 rooms, shifted by 3*b. Condensed gives each
// instance 2 rooms shifted by 3*floor(b/2); even instances ("left")
// take local rooms {0,1} of that group on even absolute slots, odd
// instances ("right") take local rooms {1,2} (one room shared with
// their left partner) on odd absolute slots — the parity split is what
// keeps the shared room collision-free without coordinating the two
// partner instances' row data directly.
func shift(style Style, b, localSlot, localRoom int) (slot, room int) {
	switch style {
	case StyleCondensed:
		base := 3 * (b / 2)
		if b%2 == 0 {
			return localSlot * 2, base + localRoom
		}
		return localSlot*2 + 1, base + localRoom + 1
	default: // StyleFull, StyleFinalsOnly: rooms fully exclusive per instance
		return localSlot, localRoom + 3*b
	}
}
