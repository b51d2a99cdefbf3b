// Package serialize turns a finalized board and a BracketComposer's
// output into the quiz-record JSON sequence spec §6 defines: one record
// per non-empty prelim cell, followed by the bracket/semis/consolation
// records, all with a human slot_time label attached.
package serialize

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/northfield-quizbowl/quizdraw/board"
	"github.com/northfield-quizbowl/quizdraw/bracket"
	"github.com/northfield-quizbowl/quizdraw/config"
)

var titleCaser = cases.Title(language.English)

// DefaultTeamName formats the placeholder name used when the caller
// supplies no roster (roster-file parsing is out of scope): "Team N",
// 1-indexed, title-cased so it matches however a real roster's names
// would be normalized before being handed to BuildPrelimRecords.
func DefaultTeamName(i int) string {
	return titleCaser.String(fmt.Sprintf("team %d", i+1))
}

// DefaultTeamNames builds the placeholder name map for n teams, tokens
// 0..n-1.
func DefaultTeamNames(n int) map[board.TeamToken]string {
	names := make(map[board.TeamToken]string, n)
	for i := 0; i < n; i++ {
		names[board.TeamToken(i)] = DefaultTeamName(i)
	}
	return names
}

// QuizRecord is the stable JSON shape spec §6 defines. Field names and
// json tags match the source's `draw.json` schema exactly
// (original_source/statsimusprime/manager.py's `load_draw` docstring).
type QuizRecord struct {
	QuizNum  string `json:"quiz_num"`
	SlotNum  string `json:"slot_num"`
	RoomNum  string `json:"room_num"`
	SlotTime string `json:"slot_time"`
	Team1    string `json:"team1"`
	Team2    string `json:"team2"`
	Team3    string `json:"team3"`
	URL      string `json:"url"`
	Type     string `json:"type"`
}

// BuildPrelimRecords emits one record per non-empty cell of b, in
// row-major (slot, then room) order, 1-indexed quiz_num assigned
// sequentially over non-empty cells only (an empty cell consumes no
// quiz_num). names maps each placed token to the team name that appears
// in the record; a token with no entry is an InvariantViolation-class
// bug in the caller, not something this package guesses at.
func BuildPrelimRecords(b *board.Board, names map[board.TeamToken]string, grid config.TimeGrid) ([]QuizRecord, error) {
	var records []QuizRecord
	quizNum := 1

	for s := 0; s < b.Slots(); s++ {
		for r := 0; r < b.RoomsIn(board.SlotIndex(s)); r++ {
			cell := b.Cell(board.SlotIndex(s), board.RoomIndex(r))
			if cell.Empty() {
				continue
			}
			teams, err := teamNames(cell.Tokens(), names)
			if err != nil {
				return nil, err
			}
			records = append(records, QuizRecord{
				QuizNum:  fmt.Sprintf("%d", quizNum),
				SlotNum:  fmt.Sprintf("%d", s+1),
				RoomNum:  fmt.Sprintf("%d", r+1),
				SlotTime: grid.Label(s+1, "P"),
				Team1:    teams[0],
				Team2:    teams[1],
				Team3:    teams[2],
				URL:      "",
				Type:     "P",
			})
			quizNum++
		}
	}
	return records, nil
}

func teamNames(tokens []board.TeamToken, names map[board.TeamToken]string) ([3]string, error) {
	var out [3]string
	for i, tok := range tokens {
		name, ok := names[tok]
		if !ok {
			return out, &board.InvariantViolationError{Reason: fmt.Sprintf("no team name supplied for token %d", tok)}
		}
		out[i] = name
	}
	return out, nil
}

// BuildBracketRecords converts a BracketComposer result into
// QuizRecords: absolute slot/room numbers are the composer's
// slot_offset/room_index shifted past the prelim slots (slotOffset) and
// rooms, each stamped with its configured slot_time. Composer output
// already carries symbolic team references ("P_i", "<quiz_num>_i");
// they pass through unresolved, per spec — resolving them to actual
// team names happens after the meet's prelim standings are known, which
// is outside this package's scope.
func BuildBracketRecords(records []bracket.Record, slotOffset int, grid config.TimeGrid) []QuizRecord {
	return lo.Map(records, func(r bracket.Record, _ int) QuizRecord {
		slot := slotOffset + r.SlotOffset + 1
		return QuizRecord{
			QuizNum:  r.QuizNum,
			SlotNum:  fmt.Sprintf("%d", slot),
			RoomNum:  fmt.Sprintf("%d", r.RoomIndex+1),
			SlotTime: grid.Label(slot, r.Type),
			Team1:    r.Team1,
			Team2:    r.Team2,
			Team3:    r.Team3,
			URL:      "",
			Type:     typeOrPrelim(r.Type),
		}
	})
}

// typeOrPrelim maps an empty bracket.Record.Type (finals-only and
// round-robin records carry no S/A/B tag) to "P" per spec's
// `type` field not being empty for finals-only draws — a standalone
// finals quiz or a leftover round-robin still schedules an actual
// meet quiz, just not an S/A/B-tagged one.
func typeOrPrelim(t string) string {
	if t == "" {
		return "P"
	}
	return t
}
