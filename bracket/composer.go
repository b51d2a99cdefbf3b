package bracket

import (
	"fmt"
	"sort"
)

// Record is one post-prelim quiz: a bracket round, a finals quiz, or a
// round-robin leftover quiz. Team1-3 are symbolic references per the
// grammar in spec §6 ("P_i" for the i-th overall prelim rank, or
// "<quiz_num>_i" for the i-th placer out of a prior quiz) — Compose
// never resolves these to team names; that is DrawSerializer's job once
// prelim results are known.
type Record struct {
	QuizNum               string
	SlotOffset, RoomIndex int
	Team1, Team2, Team3   string
	// Type tags the bracket this record belongs to: "S" (0), "A" (1),
	// "B" (2), or "" for finals-only/round-robin records that don't
	// belong to a numbered bracket instance.
	Type string
}

var bracketTag = [...]string{"S", "A", "B"}

// Compose builds the full post-prelim record set for a field of n prelim
// teams. Per spec §8 invariant I-9 ("composer purity"), the result
// depends only on (n, style, finalsRepeats, skipRoundRobin) — nothing
// here reads a board or an energy model.
//
// finalsRepeats is indexed by bracket instance (0=S, 1=A, 2=B); a nil or
// short slice falls back to each row's FinalsRepeat default (1).
//
// Compose always draws from this package's built-in table; a caller
// that needs a config-supplied override (YAML or a Lua script, per
// spec's data-bug note on DefaultStyleTable) must call
// ComposeWithTable instead.
func Compose(n int, style Style, finalsRepeats []int, skipRoundRobin bool) ([]Record, error) {
	table, err := DefaultStyleTable(style)
	if err != nil {
		return nil, err
	}
	return ComposeWithTable(n, table, finalsRepeats, skipRoundRobin)
}

// ComposeWithTable is Compose with the StyleTable supplied by the
// caller instead of looked up from DefaultStyleTable, so a
// config-resolved override (config.Config.BracketTable, itself loaded
// from YAML or via config.LoadStyleScript) actually reaches the
// composer instead of being silently shadowed by the built-in table.
// The bracket-vs-finals-only control flow is keyed off table.Style, so
// callers must set it to the style they intend (DefaultStyleTable's
// result always does).
func ComposeWithTable(n int, table StyleTable, finalsRepeats []int, skipRoundRobin bool) ([]Record, error) {
	style := table.Style

	switch style {
	case StyleNone:
		return nil, nil
	case StyleFinalsOnly:
		records := composeInstance(table, 0, 0, repeatsFor(finalsRepeats, 0, table))
		for i := range records {
			records[i].Type = "" // not part of a numbered bracket instance
		}
		return records, nil
	}

	numBrackets := n / 9
	leftover := n % 9

	var records []Record
	for b := 0; b < numBrackets; b++ {
		records = append(records, composeInstance(table, b, 9*b, repeatsFor(finalsRepeats, b, table))...)
	}

	if leftover >= 3 && !skipRoundRobin {
		records = append(records, roundRobinRecords(leftover, 9*numBrackets, roundRobinRoom(style, numBrackets))...)
	}

	return records, nil
}

func repeatsFor(finalsRepeats []int, b int, table StyleTable) int {
	if b < len(finalsRepeats) && finalsRepeats[b] > 0 {
		return finalsRepeats[b]
	}
	for _, r := range table.Rows {
		if r.FinalsRepeat > 0 {
			return r.FinalsRepeat
		}
	}
	return 1
}

// composeInstance builds one bracket instance's records: a 3-tier
// reduction tree over prelim ranks [rankBase+1, rankBase+9] (A/B/C pool
// by initial third, D/E/F re-pool by A/B/C placement, G/H/I re-pool by
// D/E/F placement), then a finals quiz among the top tier's placers,
// repeated finalsRepeat times.
func composeInstance(table StyleTable, b, rankBase, finalsRepeat int) []Record {
	suffix := ""
	tag := ""
	if b < len(bracketTag) {
		tag = bracketTag[b]
	}
	if b > 0 {
		suffix = fmt.Sprintf("%d", b+1)
	}
	letter := func(l string) string { return l + suffix }

	rowByLetter := make(map[string]Row, len(table.Rows))
	for _, r := range table.Rows {
		if r.BracketOffset != -1 && r.BracketOffset != b {
			continue
		}
		rowByLetter[r.Letter] = r
	}

	place := func(r Row, team1, team2, team3 string) Record {
		slot, room := shift(table.Style, b, r.SlotOffset, r.RoomIndex)
		return Record{
			QuizNum:    letter(r.Letter),
			SlotOffset: slot,
			RoomIndex:  room,
			Team1:      team1,
			Team2:      team2,
			Team3:      team3,
			Type:       tag,
		}
	}

	// A finals-only table has no A-I tier: it places the prelim top 3
	// directly into its single finals quiz below.
	_, hasReductionTree := rowByLetter["A"]

	var records []Record
	if hasReductionTree {
		// Round 0: A/B/C pools, contiguous thirds of this instance's ranks.
		for i, l := range []string{"A", "B", "C"} {
			base := rankBase + 3*i
			records = append(records, place(rowByLetter[l],
				fmt.Sprintf("P_%d", base+1),
				fmt.Sprintf("P_%d", base+2),
				fmt.Sprintf("P_%d", base+3)))
		}
		// Round 1: D/E/F re-pool by round-0 placement.
		for i, l := range []string{"D", "E", "F"} {
			place1 := i + 1
			records = append(records, place(rowByLetter[l],
				fmt.Sprintf("%s_%d", letter("A"), place1),
				fmt.Sprintf("%s_%d", letter("B"), place1),
				fmt.Sprintf("%s_%d", letter("C"), place1)))
		}
		// Round 2: G/H/I re-pool by round-1 placement.
		for i, l := range []string{"G", "H", "I"} {
			place1 := i + 1
			records = append(records, place(rowByLetter[l],
				fmt.Sprintf("%s_%d", letter("D"), place1),
				fmt.Sprintf("%s_%d", letter("E"), place1),
				fmt.Sprintf("%s_%d", letter("F"), place1)))
		}
	}

	// Finals: the top tier's placers, replayed finalsRepeat times.
	finalsLetter := "J"
	if _, ok := rowByLetter["K"]; ok {
		finalsLetter = "K"
	}
	if r, ok := rowByLetter[finalsLetter]; ok {
		top1, top2, top3 := fmt.Sprintf("%s_1", letter("G")), fmt.Sprintf("%s_2", letter("G")), fmt.Sprintf("%s_3", letter("G"))
		if finalsLetter == "K" {
			top1, top2, top3 = "P_1", "P_2", "P_3"
		}
		if finalsRepeat < 1 {
			finalsRepeat = 1
		}
		for k := 1; k <= finalsRepeat; k++ {
			rec := place(r, top1, top2, top3)
			if k > 1 {
				rec.QuizNum = fmt.Sprintf("%s(%d)", rec.QuizNum, k)
			}
			records = append(records, rec)
		}
	}

	return records
}

// roundRobinRoom picks the next free room index after every bracket
// instance's rooms: full uses 3 rooms/instance, condensed uses 3 rooms
// per pair of instances (rounding the odd leftover instance up to its
// own group of 3).
func roundRobinRoom(style Style, numBrackets int) int {
	if style == StyleCondensed {
		return 3 * ((numBrackets + 1) / 2)
	}
	return 3 * numBrackets
}

// roundRobinRecords schedules the leftover field (ranks rankBase+1..
// rankBase+leftover, leftover in [3,8]) as a round-robin in a single new
// room. Groups of exactly 3 play once; a non-multiple-of-3 remainder
// (4, 5, 7, or 8 teams) is split into as many full triples as possible
// plus one final trailing quiz whose empty seats are filled with the
// symbolic "BYE" reference, so every leftover team still plays at least
// one quiz. Every quiz in the new room occupies its own slot,
// since it is the room's only quiz for that round.
func roundRobinRecords(leftover, rankBase, room int) []Record {
	ranks := make([]int, leftover)
	for i := range ranks {
		ranks[i] = rankBase + i + 1
	}
	sort.Ints(ranks)

	var records []Record
	slot := 0
	quiz := 1
	i := 0
	for ; i+3 <= leftover; i += 3 {
		records = append(records, Record{
			QuizNum:    fmt.Sprintf("RR%d", quiz),
			SlotOffset: slot,
			RoomIndex:  room,
			Team1:      fmt.Sprintf("P_%d", ranks[i]),
			Team2:      fmt.Sprintf("P_%d", ranks[i+1]),
			Team3:      fmt.Sprintf("P_%d", ranks[i+2]),
		})
		slot++
		quiz++
	}
	if rem := leftover - i; rem > 0 {
		team1 := fmt.Sprintf("P_%d", ranks[i])
		team2, team3 := "BYE", "BYE"
		if rem == 2 {
			team2 = fmt.Sprintf("P_%d", ranks[i+1])
		}
		records = append(records, Record{
			QuizNum:    fmt.Sprintf("RR%d", quiz),
			SlotOffset: slot,
			RoomIndex:  room,
			Team1:      team1,
			Team2:      team2,
			Team3:      team3,
		})
	}
	return records
}
