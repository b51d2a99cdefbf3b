package board

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// emptySeat is the placeholder for an unseated position in the text
// format.
const emptySeat = "_"

// ToText renders the board using the line-oriented textual format: one
// line per slot, cells separated by ';', tokens comma-separated, "_" for
// an empty seat, and a blank line at the day break. names maps a token
// to the label written into the text; tokens absent from names fall
// back to their numeric index.
func ToText(b *Board, names map[TeamToken]string) string {
	var lines []string
	for s := 0; s < len(b.cells); s++ {
		if SlotIndex(s) == b.cfg.BreakIndex && s != 0 {
			lines = append(lines, "")
		}
		cellStrs := lo.Map(b.cells[s], func(cell QuizCell, _ int) string {
			return cellText(cell, names)
		})
		lines = append(lines, strings.Join(cellStrs, ";"))
	}
	return strings.Join(lines, "\n")
}

func cellText(cell QuizCell, names map[TeamToken]string) string {
	tokens := cell.Tokens()
	parts := make([]string, CellCapacity)
	for i := range parts {
		parts[i] = emptySeat
	}
	for i, t := range tokens {
		parts[i] = tokenLabel(t, names)
	}
	return strings.Join(parts, ",")
}

func tokenLabel(t TeamToken, names map[TeamToken]string) string {
	if names != nil {
		if name, ok := names[t]; ok {
			return name
		}
	}
	return strconv.Itoa(int(t))
}

// FromText reconstructs a board from its textual representation. rooms
// is required because a short final slot can otherwise leave the room
// count ambiguous. It returns the board and the ordered list of team
// labels seen, indexed by the TeamToken assigned to each (first
// occurrence in reading order).
func FromText(text string, rooms int, qpt int) (*Board, []string, error) {
	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var slotLines []string
	breakIndex := SlotIndex(-1)
	seenBreak := false
	for _, line := range rawLines {
		if strings.TrimSpace(line) == "" {
			if len(slotLines) > 0 && !seenBreak {
				breakIndex = SlotIndex(len(slotLines))
				seenBreak = true
			}
			continue
		}
		slotLines = append(slotLines, line)
	}
	if !seenBreak {
		breakIndex = SlotIndex(len(slotLines))
	}

	labelIndex := map[string]TeamToken{}
	var labels []string
	tokenFor := func(label string) TeamToken {
		if tok, ok := labelIndex[label]; ok {
			return tok
		}
		tok := TeamToken(len(labels))
		labelIndex[label] = tok
		labels = append(labels, label)
		return tok
	}

	type parsedCell struct {
		tokens []TeamToken
	}
	var parsedSlots [][]parsedCell
	total := 0
	for _, line := range slotLines {
		cellsText := strings.Split(line, ";")
		row := make([]parsedCell, 0, len(cellsText))
		for _, cellText := range cellsText {
			var toks []TeamToken
			for _, field := range strings.Split(cellText, ",") {
				field = strings.TrimSpace(field)
				if field == "" || field == emptySeat {
					continue
				}
				toks = append(toks, tokenFor(field))
			}
			row = append(row, parsedCell{tokens: toks})
			if len(toks) > 0 {
				total++ // one real quiz per non-empty cell
			}
		}
		parsedSlots = append(parsedSlots, row)
	}

	q := total
	cfg := Config{
		Q:          q,
		B:          0,
		Qpt:        qpt,
		R:          rooms,
		BreakIndex: breakIndex,
	}
	b := New(cfg)
	// Reconcile the derived grid shape with what was actually read: the
	// text format carries exactly len(parsedSlots) slots with whatever
	// per-slot widths were written, which New's ceil((Q+B)/R) derivation
	// may not reproduce exactly for ragged inputs, so rebuild cells
	// directly from the parsed rows instead of relying on New's shape.
	b.cells = make([][]QuizCell, len(parsedSlots))
	for s, row := range parsedSlots {
		b.cells[s] = make([]QuizCell, len(row))
	}
	for s, row := range parsedSlots {
		for r, cell := range row {
			for _, t := range cell.tokens {
				if err := b.Push(t, SlotIndex(s), RoomIndex(r)); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return b, labels, nil
}
