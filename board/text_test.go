package board

import (
	"sort"
	"testing"

	"github.com/matryer/is"
)

func TestTextRoundTrip(t *testing.T) {
	is := is.New(t)
	cfg := Config{Q: 6, B: 0, Qpt: 3, R: 2, BreakIndex: 2}
	b := New(cfg)

	names := map[TeamToken]string{0: "A", 1: "B", 2: "C", 3: "D", 4: "E", 5: "F"}
	layout := [][][]TeamToken{
		{{0, 1, 2}, {3, 4, 5}},
		{{1, 3, 0}, {2, 5, 4}},
		{{2, 4, 1}, {0, 5, 3}},
	}
	for s, row := range layout {
		for r, cell := range row {
			for _, tok := range cell {
				is.NoErr(b.Push(tok, SlotIndex(s), RoomIndex(r)))
			}
		}
	}

	text := ToText(b, names)
	b2, labels, err := FromText(text, 2, 3)
	is.NoErr(err)

	// Structural equality: same set of team names, same per-team
	// placement multiset, independent of the specific TeamToken integers
	// assigned on reconstruction.
	origByName := placementsByName(b, names)
	reconByName := placementsByName(b2, labelMap(labels))

	is.Equal(len(origByName), len(reconByName))
	for name, places := range origByName {
		is.Equal(sortedPlacements(places), sortedPlacements(reconByName[name]))
	}
}

func labelMap(labels []string) map[TeamToken]string {
	m := make(map[TeamToken]string, len(labels))
	for i, l := range labels {
		m[TeamToken(i)] = l
	}
	return m
}

func placementsByName(b *Board, names map[TeamToken]string) map[string][]Placement {
	out := make(map[string][]Placement)
	for _, t := range b.Teams() {
		out[names[t]] = b.Placements(t)
	}
	return out
}

func sortedPlacements(p []Placement) []Placement {
	out := make([]Placement, len(p))
	copy(out, p)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot != out[j].Slot {
			return out[i].Slot < out[j].Slot
		}
		return out[i].Room < out[j].Room
	})
	return out
}

func TestTextBreakLine(t *testing.T) {
	is := is.New(t)
	text := "A,B,C;D,E,F\nB,D,A;C,F,E\n\nC,E,B;A,F,D"
	b, labels, err := FromText(text, 2, 3)
	is.NoErr(err)
	is.Equal(len(labels), 6)
	is.Equal(b.Config().BreakIndex, SlotIndex(2))
	is.Equal(b.Slots(), 3)
}
