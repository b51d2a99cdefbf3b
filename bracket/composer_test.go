package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lettersOf(records []Record) map[string]bool {
	out := make(map[string]bool, len(records))
	for _, r := range records {
		out[r.QuizNum] = true
	}
	return out
}

// S5: N=18, condensed. Exactly two full brackets (S and A) with letters
// A-J, correct room offsets, no round-robin appended.
func TestComposeS5TwoCondensedBrackets(t *testing.T) {
	records, err := Compose(18, StyleCondensed, nil, false)
	require.NoError(t, err)

	letters := lettersOf(records)
	for _, l := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		assert.True(t, letters[l], "missing letter %s from first bracket", l)
	}
	for _, l := range []string{"A2", "B2", "C2", "D2", "E2", "F2", "G2", "H2", "I2", "J2"} {
		assert.True(t, letters[l], "missing letter %s from second bracket", l)
	}
	assert.Len(t, records, 20, "18 teams -> 2 brackets, no leftover, no round-robin")

	for _, r := range records {
		assert.NotEqual(t, "RR1", r.QuizNum)
	}

	// Room offsets: bracket 0 (even, "left") uses rooms {0,1}; bracket 1
	// (odd, "right") uses rooms {1,2}, sharing room 1 with bracket 0.
	roomsByBracket := map[int]map[int]bool{0: {}, 1: {}}
	for i, r := range records {
		b := 0
		if i >= 10 {
			b = 1
		}
		roomsByBracket[b][r.RoomIndex] = true
	}
	assert.Subset(t, []int{0, 1}, keysOf(roomsByBracket[0]))
	assert.Subset(t, []int{1, 2}, keysOf(roomsByBracket[1]))
}

func keysOf(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// S6: N=12, condensed, skip_round_robin=false. One bracket for the top
// 9 plus a 3-team round-robin for the remaining 3 teams in a new room.
func TestComposeS6LeftoverRoundRobin(t *testing.T) {
	records, err := Compose(12, StyleCondensed, nil, false)
	require.NoError(t, err)

	letters := lettersOf(records)
	assert.True(t, letters["J"])
	assert.False(t, letters["A2"], "only one full 9-team bracket should form")

	var rr []Record
	for _, r := range records {
		if r.QuizNum == "RR1" {
			rr = append(rr, r)
		}
	}
	require.Len(t, rr, 1)
	assert.Equal(t, "P_10", rr[0].Team1)
	assert.Equal(t, "P_11", rr[0].Team2)
	assert.Equal(t, "P_12", rr[0].Team3)
	// Round-robin room must not collide with the single bracket's rooms.
	for _, r := range records {
		if r.QuizNum != "RR1" {
			assert.NotEqual(t, rr[0].RoomIndex, r.RoomIndex)
		}
	}
}

func TestComposeSkipRoundRobinOmitsLeftover(t *testing.T) {
	records, err := Compose(12, StyleCondensed, nil, true)
	require.NoError(t, err)
	for _, r := range records {
		assert.NotEqual(t, "RR1", r.QuizNum)
	}
}

func TestComposeFinalsOnlyIgnoresN(t *testing.T) {
	records, err := Compose(40, StyleFinalsOnly, nil, false)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "K", records[0].QuizNum)
	assert.Equal(t, "P_1", records[0].Team1)
	assert.Equal(t, "P_2", records[0].Team2)
	assert.Equal(t, "P_3", records[0].Team3)
}

func TestComposeStyleNoneIsEmpty(t *testing.T) {
	records, err := Compose(27, StyleNone, nil, false)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestComposeIsPure(t *testing.T) {
	a, err := Compose(21, StyleFull, []int{2, 1, 1}, false)
	require.NoError(t, err)
	b, err := Compose(21, StyleFull, []int{2, 1, 1}, false)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComposeFinalsRepeatsAppendsSuffix(t *testing.T) {
	records, err := Compose(9, StyleFull, []int{3}, false)
	require.NoError(t, err)
	var finals []Record
	for _, r := range records {
		if r.QuizNum == "J" || r.QuizNum == "J(2)" || r.QuizNum == "J(3)" {
			finals = append(finals, r)
		}
	}
	require.Len(t, finals, 3)
}

func TestParseStyleRejectsUnknown(t *testing.T) {
	_, err := ParseStyle("bogus")
	require.Error(t, err)
	var use *UnknownStyleError
	assert.ErrorAs(t, err, &use)
}

func TestComposeFullRoomOffsets(t *testing.T) {
	records, err := Compose(27, StyleFull, nil, false)
	require.NoError(t, err)
	require.Len(t, records, 30) // 3 brackets * 10 letters, no leftover (27 mod 9 == 0)

	for _, r := range records {
		switch r.Type {
		case "S":
			assert.Less(t, r.RoomIndex, 3)
		case "A":
			assert.GreaterOrEqual(t, r.RoomIndex, 3)
			assert.Less(t, r.RoomIndex, 6)
		case "B":
			assert.GreaterOrEqual(t, r.RoomIndex, 6)
			assert.Less(t, r.RoomIndex, 9)
		}
	}
}

func TestComposeWithTableUsesCallerSuppliedRows(t *testing.T) {
	override := StyleTable{
		Style: StyleFinalsOnly,
		Rows: []Row{
			{Letter: "K", BracketOffset: -1, SlotOffset: 9, RoomIndex: 7, FinalsRepeat: 1},
		},
	}
	records, err := ComposeWithTable(0, override, nil, false)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "K", records[0].QuizNum)
	assert.Equal(t, 9, records[0].SlotOffset)
	assert.Equal(t, 7, records[0].RoomIndex)
}

func TestComposeWithTableMatchesComposeForDefaultTable(t *testing.T) {
	table, err := DefaultStyleTable(StyleFull)
	require.NoError(t, err)

	want, err := Compose(27, StyleFull, nil, false)
	require.NoError(t, err)
	got, err := ComposeWithTable(27, table, nil, false)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}
