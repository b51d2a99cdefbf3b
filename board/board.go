package board

import "fmt"

// SlotIndex identifies a time slot (column in the (slot, room) grid).
type SlotIndex int

// RoomIndex identifies a room (row within a slot).
type RoomIndex int

// Placement identifies a single cell by its slot and room.
type Placement struct {
	Slot SlotIndex
	Room RoomIndex
}

// Config holds the fixed counts that describe a board's shape. Q is the
// number of real quizzes, B the number of blank padding quizzes, R the
// room count, and Qpt the quizzes each team must play. S is derived.
type Config struct {
	Q          int
	B          int
	Qpt        int
	R          int
	BreakIndex SlotIndex
}

// S returns the number of slots: ceil((Q+B)/R).
func (c Config) S() SlotIndex {
	if c.R <= 0 {
		return 0
	}
	return SlotIndex((c.Q + c.B + c.R - 1) / c.R)
}

// ValidateTeamConfig checks the structural preconditions the CLI surface
// must reject before any optimization begins (spec: ConfigError inputs).
func ValidateTeamConfig(teams, qpt, rooms, blanks int) error {
	if teams < 0 || qpt < 0 || rooms < 0 || blanks < 0 {
		return &ConfigError{Reason: "counts must be non-negative"}
	}
	if rooms == 0 {
		return &ConfigError{Reason: "rooms must be positive"}
	}
	if teams/3 < rooms {
		return &ConfigError{Reason: fmt.Sprintf("not enough teams (%d) to fill %d rooms per slot", teams, rooms)}
	}
	if teams%3 != 0 && qpt%3 != 0 {
		return &ConfigError{Reason: "neither team count nor quizzes-per-team is divisible by 3"}
	}
	return nil
}

// Board is the (slots x rooms) grid of quiz cells plus the inverted
// team -> placements index. The two are kept in sync only through Push
// and Pop; callers must never mutate cells or the index directly.
type Board struct {
	cfg            Config
	cells          [][]QuizCell // cells[s] has length R, except the final slot may be short
	teamPlacements map[TeamToken][]Placement
}

// New constructs an empty board for the given configuration.
func New(cfg Config) *Board {
	s := int(cfg.S())
	cells := make([][]QuizCell, s)
	remaining := cfg.Q + cfg.B
	for i := 0; i < s; i++ {
		width := cfg.R
		if remaining < width {
			width = remaining
		}
		cells[i] = make([]QuizCell, width)
		remaining -= width
	}
	return &Board{
		cfg:            cfg,
		cells:          cells,
		teamPlacements: make(map[TeamToken][]Placement),
	}
}

// Config returns the board's shape configuration.
func (b *Board) Config() Config { return b.cfg }

// Slots returns the number of slots.
func (b *Board) Slots() int { return len(b.cells) }

// RoomsIn returns the number of rooms present in slot s (the final slot
// may be narrower than Config.R).
func (b *Board) RoomsIn(s SlotIndex) int {
	if int(s) < 0 || int(s) >= len(b.cells) {
		return 0
	}
	return len(b.cells[s])
}

// Cell returns a pointer to the cell at (s, r), or nil if out of range.
func (b *Board) Cell(s SlotIndex, r RoomIndex) *QuizCell {
	if int(s) < 0 || int(s) >= len(b.cells) {
		return nil
	}
	row := b.cells[s]
	if int(r) < 0 || int(r) >= len(row) {
		return nil
	}
	return &row[r]
}

// Placements returns a copy of t's placement list, in the chronological
// order t was pushed.
func (b *Board) Placements(t TeamToken) []Placement {
	src := b.teamPlacements[t]
	out := make([]Placement, len(src))
	copy(out, src)
	return out
}

// Teams returns every token with at least one placement.
func (b *Board) Teams() []TeamToken {
	out := make([]TeamToken, 0, len(b.teamPlacements))
	for t := range b.teamPlacements {
		out = append(out, t)
	}
	return out
}

// Push seats t at (s, r), updating the cell and the inverted index
// atomically.
func (b *Board) Push(t TeamToken, s SlotIndex, r RoomIndex) error {
	cell := b.Cell(s, r)
	if cell == nil {
		return &InvariantViolationError{Reason: fmt.Sprintf("push: (%d,%d) out of range", s, r)}
	}
	if err := cell.Push(t); err != nil {
		return err
	}
	b.teamPlacements[t] = append(b.teamPlacements[t], Placement{Slot: s, Room: r})
	return nil
}

// Pop removes t from (s, r), updating the cell and the inverted index
// atomically. It returns ErrMissingPlacement if t is not seated there.
func (b *Board) Pop(t TeamToken, s SlotIndex, r RoomIndex) error {
	cell := b.Cell(s, r)
	if cell == nil || !cell.Contains(t) {
		return ErrMissingPlacement
	}
	placements := b.teamPlacements[t]
	idx := -1
	for i, p := range placements {
		if p.Slot == s && p.Room == r {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &InvariantViolationError{Reason: fmt.Sprintf("pop: cell (%d,%d) holds team %d but index disagrees", s, r, t)}
	}
	if err := cell.popToken(t); err != nil {
		return &InvariantViolationError{Reason: err.Error()}
	}
	b.teamPlacements[t] = append(placements[:idx], placements[idx+1:]...)
	return nil
}

// TotalCells returns the number of cells in the grid (Q+B).
func (b *Board) TotalCells() int {
	total := 0
	for _, row := range b.cells {
		total += len(row)
	}
	return total
}

// CellAtIndex maps a row-major flat index in [0, TotalCells()) to its
// (slot, room) coordinates.
func (b *Board) CellAtIndex(idx int) (SlotIndex, RoomIndex, bool) {
	if idx < 0 {
		return 0, 0, false
	}
	for s, row := range b.cells {
		if idx < len(row) {
			return SlotIndex(s), RoomIndex(idx), true
		}
		idx -= len(row)
	}
	return 0, 0, false
}

// OpenPositions yields every (s, r) whose cell is not full, restricted to
// the first ceil(Q/R) slots; the blanks region is not considered during
// initialization.
func (b *Board) OpenPositions() []Placement {
	initSlots := 0
	if b.cfg.R > 0 {
		initSlots = (b.cfg.Q + b.cfg.R - 1) / b.cfg.R
	}
	if initSlots > len(b.cells) {
		initSlots = len(b.cells)
	}
	var out []Placement
	for s := 0; s < initSlots; s++ {
		for r, cell := range b.cells[s] {
			if !cell.Full() {
				out = append(out, Placement{Slot: SlotIndex(s), Room: RoomIndex(r)})
			}
		}
	}
	return out
}
