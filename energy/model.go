package energy

import (
	"fmt"

	"github.com/northfield-quizbowl/quizdraw/board"
)

// Model computes per-insertion and total penalty for a board state given
// a fixed set of Weights.
type Model struct {
	Weights Weights
}

// New returns a Model using the given weights.
func New(w Weights) *Model {
	return &Model{Weights: w}
}

// Breakdown reports which penalty events fired for a single insertion,
// alongside their total.
type Breakdown struct {
	CurrentlyQuizzing bool
	HatTrick          bool
	BackToBack        bool
	AlreadySeenCount  int
	AlreadyQuizzedCount int
	Total             float64
}

// QuizEnergy computes the penalty of inserting t into (s, r). It assumes
// t is not currently seated at (s, r); callers that need to re-score an
// existing placement must Pop it first.
func (m *Model) QuizEnergy(b *board.Board, t board.TeamToken, s board.SlotIndex, r board.RoomIndex) float64 {
	bd := m.Breakdown(b, t, s, r)
	return bd.Total
}

// Breakdown is QuizEnergy's verbose sibling: it reports which events
// fired in addition to the total, which the statistics pass uses to
// build CQ/BTB/HT lists without recomputing the insertion twice.
func (m *Model) Breakdown(b *board.Board, t board.TeamToken, s board.SlotIndex, r board.RoomIndex) Breakdown {
	return m.breakdown(b, t, s, r, false)
}

// BreakdownExisting reports the same per-event detail as Breakdown, but
// for a placement t already holds at (s, r). It excludes that
// placement itself from every count instead of requiring the caller to
// Pop it first, so a read-only pass over a frozen board (the
// statistics pass) never has to mutate the board to re-score it.
func (m *Model) BreakdownExisting(b *board.Board, t board.TeamToken, s board.SlotIndex, r board.RoomIndex) Breakdown {
	return m.breakdown(b, t, s, r, true)
}

func (m *Model) breakdown(b *board.Board, t board.TeamToken, s board.SlotIndex, r board.RoomIndex, self bool) Breakdown {
	var bd Breakdown
	cfg := b.Config()

	currentlyQuizzing := false
	if self {
		currentlyQuizzing = teamInSlotExcept(b, t, s, r)
	} else {
		currentlyQuizzing = teamInSlot(b, t, s)
	}
	if currentlyQuizzing {
		bd.CurrentlyQuizzing = true
		bd.Total += m.Weights.CurrentlyQuizzing
	}

	suppressed := s == cfg.BreakIndex
	if !suppressed {
		prev1 := s-1 >= 0 && teamInSlot(b, t, s-1)
		if prev1 {
			bd.BackToBack = true
			bd.Total += m.Weights.BackToBack
		}
		if prev1 && s-2 >= 0 && teamInSlot(b, t, s-2) {
			bd.HatTrick = true
			bd.Total += m.Weights.HatTrick
		}
	}

	if cell := b.Cell(s, r); cell != nil {
		for _, other := range cell.Tokens() {
			if other == t {
				continue
			}
			if self {
				bd.AlreadySeenCount += coQuizCountExcept(b, t, other, s, r)
			} else {
				bd.AlreadySeenCount += coQuizCount(b, t, other)
			}
		}
	}
	bd.Total += float64(bd.AlreadySeenCount) * m.Weights.AlreadySeen

	if self {
		bd.AlreadyQuizzedCount = roomCountExcept(b, t, r, s)
	} else {
		bd.AlreadyQuizzedCount = roomCount(b, t, r)
	}
	bd.Total += float64(bd.AlreadyQuizzedCount) * m.Weights.AlreadyQuizzed

	return bd
}

// Total computes the board's total energy by temporarily popping each
// present token, recomputing its insertion energy, and pushing it back.
// It is O(T*qpt) and is the optimizer's hot path; it must never return a
// negative value, and a negative result indicates an InvariantViolation
// upstream.
func (m *Model) Total(b *board.Board) (float64, error) {
	var total float64
	for _, t := range b.Teams() {
		for _, p := range b.Placements(t) {
			if err := b.Pop(t, p.Slot, p.Room); err != nil {
				return 0, fmt.Errorf("energy: total: %w", err)
			}
			total += m.QuizEnergy(b, t, p.Slot, p.Room)
			if err := b.Push(t, p.Slot, p.Room); err != nil {
				return 0, fmt.Errorf("energy: total: %w", err)
			}
		}
	}
	if total < 0 {
		return 0, &board.InvariantViolationError{Reason: fmt.Sprintf("negative total energy: %f", total)}
	}
	return total, nil
}

func teamInSlot(b *board.Board, t board.TeamToken, s board.SlotIndex) bool {
	for r := 0; r < b.RoomsIn(s); r++ {
		if b.Cell(s, board.RoomIndex(r)).Contains(t) {
			return true
		}
	}
	return false
}

// teamInSlotExcept is teamInSlot but ignores exceptRoom, for scoring a
// placement t already holds at (s, exceptRoom) without popping it.
func teamInSlotExcept(b *board.Board, t board.TeamToken, s board.SlotIndex, exceptRoom board.RoomIndex) bool {
	for r := 0; r < b.RoomsIn(s); r++ {
		if board.RoomIndex(r) == exceptRoom {
			continue
		}
		if b.Cell(s, board.RoomIndex(r)).Contains(t) {
			return true
		}
	}
	return false
}

func coQuizCount(b *board.Board, t, other board.TeamToken) int {
	count := 0
	for _, p := range b.Placements(t) {
		if b.Cell(p.Slot, p.Room).Contains(other) {
			count++
		}
	}
	return count
}

// coQuizCountExcept is coQuizCount but skips t's placement at
// (exceptSlot, exceptRoom), the placement being scored itself.
func coQuizCountExcept(b *board.Board, t, other board.TeamToken, exceptSlot board.SlotIndex, exceptRoom board.RoomIndex) int {
	count := 0
	for _, p := range b.Placements(t) {
		if p.Slot == exceptSlot && p.Room == exceptRoom {
			continue
		}
		if b.Cell(p.Slot, p.Room).Contains(other) {
			count++
		}
	}
	return count
}

func roomCount(b *board.Board, t board.TeamToken, r board.RoomIndex) int {
	count := 0
	for _, p := range b.Placements(t) {
		if p.Room == r {
			count++
		}
	}
	return count
}

// roomCountExcept is roomCount but skips t's placement at
// (exceptSlot, r), the placement being scored itself.
func roomCountExcept(b *board.Board, t board.TeamToken, r board.RoomIndex, exceptSlot board.SlotIndex) int {
	count := 0
	for _, p := range b.Placements(t) {
		if p.Slot == exceptSlot && p.Room == r {
			continue
		}
		if p.Room == r {
			count++
		}
	}
	return count
}
