package anneal

import (
	"github.com/northfield-quizbowl/quizdraw/board"
)

// Move is a reversible board mutation. Apply and Revert are purely
// structural: Revert never recomputes energy, it undoes exactly the
// tokens-to-cells transposition Apply made.
type Move interface {
	Apply(b *board.Board) error
	Revert(b *board.Board) error
}

// TeamSwapMove exchanges one placement each of two distinct teams.
type TeamSwapMove struct {
	T1, T2 board.TeamToken
	P1, P2 board.Placement // original placements: T1 at P1, T2 at P2
}

// Apply moves T1 into P2 and T2 into P1.
func (m *TeamSwapMove) Apply(b *board.Board) error {
	if err := b.Pop(m.T1, m.P1.Slot, m.P1.Room); err != nil {
		return err
	}
	if err := b.Pop(m.T2, m.P2.Slot, m.P2.Room); err != nil {
		return err
	}
	if err := b.Push(m.T1, m.P2.Slot, m.P2.Room); err != nil {
		return err
	}
	if err := b.Push(m.T2, m.P1.Slot, m.P1.Room); err != nil {
		return err
	}
	return nil
}

// Revert undoes Apply, restoring T1 to P1 and T2 to P2.
func (m *TeamSwapMove) Revert(b *board.Board) error {
	if err := b.Pop(m.T1, m.P2.Slot, m.P2.Room); err != nil {
		return err
	}
	if err := b.Pop(m.T2, m.P1.Slot, m.P1.Room); err != nil {
		return err
	}
	if err := b.Push(m.T1, m.P1.Slot, m.P1.Room); err != nil {
		return err
	}
	if err := b.Push(m.T2, m.P2.Slot, m.P2.Room); err != nil {
		return err
	}
	return nil
}

// QuizSwapMove exchanges the entire contents of two cells, preserving
// each cell's internal insertion order. Either or both cells may be
// empty or partially empty (the blanks region); such a swap is a
// content no-op but is still a proposed, attempted move.
type QuizSwapMove struct {
	CellA, CellB     board.Placement
	TokensA, TokensB []board.TeamToken // original contents, insertion order
}

// Apply moves CellA's original tokens into CellB and vice versa.
func (m *QuizSwapMove) Apply(b *board.Board) error {
	for _, t := range m.TokensA {
		if err := b.Pop(t, m.CellA.Slot, m.CellA.Room); err != nil {
			return err
		}
	}
	for _, t := range m.TokensB {
		if err := b.Pop(t, m.CellB.Slot, m.CellB.Room); err != nil {
			return err
		}
	}
	for _, t := range m.TokensB {
		if err := b.Push(t, m.CellA.Slot, m.CellA.Room); err != nil {
			return err
		}
	}
	for _, t := range m.TokensA {
		if err := b.Push(t, m.CellB.Slot, m.CellB.Room); err != nil {
			return err
		}
	}
	return nil
}

// Revert undoes Apply: CellA currently holds TokensB and CellB holds
// TokensA; this swaps them back.
func (m *QuizSwapMove) Revert(b *board.Board) error {
	for _, t := range m.TokensB {
		if err := b.Pop(t, m.CellA.Slot, m.CellA.Room); err != nil {
			return err
		}
	}
	for _, t := range m.TokensA {
		if err := b.Pop(t, m.CellB.Slot, m.CellB.Room); err != nil {
			return err
		}
	}
	for _, t := range m.TokensA {
		if err := b.Push(t, m.CellA.Slot, m.CellA.Room); err != nil {
			return err
		}
	}
	for _, t := range m.TokensB {
		if err := b.Push(t, m.CellB.Slot, m.CellB.Room); err != nil {
			return err
		}
	}
	return nil
}

// Mutator proposes team-swap or quiz-swap moves. Teams is the fixed,
// stable team ordering used to sample team-swap participants (board's
// own inverted index is a map and has no stable order).
type Mutator struct {
	Teams []board.TeamToken
}

// New returns a Mutator sampling team-swaps over teams.
func New(teams []board.TeamToken) *Mutator {
	return &Mutator{Teams: teams}
}

// Propose picks quiz-swap with probability alpha, else team-swap, and
// returns the corresponding unapplied Move.
func (m *Mutator) Propose(rng Rand, b *board.Board, alpha float64) (Move, error) {
	if rng.Float64() < alpha {
		return m.proposeQuizSwap(rng, b)
	}
	return m.proposeTeamSwap(rng, b)
}

func (m *Mutator) proposeTeamSwap(rng Rand, b *board.Board) (Move, error) {
	n := len(m.Teams)
	if n < 2 {
		return nil, &board.InvariantViolationError{Reason: "mutator: fewer than two teams"}
	}
	i := rng.Intn(n)
	j := rng.Intn(n)
	for j == i {
		j = rng.Intn(n)
	}
	t1, t2 := m.Teams[i], m.Teams[j]

	p1list := b.Placements(t1)
	p2list := b.Placements(t2)
	if len(p1list) == 0 || len(p2list) == 0 {
		return nil, &board.InvariantViolationError{Reason: "mutator: team has no placements"}
	}
	p1 := p1list[rng.Intn(len(p1list))]
	p2 := p2list[rng.Intn(len(p2list))]

	move := &TeamSwapMove{T1: t1, T2: t2, P1: p1, P2: p2}
	return move, nil
}

func (m *Mutator) proposeQuizSwap(rng Rand, b *board.Board) (Move, error) {
	total := b.TotalCells()
	if total == 0 {
		return nil, &board.InvariantViolationError{Reason: "mutator: board has no cells"}
	}
	// Sampled from [0, Q+B) uniformly, including the (possibly short or
	// empty) blanks region; two empty cells yield a legal content no-op
	// move that still consumes this attempt. Preserved from the source
	// behavior per spec.
	idxA := rng.Intn(total)
	idxB := rng.Intn(total)

	sa, ra, _ := b.CellAtIndex(idxA)
	sb, rb, _ := b.CellAtIndex(idxB)
	cellA := board.Placement{Slot: sa, Room: ra}
	cellB := board.Placement{Slot: sb, Room: rb}

	tokensA := b.Cell(cellA.Slot, cellA.Room).Tokens()
	tokensB := b.Cell(cellB.Slot, cellB.Room).Tokens()

	move := &QuizSwapMove{CellA: cellA, CellB: cellB, TokensA: tokensA, TokensB: tokensB}
	return move, nil
}
