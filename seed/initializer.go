// Package seed implements the deterministic greedy placement that seeds
// a starting board for the optimizer.
package seed

import (
	"github.com/northfield-quizbowl/quizdraw/board"
	"github.com/northfield-quizbowl/quizdraw/energy"
)

// Initializer places each team qpt times by, for each round, visiting
// teams in a fixed order and seating each one at whichever currently
// open position has the lowest insertion energy, ties broken by
// iteration order over board.OpenPositions. It is deterministic given
// identical inputs, but does not guarantee CQ = 0 when the layout is
// tight; the optimizer is responsible for repairing any remaining
// conflicts.
type Initializer struct {
	Model *energy.Model
}

// New returns an Initializer scoring placements with m.
func New(m *energy.Model) *Initializer {
	return &Initializer{Model: m}
}

// Run seeds b by placing every team in teams exactly qpt times, where
// qpt is taken from b.Config().Qpt. teams is the fixed iteration order;
// callers that want reproducible output across runs should pass a
// stable order (e.g. team index order), since this package makes no
// random choices of its own.
func (init *Initializer) Run(b *board.Board, teams []board.TeamToken) error {
	qpt := b.Config().Qpt
	for round := 0; round < qpt; round++ {
		for _, t := range teams {
			open := b.OpenPositions()
			if len(open) == 0 {
				return &board.InvariantViolationError{Reason: "initializer: no open positions remain"}
			}
			best := open[0]
			bestEnergy := init.Model.QuizEnergy(b, t, best.Slot, best.Room)
			for _, p := range open[1:] {
				e := init.Model.QuizEnergy(b, t, p.Slot, p.Room)
				if e < bestEnergy {
					best = p
					bestEnergy = e
				}
			}
			if err := b.Push(t, best.Slot, best.Room); err != nil {
				return err
			}
		}
	}
	return nil
}
