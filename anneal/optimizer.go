package anneal

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/northfield-quizbowl/quizdraw/board"
	"github.com/northfield-quizbowl/quizdraw/energy"
)

// Optimizer drives Metropolis-Hastings local search (with an optional
// annealing temperature schedule) over a board's total energy. It owns
// the board, the running energy total, and the mutator for the
// duration of a run; nothing else may mutate the board concurrently.
type Optimizer struct {
	Board   *board.Board
	Model   *energy.Model
	Mutator *Mutator
	Rand    Rand
	Logger  zerolog.Logger

	E float64
}

// NewOptimizer constructs an Optimizer over b, computing the initial
// total energy.
func NewOptimizer(b *board.Board, m *energy.Model, mut *Mutator, rng Rand) (*Optimizer, error) {
	e, err := m.Total(b)
	if err != nil {
		return nil, err
	}
	return &Optimizer{
		Board:   b,
		Model:   m,
		Mutator: mut,
		Rand:    rng,
		Logger:  log.Logger,
		E:       e,
	}, nil
}

// Step proposes one move, decides accept/reject via the Metropolis
// criterion at temperature kT, and applies or reverts accordingly. It is
// the cooperative primitive Thermalize and Anneal are built from, so an
// outer loop can interleave its own cancellation checks between calls.
func (o *Optimizer) Step(kT, alpha float64) (accepted bool, deltaE float64, err error) {
	move, err := o.Mutator.Propose(o.Rand, o.Board, alpha)
	if err != nil {
		return false, 0, err
	}
	if err := move.Apply(o.Board); err != nil {
		return false, 0, err
	}
	eNew, err := o.Model.Total(o.Board)
	if err != nil {
		return false, 0, err
	}
	deltaE = eNew - o.E

	if deltaE < 0 {
		o.E = eNew
		return true, deltaE, nil
	}

	if o.accept(deltaE, kT) {
		o.E = eNew
		return true, deltaE, nil
	}
	if err := move.Revert(o.Board); err != nil {
		return false, deltaE, err
	}
	return false, deltaE, nil
}

// accept implements the Metropolis acceptance probability for an uphill
// move (deltaE >= 0). kT == 0, or a non-finite exponential, collapses
// acceptance to 0 (a deterministic freeze) rather than propagating NaN.
func (o *Optimizer) accept(deltaE, kT float64) bool {
	if kT <= 0 {
		return false
	}
	p := math.Exp(-deltaE / kT)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return false
	}
	if p > 1 {
		p = 1
	}
	return o.Rand.Float64() < p
}

// teamCount and quizCount feed the E/T and E/Q progress ratios.
func (o *Optimizer) teamCount() int { return len(o.Mutator.Teams) }
func (o *Optimizer) quizCount() int { return o.Board.Config().Q }

func (o *Optimizer) logProgress(step, n int, kT float64, annealing bool) {
	evt := o.Logger.Info().
		Int("step", step).
		Int("n", n).
		Float64("E", o.E)
	if t := o.teamCount(); t > 0 {
		evt = evt.Float64("E_per_team", o.E/float64(t))
	}
	if q := o.quizCount(); q > 0 {
		evt = evt.Float64("E_per_quiz", o.E/float64(q))
	}
	if annealing {
		evt = evt.Float64("kT", kT)
	}
	evt.Msg("anneal-progress")
}

// Thermalize runs N steps at a constant temperature kT, logging progress
// every N/20 steps when verbose. It is meant to be invoked twice: once
// warm (kT around 0.1) to randomize the board, once cold (kT around
// 1e-3) to settle it.
func (o *Optimizer) Thermalize(ctx context.Context, n int, kT, alpha float64, verbose bool) error {
	every := progressInterval(n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, _, err := o.Step(kT, alpha); err != nil {
			return err
		}
		if verbose && every > 0 && (i+1)%every == 0 {
			o.logProgress(i+1, n, kT, false)
		}
	}
	return o.resync()
}

// TempSchedule selects how kT descends across an anneal run.
type TempSchedule int

const (
	// LinearSchedule steps kT down in equal linear increments.
	LinearSchedule TempSchedule = iota
	// LogSchedule steps log10(kT) down in equal increments.
	LogSchedule
)

// Anneal runs N steps with kT descending from kTmax to kTmin, either in
// equal linear or equal log10 steps, logging progress every N/20 steps
// when verbose.
func (o *Optimizer) Anneal(ctx context.Context, n int, kTmax, kTmin, alpha float64, schedule TempSchedule, verbose bool) error {
	every := progressInterval(n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		kT := temperatureAt(i, n, kTmax, kTmin, schedule)
		if _, _, err := o.Step(kT, alpha); err != nil {
			return err
		}
		if verbose && every > 0 && (i+1)%every == 0 {
			o.logProgress(i+1, n, kT, true)
		}
	}
	return o.resync()
}

// resync recomputes E from scratch at the end of a run. Step already
// sets E from a full Model.Total after every accepted move, so this
// re-confirms the final value rather than correcting accumulated drift.
func (o *Optimizer) resync() error {
	e, err := o.Model.Total(o.Board)
	if err != nil {
		return err
	}
	o.E = e
	return nil
}

func progressInterval(n int) int {
	every := n / 20
	if every < 1 {
		every = 1
	}
	return every
}

func temperatureAt(i, n int, kTmax, kTmin float64, schedule TempSchedule) float64 {
	if n <= 1 {
		return kTmin
	}
	frac := float64(i) / float64(n-1)
	switch schedule {
	case LogSchedule:
		logMax := math.Log10(kTmax)
		logMin := math.Log10(kTmin)
		return math.Pow(10, logMax+(logMin-logMax)*frac)
	default:
		return kTmax + (kTmin-kTmax)*frac
	}
}
