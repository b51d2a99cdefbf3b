package anneal

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/northfield-quizbowl/quizdraw/board"
	"github.com/northfield-quizbowl/quizdraw/energy"
)

// TeamStats summarizes one team's placements on a frozen board: how
// often it played each room, how often it faced each opponent, and
// which of its placements triggered a CQ, BTB, or HT event.
type TeamStats struct {
	Team           board.TeamToken
	Energy         float64
	RoomCounts     map[board.RoomIndex]int
	OpponentCounts map[board.TeamToken]int
	CQConflicts    []board.Placement
	BTB            []board.SlotIndex
	HT             []board.SlotIndex
}

// Stats is the statistics pass's result: per-team detail plus aggregate
// figures over the whole field.
type Stats struct {
	PerTeam             map[board.TeamToken]*TeamStats
	MeanEnergyPerTeam   float64
	StdDevEnergyPerTeam float64
	// Valid is true iff no team has any CQ event: the draw is strictly
	// valid per spec.
	Valid bool
}

// ComputeStats runs the statistics pass over a frozen (read-only) board.
// Each team's figures are independent of every other team's, so they
// are computed concurrently, one goroutine per team, bounded by
// errgroup's default unbounded-but-cheap fan-out (teams counts here are
// small, in the tens to low hundreds). This concurrency is strictly
// post-optimization: the optimizer's own inner loop never runs more
// than one goroutine at a time, per its single-threaded design.
//
// computeTeamStats only reads b (via energy.Model.BreakdownExisting,
// which scores an existing placement in place instead of requiring
// Pop/Push), so two goroutines scoring teams that share a quiz cell
// never race on the cell's token slice or the board's placement index.
func ComputeStats(ctx context.Context, b *board.Board, m *energy.Model, teams []board.TeamToken) (*Stats, error) {
	g, _ := errgroup.WithContext(ctx)
	results := make([]*TeamStats, len(teams))

	for i, t := range teams {
		i, t := i, t
		g.Go(func() error {
			results[i] = computeTeamStats(b, m, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	perTeam := make(map[board.TeamToken]*TeamStats, len(teams))
	energies := make([]float64, len(teams))
	valid := true
	for i, ts := range results {
		perTeam[teams[i]] = ts
		energies[i] = ts.Energy
		if len(ts.CQConflicts) > 0 {
			valid = false
		}
	}

	return &Stats{
		PerTeam:             perTeam,
		MeanEnergyPerTeam:   stat.Mean(energies, nil),
		StdDevEnergyPerTeam: stat.StdDev(energies, nil),
		Valid:               valid,
	}, nil
}

func computeTeamStats(b *board.Board, m *energy.Model, t board.TeamToken) *TeamStats {
	ts := &TeamStats{
		Team:           t,
		RoomCounts:     map[board.RoomIndex]int{},
		OpponentCounts: map[board.TeamToken]int{},
	}
	for _, p := range b.Placements(t) {
		ts.RoomCounts[p.Room]++

		bd := m.BreakdownExisting(b, t, p.Slot, p.Room)
		for _, opp := range b.Cell(p.Slot, p.Room).Tokens() {
			if opp == t {
				continue
			}
			ts.OpponentCounts[opp]++
		}

		ts.Energy += bd.Total
		if bd.CurrentlyQuizzing {
			ts.CQConflicts = append(ts.CQConflicts, p)
		}
		if bd.BackToBack {
			ts.BTB = append(ts.BTB, p.Slot)
		}
		if bd.HatTrick {
			ts.HT = append(ts.HT, p.Slot)
		}
	}
	return ts
}

// Summary renders a deterministic, human-readable digest of the stats
// pass, teams listed in ascending TeamToken order.
func (s *Stats) Summary() string {
	teams := lo.Keys(s.PerTeam)
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })

	out := fmt.Sprintf("valid=%v mean_E/team=%.3f stddev_E/team=%.3f\n", s.Valid, s.MeanEnergyPerTeam, s.StdDevEnergyPerTeam)
	for _, t := range teams {
		ts := s.PerTeam[t]
		out += fmt.Sprintf("team %d: E=%.3f cq=%d btb=%d ht=%d\n", t, ts.Energy, len(ts.CQConflicts), len(ts.BTB), len(ts.HT))
	}
	return out
}

// UnsatisfiableError reports that a completed optimization run is
// unsatisfiable: either at least one CQ event remains, or the final
// energy exceeds a caller-supplied threshold. It is recoverable; the
// caller may retry with a different seed or annealing schedule.
type UnsatisfiableError struct {
	FinalEnergy float64
	Threshold   float64
	CQCount     int
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("anneal: unsatisfiable: final energy %.3f (threshold %.3f), %d CQ conflicts remain",
		e.FinalEnergy, e.Threshold, e.CQCount)
}

// CheckSatisfiable returns an UnsatisfiableError if stats has any CQ
// conflicts, or if finalEnergy exceeds threshold.
func CheckSatisfiable(stats *Stats, finalEnergy, threshold float64) error {
	cq := 0
	for _, ts := range stats.PerTeam {
		cq += len(ts.CQConflicts)
	}
	if cq > 0 || finalEnergy > threshold {
		return &UnsatisfiableError{FinalEnergy: finalEnergy, Threshold: threshold, CQCount: cq}
	}
	return nil
}
