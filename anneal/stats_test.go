package anneal

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northfield-quizbowl/quizdraw/board"
	"github.com/northfield-quizbowl/quizdraw/energy"
	"github.com/northfield-quizbowl/quizdraw/seed"
)

func TestComputeStatsCoversEveryTeam(t *testing.T) {
	b, teams := freshBoard(t) // 6 teams, 2 rooms, qpt 3: plenty of room, should settle CQ=0 with effort
	m := energy.New(energy.DefaultWeights())

	stats, err := ComputeStats(context.Background(), b, m, teams)
	require.NoError(t, err)
	assert.Equal(t, len(teams), len(stats.PerTeam))
}

func TestCheckSatisfiable(t *testing.T) {
	b, teams := freshBoard(t)
	m := energy.New(energy.DefaultWeights())
	mut := New(teams)
	rng := rand.New(rand.NewSource(17))

	opt, err := NewOptimizer(b, m, mut, rng)
	require.NoError(t, err)
	require.NoError(t, opt.Thermalize(context.Background(), 500, 0.1, 0.3, false))
	require.NoError(t, opt.Thermalize(context.Background(), 500, 1e-3, 0.3, false))

	stats, err := ComputeStats(context.Background(), b, m, teams)
	require.NoError(t, err)

	err = CheckSatisfiable(stats, opt.E, 1000.0)
	if !stats.Valid {
		assert.Error(t, err)
	} else {
		assert.NoError(t, err)
	}
}

// TestComputeStatsConcurrentSharedCellsDoesNotRace exercises the case the
// maintainer flagged: many teams, three seats per cell, so most of the
// per-team goroutines touch cells they share with other in-flight
// goroutines. computeTeamStats must never mutate the board, so running
// this under -race must stay clean.
func TestComputeStatsConcurrentSharedCellsDoesNotRace(t *testing.T) {
	cfg := board.Config{Q: 30, B: 0, Qpt: 3, R: 10, BreakIndex: 30}
	b := board.New(cfg)
	teams := make([]board.TeamToken, 30)
	for i := range teams {
		teams[i] = board.TeamToken(i)
	}
	m := energy.New(energy.DefaultWeights())
	require.NoError(t, seed.New(m).Run(b, teams))

	stats, err := ComputeStats(context.Background(), b, m, teams)
	require.NoError(t, err)
	assert.Equal(t, len(teams), len(stats.PerTeam))

	for _, tok := range teams {
		assert.Len(t, b.Placements(tok), cfg.Qpt, "ComputeStats must leave placements untouched")
	}
}
