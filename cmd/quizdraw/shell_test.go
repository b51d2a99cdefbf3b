package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northfield-quizbowl/quizdraw/anneal"
	"github.com/northfield-quizbowl/quizdraw/board"
	"github.com/northfield-quizbowl/quizdraw/energy"
	"github.com/northfield-quizbowl/quizdraw/serialize"
)

func smallSolvedBoard(t *testing.T) (*board.Board, *anneal.Stats, map[board.TeamToken]string) {
	t.Helper()
	cfg := board.Config{Q: 6, B: 0, Qpt: 3, R: 2, BreakIndex: 3}
	b := board.New(cfg)
	teams := make([]board.TeamToken, 6)
	for i := range teams {
		teams[i] = board.TeamToken(i)
	}
	model := energy.New(energy.DefaultWeights())
	for round := 0; round < cfg.Qpt; round++ {
		for _, team := range teams {
			open := b.OpenPositions()
			require.NotEmpty(t, open)
			require.NoError(t, b.Push(team, open[0].Slot, open[0].Room))
		}
	}
	stats, err := anneal.ComputeStats(context.Background(), b, model, teams)
	require.NoError(t, err)
	return b, stats, serialize.DefaultTeamNames(6)
}

func TestTotalEnergySumsPerTeam(t *testing.T) {
	_, stats, _ := smallSolvedBoard(t)
	var want float64
	for _, ts := range stats.PerTeam {
		want += ts.Energy
	}
	assert.InDelta(t, want, totalEnergy(stats), 1e-9)
}

func TestPrintTeamUnknownNameDoesNotPanic(t *testing.T) {
	b, stats, names := smallSolvedBoard(t)
	byName := map[string]board.TeamToken{}
	for tok, name := range names {
		byName[strings.ToLower(name)] = tok
	}
	assert.NotPanics(t, func() { printTeam(b, stats, byName, names, "nonexistent team") })
}

func TestPrintTeamKnownNameDoesNotPanic(t *testing.T) {
	b, stats, names := smallSolvedBoard(t)
	byName := map[string]board.TeamToken{}
	for tok, name := range names {
		byName[strings.ToLower(name)] = tok
	}
	assert.NotPanics(t, func() { printTeam(b, stats, byName, names, "team 1") })
}
