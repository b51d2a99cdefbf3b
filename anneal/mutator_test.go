package anneal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northfield-quizbowl/quizdraw/board"
	"github.com/northfield-quizbowl/quizdraw/energy"
	"github.com/northfield-quizbowl/quizdraw/seed"
)

func freshBoard(t *testing.T) (*board.Board, []board.TeamToken) {
	t.Helper()
	cfg := board.Config{Q: 6, B: 0, Qpt: 3, R: 2, BreakIndex: 6}
	b := board.New(cfg)
	teams := make([]board.TeamToken, 6)
	for i := range teams {
		teams[i] = board.TeamToken(i)
	}
	m := energy.New(energy.DefaultWeights())
	require.NoError(t, seed.New(m).Run(b, teams))
	return b, teams
}

func snapshot(b *board.Board, teams []board.TeamToken) map[board.TeamToken][]board.Placement {
	out := make(map[board.TeamToken][]board.Placement, len(teams))
	for _, t := range teams {
		out[t] = b.Placements(t)
	}
	return out
}

func TestTeamSwapRevertRestoresBoard(t *testing.T) {
	b, teams := freshBoard(t)
	before := snapshot(b, teams)

	mut := New(teams)
	rng := rand.New(rand.NewSource(1))

	move, err := mut.proposeTeamSwap(rng, b)
	require.NoError(t, err)
	require.NoError(t, move.Apply(b))
	require.NoError(t, move.Revert(b))

	after := snapshot(b, teams)
	assert.Equal(t, before, after)
}

func TestQuizSwapRevertRestoresBoard(t *testing.T) {
	b, teams := freshBoard(t)
	before := snapshot(b, teams)

	mut := New(teams)
	rng := rand.New(rand.NewSource(2))

	move, err := mut.proposeQuizSwap(rng, b)
	require.NoError(t, err)
	require.NoError(t, move.Apply(b))
	require.NoError(t, move.Revert(b))

	after := snapshot(b, teams)
	assert.Equal(t, before, after)
}

func TestQuizSwapPreservesCardinality(t *testing.T) {
	b, teams := freshBoard(t)
	mut := New(teams)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		move, err := mut.Propose(rng, b, 0.5)
		require.NoError(t, err)
		require.NoError(t, move.Apply(b))
		// Don't revert: we're checking the invariant holds after many
		// accepted-in-place moves, not testing reversibility here.
		for _, team := range teams {
			assert.Equal(t, 3, len(b.Placements(team)))
		}
	}
}
