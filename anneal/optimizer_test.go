package anneal

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northfield-quizbowl/quizdraw/energy"
)

func TestOptimizerEnergyConsistentAfterAccept(t *testing.T) {
	b, teams := freshBoard(t)
	m := energy.New(energy.DefaultWeights())
	mut := New(teams)
	rng := rand.New(rand.NewSource(42))

	opt, err := NewOptimizer(b, m, mut, rng)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		_, _, err := opt.Step(0.1, 0.3)
		require.NoError(t, err)
		total, err := m.Total(b)
		require.NoError(t, err)
		assert.InDelta(t, total, opt.E, 1e-6)
	}
}

func TestZeroTemperatureNeverAcceptsUphill(t *testing.T) {
	b, teams := freshBoard(t)
	m := energy.New(energy.DefaultWeights())
	mut := New(teams)
	rng := rand.New(rand.NewSource(7))

	opt, err := NewOptimizer(b, m, mut, rng)
	require.NoError(t, err)

	last := opt.E
	for i := 0; i < 100; i++ {
		_, _, err := opt.Step(0, 0.3)
		require.NoError(t, err)
		assert.LessOrEqual(t, opt.E, last+1e-9)
		last = opt.E
	}
}

func TestThermalizeRunsAndResyncs(t *testing.T) {
	b, teams := freshBoard(t)
	m := energy.New(energy.DefaultWeights())
	mut := New(teams)
	rng := rand.New(rand.NewSource(99))

	opt, err := NewOptimizer(b, m, mut, rng)
	require.NoError(t, err)

	require.NoError(t, opt.Thermalize(context.Background(), 40, 0.1, 0.3, false))

	total, err := m.Total(b)
	require.NoError(t, err)
	assert.InDelta(t, total, opt.E, 1e-6)
}

func TestAnnealTemperatureSchedules(t *testing.T) {
	assert.InDelta(t, 5.0, temperatureAt(0, 10, 5.0, 0.01, LinearSchedule), 1e-9)
	assert.InDelta(t, 0.01, temperatureAt(9, 10, 5.0, 0.01, LinearSchedule), 1e-9)
	assert.InDelta(t, 5.0, temperatureAt(0, 10, 5.0, 0.01, LogSchedule), 1e-9)
	assert.InDelta(t, 0.01, temperatureAt(9, 10, 5.0, 0.01, LogSchedule), 1e-9)
}

func TestAnnealRunsAndResyncs(t *testing.T) {
	b, teams := freshBoard(t)
	m := energy.New(energy.DefaultWeights())
	mut := New(teams)
	rng := rand.New(rand.NewSource(123))

	opt, err := NewOptimizer(b, m, mut, rng)
	require.NoError(t, err)

	require.NoError(t, opt.Anneal(context.Background(), 60, 1.0, 0.001, 0.3, LinearSchedule, false))

	total, err := m.Total(b)
	require.NoError(t, err)
	assert.InDelta(t, total, opt.E, 1e-6)
}

func TestAnnealRespectsContextCancellation(t *testing.T) {
	b, teams := freshBoard(t)
	m := energy.New(energy.DefaultWeights())
	mut := New(teams)
	rng := rand.New(rand.NewSource(5))

	opt, err := NewOptimizer(b, m, mut, rng)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = opt.Anneal(ctx, 1000, 1.0, 0.001, 0.3, LinearSchedule, false)
	assert.ErrorIs(t, err, context.Canceled)
}
