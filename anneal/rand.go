// Package anneal implements the Mutator and Optimizer: Metropolis–
// Hastings local search (with an optional simulated-annealing
// temperature schedule) over a board's energy, plus the post-run
// statistics pass.
package anneal

// Rand is the minimal PRNG surface the mutator and optimizer need. Both
// *lukechampine.com/frand.RNG (via NewSeededRand) and *math/rand.Rand
// satisfy it, so tests can swap in a deterministic stdlib source while
// production code uses frand's seedable, higher-quality generator.
type Rand interface {
	Intn(n int) int
	Float64() float64
}
