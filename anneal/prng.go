package anneal

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// frandBufSize and frandRounds match frand's own recommended defaults
// for a ChaCha-backed custom stream; they only affect throughput, not
// the sequence produced for a given seed.
const (
	frandBufSize = 1024
	frandRounds  = 12
)

// NewSeededRand returns a deterministic, seedable PRNG suitable for
// reproducible optimizer runs (spec: "make the PRNG injectable"). The
// same seed always produces the same stream of team/cell/acceptance
// draws.
func NewSeededRand(seed int64) Rand {
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], uint64(seed))
	return frand.NewCustom(seedBytes[:], frandBufSize, frandRounds)
}
