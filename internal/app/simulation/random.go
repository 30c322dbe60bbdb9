package simulation

import "math/rand/v2"

// Source is the randomness consumed by match simulation and the bracket draw.
// A Source is not safe for concurrent use; each tournament run owns its own.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// NewSource returns a deterministic PCG-backed source; the same seed replays the same run.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
