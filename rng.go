package xsnow

import "math/rand/v2"

// RNG is the seeded random source consumed by every stochastic component.
// Two RNGs created with the same seed produce the same sequence, which is what
// makes scene replays bit-identical.
type RNG struct {
	seed  uint64
	src   *rand.Rand
	calls uint64
}

// NewRNG creates a deterministic generator from seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// Seed returns the seed the generator was created with.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Calls returns the number of values drawn since creation.
func (r *RNG) Calls() uint64 {
	return r.calls
}

// Float returns a uniform value in [0, 1).
func (r *RNG) Float() float64 {
	r.calls++
	return r.src.Float64()
}

// Intn returns a uniform integer in [0, n). Returns 0 without consuming a
// value when n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.calls++
	return r.src.IntN(n)
}

// Between returns a uniform value in [lo, hi).
func (r *RNG) Between(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}

// OneIn reports true with probability 1/n. n <= 1 always reports true.
func (r *RNG) OneIn(n int) bool {
	if n <= 1 {
		return true
	}
	return r.Intn(n) == 0
}
