package worldgen

import "math/rand/v2"

// RNG is the single seeded random source threaded through every generation step.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Range returns a value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Int64 draws a child seed, used to key the noise source.
func (r *RNG) Int64() int64 {
	return r.r.Int64()
}
