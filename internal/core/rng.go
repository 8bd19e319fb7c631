package core

import (
	"math/rand/v2"
	"time"
)

// RNG wraps a math/rand/v2 PCG source that is seeded once per session and
// threaded through every tick.
type RNG struct {
	r    *rand.Rand
	seed int64
}

// NewRNG creates a deterministic RNG using the provided seed. A zero seed is
// replaced by one derived from the clock.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0)), seed: seed}
}

// Seed reports the effective seed.
func (r *RNG) Seed() int64 { return r.seed }

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Pick returns a uniformly chosen element of vals and false when vals is
// empty.
func (r *RNG) Pick(vals []int) (int, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	return vals[r.r.IntN(len(vals))], true
}

// Point draws a coordinate uniformly over a w*h rectangle.
func (r *RNG) Point(w, h int) Point {
	return Point{X: r.IntN(w), Y: r.IntN(h)}
}
