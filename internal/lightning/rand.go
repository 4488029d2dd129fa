package lightning

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source behind every draw in this package.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed source. Seed 0 picks a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// centered draws from [-span/2, span/2).
func centered(r Rand, span float32) float32 {
	return float32(r.Float64()-0.5) * span
}

// durationBetween draws from [lo, hi). It returns lo when hi <= lo.
func durationBetween(r Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(r.Float64()*float64(hi-lo))
}
