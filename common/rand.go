package common

import (
	"math/rand"
	"time"
)

// Rand is the random source injected into placement and enemy timers.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// PRNG wraps a seeded *rand.Rand so runs can be replayed from a seed.
type PRNG struct {
	seed int64
	r    *rand.Rand
}

// NewPRNG returns a source seeded with seed. A zero seed picks one from the clock.
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{seed: seed, r: rand.New(rand.NewSource(seed))}
}

func (p *PRNG) Seed() int64 {
	if p == nil {
		return 0
	}
	return p.seed
}

func (p *PRNG) Float64() float64 {
	return p.r.Float64()
}

func (p *PRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return p.r.Intn(n)
}

// Between returns a uniform value in [lo, hi).
func Between(r Rand, lo, hi float64) float64 {
	if r == nil || hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
