// Package rng provides the seeded random source used for spawn placement,
// velocity scatter and spin nudges.
package rng

import (
	"math"
	"math/rand/v2"
)

// Source is a deterministic random source. The same seed always yields the
// same sequence. A Source is not safe for concurrent use.
type Source struct {
	r    *rand.Rand
	seed uint64
}

// New creates a Source seeded with seed.
func New(seed uint64) *Source {
	return &Source{
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Range returns a uniform integer in [lo, hi). It returns lo when the range
// is empty.
func (s *Source) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo)
}

// Sign returns -1 or 1 with equal probability.
func (s *Source) Sign() int {
	if s.r.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Float returns a uniform float in [lo, hi).
func (s *Source) Float(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// Angle returns a uniform angle in [-π, π).
func (s *Source) Angle() float64 {
	return s.Float(-math.Pi, math.Pi)
}
