// Package rng puts every probabilistic branch of the simulation behind one
// injectable source so tests can script exact outcomes.
package rng

import (
	"math/rand"
	"time"
)

type Source interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
	// Between returns a uniform int in [lo, hi] inclusive.
	Between(lo, hi int) int
	// Chance reports whether a roll at probability p succeeded.
	Chance(p float64) bool
	// Shuffle pseudo-randomizes element order via swap.
	Shuffle(n int, swap func(i, j int))
}

type source struct {
	r *rand.Rand
}

// New returns a time-seeded source.
func New() Source {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic source for a fixed seed.
func NewSeeded(seed int64) Source {
	return &source{r: rand.New(rand.NewSource(seed))}
}

func (s *source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

func (s *source) Float64() float64 {
	return s.r.Float64()
}

func (s *source) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

func (s *source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}

func (s *source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}
