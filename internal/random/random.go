// Package random provides the range draws used by the spawn rules.
package random

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidRange is returned when a draw is requested with min > max.
var ErrInvalidRange = errors.New("random: min greater than max")

// Source is the subset of *rand.Rand the policy draws from.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Policy draws bounded integers and floats from a Source.
// Nested percentage chains are written by callers as successive Percent draws.
type Policy struct {
	src Source
}

// New returns a deterministic policy seeded with seed.
func New(seed uint64) *Policy {
	return NewFromSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewFromSource wraps an existing source.
func NewFromSource(src Source) *Policy {
	return &Policy{src: src}
}

// Int returns a uniform integer in [min, max].
func (p *Policy) Int(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("int [%d, %d]: %w", min, max, ErrInvalidRange)
	}
	return min + p.src.IntN(max-min+1), nil
}

// Float returns a uniform float in [min, max).
// A degenerate range (min == max) always yields min.
func (p *Policy) Float(min, max float64) (float64, error) {
	if min > max {
		return 0, fmt.Errorf("float [%g, %g]: %w", min, max, ErrInvalidRange)
	}
	return min + p.src.Float64()*(max-min), nil
}

// Percent returns a uniform integer in [1, 100].
func (p *Policy) Percent() int {
	return 1 + p.src.IntN(100)
}

// Roll returns a uniform integer in [1, sides]. Non-positive sides yield 0.
func (p *Policy) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	return 1 + p.src.IntN(sides)
}

// Within reports whether a fresh Percent draw is <= threshold.
func (p *Policy) Within(threshold int) bool {
	return p.Percent() <= threshold
}
