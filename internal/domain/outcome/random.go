package outcome

import (
	"fmt"
	"math/rand/v2"
)

// Rand is the source of uniform draws. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// globalRand draws from the top-level math/rand/v2 generator, which is safe
// for concurrent use and randomly seeded.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Span is an inclusive integer range.
type Span struct {
	Min, Max int
}

func (s Span) draw(r Rand) int {
	return s.Min + r.IntN(s.Max-s.Min+1)
}

// Contains reports whether v lies within the span.
func (s Span) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// durationRange renders a simulated elapsed time as "<M>m <S>s".
type durationRange struct {
	Minutes Span
	Seconds Span
}

func (d durationRange) draw(r Rand) string {
	m := d.Minutes.draw(r)
	s := d.Seconds.draw(r)
	return fmt.Sprintf("%dm %ds", m, s)
}

func choose[T any](r Rand, options []T) T {
	return options[r.IntN(len(options))]
}
