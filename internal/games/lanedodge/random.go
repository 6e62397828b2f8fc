package lanedodge

import "math/rand"

// RandomSource yields uniform values in [0, 1). The engine draws every random
// decision from one of these and never from the math/rand globals, so a run can
// be replayed by supplying the same sequence.
type RandomSource func() float64

// FromRand adapts a seeded *rand.Rand.
func FromRand(r *rand.Rand) RandomSource {
	return r.Float64
}

// Constant returns a source that always yields v.
func Constant(v float64) RandomSource {
	return func() float64 { return v }
}

// Sequence returns a source that cycles through values.
func Sequence(values ...float64) RandomSource {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

// LCG is the 32-bit linear congruential generator used by the debug harness.
// Its whole state is one uint32, which makes it easy to show and reset.
type LCG struct {
	state uint32
}

// NewLCG creates a generator starting from seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Seed restarts the sequence.
func (l *LCG) Seed(seed uint32) {
	l.state = seed
}

// State returns the current internal state.
func (l *LCG) State() uint32 {
	return l.state
}

// Next advances the generator and returns a value in [0, 1).
func (l *LCG) Next() float64 {
	l.state = l.state*1664525 + 1013904223
	return float64(l.state) / 4294967296
}

// pick draws a uniform index in [0, n).
func pick(random RandomSource, n int) int {
	i := int(random() * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
