package core

import "math/rand"

// Timer is a simple stopwatch - you tell it how much time has gone by and it
// tells you when it's done. It is a value type with no external references;
// components embed one wherever a countdown or a firing period is needed.
type Timer struct {
	Accumulator float64
	Period      float64
}

// NewTimer returns a timer with the given period and a zero accumulator.
func NewTimer(period float64) Timer {
	return Timer{Period: period}
}

// Tick advances the timer by dt and reports whether it has expired. The
// accumulator can exceed the period; subsequent ticks keep advancing it and
// keep reporting expiry until Reset is called.
func (t *Timer) Tick(dt float64) bool {
	t.Accumulator += dt
	return t.Expired()
}

// Expired reports whether the timer has been counting for at least the period.
func (t *Timer) Expired() bool {
	return t.Accumulator >= t.Period
}

// Reset subtracts the period from the accumulator. Keeping the overshoot
// means a repeating timer does not lose time when a tick lands past the
// period boundary.
func (t *Timer) Reset() {
	t.Accumulator -= t.Period
}

// AdvanceToFraction sets the accumulator to a fraction of the period.
// frac is expected in [0, 1].
func (t *Timer) AdvanceToFraction(frac float64) {
	t.Accumulator = t.Period * frac
}

// PickIndex maps the accumulator, as a fraction of the period, to an index
// in [0, n). Values past the period clamp to n-1. Used for animation frame
// selection.
func (t *Timer) PickIndex(n int) int {
	if n <= 1 || t.Period <= 0 {
		return 0
	}
	i := int(t.Accumulator / t.Period * float64(n-1))
	if i > n-1 {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

// Randomise sets the accumulator to a random value in [0, period), so that
// a population of timers created together does not fire in lockstep.
func (t *Timer) Randomise(rng *rand.Rand) {
	t.Accumulator = t.Period * rng.Float64()
}
