package core

import "time"

// Clock is the time source for wall-clock driven simulation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// StepClock is a simulated clock that only moves when Advance is called.
// Games stepped at a fixed tick rate use it so that replays with the same
// seed and inputs stay deterministic.
type StepClock struct {
	now  time.Time
	step time.Duration
}

// NewStepClock creates a clock starting at the Unix epoch that advances by
// one tick of the given rate per Advance call.
func NewStepClock(tickRate int) *StepClock {
	return &StepClock{
		now:  time.Unix(0, 0),
		step: RuntimeConfig{TickRate: tickRate}.TickInterval(),
	}
}

// Now returns the simulated time.
func (c *StepClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by one tick.
func (c *StepClock) Advance() {
	c.now = c.now.Add(c.step)
}

// AdvanceBy moves the clock forward by an arbitrary duration.
func (c *StepClock) AdvanceBy(d time.Duration) {
	c.now = c.now.Add(d)
}

// Step returns the duration of one tick.
func (c *StepClock) Step() time.Duration {
	return c.step
}
