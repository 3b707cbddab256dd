package tetris

import "time"

// SpeedRamp describes how the automatic drop interval shrinks as pieces lock.
type SpeedRamp struct {
	Initial  time.Duration // interval with no pieces locked; also the ceiling
	Step     time.Duration // reduction per locked piece
	Floor    time.Duration
	SoftDrop time.Duration // effective interval while fast drop is held
}

// DefaultSpeedRamp returns the standard ramp: 400ms, minus 8ms per lock,
// never below 100ms, with a 50ms soft drop.
func DefaultSpeedRamp() SpeedRamp {
	return SpeedRamp{
		Initial:  400 * time.Millisecond,
		Step:     8 * time.Millisecond,
		Floor:    100 * time.Millisecond,
		SoftDrop: 50 * time.Millisecond,
	}
}

// Interval returns the drop interval after dropCount locks, clamped to
// [Floor, Initial].
func (r SpeedRamp) Interval(dropCount int) time.Duration {
	d := r.Initial - time.Duration(dropCount)*r.Step
	if d < r.Floor {
		return r.Floor
	}
	if d > r.Initial {
		return r.Initial
	}
	return d
}
