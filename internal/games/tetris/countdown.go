package tetris

import "time"

// Countdown is the time-limit collaborator for timed sessions. It only burns
// time while the session is running and fires exactly once.
type Countdown struct {
	limit     time.Duration
	remaining time.Duration
	last      time.Time
	counting  bool
	fired     bool
}

// NewCountdown creates a countdown of the given length. A non-positive limit
// never expires.
func NewCountdown(limit time.Duration) *Countdown {
	return &Countdown{limit: limit, remaining: limit}
}

// Reset rewinds to the full limit.
func (c *Countdown) Reset() {
	c.remaining = c.limit
	c.counting = false
	c.fired = false
}

// Update charges the time since the previous update if the session was
// running across it. It returns true on the single update where the limit
// runs out.
func (c *Countdown) Update(status Status, now time.Time) bool {
	if c.limit <= 0 || c.fired {
		return false
	}
	if status != StatusRunning {
		c.counting = false
		return false
	}
	if c.counting {
		c.remaining -= now.Sub(c.last)
	}
	c.counting = true
	c.last = now

	if c.remaining <= 0 {
		c.remaining = 0
		c.fired = true
		return true
	}
	return false
}

// Remaining returns the time left.
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// Limited reports whether the countdown has a limit at all.
func (c *Countdown) Limited() bool {
	return c.limit > 0
}

// Expired reports whether the countdown has fired.
func (c *Countdown) Expired() bool {
	return c.fired
}
