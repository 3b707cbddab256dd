package core

import "time"

// DefaultTickRate is used when a config leaves TickRate unset.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 asks for a time-based seed
}

// DefaultConfig returns an 80x24 config at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// Normalized fills the zero fields of c: the default tick rate, and a seed
// taken from now.
func (c RuntimeConfig) Normalized(now time.Time) RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.Seed == 0 {
		c.Seed = now.UnixNano()
	}
	c.ScreenW, c.ScreenH = max(c.ScreenW, 0), max(c.ScreenH, 0)
	return c
}

// TickInterval is the wall time between two simulation ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / DefaultTickRate
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the summary the platform polls after every step.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Idle     bool   // waiting for the player to start
	Reason   string // why the game ended, empty while playing
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	// Locked is set when a piece was committed to the board this tick,
	// and Cleared counts the rows that lock removed.
	Locked  bool
	Cleared int
}
