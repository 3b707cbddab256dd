// Package config provides YAML-based game configuration loading, validation
// and difficulty presets.
package config

import "time"

// TetrisConfig contains all tunables for the Tetris engine and its modes.
type TetrisConfig struct {
	Speed   TetrisSpeed   `yaml:"speed"`
	Scoring TetrisScoring `yaml:"scoring"`
	Timing  TetrisTiming  `yaml:"timing"`
}

// TetrisSpeed defines the automatic drop ramp.
type TetrisSpeed struct {
	InitialMs  int `yaml:"initial_ms" validate:"gt=0,gtefield=FloorMs"`
	StepMs     int `yaml:"step_ms" validate:"gte=0"`
	FloorMs    int `yaml:"floor_ms" validate:"gt=0"`
	SoftDropMs int `yaml:"soft_drop_ms" validate:"gt=0"`
}

// TetrisScoring defines score awards.
type TetrisScoring struct {
	PointsPerLine int `yaml:"points_per_line" validate:"gte=0"`
}

// TetrisTiming defines delays and limits.
type TetrisTiming struct {
	ClearDelayMs      int `yaml:"clear_delay_ms" validate:"gte=0,lte=5000"`
	TimeLimitSecs     int `yaml:"time_limit_secs" validate:"gte=0"`
	SoftDropReleaseMs int `yaml:"soft_drop_release_ms" validate:"gt=0"`
}

// Initial returns the starting drop interval.
func (s TetrisSpeed) Initial() time.Duration { return ms(s.InitialMs) }

// Step returns the per-lock interval reduction.
func (s TetrisSpeed) Step() time.Duration { return ms(s.StepMs) }

// Floor returns the fastest automatic drop interval.
func (s TetrisSpeed) Floor() time.Duration { return ms(s.FloorMs) }

// SoftDrop returns the interval used while soft drop is held.
func (s TetrisSpeed) SoftDrop() time.Duration { return ms(s.SoftDropMs) }

// ClearDelay returns the line-clear flash duration.
func (t TetrisTiming) ClearDelay() time.Duration { return ms(t.ClearDelayMs) }

// TimeLimit returns the timed-mode limit.
func (t TetrisTiming) TimeLimit() time.Duration {
	return time.Duration(t.TimeLimitSecs) * time.Second
}

// SoftDropRelease returns how long soft drop stays held without a repeat.
func (t TetrisTiming) SoftDropRelease() time.Duration { return ms(t.SoftDropReleaseMs) }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
