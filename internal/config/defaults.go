package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in Tetris configuration. It matches
// defaults/tetris.yaml and is the base that partial YAML files overlay.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Speed: TetrisSpeed{
			InitialMs:  400,
			StepMs:     8,
			FloorMs:    100,
			SoftDropMs: 50,
		},
		Scoring: TetrisScoring{
			PointsPerLine: 100,
		},
		Timing: TetrisTiming{
			ClearDelayMs:      300,
			TimeLimitSecs:     300,
			SoftDropReleaseMs: 500,
		},
	}
}
