package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// logger is configured from --log-file and --log-level before any command runs.
var logger = log.New(io.Discard)

// setup applies the global flags shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	l, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	logger = l

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	if flagConfig != "" {
		if _, err := config.LoadTetris(flagConfig); err != nil {
			return err
		}
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(preset)
	tetris.SetLogger(logger)
	return nil
}

// newLogger writes to path when given. The TUI owns the terminal, so without
// a file logs are discarded.
func newLogger(path, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if path == "" {
		return log.New(io.Discard), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return log.NewWithOptions(f, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "tetris",
	}), nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// resolveMode accepts a mode name or a registry id and returns the id.
func resolveMode(arg string) (string, error) {
	switch strings.ToLower(arg) {
	case "", string(tetris.ModeClassic):
		return tetris.IDClassic, nil
	case string(tetris.ModeTimed):
		return tetris.IDTimed, nil
	}
	if registry.Exists(arg) {
		return arg, nil
	}
	return "", fmt.Errorf("unknown mode %q (run 'tetris list')", arg)
}
