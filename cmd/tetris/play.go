package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [classic|timed]",
	Short: "Play a game",
	Long: `Start playing. Classic runs until the stack reaches the top; timed ends
after the configured time limit (5 minutes by default).

Controls:
  Left/Right, A/D   - Move piece
  Up, W, X          - Rotate
  Down, S           - Drop one row; hold for fast drop
  Click piece       - Rotate
  Enter/Space       - Start
  P                 - Pause
  R                 - Restart
  Ctrl+S            - Save screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower start, gentler speed ramp
  normal - 400ms start, 8ms faster per piece, 100ms floor
  hard   - Faster start, steeper ramp
  fixed  - No speed ramp

Examples:
  tetris play
  tetris play timed
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, err := resolveMode(arg)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := []tui.ModelOption{tui.WithHandle(flagHandle), tui.WithLogger(logger)}
	if store != nil {
		opts = append(opts, tui.WithStore(store))
	}

	logger.Info("starting game", "mode", gameID, "seed", flagSeed, "difficulty", flagDifficulty)
	if err := tui.Run(game, runtimeConfig(), opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
