package tetris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeTimed   Mode = "timed"
)

// Registry IDs for the two modes.
const (
	IDClassic = "tetris"
	IDTimed   = "tetris_timed"
)

// Package-level settings applied on the next Reset, set from CLI flags.
var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger sets the logger handed to every new engine.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts the engine to the platform's fixed-tick registry.Game.
// Time inside the engine is simulated: each Step advances a StepClock by one
// tick, so replays with the same seed and inputs are deterministic.
type Game struct {
	mode       Mode
	cfg        config.TetrisConfig
	engine     *Engine
	dispatcher *Dispatcher
	countdown  *Countdown
	clock      *core.StepClock
	tick       uint64
	listeners  core.Listeners

	// soft drop hold emulation; terminals report presses and repeats only
	lastSoftDrop time.Time
	softDropSeen bool

	screenW  int
	screenH  int
	layout   layout
	tooSmall bool
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewTimed creates a timed mode game.
func NewTimed() *Game {
	return &Game{mode: ModeTimed}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDTimed, func() registry.Game {
		return NewTimed()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeTimed {
		return IDTimed
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeTimed {
		return "Tetris (Timed)"
	}
	return "Tetris"
}

// Subscribe registers a listener for score and game-over notifications.
func (g *Game) Subscribe(l core.Listener) {
	g.listeners = append(g.listeners, l)
}

// OnScoreChanged forwards engine notifications to subscribers.
func (g *Game) OnScoreChanged(score int) {
	g.listeners.OnScoreChanged(score)
}

// OnGameOver forwards engine notifications to subscribers.
func (g *Game) OnGameOver(reason string, finalScore int) {
	g.listeners.OnGameOver(reason, finalScore)
}

// Reset builds a fresh engine in the Idle state. The player starts it with
// Confirm.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = loadConfig()
	g.clock = core.NewStepClock(cfg.TickRate)
	g.tick = 0
	g.softDropSeen = false

	g.engine = NewEngine(
		WithClock(g.clock),
		WithSpawner(NewRandomSpawner(rand.New(rand.NewSource(cfg.Seed)))),
		WithListener(g),
		WithLogger(logger.With("game", g.ID())),
		WithSpeedRamp(SpeedRamp{
			Initial:  g.cfg.Speed.Initial(),
			Step:     g.cfg.Speed.Step(),
			Floor:    g.cfg.Speed.Floor(),
			SoftDrop: g.cfg.Speed.SoftDrop(),
		}),
		WithPointsPerLine(g.cfg.Scoring.PointsPerLine),
		WithClearDelay(g.cfg.Timing.ClearDelay()),
	)
	g.dispatcher = NewDispatcher(g.engine)

	limit := time.Duration(0)
	if g.mode == ModeTimed {
		limit = g.cfg.Timing.TimeLimit()
	}
	g.countdown = NewCountdown(limit)

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// loadConfig resolves the configuration for a new session, falling back to
// defaults if the file cannot be used.
func loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&cfg, difficultyPreset)
	return cfg
}

// Resize recomputes the layout for a new screen size. The session is kept.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout = computeLayout(w, h)
	g.tooSmall = !g.layout.fits
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.clock.Advance()
	now := g.clock.Now()

	if in.Has(core.ActionRestart) {
		g.engine.Reset()
		g.countdown.Reset()
		g.softDropSeen = false
		return core.StepResult{State: g.State()}
	}

	// A too-small window freezes play the same way pause does.
	if g.tooSmall {
		g.engine.Pause()
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionConfirm):
		g.engine.Start()
	case in.Has(core.ActionPause):
		g.engine.TogglePause()
	}

	g.applyInput(in, now)

	if g.countdown.Update(g.engine.Status(), now) {
		g.engine.Expire(ReasonTimeUp)
	}

	out := g.engine.Tick()
	return core.StepResult{
		State:   g.State(),
		Locked:  out.Locked,
		Cleared: out.Cleared,
	}
}

// applyInput routes movement actions through the dispatcher.
func (g *Game) applyInput(in core.InputFrame, now time.Time) {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionRotate, core.ActionStepDown} {
		for range in.Count(a) {
			g.dispatcher.Dispatch(GestureForAction(a))
		}
	}

	for _, p := range in.Taps {
		if row, col, ok := g.layout.cellAt(p.X, p.Y); ok {
			g.dispatcher.TapAt(row, col)
		}
	}

	g.updateSoftDrop(in.Has(core.ActionSoftDrop), now)
}

// updateSoftDrop emulates hold and release. A lone press nudges the piece one
// row; a press repeated within the release window (key auto-repeat) holds
// fast drop, which is released once presses stop for that long.
func (g *Game) updateSoftDrop(pressed bool, now time.Time) {
	window := g.cfg.Timing.SoftDropRelease()
	if pressed {
		repeat := g.softDropSeen && now.Sub(g.lastSoftDrop) <= window
		if repeat || g.engine.FastDrop() {
			g.dispatcher.Dispatch(GestureSoftDropPress)
		} else {
			g.dispatcher.Dispatch(GestureSwipeDown)
		}
		g.lastSoftDrop = now
		g.softDropSeen = true
		return
	}
	if g.engine.FastDrop() && now.Sub(g.lastSoftDrop) > window {
		g.dispatcher.Dispatch(GestureSoftDropRelease)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Status() == StatusGameOver,
		Paused:   g.engine.Status() == StatusPaused,
		Idle:     g.engine.Status() == StatusIdle,
		Reason:   g.engine.Reason(),
	}
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Remaining returns the time left in timed mode, or 0 in classic mode.
func (g *Game) Remaining() time.Duration {
	if !g.countdown.Limited() {
		return 0
	}
	return g.countdown.Remaining()
}
