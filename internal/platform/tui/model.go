package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/scoreboard"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// footerHeight is the number of rows below the game screen.
const footerHeight = 1

// resizer is implemented by games that can adapt to a new screen size
// without losing the session.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running one game mode.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *scoreboard.Recorder
	palette    *Palette
	keys       GameKeyMap
	help       help.Model
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	notice     string
	tickGen    uint64
	embedded   bool // Back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
}

type modelOptions struct {
	store    *storage.Store
	handle   string
	logger   *log.Logger
	renderer *lipgloss.Renderer
	embedded bool
}

// ModelOption configures a Model.
type ModelOption func(*modelOptions)

// WithStore persists finished games to store.
func WithStore(store *storage.Store) ModelOption {
	return func(o *modelOptions) { o.store = store }
}

// WithHandle sets the player's handle. A random one is picked otherwise.
func WithHandle(handle string) ModelOption {
	return func(o *modelOptions) { o.handle = handle }
}

// WithLogger sets the logger for score and screenshot events.
func WithLogger(l *log.Logger) ModelOption {
	return func(o *modelOptions) { o.logger = l }
}

// WithRenderer styles output for a specific terminal, such as an SSH session.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(o *modelOptions) { o.renderer = r }
}

// withMenu marks the model as running inside a session with a menu.
func withMenu() ModelOption {
	return func(o *modelOptions) { o.embedded = true }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	o := modelOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	cfg = cfg.Normalized(time.Now())
	if o.handle == "" {
		o.handle = scoreboard.RandomHandle(rand.New(rand.NewSource(cfg.Seed)))
	}

	recorder := newRecorder(game.ID(), o.handle, o.store, o.logger)
	game.Subscribe(recorder)

	palette := NewPalette(o.renderer)
	h := help.New()
	h.Styles.ShortKey = palette.Renderer().NewStyle().Foreground(lipgloss.Color("250"))
	h.Styles.ShortDesc = palette.Renderer().NewStyle().Foreground(lipgloss.Color("241"))
	h.Styles.ShortSeparator = h.Styles.ShortDesc

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		recorder:   recorder,
		palette:    palette,
		keys:       DefaultGameKeyMap(),
		help:       h,
		logger:     o.logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		tickGen:    nextTickGen(),
		embedded:   o.embedded,
	}
}

// newRecorder builds a recorder for gameID and seeds it from store.
func newRecorder(gameID, handle string, store *storage.Store, logger *log.Logger) *scoreboard.Recorder {
	opts := []scoreboard.Option{scoreboard.WithLogger(logger)}
	if store != nil {
		opts = append(opts, scoreboard.WithSaver(store))
	}
	rec := scoreboard.NewRecorder(gameID, handle, opts...)
	if store == nil {
		return rec
	}

	rows, err := store.RecentScores(gameID, scoreboard.RecentLimit)
	if err != nil {
		logger.Warn("load recent scores", "game", gameID, "err", err)
	}
	recent := make([]scoreboard.Entry, len(rows))
	for i, r := range rows {
		recent[i] = r.Entry()
	}

	var top *scoreboard.Entry
	best, err := store.TopScorer(gameID)
	if err != nil {
		logger.Warn("load top scorer", "game", gameID, "err", err)
	}
	if best != nil {
		e := best.Entry()
		top = &e
	}

	rec.Load(recent, top)
	return rec
}

func gameHeight(h int) int {
	return max(h-footerHeight, 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	m.game.Reset(cfg)

	return tickCmd(m.config.TickInterval(), m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		s := m.gameState
		if !s.GameOver && !s.Paused && !s.Idle {
			return m, nil
		}
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns clicks into taps and the wheel into single-row drops.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		m.inputFrame.Tap(msg.X, msg.Y)
	case tea.MouseButtonWheelDown:
		m.inputFrame.Set(core.ActionStepDown)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := gameHeight(msg.Height)
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, h)
		return m, nil
	}

	// Games without layout support start over at the new size.
	if !m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenH = h
		m.game.Reset(cfg)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickInterval(), m.tickGen)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	path, err := writeScreenshot(m.game.ID(), m.screen, time.Now())
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		m.notice = "screenshot failed"
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.notice = "saved " + filepath.Base(path)
}

// writeScreenshot stores the plain-text screen under ~/.tetris/screenshots.
func writeScreenshot(gameID string, screen *core.Screen, now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.txt", gameID, now.Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen) + "\n" + m.footer()
}

// footer shows the player, the best score on record and the key help.
func (m Model) footer() string {
	status := " " + m.recorder.Handle()
	if top, ok := m.recorder.Top(); ok {
		status += fmt.Sprintf("  best %d (%s)", top.Score, top.Handle)
	}
	if m.notice != "" {
		status += "  " + m.notice
	}
	status += "  "

	style := m.palette.Renderer().NewStyle().Foreground(lipgloss.Color("245"))
	h := m.help
	h.Width = max(m.config.ScreenW-lipgloss.Width(status), 0)
	return style.Render(status) + h.View(m.keys)
}

// Recorder returns the scoreboard recorder listening to the game.
func (m Model) Recorder() *scoreboard.Recorder {
	return m.recorder
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ...ModelOption) error {
	_, err := RunGame(game, cfg, opts...)
	return err
}

// RunGame plays game until the player leaves. quit is false when the player
// went back to the menu rather than quitting.
func RunGame(game registry.Game, cfg core.RuntimeConfig, opts ...ModelOption) (quit bool, err error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	m, ok := final.(Model)
	if !ok {
		return true, nil
	}
	return !m.BackToMenu(), nil
}
