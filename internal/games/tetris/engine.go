package tetris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Status is the session lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game-over reasons reported to listeners.
const (
	ReasonTopOut = "Game Over!"
	ReasonTimeUp = "Time Up!"
)

// DefaultPointsPerLine is the score awarded for each cleared row.
const DefaultPointsPerLine = 100

// DefaultClearDelay is how long full rows stay visible before they collapse.
const DefaultClearDelay = 300 * time.Millisecond

// pendingClear is a lock whose outcome is already settled but whose board
// swap is held back for the line-clear flash.
type pendingClear struct {
	rows     []int
	board    Board // board after the clear
	piece    Piece // piece promoted from next
	deadline time.Time
	armed    bool
}

// session is everything Reset throws away.
type session struct {
	board     Board
	active    Piece
	next      Piece
	score     int
	lines     int
	dropCount int
	status    Status
	fastDrop  bool
	reason    string
	notified  bool

	lastDrop time.Time
	// progress toward the next drop carried across a pause
	pausedElapsed time.Duration

	pending *pendingClear
}

// Engine runs one game session. It is not safe for concurrent use; a single
// goroutine (the UI update loop) must issue every command and tick.
type Engine struct {
	clock         core.Clock
	spawner       Spawner
	listener      core.Listener
	logger        *log.Logger
	ramp          SpeedRamp
	pointsPerLine int
	clearDelay    time.Duration

	s session
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source read by Tick and the pause bookkeeping.
func WithClock(c core.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSpawner sets where new pieces come from.
func WithSpawner(s Spawner) Option {
	return func(e *Engine) { e.spawner = s }
}

// WithSeed uses a uniform random spawner seeded with seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.spawner = NewRandomSpawner(rand.New(rand.NewSource(seed))) }
}

// WithListener sets the receiver of score and game-over notifications.
func WithListener(l core.Listener) Option {
	return func(e *Engine) { e.listener = l }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSpeedRamp overrides the drop interval ramp.
func WithSpeedRamp(r SpeedRamp) Option {
	return func(e *Engine) { e.ramp = r }
}

// WithPointsPerLine overrides the per-row score.
func WithPointsPerLine(n int) Option {
	return func(e *Engine) { e.pointsPerLine = n }
}

// WithClearDelay sets the line-clear flash duration. Zero applies clears
// immediately.
func WithClearDelay(d time.Duration) Option {
	return func(e *Engine) { e.clearDelay = d }
}

// NewEngine creates an engine in the Idle state with a fresh board and the
// first two pieces already drawn.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:         core.SystemClock{},
		listener:      core.NopListener{},
		ramp:          DefaultSpeedRamp(),
		pointsPerLine: DefaultPointsPerLine,
		clearDelay:    DefaultClearDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.spawner == nil {
		e.spawner = NewRandomSpawner(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	if e.listener == nil {
		e.listener = core.NopListener{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.Reset()
	return e
}

// SetListener replaces the notification receiver.
func (e *Engine) SetListener(l core.Listener) {
	if l == nil {
		l = core.NopListener{}
	}
	e.listener = l
}

// Reset discards the session, including any pending clear, and returns to
// Idle with an empty board, score 0 and the initial interval. It never
// notifies.
func (e *Engine) Reset() {
	e.s = session{
		status: StatusIdle,
		active: e.spawner.Spawn(),
		next:   e.spawner.Spawn(),
	}
}

// Start begins the drop loop. Only valid from Idle.
func (e *Engine) Start() bool {
	if e.s.status != StatusIdle {
		return false
	}
	e.s.status = StatusRunning
	e.s.lastDrop = e.clock.Now()
	e.logger.Debug("session started", "active", e.s.active.Type, "next", e.s.next.Type)
	return true
}

// Pause suspends the drop loop and cancels soft drop. A pending clear is
// disarmed and re-armed with its full delay on Resume.
func (e *Engine) Pause() bool {
	if e.s.status != StatusRunning {
		return false
	}
	now := e.clock.Now()
	e.s.status = StatusPaused
	e.s.fastDrop = false
	e.s.pausedElapsed = now.Sub(e.s.lastDrop)
	if e.s.pending != nil {
		e.s.pending.armed = false
	}
	return true
}

// Resume continues a paused session.
func (e *Engine) Resume() bool {
	if e.s.status != StatusPaused {
		return false
	}
	now := e.clock.Now()
	e.s.status = StatusRunning
	e.s.lastDrop = now.Add(-e.s.pausedElapsed)
	if e.s.pending != nil {
		e.s.pending.deadline = now.Add(e.clearDelay)
		e.s.pending.armed = true
	}
	return true
}

// TogglePause pauses a running session or resumes a paused one.
func (e *Engine) TogglePause() bool {
	if e.s.status == StatusPaused {
		return e.Resume()
	}
	return e.Pause()
}

// MoveLeft shifts the active piece one column left if the target is free.
func (e *Engine) MoveLeft() bool {
	return e.shift(0, -1)
}

// MoveRight shifts the active piece one column right if the target is free.
func (e *Engine) MoveRight() bool {
	return e.shift(0, 1)
}

// Drop nudges the active piece one row down if the target is free. Unlike a
// scheduled step it never locks the piece.
func (e *Engine) Drop() bool {
	return e.shift(1, 0)
}

// Rotate turns the active piece in place. Rejected on collision; there are
// no wall kicks.
func (e *Engine) Rotate() bool {
	if !e.controllable() {
		return false
	}
	rotated := e.s.active.Rotated()
	if Collides(e.s.board, rotated) {
		return false
	}
	e.s.active = rotated
	return true
}

// SetFastDrop holds or releases soft drop. Score and drop count are not
// affected. Returns false if nothing changed.
func (e *Engine) SetFastDrop(on bool) bool {
	if e.s.status != StatusRunning || e.s.fastDrop == on {
		return false
	}
	e.s.fastDrop = on
	return true
}

// Expire ends a running or paused session from outside, e.g. when a time
// limit runs out. Any pending clear is discarded.
func (e *Engine) Expire(reason string) bool {
	if e.s.status != StatusRunning && e.s.status != StatusPaused {
		return false
	}
	e.s.pending = nil
	e.endGame(reason)
	return true
}

func (e *Engine) shift(dRow, dCol int) bool {
	if !e.controllable() {
		return false
	}
	moved := e.s.active.Moved(dRow, dCol)
	if Collides(e.s.board, moved) {
		return false
	}
	e.s.active = moved
	return true
}

// controllable reports whether an active piece is on the board and accepting
// player commands.
func (e *Engine) controllable() bool {
	return e.s.status == StatusRunning && e.s.pending == nil
}

func (e *Engine) endGame(reason string) {
	if e.s.status == StatusGameOver {
		return
	}
	e.s.status = StatusGameOver
	e.s.fastDrop = false
	e.s.reason = reason
	e.logger.Debug("game over", "reason", reason, "score", e.s.score, "drops", e.s.dropCount)
	if !e.s.notified {
		e.s.notified = true
		e.listener.OnGameOver(reason, e.s.score)
	}
}

// Status returns the lifecycle state.
func (e *Engine) Status() Status { return e.s.status }

// Score returns the current score.
func (e *Engine) Score() int { return e.s.score }

// Lines returns the number of rows cleared this session.
func (e *Engine) Lines() int { return e.s.lines }

// DropCount returns the number of pieces locked this session.
func (e *Engine) DropCount() int { return e.s.dropCount }

// Reason returns why the session ended, or "" while it is still live.
func (e *Engine) Reason() string { return e.s.reason }

// FastDrop reports whether soft drop is held.
func (e *Engine) FastDrop() bool { return e.s.fastDrop }

// Board returns a copy of the settled grid.
func (e *Engine) Board() Board { return e.s.board }

// Next returns the lookahead piece.
func (e *Engine) Next() Piece { return e.s.next }

// Active returns the falling piece. ok is false when no piece is in play:
// during a line-clear flash or after game over.
func (e *Engine) Active() (p Piece, ok bool) {
	if e.s.pending != nil || e.s.status == StatusGameOver {
		return Piece{}, false
	}
	return e.s.active, true
}

// ClearingRows returns the rows currently flashing before collapse.
func (e *Engine) ClearingRows() []int {
	if e.s.pending == nil {
		return nil
	}
	return e.s.pending.rows
}

// RampInterval returns the ramp interval for the current drop count,
// ignoring soft drop.
func (e *Engine) RampInterval() time.Duration {
	return e.ramp.Interval(e.s.dropCount)
}

// DropInterval returns the interval the loop currently waits between steps.
func (e *Engine) DropInterval() time.Duration {
	if e.s.fastDrop {
		return e.ramp.SoftDrop
	}
	return e.RampInterval()
}
