// Package scoreboard records finished games: it listens to a running game,
// persists each result and keeps the recent results and the top scorer in
// memory for display.
package scoreboard

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// RecentLimit is how many finished games the recorder keeps in memory.
const RecentLimit = 10

// Entry is one finished game.
type Entry struct {
	SessionID string
	GameID    string
	Handle    string
	Score     int
	Reason    string
	Time      time.Time
}

// Saver persists finished games.
type Saver interface {
	SaveEntry(e Entry) error
}

// Recorder implements core.Listener. Each game over becomes an Entry that
// is saved, prepended to the recent list and compared with the top scorer.
// A Recorder belongs to one player's UI loop and is not safe for concurrent
// use.
type Recorder struct {
	gameID  string
	handle  string
	session uuid.UUID
	saver   Saver
	logger  *log.Logger
	clock   core.Clock

	live   int
	recent []Entry
	top    Entry
	hasTop bool
}

var _ core.Listener = (*Recorder)(nil)

// Option configures a Recorder.
type Option func(*Recorder)

// WithSaver sets where entries are persisted. Without one the recorder is
// memory only.
func WithSaver(s Saver) Option {
	return func(r *Recorder) { r.saver = s }
}

// WithLogger sets the logger used for save failures and results.
func WithLogger(l *log.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// WithClock sets the clock used to timestamp entries.
func WithClock(c core.Clock) Option {
	return func(r *Recorder) { r.clock = c }
}

// NewRecorder creates a recorder for one game mode and player.
func NewRecorder(gameID, handle string, opts ...Option) *Recorder {
	r := &Recorder{
		gameID:  gameID,
		handle:  handle,
		session: uuid.New(),
		clock:   core.SystemClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Load seeds the in-memory view, typically from storage at startup.
// recent is expected newest first.
func (r *Recorder) Load(recent []Entry, top *Entry) {
	r.recent = append(r.recent[:0], recent...)
	if len(r.recent) > RecentLimit {
		r.recent = r.recent[:RecentLimit]
	}
	if top != nil {
		r.top = *top
		r.hasTop = true
	}
}

// OnScoreChanged tracks the live score.
func (r *Recorder) OnScoreChanged(score int) {
	r.live = score
}

// OnGameOver records the finished game and starts a new session id for the
// next one.
func (r *Recorder) OnGameOver(reason string, finalScore int) {
	e := Entry{
		SessionID: r.session.String(),
		GameID:    r.gameID,
		Handle:    r.handle,
		Score:     finalScore,
		Reason:    reason,
		Time:      r.clock.Now(),
	}

	r.recent = append([]Entry{e}, r.recent...)
	if len(r.recent) > RecentLimit {
		r.recent = r.recent[:RecentLimit]
	}
	if !r.hasTop || e.Score > r.top.Score {
		r.top = e
		r.hasTop = true
	}

	r.logger.Info("game finished", "game", e.GameID, "handle", e.Handle, "score", e.Score, "reason", e.Reason)
	if r.saver != nil {
		if err := r.saver.SaveEntry(e); err != nil {
			r.logger.Error("save score", "err", err, "session", e.SessionID)
		}
	}

	r.live = 0
	r.session = uuid.New()
}

// Handle returns the player's handle.
func (r *Recorder) Handle() string {
	return r.handle
}

// SetHandle changes the handle used for future entries.
func (r *Recorder) SetHandle(h string) {
	r.handle = h
}

// SessionID returns the id the next entry will carry.
func (r *Recorder) SessionID() string {
	return r.session.String()
}

// Live returns the score of the game in progress.
func (r *Recorder) Live() int {
	return r.live
}

// Recent returns finished games, newest first.
func (r *Recorder) Recent() []Entry {
	return append([]Entry(nil), r.recent...)
}

// Top returns the best entry seen so far.
func (r *Recorder) Top() (Entry, bool) {
	return r.top, r.hasTop
}
