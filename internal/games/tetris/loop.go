package tetris

import "time"

// Outcome describes what a single Tick did.
type Outcome struct {
	Moved    bool // active piece stepped down one row
	Locked   bool // active piece merged into the board
	Cleared  int  // rows removed by this lock
	Flushed  bool // a pending line clear was applied
	GameOver bool // the session ended on this tick
}

// Tick advances the drop loop against the engine clock. At most one step runs
// per call, and only when strictly more than the current interval has passed
// since the last step. Outside Running it does nothing.
func (e *Engine) Tick() Outcome {
	if e.s.status != StatusRunning {
		return Outcome{}
	}
	now := e.clock.Now()

	if p := e.s.pending; p != nil {
		if !p.armed || now.Before(p.deadline) {
			return Outcome{}
		}
		e.flush(now)
		return Outcome{Flushed: true}
	}

	if now.Sub(e.s.lastDrop) <= e.DropInterval() {
		return Outcome{}
	}
	e.s.lastDrop = now
	return e.step(now)
}

// step moves the active piece down or locks it.
func (e *Engine) step(now time.Time) Outcome {
	down := e.s.active.Moved(1, 0)
	if !Collides(e.s.board, down) {
		e.s.active = down
		return Outcome{Moved: true}
	}
	return e.lock(now)
}

// lock settles the active piece. Score, drop count, interval and the
// game-over decision are all resolved here, even when the visible board swap
// is deferred for the clear flash.
func (e *Engine) lock(now time.Time) Outcome {
	merged := Merge(e.s.board, e.s.active)
	rows := FullRows(merged)
	cleared, n := ClearLines(merged)

	if n > 0 {
		e.s.lines += n
		e.s.score += n * e.pointsPerLine
		e.listener.OnScoreChanged(e.s.score)
	}
	e.s.dropCount++

	promoted := e.s.next
	e.s.next = e.spawner.Spawn()

	e.logger.Debug("piece locked",
		"type", e.s.active.Type,
		"row", e.s.active.Row,
		"col", e.s.active.Col,
		"lines", n,
		"score", e.s.score,
		"interval", e.RampInterval(),
	)

	out := Outcome{Locked: true, Cleared: n}

	if Collides(cleared, promoted) {
		e.s.board = cleared
		e.s.active = promoted
		e.endGame(ReasonTopOut)
		out.GameOver = true
		return out
	}

	if n > 0 && e.clearDelay > 0 {
		e.s.board = merged
		e.s.pending = &pendingClear{
			rows:     rows,
			board:    cleared,
			piece:    promoted,
			deadline: now.Add(e.clearDelay),
			armed:    true,
		}
		return out
	}

	e.s.board = cleared
	e.s.active = promoted
	return out
}

// flush applies a pending clear. Nothing can touch the board while a clear is
// pending, so the placement checked at lock time still holds.
func (e *Engine) flush(now time.Time) {
	p := e.s.pending
	e.s.pending = nil
	e.s.board = p.board
	e.s.active = p.piece
	e.s.lastDrop = now
}
