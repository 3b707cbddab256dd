package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type recordingListener struct {
	scores  []int
	reasons []string
	finals  []int
}

func (r *recordingListener) OnScoreChanged(score int) {
	r.scores = append(r.scores, score)
}

func (r *recordingListener) OnGameOver(reason string, finalScore int) {
	r.reasons = append(r.reasons, reason)
	r.finals = append(r.finals, finalScore)
}

func newTestEngine(opts ...Option) (*Engine, *core.StepClock, *recordingListener) {
	clock := core.NewStepClock(1000)
	rec := &recordingListener{}
	base := []Option{WithClock(clock), WithSeed(1), WithListener(rec)}
	return NewEngine(append(base, opts...)...), clock, rec
}

// step advances just past the current interval and ticks once.
func step(e *Engine, c *core.StepClock) Outcome {
	c.AdvanceBy(e.DropInterval() + time.Millisecond)
	return e.Tick()
}

// stepUntilLock runs steps until the active piece locks.
func stepUntilLock(t *testing.T, e *Engine, c *core.StepClock) (Outcome, int) {
	t.Helper()
	moves := 0
	for range 100 {
		out := step(e, c)
		if out.Locked {
			return out, moves
		}
		require.True(t, out.Moved, "step neither moved nor locked")
		moves++
	}
	t.Fatal("piece never locked")
	return Outcome{}, moves
}

// holeInBottomRows fills the given rows except columns 4 and 5, where the
// spawned O piece lands.
func holeInBottomRows(e *Engine, rows ...int) {
	for _, r := range rows {
		e.s.board[r] = fullRow(uint8(PieceL))
		e.s.board[r][4] = 0
		e.s.board[r][5] = 0
	}
}

func TestNewEngineIsIdleAndFresh(t *testing.T) {
	e, _, _ := newTestEngine()

	assert.Equal(t, StatusIdle, e.Status())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.DropCount())
	assert.Equal(t, 400*time.Millisecond, e.DropInterval())
	assert.Zero(t, e.Board().Filled())

	p, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 0, p.Row)
	assert.NotEqual(t, PieceNone, e.Next().Type)
}

func TestOPieceFallsAndLocks(t *testing.T) {
	e, c, rec := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	require.True(t, e.Start())

	p, _ := e.Active()
	require.Equal(t, 4, p.Col)

	out, moves := stepUntilLock(t, e, c)
	assert.Equal(t, 18, moves)
	assert.Zero(t, out.Cleared)

	b := e.Board()
	for _, cell := range [][2]int{{18, 4}, {18, 5}, {19, 4}, {19, 5}} {
		assert.Equal(t, uint8(PieceO), b[cell[0]][cell[1]], "cell %v", cell)
	}
	assert.Equal(t, 4, b.Filled())
	assert.Equal(t, 1, e.DropCount())
	assert.Equal(t, 392*time.Millisecond, e.DropInterval())
	assert.Zero(t, e.Score())
	assert.Empty(t, rec.scores)

	p, ok := e.Active()
	require.True(t, ok, "next piece is promoted right away")
	assert.Equal(t, 0, p.Row)
}

func TestLineClearWaitsForFlash(t *testing.T) {
	e, c, rec := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	holeInBottomRows(e, 19)
	require.True(t, e.Start())

	out, _ := stepUntilLock(t, e, c)
	assert.Equal(t, 1, out.Cleared)

	// outcome is settled at lock time
	assert.Equal(t, 100, e.Score())
	assert.Equal(t, []int{100}, rec.scores)
	assert.Equal(t, 1, e.DropCount())
	assert.Equal(t, 392*time.Millisecond, e.RampInterval())

	// but the board swap is deferred
	assert.Equal(t, []int{19}, e.ClearingRows())
	assert.True(t, e.Board().RowFull(19))
	_, ok := e.Active()
	assert.False(t, ok)
	assert.False(t, e.MoveLeft())
	assert.False(t, e.Rotate())

	c.AdvanceBy(299 * time.Millisecond)
	assert.Equal(t, Outcome{}, e.Tick())
	assert.NotEmpty(t, e.ClearingRows())

	c.AdvanceBy(time.Millisecond)
	assert.True(t, e.Tick().Flushed)

	b := e.Board()
	assert.Equal(t, 2, b.Filled())
	assert.Equal(t, uint8(PieceO), b[19][4])
	assert.Equal(t, uint8(PieceO), b[19][5])
	assert.Equal(t, uint8(0), b[18][4])
	assert.Empty(t, e.ClearingRows())

	p, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 0, p.Row)
}

func TestLineClearWithoutDelay(t *testing.T) {
	e, c, _ := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)), WithClearDelay(0))
	holeInBottomRows(e, 19)
	require.True(t, e.Start())

	stepUntilLock(t, e, c)

	assert.Empty(t, e.ClearingRows())
	assert.Equal(t, 2, e.Board().Filled())
	_, ok := e.Active()
	assert.True(t, ok)
}

func TestDoubleClearScoresPerLine(t *testing.T) {
	e, c, rec := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)), WithClearDelay(0))
	holeInBottomRows(e, 18, 19)
	require.True(t, e.Start())

	out, _ := stepUntilLock(t, e, c)

	assert.Equal(t, 2, out.Cleared)
	assert.Equal(t, 200, e.Score())
	assert.Equal(t, 2, e.Lines())
	assert.Equal(t, []int{200}, rec.scores)
	assert.Zero(t, e.Board().Filled())
}

func TestTopOutEndsSession(t *testing.T) {
	e, c, rec := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	// stack reaching row 2 with a gap in column 0 so no row is full
	for r := 2; r < Rows; r++ {
		e.s.board[r] = fullRow(uint8(PieceI))
		e.s.board[r][0] = 0
	}
	e.s.score = 300
	require.True(t, e.Start())

	out := step(e, c)
	require.True(t, out.Locked)
	require.True(t, out.GameOver)

	assert.Equal(t, StatusGameOver, e.Status())
	assert.Equal(t, ReasonTopOut, e.Reason())
	assert.Equal(t, []string{ReasonTopOut}, rec.reasons)
	assert.Equal(t, []int{300}, rec.finals)
	_, ok := e.Active()
	assert.False(t, ok)

	board := e.Board()
	for range 10 {
		step(e, c)
	}
	assert.Equal(t, board, e.Board(), "no tick mutates the board after game over")
	assert.Equal(t, 300, e.Score())

	assert.False(t, e.Start())
	assert.False(t, e.Pause())
	assert.False(t, e.Resume())
	assert.False(t, e.MoveLeft())
	assert.False(t, e.Rotate())
	assert.False(t, e.SetFastDrop(true))
	assert.False(t, e.Expire(ReasonTimeUp))
	assert.Len(t, rec.reasons, 1, "game over is reported once")
}

func TestExpire(t *testing.T) {
	e, c, rec := newTestEngine()
	assert.False(t, e.Expire(ReasonTimeUp), "idle sessions cannot expire")

	require.True(t, e.Start())
	step(e, c)
	require.True(t, e.Expire(ReasonTimeUp))

	assert.Equal(t, StatusGameOver, e.Status())
	assert.Equal(t, ReasonTimeUp, e.Reason())
	assert.False(t, e.Expire(ReasonTimeUp))
	assert.Equal(t, []string{ReasonTimeUp}, rec.reasons)
}

func TestExpireWhilePaused(t *testing.T) {
	e, _, rec := newTestEngine()
	require.True(t, e.Start())
	require.True(t, e.Pause())

	assert.True(t, e.Expire(ReasonTimeUp))
	assert.Equal(t, []string{ReasonTimeUp}, rec.reasons)
}

func TestExpireDiscardsPendingClear(t *testing.T) {
	e, c, rec := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	holeInBottomRows(e, 19)
	require.True(t, e.Start())
	stepUntilLock(t, e, c)
	require.NotEmpty(t, e.ClearingRows())

	require.True(t, e.Expire(ReasonTimeUp))

	assert.Empty(t, e.ClearingRows())
	assert.Equal(t, []int{100}, rec.finals)
	c.AdvanceBy(time.Second)
	assert.Equal(t, Outcome{}, e.Tick())
}

func TestCommandsAreIdempotent(t *testing.T) {
	e, _, _ := newTestEngine()

	assert.False(t, e.Pause())
	assert.False(t, e.Resume())
	assert.False(t, e.MoveLeft())
	assert.False(t, e.Rotate())
	assert.False(t, e.Drop())
	assert.False(t, e.SetFastDrop(true))

	assert.True(t, e.Start())
	assert.False(t, e.Start())

	assert.True(t, e.Pause())
	assert.False(t, e.Pause())
	assert.False(t, e.MoveRight())
	assert.False(t, e.SetFastDrop(true))

	assert.True(t, e.Resume())
	assert.False(t, e.Resume())

	assert.True(t, e.SetFastDrop(true))
	assert.False(t, e.SetFastDrop(true))
	assert.True(t, e.SetFastDrop(false))
}

func TestMovesStopAtWalls(t *testing.T) {
	e, _, _ := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	require.True(t, e.Start())

	for range 4 {
		require.True(t, e.MoveLeft())
	}
	assert.False(t, e.MoveLeft())
	p, _ := e.Active()
	assert.Equal(t, 0, p.Col)

	for range 8 {
		require.True(t, e.MoveRight())
	}
	assert.False(t, e.MoveRight())
	p, _ = e.Active()
	assert.Equal(t, 8, p.Col)
}

func TestMoveBlockedBySettledCells(t *testing.T) {
	e, _, _ := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	e.s.board[1][3] = uint8(PieceJ)
	require.True(t, e.Start())

	assert.False(t, e.MoveLeft())
	p, _ := e.Active()
	assert.Equal(t, 4, p.Col, "rejected move keeps the piece in place")
}

func TestRotate(t *testing.T) {
	e, _, _ := newTestEngine(WithSpawner(NewSequenceSpawner(PieceI)))
	require.True(t, e.Start())

	e.s.board[2][3] = uint8(PieceZ)
	assert.False(t, e.Rotate(), "vertical I would overlap a settled cell")
	p, _ := e.Active()
	assert.Equal(t, 4, p.Shape.Width())

	e.s.board[2][3] = 0
	require.True(t, e.Rotate())
	p, _ = e.Active()
	assert.Equal(t, 1, p.Shape.Width())
	assert.Equal(t, 4, p.Shape.Height())
	assert.Equal(t, 3, p.Col, "rotation keeps the anchor")
}

func TestRotateRejectedAtFloor(t *testing.T) {
	e, _, _ := newTestEngine(WithSpawner(NewSequenceSpawner(PieceI)))
	require.True(t, e.Start())

	for e.Drop() {
	}
	p, _ := e.Active()
	require.Equal(t, Rows-1, p.Row)
	assert.False(t, e.Rotate(), "no floor kicks")
}

func TestDropNeverLocks(t *testing.T) {
	e, _, _ := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	require.True(t, e.Start())

	for e.Drop() {
	}
	assert.Zero(t, e.DropCount())
	assert.Zero(t, e.Board().Filled())
}

func TestDropRequiresStrictlyGreaterInterval(t *testing.T) {
	e, c, _ := newTestEngine()
	require.True(t, e.Start())

	c.AdvanceBy(400 * time.Millisecond)
	assert.False(t, e.Tick().Moved)
	c.AdvanceBy(time.Millisecond)
	assert.True(t, e.Tick().Moved)
}

func TestOneStepPerTick(t *testing.T) {
	e, c, _ := newTestEngine()
	require.True(t, e.Start())

	c.AdvanceBy(10 * time.Second)
	assert.True(t, e.Tick().Moved)
	assert.Equal(t, Outcome{}, e.Tick(), "interval restarts after a step")

	p, _ := e.Active()
	assert.Equal(t, 1, p.Row)
}

func TestFastDrop(t *testing.T) {
	e, c, _ := newTestEngine()
	require.True(t, e.Start())

	require.True(t, e.SetFastDrop(true))
	assert.Equal(t, 50*time.Millisecond, e.DropInterval())

	c.AdvanceBy(50 * time.Millisecond)
	assert.False(t, e.Tick().Moved)
	c.AdvanceBy(time.Millisecond)
	assert.True(t, e.Tick().Moved)

	require.True(t, e.SetFastDrop(false))
	assert.Equal(t, 400*time.Millisecond, e.DropInterval())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.DropCount())
}

func TestPausePreservesDropProgress(t *testing.T) {
	e, c, _ := newTestEngine()
	require.True(t, e.Start())

	c.AdvanceBy(300 * time.Millisecond)
	require.True(t, e.Pause())
	c.AdvanceBy(10 * time.Second)
	assert.Equal(t, Outcome{}, e.Tick())

	require.True(t, e.Resume())
	c.AdvanceBy(100 * time.Millisecond)
	assert.False(t, e.Tick().Moved)
	c.AdvanceBy(time.Millisecond)
	assert.True(t, e.Tick().Moved)
}

func TestPauseReleasesFastDrop(t *testing.T) {
	e, _, _ := newTestEngine()
	require.True(t, e.Start())
	require.True(t, e.SetFastDrop(true))

	require.True(t, e.Pause())
	assert.False(t, e.FastDrop())
	require.True(t, e.Resume())
	assert.Equal(t, 400*time.Millisecond, e.DropInterval())
}

func TestPauseRearmsPendingClear(t *testing.T) {
	e, c, _ := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	holeInBottomRows(e, 19)
	require.True(t, e.Start())
	stepUntilLock(t, e, c)

	c.AdvanceBy(200 * time.Millisecond)
	require.True(t, e.Pause())
	c.AdvanceBy(5 * time.Second)
	assert.Equal(t, Outcome{}, e.Tick())
	require.True(t, e.Resume())

	c.AdvanceBy(299 * time.Millisecond)
	assert.False(t, e.Tick().Flushed, "the full delay runs again after resume")
	c.AdvanceBy(time.Millisecond)
	assert.True(t, e.Tick().Flushed)
}

func TestResetDiscardsEverything(t *testing.T) {
	e, c, rec := newTestEngine(WithSpawner(NewSequenceSpawner(PieceO)))
	holeInBottomRows(e, 19)
	require.True(t, e.Start())
	stepUntilLock(t, e, c)
	require.NotEmpty(t, e.ClearingRows())

	e.Reset()

	assert.Equal(t, StatusIdle, e.Status())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.Lines())
	assert.Zero(t, e.DropCount())
	assert.Equal(t, 400*time.Millisecond, e.DropInterval())
	assert.Zero(t, e.Board().Filled())
	assert.Empty(t, e.ClearingRows())
	assert.Empty(t, e.Reason())
	assert.Empty(t, rec.reasons)

	p, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 0, p.Row)

	c.AdvanceBy(time.Second)
	assert.Equal(t, Outcome{}, e.Tick(), "idle after reset")
}

func TestResetAfterGameOverReportsAgain(t *testing.T) {
	e, _, rec := newTestEngine()
	require.True(t, e.Start())
	require.True(t, e.Expire(ReasonTimeUp))

	e.Reset()
	require.True(t, e.Start())
	require.True(t, e.Expire(ReasonTimeUp))

	assert.Len(t, rec.reasons, 2)
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	e, c, rec := newTestEngine(WithSeed(11))
	require.True(t, e.Start())

	games := 0
	prevScore := 0
	for i := range 20000 {
		switch rng.Intn(6) {
		case 0:
			e.MoveLeft()
		case 1:
			e.MoveRight()
		case 2:
			e.Rotate()
		case 3:
			e.SetFastDrop(rng.Intn(2) == 0)
		case 4:
			e.Drop()
		}
		c.AdvanceBy(time.Duration(rng.Intn(120)) * time.Millisecond)
		e.Tick()

		if p, ok := e.Active(); ok {
			require.False(t, Collides(e.Board(), p), "iteration %d: active piece overlaps", i)
		}
		require.GreaterOrEqual(t, e.Score(), prevScore, "iteration %d", i)
		require.Zero(t, e.Score()%DefaultPointsPerLine)
		prevScore = e.Score()

		ramp := e.RampInterval()
		require.GreaterOrEqual(t, ramp, 100*time.Millisecond)
		require.LessOrEqual(t, ramp, 400*time.Millisecond)

		if e.Status() == StatusGameOver {
			games++
			require.Len(t, rec.reasons, games)
			e.Reset()
			require.True(t, e.Start())
			prevScore = 0
		}
	}
}
