package tetris

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Status     Status
	Score      int
	Lines      int
	DropCount  int
	IntervalMs int64
	FastDrop   bool
	Board      Board
	Active     PieceType
	ActiveRow  int
	ActiveCol  int
	Next       PieceType
	Clearing   int // rows flashing before collapse
	Remaining  int64
	Reason     string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	e := g.engine
	snap := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Status:     e.Status(),
		Score:      e.Score(),
		Lines:      e.Lines(),
		DropCount:  e.DropCount(),
		IntervalMs: e.DropInterval().Milliseconds(),
		FastDrop:   e.FastDrop(),
		Board:      e.Board(),
		Next:       e.Next().Type,
		Clearing:   len(e.ClearingRows()),
		Remaining:  g.Remaining().Milliseconds(),
		Reason:     e.Reason(),
	}
	if p, ok := e.Active(); ok {
		snap.Active = p.Type
		snap.ActiveRow = p.Row
		snap.ActiveCol = p.Col
	}
	return snap
}
