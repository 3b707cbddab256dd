package tetris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDClassic, IDTimed} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := New()
	g1.Reset(testConfig(12345))
	g2 := New()
	g2.Reset(testConfig(12345))

	for i := range 3000 {
		var in core.InputFrame
		switch {
		case i == 0:
			in = frame(core.ActionConfirm)
		case i%37 == 0:
			in = frame(core.ActionRotate)
		case i%23 == 0:
			in = frame(core.ActionLeft)
		case i%29 == 0:
			in = frame(core.ActionRight, core.ActionRight)
		default:
			in = frame()
		}
		g1.Step(in)
		g2.Step(in)
	}

	snap1, snap2 := g1.Snapshot(), g2.Snapshot()
	if snap1 != snap2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
	if snap1.Tick != 3000 {
		t.Errorf("Tick = %d, expected 3000", snap1.Tick)
	}
}

func TestIdleUntilConfirm(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	for range 120 {
		g.Step(frame(core.ActionLeft))
	}
	snap := g.Snapshot()
	if snap.Status != StatusIdle {
		t.Fatalf("Status = %v, expected idle", snap.Status)
	}
	if snap.ActiveRow != 0 {
		t.Errorf("piece moved before start: row %d", snap.ActiveRow)
	}

	g.Step(frame(core.ActionConfirm))
	if g.Snapshot().Status != StatusRunning {
		t.Fatal("Confirm should start the session")
	}

	// 60 ticks is one second, enough for two drops at 400ms
	for range 60 {
		g.Step(frame())
	}
	if row := g.Snapshot().ActiveRow; row != 2 {
		t.Errorf("ActiveRow = %d after one second, expected 2", row)
	}
}

func TestPauseToggle(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	row := g.Snapshot().ActiveRow
	for range 120 {
		g.Step(frame())
	}
	if g.Snapshot().ActiveRow != row {
		t.Error("piece fell while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected running again")
	}
}

func TestRestartReturnsToIdle(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.Step(frame(core.ActionConfirm))
	for range 200 {
		g.Step(frame())
	}

	g.Step(frame(core.ActionRestart))
	snap := g.Snapshot()
	if snap.Status != StatusIdle || snap.Score != 0 || snap.DropCount != 0 || snap.ActiveRow != 0 {
		t.Errorf("restart should give a fresh idle session, got %+v", snap)
	}
}

func TestTimedModeExpires(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  time_limit_secs: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := NewTimed()
	var reasons []string
	var finals []int
	g.Subscribe(core.ListenerFuncs{GameOver: func(reason string, score int) {
		reasons = append(reasons, reason)
		finals = append(finals, score)
	}})
	g.Reset(testConfig(1))

	g.Step(frame(core.ActionConfirm))
	for range 120 {
		g.Step(frame())
	}

	st := g.State()
	if !st.GameOver || st.Reason != ReasonTimeUp {
		t.Fatalf("State = %+v, expected time up", st)
	}
	if len(reasons) != 1 || reasons[0] != ReasonTimeUp || finals[0] != 0 {
		t.Errorf("notifications = %v %v, expected one time up with score 0", reasons, finals)
	}
	if g.Remaining() != 0 {
		t.Errorf("Remaining() = %v, expected 0", g.Remaining())
	}
}

func TestClassicModeHasNoClock(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.Step(frame(core.ActionConfirm))
	if g.Remaining() != 0 {
		t.Errorf("Remaining() = %v in classic mode", g.Remaining())
	}
}

func TestSoftDropTapAndHold(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionSoftDrop))
	snap := g.Snapshot()
	if snap.FastDrop || snap.ActiveRow != 1 {
		t.Fatalf("a single press should nudge one row, got row %d fast=%v", snap.ActiveRow, snap.FastDrop)
	}

	// auto-repeat arrives within the release window
	g.Step(frame(core.ActionSoftDrop))
	if !g.Snapshot().FastDrop {
		t.Fatal("repeated press should hold fast drop")
	}
	if g.Snapshot().IntervalMs != 50 {
		t.Errorf("IntervalMs = %d while held, expected 50", g.Snapshot().IntervalMs)
	}

	// 500ms of silence is 30 ticks at 60 FPS; one more releases
	for range 31 {
		g.Step(frame())
	}
	if g.Snapshot().FastDrop {
		t.Error("fast drop should release after the key stops repeating")
	}
}

func TestTapRotatesActivePiece(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))
	g.Step(frame(core.ActionConfirm))

	p, ok := g.Engine().Active()
	if !ok {
		t.Fatal("expected an active piece")
	}
	var row, col int
	p.forEachCell(func(r, c int) { row, col = r, c })
	x, y := g.layout.cellScreen(row, col)

	in := frame()
	in.Tap(x+1, y)
	g.Step(in)

	got, _ := g.Engine().Active()
	if !got.Shape.Equal(p.Rotated().Shape) {
		t.Errorf("tap on the piece should rotate it: got %v", got.Shape)
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 10, TickRate: 60})
	g.Step(frame(core.ActionConfirm))

	if g.Snapshot().Status == StatusRunning {
		t.Error("session must not run in a window that is too small")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected size warning, got:\n%s", screen.String())
	}

	g.Resize(80, 24)
	g.Step(frame(core.ActionConfirm))
	if g.Snapshot().Status != StatusRunning {
		t.Error("resizing should allow the session to start")
	}
}

func TestRenderHUD(t *testing.T) {
	g := NewTimed()
	g.Reset(testConfig(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score 0", "Next", "Time  5:00", "Press Enter to start"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutCellAt(t *testing.T) {
	l := computeLayout(80, 24)
	if !l.fits {
		t.Fatal("80x24 should fit")
	}
	for _, tc := range []struct{ row, col int }{{0, 0}, {19, 9}, {7, 4}} {
		x, y := l.cellScreen(tc.row, tc.col)
		for dx := range cellW {
			row, col, ok := l.cellAt(x+dx, y)
			if !ok || row != tc.row || col != tc.col {
				t.Errorf("cellAt(%d,%d) = (%d,%d,%v), expected (%d,%d)", x+dx, y, row, col, ok, tc.row, tc.col)
			}
		}
	}
	if _, _, ok := l.cellAt(l.boxX, l.boxY); ok {
		t.Error("border should not map to a cell")
	}
}
