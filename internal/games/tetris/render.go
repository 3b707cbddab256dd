package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Each board cell is drawn two columns wide so blocks look square.
const cellW = 2

const (
	boardBoxW = Cols*cellW + 2
	boardBoxH = Rows + 2
	panelGap  = 2
	panelW    = 16
	minW      = boardBoxW + panelGap + panelW
	minH      = boardBoxH
)

// pieceColors maps piece type ids to display colors.
var pieceColors = [PieceTypeCount + 1]core.Color{
	PieceNone: core.ColorDefault,
	PieceI:    core.ColorBrightCyan,
	PieceO:    core.ColorBrightYellow,
	PieceT:    core.ColorMagenta,
	PieceS:    core.ColorBrightGreen,
	PieceZ:    core.ColorBrightRed,
	PieceJ:    core.ColorBlue,
	PieceL:    core.ColorOrange,
}

// ColorOf returns the display color for a board cell value.
func ColorOf(v uint8) core.Color {
	if int(v) >= len(pieceColors) {
		return core.ColorGray
	}
	return pieceColors[v]
}

// layout places the board and side panel on screen.
type layout struct {
	fits   bool
	boxX   int // board border top-left
	boxY   int
	panelX int
}

func computeLayout(w, h int) layout {
	if w < minW || h < minH {
		return layout{}
	}
	x := (w - minW) / 2
	y := (h - minH) / 2
	return layout{
		fits:   true,
		boxX:   x,
		boxY:   y,
		panelX: x + boardBoxW + panelGap,
	}
}

// cellScreen returns the screen position of a board cell's left column.
func (l layout) cellScreen(row, col int) (x, y int) {
	return l.boxX + 1 + col*cellW, l.boxY + 1 + row
}

// cellAt maps a screen position back to a board cell.
func (l layout) cellAt(x, y int) (row, col int, ok bool) {
	if !l.fits {
		return 0, 0, false
	}
	dx := x - (l.boxX + 1)
	row = y - (l.boxY + 1)
	if dx < 0 {
		return 0, 0, false
	}
	col = dx / cellW
	return row, col, InBounds(row, col)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	l := g.layout
	dst.DrawBox(core.NewRect(l.boxX, l.boxY, boardBoxW, boardBoxH), core.ColorGray)

	g.renderBoard(dst)
	if p, ok := g.engine.Active(); ok {
		g.renderPiece(dst, p)
	}
	g.renderPanel(dst)

	switch g.engine.Status() {
	case StatusIdle:
		g.renderOverlay(dst, g.Title(), "Press Enter to start")
	case StatusPaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case StatusGameOver:
		g.renderOverlay(dst, g.engine.Reason(), fmt.Sprintf("Score %d - R to play again", g.engine.Score()))
	}
}

// renderBoard draws settled cells, with rows awaiting collapse flashing.
func (g *Game) renderBoard(dst *core.Screen) {
	board := g.engine.Board()
	clearing := make(map[int]bool)
	for _, r := range g.engine.ClearingRows() {
		clearing[r] = true
	}

	for row := range Rows {
		for col := range Cols {
			x, y := g.layout.cellScreen(row, col)
			v := board[row][col]
			switch {
			case clearing[row]:
				dst.SetColored(x, y, '▓', core.ColorBrightWhite)
				dst.SetColored(x+1, y, '▓', core.ColorBrightWhite)
			case v != 0:
				dst.SetColored(x, y, '█', ColorOf(v))
				dst.SetColored(x+1, y, '█', ColorOf(v))
			default:
				dst.SetColored(x, y, ' ', core.ColorDefault)
				dst.SetColored(x+1, y, '.', core.ColorGray)
			}
		}
	}
}

func (g *Game) renderPiece(dst *core.Screen, p Piece) {
	c := ColorOf(uint8(p.Type))
	p.forEachCell(func(row, col int) {
		if !InBounds(row, col) {
			return
		}
		x, y := g.layout.cellScreen(row, col)
		dst.SetColored(x, y, '█', c)
		dst.SetColored(x+1, y, '█', c)
	})
}

// renderPanel draws the HUD and next-piece preview.
func (g *Game) renderPanel(dst *core.Screen) {
	x := g.layout.panelX
	y := g.layout.boxY

	dst.DrawTextColored(x, y, g.Title(), core.ColorBrightWhite)
	dst.DrawText(x, y+2, fmt.Sprintf("Score %d", g.engine.Score()))
	dst.DrawText(x, y+3, fmt.Sprintf("Lines %d", g.engine.Lines()))
	dst.DrawText(x, y+4, fmt.Sprintf("Speed %dms", g.engine.DropInterval().Milliseconds()))
	if g.countdown.Limited() {
		dst.DrawText(x, y+5, "Time  "+formatClock(g.countdown.Remaining()))
	}

	dst.DrawText(x, y+7, "Next")
	next := g.engine.Next()
	c := ColorOf(uint8(next.Type))
	for r, line := range next.Shape {
		for col, v := range line {
			if v == 0 {
				continue
			}
			px := x + col*cellW
			py := y + 9 + r
			dst.SetColored(px, py, '█', c)
			dst.SetColored(px+1, py, '█', c)
		}
	}

	dst.DrawTextColored(x, y+13, "←/→ move", core.ColorGray)
	dst.DrawTextColored(x, y+14, "↑ rotate", core.ColorGray)
	dst.DrawTextColored(x, y+15, "↓ drop", core.ColorGray)
	dst.DrawTextColored(x, y+16, "p pause", core.ColorGray)
	dst.DrawTextColored(x, y+17, "r reset", core.ColorGray)
}

// formatClock renders a duration as m:ss, rounding up partial seconds.
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// renderOverlay draws a two-line message box centered over the board, or
// over the whole screen when the board does not fit.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	cx := dst.Width() / 2
	cy := dst.Height() / 2
	if g.layout.fits {
		cx = g.layout.boxX + boardBoxW/2
		cy = g.layout.boxY + boardBoxH/2
	}

	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(cx-width/2, cy-2, width, 5)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.Fill(box.Inset(1), ' ')
	dst.DrawTextCenteredAt(cx, box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCenteredAt(cx, box.Y+3, line2, core.ColorDefault)
}
