package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Palette turns screen colors into lipgloss styles for one output.
// SSH sessions each get their own, bound to the session's renderer, so
// color support is detected per client instead of from the server's stdout.
type Palette struct {
	renderer *lipgloss.Renderer
	styles   map[core.Color]lipgloss.Style
}

// NewPalette builds a palette on r. A nil renderer means the process default.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		renderer: r,
		styles:   map[core.Color]lipgloss.Style{core.ColorDefault: r.NewStyle()},
	}
	for _, c := range core.Colors() {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(c.Code()))
	}
	return p
}

// Renderer returns the renderer the palette draws with.
func (p *Palette) Renderer() *lipgloss.Renderer {
	return p.renderer
}

// Style returns the style for c, falling back to the default style.
func (p *Palette) Style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.styles[core.ColorDefault]
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.Style(start).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultPalette = sync.OnceValue(func() *Palette { return NewPalette(nil) })

// RenderScreen renders s with the process default palette.
func RenderScreen(s *core.Screen) string {
	return defaultPalette().Render(s)
}
