// Package tui provides the Bubble Tea integration for the game: the play
// loop, menus, the high score screen and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen ties the tick to the
// model that scheduled it, so a model left behind in a session cannot keep a
// second tick chain alive.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a generation number for a new model.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd schedules the next tick of generation gen.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
