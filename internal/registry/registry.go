// Package registry holds the game modes the platform can start. Modes
// register a factory from an init function; menus and the CLI discover them
// by id without importing the game packages directly.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is the interface the platform drives every tick. Implementations hold
// no Bubble Tea state; input mapping, timing and drawing to the terminal
// belong to the platform.
type Game interface {
	// ID is the stable mode id ("tetris", "tetris_timed"), used by the CLI
	// and as the score table key.
	ID() string
	Title() string

	// Reset starts over with the given screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)
	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult
	// Render draws into a cleared screen.
	Render(dst *core.Screen)
	State() core.GameState

	// Subscribe adds a score and game-over listener that survives Reset.
	Subscribe(l core.Listener)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a mode. It panics when id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered mode ordered by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e, ok
}

// Create builds a new game for id.
func Create(id string) (Game, error) {
	e, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

func Exists(id string) bool {
	_, ok := lookup(id)
	return ok
}

// Title returns the display title for id, or id itself when unknown.
func Title(id string) string {
	if e, ok := lookup(id); ok {
		return e.title
	}
	return id
}
