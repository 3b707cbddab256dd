package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Gesture is a discrete player intent, independent of the device that
// produced it.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureLeft
	GestureRight
	GestureRotate
	GestureSoftDropPress
	GestureSoftDropRelease
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeDown
)

func (g Gesture) String() string {
	switch g {
	case GestureLeft:
		return "left"
	case GestureRight:
		return "right"
	case GestureRotate:
		return "rotate"
	case GestureSoftDropPress:
		return "soft_drop_press"
	case GestureSoftDropRelease:
		return "soft_drop_release"
	case GestureSwipeLeft:
		return "swipe_left"
	case GestureSwipeRight:
		return "swipe_right"
	case GestureSwipeDown:
		return "swipe_down"
	default:
		return "none"
	}
}

// GestureForAction maps a platform action to the gesture it stands for.
// Soft drop is reported as a press; releases are synthesized by the caller.
func GestureForAction(a core.Action) Gesture {
	switch a {
	case core.ActionLeft:
		return GestureLeft
	case core.ActionRight:
		return GestureRight
	case core.ActionRotate:
		return GestureRotate
	case core.ActionSoftDrop:
		return GestureSoftDropPress
	case core.ActionStepDown:
		return GestureSwipeDown
	default:
		return GestureNone
	}
}

// Dispatcher turns gestures into engine commands. Every gesture is a no-op
// unless the session is running.
type Dispatcher struct {
	engine *Engine
}

// NewDispatcher creates a dispatcher driving e.
func NewDispatcher(e *Engine) *Dispatcher {
	return &Dispatcher{engine: e}
}

// Dispatch applies g and reports whether the engine accepted it.
func (d *Dispatcher) Dispatch(g Gesture) bool {
	switch g {
	case GestureLeft, GestureSwipeLeft:
		return d.engine.MoveLeft()
	case GestureRight, GestureSwipeRight:
		return d.engine.MoveRight()
	case GestureRotate:
		return d.engine.Rotate()
	case GestureSoftDropPress:
		return d.engine.SetFastDrop(true)
	case GestureSoftDropRelease:
		return d.engine.SetFastDrop(false)
	case GestureSwipeDown:
		return d.engine.Drop()
	default:
		return false
	}
}

// TapAt rotates the active piece only when the tapped board cell is one of
// its occupied cells. Taps on empty space or settled blocks are ignored.
func (d *Dispatcher) TapAt(row, col int) bool {
	p, ok := d.engine.Active()
	if !ok || !p.Occupies(row, col) {
		return false
	}
	return d.engine.Rotate()
}
