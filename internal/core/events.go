package core

// Listener receives session notifications from a running game.
// Implementations are called synchronously from the game loop and must not block.
type Listener interface {
	// OnScoreChanged is called every time the score increases.
	OnScoreChanged(score int)

	// OnGameOver is called exactly once per session when it ends.
	OnGameOver(reason string, finalScore int)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	ScoreChanged func(score int)
	GameOver     func(reason string, finalScore int)
}

// OnScoreChanged implements Listener.
func (f ListenerFuncs) OnScoreChanged(score int) {
	if f.ScoreChanged != nil {
		f.ScoreChanged(score)
	}
}

// OnGameOver implements Listener.
func (f ListenerFuncs) OnGameOver(reason string, finalScore int) {
	if f.GameOver != nil {
		f.GameOver(reason, finalScore)
	}
}

// Listeners fans a notification out to several listeners in order.
type Listeners []Listener

// OnScoreChanged implements Listener.
func (ls Listeners) OnScoreChanged(score int) {
	for _, l := range ls {
		if l != nil {
			l.OnScoreChanged(score)
		}
	}
}

// OnGameOver implements Listener.
func (ls Listeners) OnGameOver(reason string, finalScore int) {
	for _, l := range ls {
		if l != nil {
			l.OnGameOver(reason, finalScore)
		}
	}
}

// NopListener discards all notifications.
type NopListener struct{}

// OnScoreChanged implements Listener.
func (NopListener) OnScoreChanged(int) {}

// OnGameOver implements Listener.
func (NopListener) OnGameOver(string, int) {}
