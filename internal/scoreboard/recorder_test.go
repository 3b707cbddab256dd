package scoreboard

import (
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type memorySaver struct {
	entries []Entry
	err     error
}

func (m *memorySaver) SaveEntry(e Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func TestRecorderRecordsGameOver(t *testing.T) {
	saver := &memorySaver{}
	clock := core.NewStepClock(1)
	r := NewRecorder("tetris", "NeonFalcon427", WithSaver(saver), WithClock(clock))

	first := r.SessionID()
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	r.OnScoreChanged(100)
	assert.Equal(t, 100, r.Live())
	r.OnGameOver("Game Over!", 100)

	require.Len(t, saver.entries, 1)
	e := saver.entries[0]
	assert.Equal(t, Entry{
		SessionID: first,
		GameID:    "tetris",
		Handle:    "NeonFalcon427",
		Score:     100,
		Reason:    "Game Over!",
		Time:      clock.Now(),
	}, e)

	assert.Zero(t, r.Live())
	assert.NotEqual(t, first, r.SessionID(), "each game gets its own session id")
}

func TestRecorderKeepsTenMostRecent(t *testing.T) {
	r := NewRecorder("tetris", "p")
	for i := range 15 {
		r.OnGameOver("Game Over!", i*100)
	}

	recent := r.Recent()
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, 1400, recent[0].Score, "newest first")
	assert.Equal(t, 500, recent[RecentLimit-1].Score)
}

func TestRecorderTopScorer(t *testing.T) {
	r := NewRecorder("tetris_timed", "a")
	_, ok := r.Top()
	assert.False(t, ok)

	r.OnGameOver("Time Up!", 300)
	r.SetHandle("b")
	r.OnGameOver("Time Up!", 700)
	r.SetHandle("c")
	r.OnGameOver("Game Over!", 700)

	top, ok := r.Top()
	require.True(t, ok)
	assert.Equal(t, "b", top.Handle, "ties keep the earlier scorer")
	assert.Equal(t, 700, top.Score)
}

func TestRecorderLoad(t *testing.T) {
	r := NewRecorder("tetris", "p")
	var seed []Entry
	for i := range 12 {
		seed = append(seed, Entry{Handle: "old", Score: i})
	}
	top := Entry{Handle: "champ", Score: 5000}
	r.Load(seed, &top)

	assert.Len(t, r.Recent(), RecentLimit)
	r.OnGameOver("Game Over!", 200)

	got, _ := r.Top()
	assert.Equal(t, "champ", got.Handle)
	assert.Equal(t, 200, r.Recent()[0].Score)
}

func TestRecorderSaveFailureIsNotFatal(t *testing.T) {
	r := NewRecorder("tetris", "p", WithSaver(&memorySaver{err: errors.New("disk full")}))
	r.OnGameOver("Game Over!", 100)

	assert.Len(t, r.Recent(), 1, "entry is kept in memory even when saving fails")
}

func TestRecentReturnsCopy(t *testing.T) {
	r := NewRecorder("tetris", "p")
	r.OnGameOver("Game Over!", 100)
	got := r.Recent()
	got[0].Score = 9
	assert.Equal(t, 100, r.Recent()[0].Score)
}

func TestRandomHandle(t *testing.T) {
	pattern := regexp.MustCompile(`^(Red|Blue|Green|Black|White|Silver|Golden|Crimson|Shadow|Neon)(Tiger|Wolf|Falcon|Shark|Panther|Eagle|Viper|Rhino|Dragon|Cobra)[1-9][0-9]{2}$`)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for range 200 {
		h := RandomHandle(rng)
		assert.Regexp(t, pattern, h)
	}

	a := RandomHandle(rand.New(rand.NewSource(5)))
	b := RandomHandle(rand.New(rand.NewSource(5)))
	assert.Equal(t, a, b)
}
