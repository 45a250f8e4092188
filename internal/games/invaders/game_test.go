package invaders

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

func newTestGame(t *testing.T) (*Game, *ManualClock) {
	t.Helper()
	clock := NewManualClock(testEpoch())
	g := New()
	g.SetClock(clock)
	g.SetMatchConfig(config.MatchConfig{DurationSecs: 90})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	if err := g.StartError(); err != nil {
		t.Fatalf("StartError() = %v", err)
	}
	return g, clock
}

func TestGameRegistered(t *testing.T) {
	g, err := registry.Create("invaders")
	if err != nil {
		t.Fatalf("registry.Create() error = %v", err)
	}
	if g.Title() != "Space Invaders" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameReset(t *testing.T) {
	g, clock := newTestGame(t)

	for range 30 {
		clock.Advance(frame)
		g.Step(core.NewInputFrame())
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	st := g.State()
	if st.Score != 0 || st.Lives != 3 || st.GameOver || st.Paused {
		t.Errorf("Reset state = %+v", st)
	}
	if g.Snapshot().TimeRemaining != 90 {
		t.Errorf("time remaining = %d, expected 90", g.Snapshot().TimeRemaining)
	}
}

func TestGamePauseFreezesClock(t *testing.T) {
	g, clock := newTestGame(t)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	clock.Advance(time.Minute)
	g.Step(core.NewInputFrame())
	if got := g.Snapshot().TimeRemaining; got != 90 {
		t.Errorf("time ran while paused: %d", got)
	}

	g.Step(pause)
	clock.Advance(2 * time.Second)
	g.Step(core.NewInputFrame())
	if got := g.Snapshot().TimeRemaining; got != 88 {
		t.Errorf("time remaining = %d, expected 88", got)
	}
}

func TestGameReportsResult(t *testing.T) {
	g, clock := newTestGame(t)
	var got []MatchResult
	g.SetResultSink(RecordFunc(func(r MatchResult) error {
		got = append(got, r)
		return nil
	}))
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})

	clock.Advance(91 * time.Second)
	st := g.Step(core.NewInputFrame()).State

	if !st.GameOver || st.Victory {
		t.Fatalf("state = %+v, expected a lost game", st)
	}
	if !strings.HasPrefix(st.Message, "Time's up!") {
		t.Errorf("message = %q", st.Message)
	}
	if len(got) != 1 || got[0].Outcome != OutcomeTime {
		t.Errorf("results = %+v", got)
	}
	if r, ok := g.LastResult(); !ok || r.ID != got[0].ID {
		t.Error("LastResult() should match the recorded result")
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "R: replay") {
		t.Error("game over overlay missing")
	}
}
