package invaders

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset, _ = config.ParsePreset(preset)
}

// LoadSettings loads the configuration the way Reset does.
func LoadSettings() (config.InvadersConfig, error) {
	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		return config.DefaultInvadersConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyInvadersPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game adapts a Driver to the platform's game interface: the platform
// steps it once per tick and asks it to draw into a screen.
type Game struct {
	runtime  core.RuntimeConfig
	settings config.InvadersConfig
	match    config.MatchConfig

	base    Clock
	clock   *PausableClock
	driver  *Driver
	effects *EffectLayer
	last    Snapshot

	results ResultSink
	sounds  NotificationSink
	logger  *log.Logger

	startErr error
}

// New creates a new Space Invaders game instance.
func New() *Game {
	return &Game{base: SystemClock()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "invaders"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Invaders"
}

// SetMatchConfig sets the settings used by the next Reset. Without a call
// the configured match section is used.
func (g *Game) SetMatchConfig(m config.MatchConfig) {
	g.match = m
}

// SetResultSink attaches the sink that receives finished matches.
func (g *Game) SetResultSink(r ResultSink) {
	g.results = r
}

// SetSoundSink attaches a notification sink next to the effect layer.
func (g *Game) SetSoundSink(n NotificationSink) {
	g.sounds = n
}

// SetLogger sets the logger handed to the driver.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// SetClock replaces the wall clock. Used by tests.
func (g *Game) SetClock(c Clock) {
	g.base = c
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	settings, err := LoadSettings()
	if err != nil && g.logger != nil {
		g.logger.Warn("using default config", "err", err)
	}
	g.settings = settings

	match := g.match
	if match == (config.MatchConfig{}) {
		match = settings.Match
	}

	if g.driver != nil {
		g.driver.Stop()
	}
	g.clock = NewPausableClock(g.base)
	g.effects = NewEffectLayer(g.clock)
	g.driver = NewDriver(DriverOptions{
		Clock:    g.clock,
		Seed:     runtime.Seed,
		Logger:   g.logger,
		Settings: &g.settings,
		Render: RenderFunc(func(s Snapshot) error {
			g.last = s
			return nil
		}),
		Notify:  Notifiers{g.effects, g.sounds},
		Results: g.results,
	})

	field := Field{Width: settings.Field.Width, Height: settings.Field.Height}
	g.startErr = g.driver.Start(match, field)
	g.last = g.driver.Snapshot()
}

// Step advances the simulation by one tick. Pause toggles freeze the match
// clock so timers and the countdown do not run while paused.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.driver == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.driver.State() == StateRunning {
		if g.clock.Paused() {
			g.clock.Resume()
		} else {
			g.clock.Pause()
		}
	}

	if !g.clock.Paused() {
		g.driver.Tick(in)
	}
	return core.StepResult{State: g.State()}
}

// Stop abandons the running match without recording it.
func (g *Game) Stop() {
	if g.driver != nil {
		g.driver.Stop()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.driver == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:    g.last.Score,
		Lives:    g.last.Lives,
		GameOver: g.driver.State() == StateEnded,
		Paused:   g.clock.Paused(),
	}
	if r, ok := g.driver.Result(); ok && st.GameOver {
		st.Victory = r.Victory
		st.Message = r.Message()
	}
	return st
}

// Snapshot returns the latest rendered snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.last
}

// LastResult returns the result of the match that just ended.
func (g *Game) LastResult() (MatchResult, bool) {
	if g.driver == nil {
		return MatchResult{}, false
	}
	return g.driver.Result()
}

// StartError returns the error from the last Reset, if the match could not
// start.
func (g *Game) StartError() error {
	return g.startErr
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if g.startErr != nil {
		dst.Clear()
		dst.DrawTextCenteredColored(dst.Height()/2, g.startErr.Error(), core.ColorRed)
		return
	}
	if g.driver == nil {
		dst.Clear()
		return
	}

	now := g.clock.Now()
	Draw(dst, g.last, g.effects.Active(now), now)

	switch st := g.State(); {
	case st.GameOver:
		g.renderOverlay(dst, st.Message, "R: replay  Q: quit")
	case st.Paused:
		g.renderOverlay(dst, "PAUSED", "P: resume")
	}
}

func (g *Game) renderOverlay(dst *core.Screen, title, hint string) {
	w := max(len([]rune(title)), len([]rune(hint))) + 4
	h := 5
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCenteredColored(box.Y+1, title, core.ColorYellow)
	dst.DrawTextCenteredColored(box.Y+3, hint, core.ColorGray)
}

// Register the game with the registry
func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}
