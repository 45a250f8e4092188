package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

// GameModel runs one match: it feeds key presses to the engine, steps it on
// every tick and draws it.
type GameModel struct {
	game      *invaders.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      *KeyMapper
	held      *HeldKeys
	frame     core.InputFrame
	gameState core.GameState
	quitting  bool
	finished  bool
}

// NewGameModel creates a game model. The match settings must already be
// set on game; Init starts the match.
func NewGameModel(game *invaders.Game, fireKey string, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   NewKeyMapper(fireKey),
		held:   NewHeldKeys(),
		frame:  core.NewInputFrame(),
	}
}

// Init starts the match and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.held.Release()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		// The engine works in field units, so a resize only changes the
		// viewport.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, nil
	}

	switch {
	case action == core.ActionPause, action == core.ActionBack:
		m.frame.Set(core.ActionPause)
		m.held.Release()
	case action == core.ActionFire:
		// Auto-repeat of a held fire key is not a new press.
		if !m.held.Held(core.ActionFire, now) {
			m.frame.Set(core.ActionFire)
		}
		m.held.Press(action, now)
	case Holdable(action):
		m.frame.Set(action)
		m.held.Press(action, now)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.finished || m.quitting {
		return m, nil
	}

	m.held.Apply(&m.frame, now)
	result := m.game.Step(m.frame)
	m.gameState = result.State

	// Clear input for next frame
	m.frame.Clear()

	if m.gameState.GameOver {
		m.finished = true
		m.held.Release()
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".invaders", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Finished reports whether the match has ended.
func (m GameModel) Finished() bool {
	return m.finished
}

// IsQuitting returns true if the player asked to leave mid-match.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// State returns the last stepped game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Config returns the runtime config, updated by resizes.
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}
