package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// GameOverKeyMap defines the key bindings for the game-over dialog.
type GameOverKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Replay   key.Binding
	Settings key.Binding
	Menu     key.Binding
	Logout   key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameOverKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Replay, k.Settings, k.Menu, k.Logout, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameOverKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Replay, k.Settings, k.Menu},
		{k.Logout, k.Quit},
	}
}

// DefaultGameOverKeyMap returns default key bindings.
func DefaultGameOverKeyMap() GameOverKeyMap {
	return GameOverKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter/r", "play again"),
		),
		Settings: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "settings"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc", "m"),
			key.WithHelp("esc/m", "menu"),
		),
		Logout: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log out"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// GameOverModel shows the end-of-match message and the player's ranked
// history with the match that just ended highlighted.
type GameOverModel struct {
	result   invaders.MatchResult
	username string
	records  []storage.MatchRecord
	best     int
	loadErr  error
	table    table.Model
	help     help.Model
	keys     GameOverKeyMap
	width    int
	height   int
	choice   MenuChoice
}

// NewGameOverModel loads the player's history and the game's best score
// from store and builds the dialog. A nil store shows only the result.
func NewGameOverModel(store *storage.Store, gameID, username string, result invaders.MatchResult, width, height int) GameOverModel {
	m := GameOverModel{
		result:   result,
		username: username,
		help:     help.New(),
		keys:     DefaultGameOverKeyMap(),
		width:    width,
		height:   height,
	}
	if store != nil {
		m.records, m.loadErr = store.History(username, maxHistory)
		if best, err := store.HighScore(gameID); err == nil {
			m.best = best
		}
	}
	m.table = newTable(historyColumns(), m.tableHeight())
	m.refresh(time.Now())
	return m
}

func (m GameOverModel) tableHeight() int {
	return min(len(m.records)+1, max(m.height-14, 3))
}

func (m *GameOverModel) refresh(now time.Time) {
	rows, current := historyRows(m.records, m.result.ID, now)
	m.table.SetRows(rows)
	if current >= 0 {
		m.table.SetCursor(current)
	}
}

// Init initializes the dialog.
func (m GameOverModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dialog.
func (m GameOverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.choice = ChoiceQuit
			return m, nil
		case key.Matches(msg, m.keys.Replay):
			m.choice = ChoicePlay
			return m, nil
		case key.Matches(msg, m.keys.Settings):
			m.choice = ChoiceSettings
			return m, nil
		case key.Matches(msg, m.keys.Menu):
			m.choice = ChoiceMenu
			return m, nil
		case key.Matches(msg, m.keys.Logout):
			m.choice = ChoiceLogout
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(m.tableHeight())
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the dialog.
func (m GameOverModel) View() string {
	var b strings.Builder

	title := titleStyle
	if !m.result.Victory {
		title = errorStyle.Bold(true)
	}
	b.WriteString(title.Render(m.result.Message()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score %d  •  Kills %d  •  Time %s  •  Best %d\n",
		m.result.Score, m.result.EnemiesKilled, invaders.FormatClock(m.result.ElapsedSecs), m.best)
	if m.NewHighScore() {
		b.WriteString(noticeStyle.Render("New high score!"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("History unavailable: " + m.loadErr.Error()))
	case len(m.records) == 0:
		b.WriteString(mutedStyle.Italic(true).Render("No history yet."))
	default:
		b.WriteString(mutedStyle.Render(m.username + "'s games, best first"))
		b.WriteString("\n")
		b.WriteString(m.table.View())
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return place(m.width, m.height, panelStyle.Render(b.String()))
}

// Choice returns what the player picked, or ChoiceNone.
func (m GameOverModel) Choice() MenuChoice {
	return m.choice
}

// Best returns the game's best recorded score.
func (m GameOverModel) Best() int {
	return m.best
}

// NewHighScore reports whether the match just played set the best score.
func (m GameOverModel) NewHighScore() bool {
	return m.best > 0 && m.result.Score >= m.best
}

// Records returns the loaded history.
func (m GameOverModel) Records() []storage.MatchRecord {
	return m.records
}
