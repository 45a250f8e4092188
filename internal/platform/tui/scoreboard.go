package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// Scoreboard tabs.
const (
	tabTop = iota
	tabMine
	tabCount
)

var tabTitles = [tabCount]string{"Top scores", "My games"}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the global leaderboard and the player's own history.
type ScoreboardModel struct {
	store     *storage.Store
	gameID    string
	username  string
	tab       int
	scores    []storage.ScoreEntry
	records   []storage.MatchRecord
	stats     storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool

	// standalone models end the program themselves.
	standalone bool
}

// NewScoreboardModel creates a new scoreboard model. An empty username
// hides the personal tab.
func NewScoreboardModel(store *storage.Store, gameID, username string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:    store,
		gameID:   gameID,
		username: username,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.load()
	return m
}

func (m ScoreboardModel) tabs() int {
	if m.username == "" {
		return 1
	}
	return tabCount
}

// load reads the current tab's rows from the store.
func (m *ScoreboardModel) load() {
	m.scores, m.records = nil, nil
	if m.store != nil {
		// Errors leave the tab empty.
		m.stats, _ = m.store.Stats(m.gameID)
		if m.tab == tabTop {
			m.scores, _ = m.store.TopScores(m.gameID, maxHistory)
		} else {
			m.records, _ = m.store.History(m.username, maxHistory)
		}
	}
	m.rebuild()
}

// rebuild recreates the table for the current tab and size.
func (m *ScoreboardModel) rebuild() {
	height := m.height - 10 // Leave room for header, help, and margins
	now := time.Now()

	if m.tab == tabMine {
		m.table = newTable(historyColumns(), height)
		rows, _ := historyRows(m.records, "", now)
		m.table.SetRows(rows)
		return
	}

	m.table = newTable([]table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "When", Width: 20},
	}, height)
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Score),
			humanize.RelTime(s.CreatedAt, now, "ago", "from now"),
		}
	}
	m.table.SetRows(rows)
}

func (m ScoreboardModel) exit() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, m.exit()

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, m.exit()

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % m.tabs()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + m.tabs() - 1) % m.tabs()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuild()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, m.tabs())
	for i := range tabs {
		if i == m.tab {
			tabs[i] = focusedStyle.Padding(0, 1).Render(tabTitles[i])
		} else {
			tabs[i] = mutedStyle.Render(" " + tabTitles[i] + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.stats.GamesCount > 0 {
		line := fmt.Sprintf("%s games  •  best %d  •  average %.0f  •  last played %s",
			humanize.Comma(int64(m.stats.GamesCount)), m.stats.HighScore, m.stats.AvgScore,
			humanize.Time(m.stats.LastPlayed))
		b.WriteString(centerText(mutedStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 && len(m.records) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(store *storage.Store, gameID, username string, width, height int) error {
	model := NewScoreboardModel(store, gameID, username, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
