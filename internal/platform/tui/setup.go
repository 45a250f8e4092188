package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// Match length bounds in minutes.
const (
	minMinutes = 1
	maxMinutes = 10
)

// Swatch is a named color offered on the setup screen.
type Swatch struct {
	Name string
	Hex  string
}

// Palette lists the selectable ship colors.
var Palette = []Swatch{
	{"Violet", "#6d28d9"},
	{"Red", "#ef4444"},
	{"Orange", "#f97316"},
	{"Yellow", "#eab308"},
	{"Green", "#22c55e"},
	{"Teal", "#14b8a6"},
	{"Blue", "#3b82f6"},
	{"Pink", "#ec4899"},
	{"White", "#f5f5f5"},
}

// NearestSwatch returns the palette index closest to hex in Lab space.
// Unparsable input maps to the first entry.
func NearestSwatch(hex string) int {
	target, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	best, bestDist := 0, -1.0
	for i, sw := range Palette {
		c, err := colorful.Hex(sw.Hex)
		if err != nil {
			continue
		}
		if d := target.DistanceLab(c); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// fireKeys lists the selectable fire keys: Space and A to Z.
var fireKeys = func() []string {
	keys := []string{config.DefaultFireKey}
	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, string(c))
	}
	return keys
}()

type setupRow int

const (
	rowFireKey setupRow = iota
	rowMinutes
	rowPlayerColor
	rowEnemyColor
	rowStart
	rowCount
)

// SetupModel lets the player choose the match settings.
type SetupModel struct {
	match     config.MatchConfig
	row       setupRow
	fire      int
	player    int
	enemy     int
	width     int
	height    int
	keyMapper *KeyMapper

	done bool
	back bool
}

// NewSetupModel creates the setup screen starting from m.
func NewSetupModel(m config.MatchConfig, width, height int) SetupModel {
	m = m.WithDefaults()

	fire := 0
	for i, k := range fireKeys {
		if k == m.FireKey {
			fire = i
		}
	}

	s := SetupModel{
		match:     m,
		fire:      fire,
		player:    NearestSwatch(m.PlayerColor),
		enemy:     NearestSwatch(m.EnemyColor),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(config.DefaultFireKey),
	}
	// Start on the button so Enter plays right away.
	s.row = rowStart
	return s
}

// Init initializes the setup screen.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the setup screen.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.row = (m.row + rowCount - 1) % rowCount
		case MenuActionDown:
			m.row = (m.row + 1) % rowCount
		case MenuActionLeft:
			m.adjust(-1)
		case MenuActionRight:
			m.adjust(1)
		case MenuActionSelect:
			if m.row == rowStart || msg.String() == "enter" {
				m.done = true
			} else {
				m.adjust(1)
			}
		case MenuActionBack, MenuActionQuit:
			m.back = true
		}
	}
	return m, nil
}

func wrap(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

func (m *SetupModel) adjust(delta int) {
	switch m.row {
	case rowFireKey:
		m.fire = wrap(m.fire, delta, len(fireKeys))
		m.match.FireKey = fireKeys[m.fire]
	case rowMinutes:
		mins := min(max(m.minutes()+delta, minMinutes), maxMinutes)
		m.match.DurationSecs = mins * 60
	case rowPlayerColor:
		m.player = wrap(m.player, delta, len(Palette))
		m.match.PlayerColor = Palette[m.player].Hex
	case rowEnemyColor:
		m.enemy = wrap(m.enemy, delta, len(Palette))
		m.match.EnemyColor = Palette[m.enemy].Hex
	}
}

func (m SetupModel) minutes() int {
	return max(m.match.DurationSecs/60, minMinutes)
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("███")
}

// View renders the setup screen.
func (m SetupModel) View() string {
	rows := []struct {
		label, value string
	}{
		{"Fire key", m.match.FireKey},
		{"Match length", fmt.Sprintf("%d min", m.minutes())},
		{"Your ship", swatch(m.match.PlayerColor) + " " + Palette[m.player].Name},
		{"Enemy ships", swatch(m.match.EnemyColor) + " " + Palette[m.enemy].Name},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("MATCH SETTINGS"))
	b.WriteString("\n\n")
	for i, r := range rows {
		label := fmt.Sprintf("%-14s", r.label)
		value := "< " + r.value + " >"
		if setupRow(i) == m.row {
			label = titleStyle.Render(label)
		}
		b.WriteString(label + value + "\n")
	}
	b.WriteString("\n")
	start := "[ Start ]"
	if m.row == rowStart {
		start = focusedStyle.Render(start)
	}
	b.WriteString(start)
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("up/down: field  •  left/right: change  •  enter: start  •  esc: back"))

	return place(m.width, m.height, panelStyle.Render(b.String()))
}

// Match returns the chosen settings.
func (m SetupModel) Match() config.MatchConfig {
	return m.match
}

// Done returns true once the player started the match.
func (m SetupModel) Done() bool {
	return m.done
}

// GoingBack returns true if the player left without starting.
func (m SetupModel) GoingBack() bool {
	return m.back
}
