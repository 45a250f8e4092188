package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// maxHistory caps the rows loaded into history tables.
const maxHistory = 100

// outcomeLabel is the short result shown in history tables.
func outcomeLabel(r storage.MatchRecord) string {
	switch invaders.Outcome(r.Outcome) {
	case invaders.OutcomeWin:
		return "cleared"
	case invaders.OutcomeInvaded:
		return "invaded"
	case invaders.OutcomeLives:
		return "shot down"
	case invaders.OutcomeTime:
		if r.Victory {
			return "won on time"
		}
		return "time up"
	default:
		return r.Outcome
	}
}

// historyColumns returns the columns of a match history table.
func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Kills", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Result", Width: 12},
		{Title: "When", Width: 16},
	}
}

// historyRows turns stored matches, already ranked by the store, into table
// rows. It also returns the row of currentID, or -1.
func historyRows(records []storage.MatchRecord, currentID string, now time.Time) ([]table.Row, int) {
	rows := make([]table.Row, len(records))
	current := -1
	for i, r := range records {
		rank := "#" + strconv.Itoa(i+1)
		if r.MatchID == currentID && currentID != "" {
			current = i
			rank = "▶" + strconv.Itoa(i+1)
		}
		rows[i] = table.Row{
			rank,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.EnemiesKilled),
			invaders.FormatClock(r.ElapsedSecs),
			outcomeLabel(r),
			humanize.RelTime(r.CompletedAt, now, "ago", "from now"),
		}
	}
	return rows, current
}

// newTable creates a styled table for the given columns.
func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}
