package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// styleKey identifies a cell's foreground. Hex wins over Color.
type styleKey struct {
	color core.Color
	hex   string
}

func keyOf(c core.Cell) styleKey {
	if c.Hex != "" {
		return styleKey{hex: c.Hex}
	}
	return styleKey{color: c.Color}
}

// styleCache builds lipgloss styles lazily; true-color cells make the set
// of styles open-ended.
type styleCache map[styleKey]lipgloss.Style

func (sc styleCache) get(k styleKey) lipgloss.Style {
	if st, ok := sc[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	switch {
	case k.hex != "":
		st = st.Foreground(lipgloss.Color(k.hex))
	case k.color.ANSI() != "":
		st = st.Foreground(lipgloss.Color(k.color.ANSI()))
	}
	sc[k] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := styleCache{}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := keyOf(s.GetCell(x, y))

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if keyOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == (styleKey{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start).Render(run.String()))
		}
	}
	return sb.String()
}
