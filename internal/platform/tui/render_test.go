package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '!', core.ColorRed)
	s.SetHex(3, 0, '▲', "#6d28d9")
	s.SetHex(4, 0, '▲', "#6d28d9")
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)

	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "ab!▲▲ " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "xyz   " {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestKeyOfPrefersHex(t *testing.T) {
	c := core.Cell{Rune: 'x', Color: core.ColorRed, Hex: "#ffffff"}
	if k := keyOf(c); k.hex != "#ffffff" || k.color != core.ColorDefault {
		t.Errorf("keyOf() = %+v", k)
	}
	if k := keyOf(core.Cell{Rune: 'x', Color: core.ColorRed}); k.color != core.ColorRed {
		t.Errorf("keyOf() = %+v", k)
	}
}
