package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)

	s.SetColored(1, 0, '*', ColorRed)
	s.SetHex(2, 0, '#', "#6d28d9")

	if c := s.GetCell(1, 0); c.Rune != '*' || c.Color != ColorRed || c.Hex != "" {
		t.Errorf("SetColored cell = %+v", c)
	}
	if c := s.GetCell(2, 0); c.Rune != '#' || c.Hex != "#6d28d9" {
		t.Errorf("SetHex cell = %+v", c)
	}

	s.DrawTextColored(0, 1, "hi", ColorYellow)
	if c := s.GetCell(1, 1); c.Rune != 'i' || c.Color != ColorYellow {
		t.Errorf("DrawTextColored cell = %+v", c)
	}

	s.Clear()
	if c := s.GetCell(1, 0); c != blankCell {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)

	s.DrawText(2, 1, "Hello")
	if got := s.Row(1); got != "  Hello   " {
		t.Errorf("Row(1) = %q", got)
	}

	// Clipped at the right edge
	s.DrawText(8, 0, "abc")
	if got := s.Row(0); got != "        ab" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")
	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawRect(NewRect(1, 1, 3, 2), '#')

	expected := []string{
		"     ",
		" ### ",
		" ### ",
		"     ",
		"     ",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3))

	expected := []string{
		"┌──┐",
		"│  │",
		"└──┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawHLine(1, 0, 3, '-', ColorGray)

	if got := s.Row(0); got != " ---  " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(2, 0).Color != ColorGray {
		t.Error("DrawHLine should color its cells")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cd")

	if got := s.String(); got != "ab \ncd " {
		t.Errorf("String() = %q", got)
	}
	if strings.Count(s.String(), "\n") != 1 {
		t.Error("String() should separate rows with newlines")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, 'X', ColorCyan)

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'X' || c.Color != ColorCyan {
		t.Errorf("Resize lost content: %+v", c)
	}

	s.Resize(1, 1)
	if s.Get(0, 0) != ' ' {
		t.Errorf("Get(0,0) = %q after shrink", s.Get(0, 0))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blanks", got)
	}
}
