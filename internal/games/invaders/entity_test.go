package invaders

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

func TestNewWaveLayout(t *testing.T) {
	enemies := newWave(testField)

	if len(enemies) != EnemyCount {
		t.Fatalf("wave has %d enemies, expected %d", len(enemies), EnemyCount)
	}

	tests := []struct {
		idx      int
		row, col int
		x, y     float64
	}{
		{0, 0, 0, 280, 50},
		{4, 0, 4, 520, 50},
		{7, 1, 2, 400, 100},
		{19, 3, 4, 520, 200},
	}
	for _, tc := range tests {
		e := enemies[tc.idx]
		if e.Row != tc.row || e.Col != tc.col || e.X != tc.x || e.Y != tc.y || !e.Alive {
			t.Errorf("enemy %d = %+v, expected row %d col %d at (%v, %v)", tc.idx, e, tc.row, tc.col, tc.x, tc.y)
		}
	}
}

func TestPointsForRow(t *testing.T) {
	tests := []struct {
		row, points int
	}{
		{0, 20},
		{1, 15},
		{2, 10},
		{3, 5},
		{4, 0},
		{-1, 0},
	}
	for _, tc := range tests {
		if got := PointsForRow(tc.row); got != tc.points {
			t.Errorf("PointsForRow(%d) = %d, expected %d", tc.row, got, tc.points)
		}
	}
}

func TestFieldBounds(t *testing.T) {
	if got := testField.PlayerMinY(); got != 360 {
		t.Errorf("PlayerMinY() = %v, expected 360", got)
	}
	if got := testField.PlayerMaxY(); got != 550 {
		t.Errorf("PlayerMaxY() = %v, expected 550", got)
	}
	if (Field{Width: 0, Height: 600}).Valid() {
		t.Error("zero-width field should be invalid")
	}
}

func TestPlayerSpawn(t *testing.T) {
	p := spawnPlayer(testField, 5)
	if p.X != 375 || p.Y != 540 {
		t.Errorf("spawn = (%v, %v), expected (375, 540)", p.X, p.Y)
	}
}

func TestPlayerMoveClamped(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		startY float64
		hold   core.Action
		wantX  float64
		wantY  float64
	}{
		{"left", 100, 400, core.ActionLeft, 95, 400},
		{"left wall", 2, 400, core.ActionLeft, 0, 400},
		{"right wall", 748, 400, core.ActionRight, 750, 400},
		{"up to zone top", 362, 362, core.ActionUp, 362, 360},
		{"down to floor", 100, 548, core.ActionDown, 100, 550},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := spawnPlayer(testField, 5)
			p.X, p.Y = tc.startX, tc.startY

			in := core.NewInputFrame()
			in.Hold(tc.hold)
			p.Move(in, testField)

			if p.X != tc.wantX || p.Y != tc.wantY {
				t.Errorf("position = (%v, %v), expected (%v, %v)", p.X, p.Y, tc.wantX, tc.wantY)
			}
			if !p.Held[tc.hold] {
				t.Errorf("Held[%v] should be recorded", tc.hold)
			}
		})
	}
}
