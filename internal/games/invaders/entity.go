// Package invaders implements a fixed-formation arcade shooter: a 5x4 enemy
// wave sweeps and descends while the player dodges fire from the bottom of
// the field. The simulation runs in continuous field units and knows nothing
// about terminals; rendering scales a Snapshot into screen cells.
package invaders

import (
	"math"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Entity dimensions and layout, in field units.
const (
	PlayerWidth  = 50
	PlayerHeight = 50
	EnemyWidth   = 40
	EnemyHeight  = 40
	BulletWidth  = 4
	BulletHeight = 15

	FormationRows = 4
	FormationCols = 5
	EnemyCount    = FormationRows * FormationCols

	colSpacing   = 60
	rowSpacing   = 50
	topMargin    = 50
	spawnFromBot = 60 // player spawn y is field height minus this
)

// rowPoints is the score for destroying an enemy, indexed by row.
var rowPoints = [FormationRows]int{20, 15, 10, 5}

// PointsForRow returns the score value of an enemy in the given row.
func PointsForRow(row int) int {
	if row < 0 || row >= FormationRows {
		return 0
	}
	return rowPoints[row]
}

// Field is the play field size in field units.
type Field struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are positive.
func (f Field) Valid() bool {
	return f.Width > 0 && f.Height > 0
}

// PlayerMinY is the highest the player may fly: the top of the bottom 40%.
func (f Field) PlayerMinY() float64 {
	return f.Height - f.Height*0.4
}

// PlayerMaxY is the lowest player position.
func (f Field) PlayerMaxY() float64 {
	return f.Height - PlayerHeight
}

// Player is the ship controlled by the user.
type Player struct {
	X, Y              float64
	Speed             float64
	Hit               bool
	InvulnerableUntil int64 // unix millis, 0 when not invulnerable
	Held              map[core.Action]bool
}

// Rect returns the player hitbox.
func (p Player) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: PlayerWidth, H: PlayerHeight}
}

// Center returns the middle of the ship.
func (p Player) Center() (float64, float64) {
	return p.X + PlayerWidth/2, p.Y + PlayerHeight/2
}

func spawnPlayer(f Field, speed float64) Player {
	return Player{
		X:     f.Width/2 - PlayerWidth/2,
		Y:     f.Height - spawnFromBot,
		Speed: speed,
		Held:  make(map[core.Action]bool),
	}
}

// respawn puts the player back at the spawn point and clears hit state.
func (p *Player) respawn(f Field) {
	p.X = f.Width/2 - PlayerWidth/2
	p.Y = f.Height - spawnFromBot
	p.Hit = false
	p.InvulnerableUntil = 0
}

// Move applies held directions for one tick, clamped to the player zone.
func (p *Player) Move(in Input, f Field) {
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		p.Held[a] = in.IsHeld(a)
	}

	if p.Held[core.ActionLeft] {
		p.X = math.Max(0, p.X-p.Speed)
	}
	if p.Held[core.ActionRight] {
		p.X = math.Min(f.Width-PlayerWidth, p.X+p.Speed)
	}
	if p.Held[core.ActionUp] {
		p.Y = math.Max(f.PlayerMinY(), p.Y-p.Speed)
	}
	if p.Held[core.ActionDown] {
		p.Y = math.Min(f.PlayerMaxY(), p.Y+p.Speed)
	}
}

// clampToZone forces the player back inside the allowed area.
func (p *Player) clampToZone(f Field) {
	p.X = core.ClampF(p.X, 0, f.Width-PlayerWidth)
	p.Y = core.ClampF(p.Y, f.PlayerMinY(), f.PlayerMaxY())
}

// Enemy is one ship of the formation.
type Enemy struct {
	X, Y  float64
	Row   int
	Col   int
	Alive bool
}

// Rect returns the enemy hitbox.
func (e Enemy) Rect() core.RectF {
	return core.RectF{X: e.X, Y: e.Y, W: EnemyWidth, H: EnemyHeight}
}

// Points returns the score for destroying this enemy.
func (e Enemy) Points() int {
	return PointsForRow(e.Row)
}

// newWave lays out the 5x4 grid centered horizontally.
func newWave(f Field) []Enemy {
	enemies := make([]Enemy, 0, EnemyCount)
	left := (f.Width-FormationCols*colSpacing)/2 + colSpacing/2
	for row := 0; row < FormationRows; row++ {
		for col := 0; col < FormationCols; col++ {
			enemies = append(enemies, Enemy{
				X:     float64(col*colSpacing) + left,
				Y:     float64(row*rowSpacing + topMargin),
				Row:   row,
				Col:   col,
				Alive: true,
			})
		}
	}
	return enemies
}

// Bullet is a projectile. VY is positive downwards.
type Bullet struct {
	X, Y   float64
	VX, VY float64
}

// Rect returns the bullet hitbox.
func (b Bullet) Rect() core.RectF {
	return core.RectF{X: b.X, Y: b.Y, W: BulletWidth, H: BulletHeight}
}

func (b *Bullet) advance() {
	b.X += b.VX
	b.Y += b.VY
}
