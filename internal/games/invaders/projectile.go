package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// newPlayerBullet spawns a bullet from the nose of the ship. Holding left
// or right bends the shot; left wins when both are held.
func newPlayerBullet(p Player, in Input, pc config.ProjectileConfig) Bullet {
	dir := 0.0
	switch {
	case in.IsHeld(core.ActionLeft):
		dir = -1
	case in.IsHeld(core.ActionRight):
		dir = 1
	}
	return Bullet{
		X:  p.X + PlayerWidth/2 - BulletWidth/2,
		Y:  p.Y - BulletHeight,
		VX: pc.PlayerDrift * dir,
		VY: -pc.PlayerSpeed,
	}
}

// newEnemyBullet spawns a bullet under the enemy. Its vertical speed grows
// with the escalation count at spawn time.
func newEnemyBullet(e Enemy, escalations int, dir float64, pc config.ProjectileConfig) Bullet {
	return Bullet{
		X:  e.X + EnemyWidth/2 - BulletWidth/2,
		Y:  e.Y + EnemyHeight,
		VX: pc.EnemyDrift * dir,
		VY: pc.EnemyBaseSpeed + pc.EnemySpeedStep*float64(escalations),
	}
}

// enemyFireBlocked reports whether any enemy bullet is still in the upper
// part of the field (at or above gate*height).
func enemyFireBlocked(bullets []Bullet, fieldHeight, gate float64) bool {
	limit := fieldHeight * gate
	for _, b := range bullets {
		if b.Y <= limit {
			return true
		}
	}
	return false
}

// tryEnemyFire rolls the per-tick fire chance and, if allowed, spawns one
// bullet from a random living enemy. The roll happens first so the RNG
// sequence does not depend on the gate.
func tryEnemyFire(s *MatchState, rng *RNG, pc config.ProjectileConfig) (Bullet, bool) {
	if rng.Float64() >= pc.EnemyFireChance {
		return Bullet{}, false
	}
	if enemyFireBlocked(s.EnemyBullets, s.Field.Height, pc.EnemyFireGate) {
		return Bullet{}, false
	}

	alive := make([]int, 0, len(s.Enemies))
	for i, e := range s.Enemies {
		if e.Alive {
			alive = append(alive, i)
		}
	}
	if len(alive) == 0 {
		return Bullet{}, false
	}

	shooter := s.Enemies[alive[rng.Intn(len(alive))]]
	b := newEnemyBullet(shooter, s.Formation.Escalations, rng.Sign(), pc)
	s.EnemyBullets = append(s.EnemyBullets, b)
	return b, true
}

// advancePlayerBullets moves player bullets and drops the ones that left
// the top or the sides of the field.
func advancePlayerBullets(bullets []Bullet, f Field) []Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		b.advance()
		if b.Y+BulletHeight < 0 || b.X < 0 || b.X > f.Width {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// advanceEnemyBullets moves enemy bullets and drops the ones that left the
// bottom or the sides of the field.
func advanceEnemyBullets(bullets []Bullet, f Field) []Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		b.advance()
		if b.Y > f.Height || b.X < 0 || b.X > f.Width {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}
