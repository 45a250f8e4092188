package invaders

import "time"

// resolvePlayerShots tests every player bullet against the living enemies.
// A bullet kills at most one enemy, the first overlap in enemy order, and
// is consumed by it.
func resolvePlayerShots(s *MatchState) []EnemyDestroyed {
	var events []EnemyDestroyed

	kept := s.PlayerBullets[:0]
	for _, b := range s.PlayerBullets {
		hit := -1
		br := b.Rect()
		for j := range s.Enemies {
			if s.Enemies[j].Alive && br.Intersects(s.Enemies[j].Rect()) {
				hit = j
				break
			}
		}
		if hit < 0 {
			kept = append(kept, b)
			continue
		}

		e := &s.Enemies[hit]
		e.Alive = false
		s.Kills++
		s.Score += e.Points()
		events = append(events, EnemyDestroyed{
			X:      e.X + EnemyWidth/2,
			Y:      e.Y + EnemyHeight/2,
			Row:    e.Row,
			Points: e.Points(),
			Score:  s.Score,
		})
	}
	s.PlayerBullets = kept
	return events
}

// resolveEnemyShots applies at most one enemy bullet hit to the player.
//
// With lives left the player respawns. When invulnerability is configured
// the respawned ship is flagged and ignores bullets until the window ends;
// with a zero window every hit counts.
func resolveEnemyShots(s *MatchState, now time.Time, invulnerability time.Duration) (PlayerHit, bool) {
	if s.Player.InvulnerableUntil > now.UnixMilli() {
		return PlayerHit{}, false
	}

	pr := s.Player.Rect()
	for i, b := range s.EnemyBullets {
		if !b.Rect().Intersects(pr) {
			continue
		}

		s.EnemyBullets = append(s.EnemyBullets[:i], s.EnemyBullets[i+1:]...)
		s.Lives = max(s.Lives-1, 0)
		cx, cy := s.Player.Center()
		ev := PlayerHit{X: cx, Y: cy, LivesLeft: s.Lives}

		if s.Lives > 0 {
			s.Player.respawn(s.Field)
			if invulnerability > 0 {
				s.Player.Hit = true
				s.Player.InvulnerableUntil = now.Add(invulnerability).UnixMilli()
			}
		}
		return ev, true
	}
	return PlayerHit{}, false
}
