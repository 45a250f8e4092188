package invaders

// Formation is the shared movement state of the enemy wave.
type Formation struct {
	Direction   float64 // +1 right, -1 left
	Speed       float64 // field units per tick
	Escalations int
}

func newFormation(speed float64) Formation {
	return Formation{Direction: 1, Speed: speed}
}

// AdvanceResult describes what one formation step did.
type AdvanceResult struct {
	Direction float64
	Descended bool
	Moved     bool
	Invaded   bool
}

// Advance runs one formation step over the living enemies.
//
// The edge check runs before any translation: if a living enemy touches the
// edge it is heading for, the direction flips and the whole wave drops by
// half an enemy height. If any enemy's bottom then passes playerMinY the
// wave has invaded and nothing moves sideways. Otherwise every living enemy
// shifts by Direction*Speed.
func Advance(enemies []Enemy, f *Formation, fieldWidth, playerMinY float64) AdvanceResult {
	res := AdvanceResult{Direction: f.Direction}

	if hitsEdge(enemies, f.Direction, fieldWidth) {
		f.Direction = -f.Direction
		res.Direction = f.Direction
		res.Descended = true

		for i := range enemies {
			if enemies[i].Alive {
				enemies[i].Y += EnemyHeight / 2
			}
		}
		for _, e := range enemies {
			if e.Alive && e.Y+EnemyHeight > playerMinY {
				res.Invaded = true
				return res
			}
		}
	}

	for i := range enemies {
		if !enemies[i].Alive {
			continue
		}
		enemies[i].X += f.Direction * f.Speed
		res.Moved = true
	}
	return res
}

func hitsEdge(enemies []Enemy, dir, fieldWidth float64) bool {
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		if (dir > 0 && e.X+EnemyWidth >= fieldWidth) || (dir < 0 && e.X <= 0) {
			return true
		}
	}
	return false
}

func aliveCount(enemies []Enemy) int {
	n := 0
	for _, e := range enemies {
		if e.Alive {
			n++
		}
	}
	return n
}
