package invaders

import (
	"maps"
	"math"
	"slices"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Snapshot is a deep copy of the match taken after a tick. Sinks may keep
// it; mutating it never affects the running match.
type Snapshot struct {
	Tick          uint64
	State         DriverState
	Field         Field
	Player        Player
	Enemies       []Enemy
	PlayerBullets []Bullet
	EnemyBullets  []Bullet

	Score         int
	Lives         int
	Kills         int
	TimeRemaining int
	Formation     Formation

	PlayerColor string
	EnemyColor  string

	Outcome Outcome
	Victory bool

	RNGState uint64
}

func takeSnapshot(s *MatchState, state DriverState, victory bool, rngState uint64) Snapshot {
	p := s.Player
	p.Held = maps.Clone(s.Player.Held)
	if p.Held == nil {
		p.Held = make(map[core.Action]bool)
	}

	return Snapshot{
		Tick:          s.Tick,
		State:         state,
		Field:         s.Field,
		Player:        p,
		Enemies:       slices.Clone(s.Enemies),
		PlayerBullets: slices.Clone(s.PlayerBullets),
		EnemyBullets:  slices.Clone(s.EnemyBullets),
		Score:         s.Score,
		Lives:         s.Lives,
		Kills:         s.Kills,
		TimeRemaining: s.Clock.Remaining(),
		Formation:     s.Formation,
		PlayerColor:   s.Match.PlayerColor,
		EnemyColor:    s.Match.EnemyColor,
		Outcome:       s.Outcome,
		Victory:       victory,
		RNGState:      rngState,
	}
}

// AliveEnemies returns the number of living enemies.
func (snap *Snapshot) AliveEnemies() int {
	return aliveCount(snap.Enemies)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.State)                 //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)                 //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)                 //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Kills)                 //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.TimeRemaining)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Formation.Escalations) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Formation.Speed)
	h = h*31 + math.Float64bits(snap.Formation.Direction)
	h = h*31 + math.Float64bits(snap.Player.X)
	h = h*31 + math.Float64bits(snap.Player.Y)

	for _, e := range snap.Enemies {
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
		if e.Alive {
			h = h*31 + 1
		}
	}
	for _, b := range snap.PlayerBullets {
		h = h*31 + math.Float64bits(b.X) + math.Float64bits(b.Y)
	}
	for _, b := range snap.EnemyBullets {
		h = h*31 + math.Float64bits(b.X) + math.Float64bits(b.Y)
	}

	h = h*31 + snap.RNGState
	return h
}
