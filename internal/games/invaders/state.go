package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// MatchState owns every entity of one match. A new one is built for each
// match; nothing carries over between matches.
type MatchState struct {
	Field         Field
	Match         config.MatchConfig
	Player        Player
	Enemies       []Enemy
	Formation     Formation
	PlayerBullets []Bullet
	EnemyBullets  []Bullet

	Score int
	Lives int
	Kills int
	Tick  uint64

	Clock   MatchClock
	Invaded bool
	Outcome Outcome

	timers     timerSet
	escalation *timer
	cooldown   Cooldown
}

func newMatchState(m config.MatchConfig, f Field, s config.InvadersConfig, now time.Time) *MatchState {
	st := &MatchState{
		Field:     f,
		Match:     m,
		Player:    spawnPlayer(f, s.Player.Speed),
		Enemies:   newWave(f),
		Formation: newFormation(s.Formation.InitialSpeed),
		Lives:     s.Player.Lives,
		Clock:     NewMatchClock(m.DurationSecs, now),
		cooldown:  Cooldown{period: time.Duration(s.Player.FireCooldownMs) * time.Millisecond},
	}
	if s.Difficulty.Enabled {
		st.escalation = st.timers.every(now, time.Duration(s.Difficulty.IntervalMs)*time.Millisecond)
	}
	return st
}

// evaluateOutcome checks the terminal conditions in priority order:
// time, invasion, lives, cleared wave.
func evaluateOutcome(s *MatchState, victoryScore int) (Outcome, bool, bool) {
	switch {
	case s.Clock.Expired():
		return OutcomeTime, s.Score >= victoryScore, true
	case s.Invaded:
		return OutcomeInvaded, false, true
	case s.Lives <= 0:
		return OutcomeLives, false, true
	case aliveCount(s.Enemies) == 0:
		return OutcomeWin, true, true
	default:
		return OutcomeNone, false, false
	}
}
