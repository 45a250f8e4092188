package invaders

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Input is what the driver samples once per tick.
// core.InputFrame satisfies it.
type Input interface {
	IsHeld(a core.Action) bool
	FireRequested() bool
}

// EventKind identifies a notification.
type EventKind int

const (
	KindEnemyDestroyed EventKind = iota
	KindPlayerHit
	KindSpeedIncreased
	KindMatchEnded
	KindPlayerFired
	KindEnemyFired
)

func (k EventKind) String() string {
	switch k {
	case KindEnemyDestroyed:
		return "enemy-destroyed"
	case KindPlayerHit:
		return "player-hit"
	case KindSpeedIncreased:
		return "speed-increased"
	case KindMatchEnded:
		return "match-ended"
	case KindPlayerFired:
		return "player-fired"
	case KindEnemyFired:
		return "enemy-fired"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a notification emitted by the driver. The set is closed.
type Event interface {
	Kind() EventKind
	event()
}

// EnemyDestroyed is emitted when a player bullet kills an enemy.
// X and Y are the enemy center.
type EnemyDestroyed struct {
	X, Y   float64
	Row    int
	Points int
	Score  int
}

// PlayerHit is emitted when an enemy bullet hits the player.
// X and Y are the player center at the moment of impact.
type PlayerHit struct {
	X, Y      float64
	LivesLeft int
}

// SpeedIncreased is emitted on every difficulty escalation.
type SpeedIncreased struct {
	Level int // escalations so far, 1-based
	Speed float64
}

// MatchEnded is emitted once, when the match reaches a terminal condition.
type MatchEnded struct {
	Result MatchResult
}

// PlayerFired is emitted when the player launches a bullet.
type PlayerFired struct {
	X, Y float64
}

// EnemyFired is emitted when an enemy launches a bullet.
type EnemyFired struct {
	X, Y float64
}

func (EnemyDestroyed) Kind() EventKind { return KindEnemyDestroyed }
func (PlayerHit) Kind() EventKind      { return KindPlayerHit }
func (SpeedIncreased) Kind() EventKind { return KindSpeedIncreased }
func (MatchEnded) Kind() EventKind     { return KindMatchEnded }
func (PlayerFired) Kind() EventKind    { return KindPlayerFired }
func (EnemyFired) Kind() EventKind     { return KindEnemyFired }

func (EnemyDestroyed) event() {}
func (PlayerHit) event()      {}
func (SpeedIncreased) event() {}
func (MatchEnded) event()     {}
func (PlayerFired) event()    {}
func (EnemyFired) event()     {}

// Outcome is the reason a match ended.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeTime    Outcome = "time"
	OutcomeInvaded Outcome = "invaded"
	OutcomeLives   Outcome = "lives"
	OutcomeWin     Outcome = "win"
)

// MatchResult is the record of a completed match.
type MatchResult struct {
	ID             string
	Score          int
	ElapsedSecs    int
	EnemiesKilled  int
	CompletedAt    time.Time
	Victory        bool
	Outcome        Outcome
	DurationSecs   int
	RemainingLives int
}

func newMatchResult(score, elapsed, kills, duration, lives int, outcome Outcome, victory bool, at time.Time) MatchResult {
	return MatchResult{
		ID:             uuid.NewString(),
		Score:          score,
		ElapsedSecs:    elapsed,
		EnemiesKilled:  kills,
		CompletedAt:    at.UTC(),
		Victory:        victory,
		Outcome:        outcome,
		DurationSecs:   duration,
		RemainingLives: lives,
	}
}

// Message returns the line shown to the player when the match ends.
func (r MatchResult) Message() string {
	switch r.Outcome {
	case OutcomeLives:
		return "Game Over! You Lost!"
	case OutcomeTime:
		if r.Victory {
			return fmt.Sprintf("Time's up! Winner! Score: %d", r.Score)
		}
		return fmt.Sprintf("Time's up! You can do better. Score: %d", r.Score)
	case OutcomeWin:
		return "Champion! You destroyed all spaceships!"
	case OutcomeInvaded:
		return "You can do better!"
	default:
		return ""
	}
}

// RenderSink receives one snapshot per tick. It must not keep references
// into the snapshot beyond the call unless it copies them.
type RenderSink interface {
	Render(s Snapshot) error
}

// NotificationSink receives gameplay events.
type NotificationSink interface {
	Notify(e Event) error
}

// ResultSink receives exactly one MatchResult per completed match.
type ResultSink interface {
	Record(r MatchResult) error
}

// RenderFunc adapts a function to RenderSink.
type RenderFunc func(Snapshot) error

func (f RenderFunc) Render(s Snapshot) error { return f(s) }

// NotifyFunc adapts a function to NotificationSink.
type NotifyFunc func(Event) error

func (f NotifyFunc) Notify(e Event) error { return f(e) }

// RecordFunc adapts a function to ResultSink.
type RecordFunc func(MatchResult) error

func (f RecordFunc) Record(r MatchResult) error { return f(r) }

// Notifiers fans one event out to several sinks. Every sink is called even
// when an earlier one fails.
type Notifiers []NotificationSink

// Notify delivers e to each sink and joins their errors.
func (n Notifiers) Notify(e Event) error {
	var errs []error
	for _, s := range n {
		if s == nil {
			continue
		}
		if err := s.Notify(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
