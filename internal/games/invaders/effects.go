package invaders

import (
	"slices"
	"sync"
	"time"
)

// Visual effect timings.
const (
	HitEffectDuration   = 500 * time.Millisecond
	HitEffectRadius     = 30.0 // field units
	SpeedAlertDuration  = 1500 * time.Millisecond
	speedAlertFadeShare = 0.2
)

// SpeedAlertText is shown when the formation speeds up.
const SpeedAlertText = "SPEED INCREASED!"

// EffectKind identifies a visual effect.
type EffectKind int

const (
	EffectHitBurst EffectKind = iota
	EffectSpeedAlert
)

// Effect is a short-lived visual that lives outside the simulation. It
// expires on its own; nothing in the match waits for it.
type Effect struct {
	Kind     EffectKind
	X, Y     float64 // center in field units, unused for alerts
	Start    time.Time
	Duration time.Duration
	Text     string
}

// Progress returns how far through its lifetime the effect is, in [0, 1].
func (e Effect) Progress(now time.Time) float64 {
	if e.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(e.Start)) / float64(e.Duration)
	return max(0, min(p, 1))
}

// Expired reports whether the effect has run its course.
func (e Effect) Expired(now time.Time) bool {
	return !now.Before(e.Start.Add(e.Duration))
}

// Alpha returns the opacity at now. Hit bursts fade linearly; alerts fade
// in over the first 20% and out over the last 20%.
func (e Effect) Alpha(now time.Time) float64 {
	p := e.Progress(now)
	switch e.Kind {
	case EffectHitBurst:
		return 1 - p
	case EffectSpeedAlert:
		switch {
		case p < speedAlertFadeShare:
			return p / speedAlertFadeShare
		case p > 1-speedAlertFadeShare:
			return (1 - p) / speedAlertFadeShare
		default:
			return 1
		}
	default:
		return 0
	}
}

// Radius returns the burst radius at now: it grows from half to twice the
// base radius.
func (e Effect) Radius(now time.Time) float64 {
	return HitEffectRadius * (0.5 + e.Progress(now)*1.5)
}

// EffectLayer turns gameplay notifications into effects. It is a
// NotificationSink and is drained by the renderer.
type EffectLayer struct {
	mu      sync.Mutex
	clock   Clock
	effects []Effect
}

// NewEffectLayer creates an empty layer timed by clock.
func NewEffectLayer(clock Clock) *EffectLayer {
	if clock == nil {
		clock = SystemClock()
	}
	return &EffectLayer{clock: clock}
}

// Notify implements NotificationSink.
func (l *EffectLayer) Notify(ev Event) error {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	switch e := ev.(type) {
	case PlayerHit:
		l.effects = append(l.effects, Effect{
			Kind:     EffectHitBurst,
			X:        e.X,
			Y:        e.Y,
			Start:    now,
			Duration: HitEffectDuration,
		})
	case SpeedIncreased:
		l.effects = append(l.effects, Effect{
			Kind:     EffectSpeedAlert,
			Start:    now,
			Duration: SpeedAlertDuration,
			Text:     SpeedAlertText,
		})
	case MatchEnded:
		l.effects = nil
	}
	return nil
}

// Active prunes expired effects and returns a copy of the rest.
func (l *EffectLayer) Active(now time.Time) []Effect {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.effects = slices.DeleteFunc(l.effects, func(e Effect) bool {
		return e.Expired(now)
	})
	return slices.Clone(l.effects)
}

// Reset drops every effect.
func (l *EffectLayer) Reset() {
	l.mu.Lock()
	l.effects = nil
	l.mu.Unlock()
}
