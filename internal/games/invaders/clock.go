package invaders

import (
	"sync"
	"time"
)

// Clock is the wall-clock source for the match timer, the difficulty
// interval and the fire cooldown.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// PausableClock wraps a Clock and hides the time spent paused, so every
// deadline measured against it freezes while the game is paused.
type PausableClock struct {
	base     Clock
	pausedAt time.Time
	paused   bool
	offset   time.Duration
}

// NewPausableClock wraps base.
func NewPausableClock(base Clock) *PausableClock {
	return &PausableClock{base: base}
}

// Now returns base time minus the total paused duration.
func (c *PausableClock) Now() time.Time {
	if c.paused {
		return c.pausedAt.Add(-c.offset)
	}
	return c.base.Now().Add(-c.offset)
}

// Pause freezes the clock. Pausing twice is a no-op.
func (c *PausableClock) Pause() {
	if c.paused {
		return
	}
	c.pausedAt = c.base.Now()
	c.paused = true
}

// Resume continues from where Pause left off.
func (c *PausableClock) Resume() {
	if !c.paused {
		return
	}
	c.offset += c.base.Now().Sub(c.pausedAt)
	c.paused = false
}

// Paused reports whether the clock is frozen.
func (c *PausableClock) Paused() bool {
	return c.paused
}

// MatchClock counts down whole seconds from an elapsed wall-clock
// accumulator, independent of how often the driver ticks.
type MatchClock struct {
	duration  int
	remaining int
	last      time.Time
	elapsed   time.Duration
}

// NewMatchClock starts a countdown of durationSecs at now.
func NewMatchClock(durationSecs int, now time.Time) MatchClock {
	return MatchClock{
		duration:  durationSecs,
		remaining: durationSecs,
		last:      now,
	}
}

// Advance accumulates the time since the previous call and returns the
// remaining whole seconds. Time never runs backwards.
func (m *MatchClock) Advance(now time.Time) int {
	if d := now.Sub(m.last); d > 0 {
		m.elapsed += d
	}
	m.last = now
	m.remaining = max(m.duration-int(m.elapsed/time.Second), 0)
	return m.remaining
}

// Remaining returns whole seconds left.
func (m MatchClock) Remaining() int {
	return m.remaining
}

// Expired reports whether the countdown reached zero.
func (m MatchClock) Expired() bool {
	return m.remaining <= 0
}

// ElapsedSecs is the configured duration minus the remaining seconds.
func (m MatchClock) ElapsedSecs() int {
	return m.duration - m.remaining
}
