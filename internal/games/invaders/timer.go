package invaders

import "time"

// timer is a deadline handle owned by a timerSet. Interval timers re-arm
// after firing; one-shot timers release themselves. A released timer never
// fires again.
type timer struct {
	next     time.Time
	interval time.Duration
	released bool
}

// poll reports whether the timer fired at now. An interval timer fires at
// most once per poll.
func (t *timer) poll(now time.Time) bool {
	if t == nil || t.released || now.Before(t.next) {
		return false
	}
	if t.interval > 0 {
		t.next = t.next.Add(t.interval)
	} else {
		t.released = true
	}
	return true
}

// pending reports whether a one-shot timer is still counting down.
func (t *timer) pending(now time.Time) bool {
	return t != nil && !t.released && now.Before(t.next)
}

// timerSet owns every timer of a match so they can be released together
// when the match ends or is stopped.
type timerSet struct {
	timers []*timer
}

func (s *timerSet) every(now time.Time, d time.Duration) *timer {
	t := &timer{next: now.Add(d), interval: d}
	s.timers = append(s.timers, t)
	return t
}

func (s *timerSet) after(now time.Time, d time.Duration) *timer {
	t := &timer{next: now.Add(d)}
	s.timers = append(s.timers, t)
	return t
}

// prune drops released and expired one-shot timers.
func (s *timerSet) prune(now time.Time) {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.released || (t.interval == 0 && !now.Before(t.next)) {
			continue
		}
		kept = append(kept, t)
	}
	clear(s.timers[len(kept):])
	s.timers = kept
}

// release cancels every timer in the set.
func (s *timerSet) release() {
	for _, t := range s.timers {
		t.released = true
	}
	s.timers = nil
}

func (s *timerSet) len() int {
	return len(s.timers)
}

// Cooldown gates an action to once per period of wall clock.
type Cooldown struct {
	period time.Duration
	gate   *timer
}

// Ready reports whether the gate is open at now.
func (c *Cooldown) Ready(now time.Time) bool {
	return !c.gate.pending(now)
}

// trigger closes the gate for the cooldown period.
func (c *Cooldown) trigger(set *timerSet, now time.Time) {
	if c.period <= 0 {
		return
	}
	c.gate = set.after(now, c.period)
}
