package invaders

import (
	"testing"
	"time"
)

func TestMatchClockIndependentOfTickRate(t *testing.T) {
	for _, hz := range []int{10, 60, 144} {
		start := testEpoch()
		mc := NewMatchClock(120, start)
		step := time.Second / time.Duration(hz)

		now := start
		for now.Sub(start) < 30*time.Second {
			now = now.Add(step)
			mc.Advance(now)
		}
		if mc.Remaining() != 90 {
			t.Errorf("%d Hz: remaining = %d, expected 90", hz, mc.Remaining())
		}
		if mc.ElapsedSecs() != 30 {
			t.Errorf("%d Hz: elapsed = %d, expected 30", hz, mc.ElapsedSecs())
		}
	}
}

func TestMatchClockExpires(t *testing.T) {
	start := testEpoch()
	mc := NewMatchClock(2, start)

	mc.Advance(start.Add(1999 * time.Millisecond))
	if mc.Expired() {
		t.Fatal("expired early")
	}
	mc.Advance(start.Add(5 * time.Second))
	if !mc.Expired() || mc.Remaining() != 0 {
		t.Errorf("remaining = %d, expected 0", mc.Remaining())
	}
	if mc.ElapsedSecs() != 2 {
		t.Errorf("elapsed = %d, expected 2", mc.ElapsedSecs())
	}
}

func TestMatchClockIgnoresBackwardsTime(t *testing.T) {
	start := testEpoch()
	mc := NewMatchClock(60, start)
	mc.Advance(start.Add(3 * time.Second))
	mc.Advance(start.Add(time.Second))
	if mc.Remaining() != 57 {
		t.Errorf("remaining = %d, expected 57", mc.Remaining())
	}
}

func TestPausableClock(t *testing.T) {
	base := NewManualClock(testEpoch())
	c := NewPausableClock(base)

	base.Advance(time.Second)
	if got := c.Now().Sub(testEpoch()); got != time.Second {
		t.Fatalf("elapsed = %v, expected 1s", got)
	}

	c.Pause()
	c.Pause()
	base.Advance(10 * time.Second)
	if got := c.Now().Sub(testEpoch()); got != time.Second {
		t.Errorf("paused clock moved to %v", got)
	}

	c.Resume()
	base.Advance(2 * time.Second)
	if got := c.Now().Sub(testEpoch()); got != 3*time.Second {
		t.Errorf("elapsed after resume = %v, expected 3s", got)
	}
}

func TestTimerSetInterval(t *testing.T) {
	var set timerSet
	now := testEpoch()
	tm := set.every(now, 5*time.Second)

	if tm.poll(now.Add(4 * time.Second)) {
		t.Error("fired early")
	}
	if !tm.poll(now.Add(5 * time.Second)) {
		t.Error("expected fire at 5s")
	}
	if tm.poll(now.Add(6 * time.Second)) {
		t.Error("fired twice in one interval")
	}
	if !tm.poll(now.Add(10 * time.Second)) {
		t.Error("expected fire at 10s")
	}

	set.release()
	if tm.poll(now.Add(time.Hour)) {
		t.Error("released timer fired")
	}
	if set.len() != 0 {
		t.Errorf("set holds %d timers after release", set.len())
	}
}

func TestCooldown(t *testing.T) {
	var set timerSet
	now := testEpoch()
	cd := Cooldown{period: 300 * time.Millisecond}

	if !cd.Ready(now) {
		t.Fatal("fresh cooldown should be ready")
	}
	cd.trigger(&set, now)
	if cd.Ready(now.Add(299 * time.Millisecond)) {
		t.Error("ready before the period ended")
	}
	if !cd.Ready(now.Add(300 * time.Millisecond)) {
		t.Error("not ready after the period")
	}

	set.prune(now.Add(time.Second))
	if set.len() != 0 {
		t.Errorf("expired one-shot not pruned, %d left", set.len())
	}
}
