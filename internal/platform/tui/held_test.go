package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func applied(h *HeldKeys, now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	h.Apply(&f, now)
	return f
}

func TestHeldKeyExpires(t *testing.T) {
	h := NewHeldKeys()
	h.Press(core.ActionLeft, t0)

	if !applied(h, t0.Add(initialHoldWindow-time.Millisecond)).IsHeld(core.ActionLeft) {
		t.Error("left should be held inside the initial window")
	}
	if applied(h, t0.Add(initialHoldWindow)).IsHeld(core.ActionLeft) {
		t.Error("left should be released once the window passes")
	}
	if h.Len() != 0 {
		t.Errorf("expired key still tracked: %d", h.Len())
	}
}

func TestHeldKeyRepeatUsesShortWindow(t *testing.T) {
	h := NewHeldKeys()
	h.Press(core.ActionRight, t0)
	repeatAt := t0.Add(100 * time.Millisecond)
	h.Press(core.ActionRight, repeatAt)

	if !applied(h, repeatAt.Add(repeatHoldWindow-time.Millisecond)).IsHeld(core.ActionRight) {
		t.Error("right should be held inside the repeat window")
	}
	if applied(h, repeatAt.Add(repeatHoldWindow)).IsHeld(core.ActionRight) {
		t.Error("right should be released after the repeat window")
	}
}

func TestPressReleasesOpposite(t *testing.T) {
	h := NewHeldKeys()
	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionRight, t0.Add(time.Millisecond))

	f := applied(h, t0.Add(2*time.Millisecond))
	if f.IsHeld(core.ActionLeft) {
		t.Error("left should be released by pressing right")
	}
	if !f.IsHeld(core.ActionRight) {
		t.Error("right should be held")
	}
}

func TestHeldFireOnlyHolds(t *testing.T) {
	h := NewHeldKeys()
	h.Press(core.ActionFire, t0)

	f := applied(h, t0.Add(10*time.Millisecond))
	if !f.IsHeld(core.ActionFire) {
		t.Error("fire should be held inside the window")
	}
	if f.FireRequested() {
		t.Error("a held fire key must not request fire")
	}
	if !h.Held(core.ActionFire, t0.Add(10*time.Millisecond)) {
		t.Error("Held should report the open window")
	}
	if h.Held(core.ActionFire, t0.Add(initialHoldWindow)) {
		t.Error("Held should be false once the window passes")
	}
}

func TestNonHoldableIgnored(t *testing.T) {
	h := NewHeldKeys()
	h.Press(core.ActionPause, t0)
	h.Press(core.ActionQuit, t0)
	if h.Len() != 0 {
		t.Errorf("tracked %d non-holdable keys", h.Len())
	}
}

func TestRelease(t *testing.T) {
	h := NewHeldKeys()
	h.Press(core.ActionUp, t0)
	h.Press(core.ActionFire, t0)
	h.Release()

	if f := applied(h, t0); f.IsHeld(core.ActionUp) || f.IsHeld(core.ActionFire) {
		t.Error("Release should drop every key")
	}
}
