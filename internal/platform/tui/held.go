package tui

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Terminals report key presses but never releases. A key counts as held
// from its press until no repeat arrives within the hold window. The first
// window is longer to bridge the keyboard's auto-repeat delay.
const (
	initialHoldWindow = 500 * time.Millisecond
	repeatHoldWindow  = 150 * time.Millisecond
)

var opposite = map[core.Action]core.Action{
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
}

// HeldKeys emulates key-up events for movement and fire.
type HeldKeys struct {
	until   map[core.Action]time.Time
	initial time.Duration
	repeat  time.Duration
}

// NewHeldKeys creates an emulator with the default windows.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{
		until:   make(map[core.Action]time.Time),
		initial: initialHoldWindow,
		repeat:  repeatHoldWindow,
	}
}

// Holdable reports whether a is tracked as a held key.
func Holdable(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionFire:
		return true
	}
	return false
}

// Press records a key press at now. Pressing a direction releases its
// opposite immediately.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if !Holdable(a) {
		return
	}
	if o, ok := opposite[a]; ok {
		delete(h.until, o)
	}

	window := h.initial
	if until, ok := h.until[a]; ok && now.Before(until) {
		window = h.repeat
	}
	h.until[a] = now.Add(window)
}

// Held reports whether a is inside its hold window at now.
func (h *HeldKeys) Held(a core.Action, now time.Time) bool {
	until, ok := h.until[a]
	return ok && now.Before(until)
}

// Apply marks every still-held action on frame and forgets expired ones.
// It only sets held state; presses come from key events.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, until := range h.until {
		if !now.Before(until) {
			delete(h.until, a)
			continue
		}
		frame.Hold(a)
	}
}

// Release drops every held key.
func (h *HeldKeys) Release() {
	clear(h.until)
}

// Len returns the number of keys currently held.
func (h *HeldKeys) Len() int {
	return len(h.until)
}
