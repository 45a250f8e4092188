package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// The fire key is configurable, so letters it claims stop meaning
// anything else.
type KeyMapper struct {
	fire string // tea key string, " " for Space
}

// NewKeyMapper creates a key mapper for the given fire key ("Space" or a
// letter).
func NewKeyMapper(fireKey string) *KeyMapper {
	return &KeyMapper{fire: teaKey(config.NormalizeFireKey(fireKey))}
}

// teaKey converts a normalized fire key to the string tea.KeyMsg reports.
func teaKey(fireKey string) string {
	if fireKey == config.DefaultFireKey {
		return " "
	}
	return strings.ToLower(fireKey)
}

// FireKey returns the key string bound to fire.
func (km *KeyMapper) FireKey() string {
	return km.fire
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := strings.ToLower(msg.String())

	if key == "ctrl+c" {
		return core.ActionQuit, true
	}
	if key == km.fire {
		return core.ActionFire, false
	}

	switch key {
	case "q":
		return core.ActionQuit, true
	case "up", "w":
		return core.ActionUp, false
	case "down", "s":
		return core.ActionDown, false
	case "left", "a":
		return core.ActionLeft, false
	case "right", "d":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
