package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// DefaultHold is how long a key counts as held after its last key event.
// It has to outlast the terminal's initial auto-repeat delay.
const DefaultHold = 300 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
//
// Terminals deliver key presses and auto-repeats but never key releases, so
// the mapper keeps a hold tracker: a movement or jump key stays held until
// DefaultHold passes without another event for it. A jump whose hold
// expires produces ActionJumpRelease.
type KeyMapper struct {
	hold time.Duration
	held map[core.Action]time.Time // last key event per held action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWithHold(DefaultHold)
}

// NewKeyMapperWithHold creates a key mapper with a custom hold duration.
func NewKeyMapperWithHold(hold time.Duration) *KeyMapper {
	return &KeyMapper{
		hold: hold,
		held: make(map[core.Action]time.Time),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "w", "up", "k":
		return core.ActionJump, false
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

// Press records a key event at now and sets the resulting action on frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)

	switch action {
	case core.ActionNone:
	case core.ActionLeft, core.ActionRight:
		// Only one key auto-repeats at a time; the other direction is let go.
		delete(km.held, opposite(action))
		km.held[action] = now
		frame.Set(action)
	case core.ActionJump:
		// Auto-repeat must not turn a held jump into a second jump.
		if _, ok := km.held[core.ActionJump]; !ok {
			frame.Set(core.ActionJump)
		}
		km.held[core.ActionJump] = now
	default:
		frame.Set(action)
	}

	return isQuit
}

// Hold sets the actions still held at now on frame and releases those
// whose hold has expired.
func (km *KeyMapper) Hold(now time.Time, frame *core.InputFrame) {
	for action, last := range km.held {
		if now.Sub(last) >= km.hold {
			delete(km.held, action)
			if action == core.ActionJump {
				frame.Set(core.ActionJumpRelease)
			}
			continue
		}
		if action != core.ActionJump {
			frame.Set(action)
		}
	}
}

// ReleaseAll forgets every held key without emitting releases.
func (km *KeyMapper) ReleaseAll() {
	clear(km.held)
}

// IsHeld reports whether action is currently held.
func (km *KeyMapper) IsHeld(action core.Action) bool {
	_, ok := km.held[action]
	return ok
}

func opposite(a core.Action) core.Action {
	if a == core.ActionLeft {
		return core.ActionRight
	}
	return core.ActionLeft
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
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
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
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
