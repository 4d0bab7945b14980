package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vshooter/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press or
// auto-repeat. Terminals report presses only, never releases.
const DefaultHoldWindow = 180 * time.Millisecond

// held actions are level-triggered: movement and fire.
var heldActions = map[core.Action]bool{
	core.ActionUp:    true,
	core.ActionDown:  true,
	core.ActionLeft:  true,
	core.ActionRight: true,
	core.ActionFire:  true,
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// KeyMapper translates Bubble Tea key messages to game actions and keeps the
// last press time of level-triggered actions to synthesize held state.
type KeyMapper struct {
	window   time.Duration
	lastSeen map[core.Action]time.Time
}

// NewKeyMapper creates a key mapper with the default hold window.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWindow(DefaultHoldWindow)
}

// NewKeyMapperWindow creates a key mapper with a custom hold window.
func NewKeyMapperWindow(window time.Duration) *KeyMapper {
	return &KeyMapper{
		window:   window,
		lastSeen: make(map[core.Action]time.Time),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "z":
		return core.ActionFire, false
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

// MapKeyToFrame records a key press into frame at time now.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, now time.Time) bool {
	action, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	if action == core.ActionNone {
		return false
	}
	frame.Set(action)
	if heldActions[action] {
		km.lastSeen[action] = now
		// Reversing direction releases the opposite key immediately.
		if opp, ok := opposite[action]; ok {
			delete(km.lastSeen, opp)
		}
	}
	return false
}

// FillHeld marks every action pressed within the hold window as held.
func (km *KeyMapper) FillHeld(frame *core.InputFrame, now time.Time) {
	for action, seen := range km.lastSeen {
		if now.Sub(seen) <= km.window {
			frame.Hold(action)
		} else {
			delete(km.lastSeen, action)
		}
	}
}

// Release forgets every held key.
func (km *KeyMapper) Release() {
	clear(km.lastSeen)
}
