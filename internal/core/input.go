package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow, K
	ActionDown           // S, Down arrow, J
	ActionLeft           // A, Left arrow, H
	ActionRight          // D, Right arrow, L
	ActionFire           // Space
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionFire:    "Fire",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the sampled input for one simulation tick.
//
// Actions holds edge-triggered presses (menu navigation, restart).
// Held holds level-triggered state (movement, fire) that stays true for as
// long as the platform considers the key down.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed this tick.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Hold marks an action as held this tick.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has reports whether the action was pressed this tick.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// IsHeld reports whether the action is held this tick. A press counts as held.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a] || f.Actions[a]
}

// Clear resets all actions for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Held)
}

// Axis returns the movement direction from held directional actions,
// one of -1, 0, 1 on each axis with Y pointing up.
func (f InputFrame) Axis() (dx, dy float64) {
	if f.IsHeld(ActionLeft) {
		dx--
	}
	if f.IsHeld(ActionRight) {
		dx++
	}
	if f.IsHeld(ActionUp) {
		dy++
	}
	if f.IsHeld(ActionDown) {
		dy--
	}
	return dx, dy
}
