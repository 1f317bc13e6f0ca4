package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/surfjump/internal/core"
)

// holdTicks is how long a steering key counts as held after its last
// press. Terminals report no key release, only auto-repeat.
const holdTicks = 8

const (
	// mouseTouchID is the touch identifier used for the mouse pointer.
	mouseTouchID = 1
	// rowUnits converts a terminal row to display units, roughly the pixel
	// height of a cell; swipe thresholds are tuned for pixels.
	rowUnits = 16
)

// KeyMapper translates Bubble Tea key and mouse messages to game input.
// It keeps the steering keys alive between auto-repeat presses.
type KeyMapper struct {
	held map[core.Action]int // remaining ticks per held action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{held: make(map[core.Action]int)}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
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

// MapKeyToFrame updates an input frame based on a key message.
// Steering keys are latched for holdTicks; the opposite direction is released.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionLeft:
		delete(km.held, core.ActionRight)
		km.held[core.ActionLeft] = holdTicks
	case core.ActionRight:
		delete(km.held, core.ActionLeft)
		km.held[core.ActionRight] = holdTicks
	default:
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame turns mouse presses, drags and releases into touches.
// Columns are used as is; rows are scaled by rowUnits.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		frame.Touch(mouseTouchID, float64(msg.X), float64(msg.Y*rowUnits))
	case tea.MouseActionRelease:
		frame.Release(mouseTouchID)
	}
}

// ApplyHeld sets the latched steering actions on frame and ages them by one tick.
func (km *KeyMapper) ApplyHeld(frame *core.InputFrame) {
	for action, ticks := range km.held {
		frame.Set(action)
		if ticks <= 1 {
			delete(km.held, action)
			continue
		}
		km.held[action] = ticks - 1
	}
}

// ReleaseAll forgets every held key.
func (km *KeyMapper) ReleaseAll() {
	clear(km.held)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
