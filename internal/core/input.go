package core

// Action represents a semantic game action, abstracted from physical key presses.
// The platform maps keyboard and mouse input to actions; the game consumes
// high-level intents only.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - nudge drop preview left
	ActionRight          // D, Right arrow - nudge drop preview right
	ActionDrop           // Space, Enter, mouse click - request a disc drop
	ActionPause          // P, Escape - pause/unpause game
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDrop:
		return "Drop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
