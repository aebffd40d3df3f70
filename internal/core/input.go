package core

// Action represents a semantic player intent, abstracted from physical key
// presses and mouse events.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // Left arrow, A - nudge icon left
	ActionRight             // Right arrow, D - nudge icon right
	ActionRestart           // R - new round set, score back to zero
	ActionScoreboard        // Tab - open the scoreboard
	ActionBack              // Esc, B - leave the scoreboard
	ActionQuit              // Q, Ctrl+C - exit
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
	case ActionRestart:
		return "Restart"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// DragDirection returns -1, 0 or 1 for actions that move the icon sideways.
func (a Action) DragDirection() int {
	switch a {
	case ActionLeft:
		return -1
	case ActionRight:
		return 1
	default:
		return 0
	}
}
