package app

// Action is a settings change requested from a keyboard.
type Action int

const (
	ActionNone Action = iota
	ActionToggleWrap
	ActionToggleGradient
	ActionSpacingUp
	ActionSpacingDown
	ActionQuit
)

// ActionForKey maps a typed character onto an action.
func ActionForKey(ch rune) Action {
	switch ch {
	case 'w', 'W':
		return ActionToggleWrap
	case 'g', 'G':
		return ActionToggleGradient
	case '+', '=':
		return ActionSpacingUp
	case '-', '_':
		return ActionSpacingDown
	case 'q', 'Q':
		return ActionQuit
	default:
		return ActionNone
	}
}

func (a Action) String() string {
	switch a {
	case ActionToggleWrap:
		return "toggle-wrap"
	case ActionToggleGradient:
		return "toggle-gradient"
	case ActionSpacingUp:
		return "spacing+"
	case ActionSpacingDown:
		return "spacing-"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}
