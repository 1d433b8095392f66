package session

// State is a session's position in the login protocol.
type State int

const (
	AwaitingName State = iota
	AwaitingPassword
	AwaitingNewName
	AwaitingNewPassword
	ConfirmPassword
	Playing
)

func (s State) String() string {
	switch s {
	case AwaitingName:
		return "awaiting_name"
	case AwaitingPassword:
		return "awaiting_password"
	case AwaitingNewName:
		return "awaiting_new_name"
	case AwaitingNewPassword:
		return "awaiting_new_password"
	case ConfirmPassword:
		return "confirm_password"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// States lists every state in protocol order.
var States = []State{AwaitingName, AwaitingPassword, AwaitingNewName, AwaitingNewPassword, ConfirmPassword, Playing}
