package memory

type State int

const (
	StateOnline State = iota
	StateOffline
	StateGoingOffline
	StateUnknown
)

func (state State) String() string {
	switch state {
	default:
		return "?"
	case StateOnline:
		return "online"
	case StateOffline:
		return "offline"
	case StateGoingOffline:
		return "on->off"
	}
}

// NewState maps a kernel state string to a State. Strings not known
// to this tool become StateUnknown, they are not an error.
func NewState(input string) State {
	switch input {
	default:
		return StateUnknown
	case "online":
		return StateOnline
	case "offline":
		return StateOffline
	case "going-offline":
		return StateGoingOffline
	}
}
