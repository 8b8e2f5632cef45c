package session

// State is where a Session is in its lifecycle. It only moves forward, except that StateTornDown
// can be reached from any state.
type State int

const (
	StateInit State = iota
	StateSessionStarted
	StateContextReady
	StateActionDone
	StateAsserted
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateSessionStarted:
		return "SESSION_STARTED"
	case StateContextReady:
		return "CONTEXT_READY"
	case StateActionDone:
		return "ACTION_DONE"
	case StateAsserted:
		return "ASSERTED"
	case StateTornDown:
		return "TORN_DOWN"
	default:
		return "UNKNOWN"
	}
}
