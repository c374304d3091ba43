package jiggler

// State is the coordinator's position in its state machine.
type State int

const (
	// StateIdle is inactive: nothing is sampled or moved.
	StateIdle State = iota
	// StateMonitoring is active and waiting for the idle threshold.
	StateMonitoring
	// StateJiggling is active and moving the cursor every interval.
	StateJiggling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateMonitoring:
		return "Monitoring"
	case StateJiggling:
		return "Jiggling"
	default:
		return "Unknown"
	}
}

// Active reports whether the coordinator is running in this state.
func (s State) Active() bool {
	return s == StateMonitoring || s == StateJiggling
}
