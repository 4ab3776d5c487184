package controls

// State is the gesture state of the controller. Exactly one state is active at a time.
type State int

const (
	StateIdle State = iota
	StateRotate
	StateDolly
	StatePan
	StateTouchRotate
	StateTouchDolly
	StateTouchPan
)

var stateNames = [...]string{
	StateIdle:        "idle",
	StateRotate:      "rotate",
	StateDolly:       "dolly",
	StatePan:         "pan",
	StateTouchRotate: "touch-rotate",
	StateTouchDolly:  "touch-dolly",
	StateTouchPan:    "touch-pan",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Active reports whether the state is a gesture rather than idle.
func (s State) Active() bool {
	return s != StateIdle
}

// transition moves the state machine to next. Leaving an active state emits end; entering one emits start.
// Switching between two active states always passes through idle, so both notifications fire.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) transition(next State) {
	if oc.state.Active() {
		oc.state = StateIdle
		oc.queue(notifyEnd)
	}
	if next.Active() {
		oc.state = next
		oc.queue(notifyStart)
	}
}
