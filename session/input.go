package session

// Input is a control event delivered to the session between frames
type Input uint8

const (
	InputNone Input = iota
	InputQuit
	InputPauseToggle
	InputReset
	InputResize
)

func (i Input) String() string {
	switch i {
	case InputNone:
		return "none"
	case InputQuit:
		return "quit"
	case InputPauseToggle:
		return "pause"
	case InputReset:
		return "reset"
	case InputResize:
		return "resize"
	}
	return "unknown"
}

// InputSource is polled once or more per frame. Poll must not block: it
// returns InputNone when nothing is pending.
type InputSource interface {
	Poll() Input
}

// State of the animation
type State uint8

const (
	Running State = iota
	Paused
	Quitting
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Quitting:
		return "quitting"
	}
	return "unknown"
}
