package engine

// State is the lifecycle phase of a game.
type State uint8

const (
	NotStarted State = iota
	Running
	Paused
	Over
)

var stateNames = [...]string{
	NotStarted: "not started",
	Running:    "running",
	Paused:     "paused",
	Over:       "over",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Status is the outcome of a tick.
type Status uint8

const (
	// Continue means the caller should keep ticking.
	Continue Status = iota
	// Stopped means the game is not running and further ticks are ignored.
	Stopped
)

func (s Status) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "continue"
}
