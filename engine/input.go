package engine

import "fmt"

// Command is a player command, identified by its keyboard rune.
type Command rune

const (
	CommandNone        Command = '1'
	CommandLeft        Command = 'a'
	CommandRight       Command = 'd'
	CommandRotateLeft  Command = 'q'
	CommandRotateRight Command = 'e'
	// CommandDown moves nothing by itself. Held down it boosts the fall speed.
	CommandDown  Command = 's'
	CommandPause Command = ' '
	CommandDebug Command = 'p'
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandRotateLeft:
		return "rotate-left"
	case CommandRotateRight:
		return "rotate-right"
	case CommandDown:
		return "down"
	case CommandPause:
		return "pause"
	case CommandDebug:
		return "debug"
	}
	return fmt.Sprintf("unknown(%q)", rune(c))
}

// Latch is the single-slot input buffer between ticks. A new command overwrites the
// previous one whether or not it was consumed, so commands issued faster than the frame
// rate are lost.
type Latch struct {
	Command  Command
	Consumed bool
	Boost    bool
}

// Set latches c as unconsumed and releases the boost.
func (l *Latch) Set(c Command) {
	l.Command = c
	l.Consumed = false
	l.Boost = false
}

// Press records a key press or release. A press boosts only while the latched command
// is CommandDown.
func (l *Latch) Press(down bool) {
	if !down {
		l.Boost = false
		return
	}
	if l.Command == CommandDown {
		l.Boost = true
	}
}

// take returns the latched command once.
func (l *Latch) take() (Command, bool) {
	if l.Consumed {
		return CommandNone, false
	}
	l.Consumed = true
	return l.Command, true
}

func (l *Latch) clear() {
	*l = Latch{Command: CommandNone, Consumed: true}
}

// Input is one input event as delivered to a Driver. A zero Command only updates the
// pressed state, which is how key releases are sent.
type Input struct {
	Command Command
	Pressed bool
}

// Apply hands the event to g.
func (in Input) Apply(g *Game) {
	if in.Command != 0 {
		g.SetInput(in.Command)
	}
	g.SetPressed(in.Pressed)
}
