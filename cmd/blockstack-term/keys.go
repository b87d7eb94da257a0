package main

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockstack/engine"
)

type action int

const (
	actionNone action = iota
	actionCommand
	actionRestart
	actionQuit
)

// translateKey maps a terminal key to what the front end should do with it. Arrow keys
// mirror the letter bindings; up rotates clockwise.
func translateKey(ev *tcell.EventKey) (action, engine.Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, engine.CommandNone
	case tcell.KeyEnter:
		return actionRestart, engine.CommandNone
	case tcell.KeyLeft:
		return actionCommand, engine.CommandLeft
	case tcell.KeyRight:
		return actionCommand, engine.CommandRight
	case tcell.KeyUp:
		return actionCommand, engine.CommandRotateRight
	case tcell.KeyDown:
		return actionCommand, engine.CommandDown
	case tcell.KeyRune:
		c := engine.Command(unicode.ToLower(ev.Rune()))
		switch c {
		case engine.CommandLeft, engine.CommandRight,
			engine.CommandRotateLeft, engine.CommandRotateRight,
			engine.CommandDown, engine.CommandPause, engine.CommandDebug:
			return actionCommand, c
		}
	}
	return actionNone, engine.CommandNone
}

// drainInputs discards everything queued on inputs without blocking and returns how many
// inputs it dropped.
func drainInputs(inputs <-chan engine.Input) int {
	n := 0
	for {
		select {
		case <-inputs:
			n++
		default:
			return n
		}
	}
}
