package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockstack/engine"
)

type binding struct {
	key ebiten.Key
	cmd engine.Command
}

// bindings are checked in order, so with several keys pressed in one update the last
// one wins the latch.
var bindings = []binding{
	{ebiten.KeyA, engine.CommandLeft},
	{ebiten.KeyArrowLeft, engine.CommandLeft},
	{ebiten.KeyD, engine.CommandRight},
	{ebiten.KeyArrowRight, engine.CommandRight},
	{ebiten.KeyQ, engine.CommandRotateLeft},
	{ebiten.KeyE, engine.CommandRotateRight},
	{ebiten.KeyArrowUp, engine.CommandRotateRight},
	{ebiten.KeyS, engine.CommandDown},
	{ebiten.KeyArrowDown, engine.CommandDown},
	{ebiten.KeySpace, engine.CommandPause},
	{ebiten.KeyP, engine.CommandDebug},
}

// keyState reports key transitions for one update.
type keyState interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// readInputs turns this update's key transitions into game inputs. Any bound key
// coming up releases the boost.
func readInputs(keys keyState) []engine.Input {
	var inputs []engine.Input
	for _, b := range bindings {
		if keys.JustPressed(b.key) {
			inputs = append(inputs, engine.Input{Command: b.cmd, Pressed: true})
		}
		if keys.JustReleased(b.key) {
			inputs = append(inputs, engine.Input{})
		}
	}
	return inputs
}
