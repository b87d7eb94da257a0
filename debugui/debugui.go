// Package debugui renders Dear ImGui windows that inspect a running game.
// Call Inspector.Render between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockstack/engine"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Frontends should not forward keys to the game while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

func CurrentInputState() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// Inspector shows the game state, the settled stack and tick timings of a driver.
type Inspector struct {
	driver *engine.Driver
	ticks  *tickHistory

	stackFilter string
}

func NewInspector(driver *engine.Driver, historyFrames int) *Inspector {
	return &Inspector{
		driver: driver,
		ticks:  newTickHistory(historyFrames),
	}
}

// Render draws every inspector window for the current frame.
func (in *Inspector) Render() {
	stats := in.driver.Stats()
	in.ticks.push(stats.LastDuration)

	in.renderGameState(in.driver.Game())
	in.renderStack(in.driver.Game())
	in.renderTickStats(stats)
}
