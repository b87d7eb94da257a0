package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockstack/debugui"
	debugui_ebiten "github.com/plus3/blockstack/debugui/ebiten"
	"github.com/plus3/blockstack/engine"
)

// Game implements ebiten.Game around an engine driver.
type Game struct {
	driver  *engine.Driver
	display *screenDisplay
	name    string
	level   int

	// imguiBackend and inspector are nil unless debugging is enabled.
	imguiBackend *debugui_ebiten.ImguiBackend
	inspector    *debugui.Inspector
	showDebug    bool
}

// restart begins a new session, returning false while one is still in progress.
func (g *Game) restart() bool {
	game := g.driver.Game()
	if game.State() == engine.Running || game.State() == engine.Paused {
		return false
	}
	g.display.reset()
	return game.Reset(g.name, g.level)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imguiBackend != nil {
		g.imguiBackend.BeginFrame()
		defer g.imguiBackend.EndFrame()

		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			g.showDebug = !g.showDebug
		}
	}

	captured := g.imguiBackend != nil && g.showDebug && debugui.CurrentInputState().WantCaptureKeyboard
	if !captured {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.restart()
		}
		for _, in := range readInputs(ebitenKeys{}) {
			in.Apply(g.driver.Game())
		}
	}

	g.driver.Once()

	if g.inspector != nil && g.showDebug {
		g.inspector.Render()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBoard(screen)
	g.drawPreview(screen)
	g.drawStats(screen)

	switch {
	case g.display.over:
		drawCentered(screen, "GAME OVER", 0, overColor)
		g.drawLeaderboard(screen)
	case g.display.paused:
		drawCentered(screen, "PAUSE", 0, pauseColor)
	}

	if g.imguiBackend != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return screenWidth, screenHeight
}
