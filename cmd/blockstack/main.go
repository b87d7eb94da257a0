// Command blockstack plays the falling-block game in a window.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockstack/debugui"
	debugui_ebiten "github.com/plus3/blockstack/debugui/ebiten"
	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/ranking"
	"github.com/plus3/blockstack/ranking/rankhttp"
)

const windowTitle = "blockstack"

func main() {
	name := flag.String("name", "player", "Player name recorded on the leaderboard.")
	level := flag.Int("level", engine.MinStartLevel, "Starting level, 1 to 9.")
	scores := flag.String("scores", ranking.DefaultPath(), "Leaderboard file.")
	scoresURL := flag.String("scores-url", "", "Leaderboard service URL. Overrides -scores.")
	debug := flag.Bool("debug", false, "Enable the inspector overlay. Toggle it with F1.")
	flag.Parse()

	board, err := rankhttp.OpenBoard(*scores, *scoresURL, nil)
	if err != nil {
		log.Fatalf("Failed to open leaderboard: %v", err)
	}

	display := newScreenDisplay(board)
	game := engine.New(engine.Config{
		Display:  display,
		Recorder: board,
		Logger:   log.Default(),
	})
	driver := engine.NewDriver(game, engine.NewMonotonicClock())

	g := &Game{
		driver:  driver,
		display: display,
		name:    *name,
		level:   *level,
	}

	if *debug {
		g.imguiBackend = debugui_ebiten.NewImguiBackend(windowTitle, 1280, 720)
		g.inspector = debugui.NewInspector(driver, 240)
		g.showDebug = true
	} else {
		ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
		ebiten.SetWindowTitle(windowTitle)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.restart()
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
