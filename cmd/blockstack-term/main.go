// Command blockstack-term plays the falling-block game in a terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/ranking"
	"github.com/plus3/blockstack/ranking/rankhttp"
)

const (
	// frameRate is how often the driver offers the game a tick. The game itself decides
	// whether a frame is due.
	frameRate = 10 * time.Millisecond
	// boostHold keeps a drop boost alive after the last down key event. Terminals report
	// key repeats but no releases.
	boostHold = 350 * time.Millisecond
)

func main() {
	name := flag.String("name", "player", "Player name recorded on the leaderboard.")
	level := flag.Int("level", engine.MinStartLevel, "Starting level, 1 to 9.")
	scores := flag.String("scores", ranking.DefaultPath(), "Leaderboard file.")
	scoresURL := flag.String("scores-url", "", "Leaderboard service URL. Overrides -scores.")
	logPath := flag.String("log", "", "Write logs to this file.")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()

	if *logPath == "" {
		log.SetOutput(io.Discard)
	} else {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	board, err := rankhttp.OpenBoard(*scores, *scoresURL, nil)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to open leaderboard: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Fini()

	s := newSound(!*mute)
	defer s.Close()

	display := newTermDisplay(screen, s, board, *name)
	game := engine.New(engine.Config{
		Display:  display,
		Recorder: board,
		Logger:   log.Default(),
	})
	driver := engine.NewDriver(game, engine.NewMonotonicClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inputs := make(chan engine.Input, 64)
	restart := make(chan struct{}, 1)
	go pollKeys(ctx, cancel, screen, inputs, restart)

	for {
		if n := drainInputs(inputs); n > 0 {
			log.Printf("discarded %d inputs queued before the new game", n)
		}
		game.Reset(*name, *level)
		if err := driver.Run(ctx, frameRate, inputs); err != nil {
			break
		}

		// Discard restarts requested while the game was still running.
		select {
		case <-restart:
		default:
		}

		select {
		case <-ctx.Done():
		case <-restart:
			continue
		}
		break
	}

	stats := driver.Stats()
	log.Printf("exiting after %d ticks, avg %s, max %s", stats.Ticks, stats.AvgDuration, stats.MaxDuration)
}

// pollKeys turns terminal events into game inputs until ctx is done. Quit keys cancel
// ctx; a held down key is released boostHold after its last repeat.
func pollKeys(ctx context.Context, cancel context.CancelFunc, screen tcell.Screen, inputs chan<- engine.Input, restart chan<- struct{}) {
	send := func(in engine.Input) {
		select {
		case inputs <- in:
		default:
			log.Printf("input dropped: %s", in.Command)
		}
	}

	var release *time.Timer
	defer func() {
		if release != nil {
			release.Stop()
		}
	}()

	for ctx.Err() == nil {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			act, cmd := translateKey(ev)
			switch act {
			case actionQuit:
				cancel()
				return
			case actionRestart:
				select {
				case restart <- struct{}{}:
				default:
				}
			case actionCommand:
				send(engine.Input{Command: cmd, Pressed: cmd == engine.CommandDown})
				if cmd != engine.CommandDown {
					continue
				}
				if release != nil {
					release.Stop()
				}
				release = time.AfterFunc(boostHold, func() { send(engine.Input{}) })
			}
		}
	}
}
