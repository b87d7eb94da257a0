package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/ranking"
)

// botCommands are the commands a bot picks from. CommandNone makes a bot idle for a frame.
var botCommands = []engine.Command{
	engine.CommandNone,
	engine.CommandLeft,
	engine.CommandRight,
	engine.CommandRotateLeft,
	engine.CommandRotateRight,
	engine.CommandDown,
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	workers := flag.Int("games", runtime.NumCPU(), "The number of games played concurrently.")
	level := flag.Int("level", engine.MinStartLevel, "The starting level of every game.")
	step := flag.Uint("step", engine.BaseInterval+1, "Milliseconds the synthetic clock advances per tick.")
	maxGames := flag.Int("max-games", 0, "Stop each worker after this many finished games. 0 plays until the duration ends.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for shapes and bot inputs.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting blockstack stress test...")

	report := &Report{
		Duration:       *duration,
		Workers:        *workers,
		Level:          *level,
		Step:           time.Duration(*step) * time.Millisecond,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
	}
	board := ranking.NewStore("")

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d games for %s...\n", *workers, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	results := make([]workerResult, *workers)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = play(ctx, playConfig{
				id:    i,
				level: *level,
				games: *maxGames,
				step:  uint32(*step),
				seed:  *seed,
				board: board,
			})
		}()
	}
	wg.Wait()

	report.TotalTime = time.Since(startTime)
	for _, r := range results {
		report.Add(r)
	}
	report.TickTime.Finalize()
	report.Leaderboard = board.Entries()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

type playConfig struct {
	id    int
	level int
	// games stops the worker after that many finished games when positive.
	games int
	step  uint32
	seed  uint64
	board ranking.Board
}

// workerResult sums up the games one worker played.
type workerResult struct {
	Games  int
	Ticks  int64
	Frames int64
	Lines    int
	TickTime Stats
	Best     ranking.Entry
}

// counter counts frames by counting draws, and every frame draws exactly once.
type counter struct {
	engine.NopDisplay
	frames int64
}

func (c *counter) Draw(engine.DrawState) { c.frames++ }
func (c *counter) DrawPause()            { c.frames++ }

// play runs games back to back with a random-input bot until ctx is done or cfg.games
// games have finished. Every game gets its own clock starting at zero, so no game runs
// long enough for the millisecond timestamps to wrap.
func play(ctx context.Context, cfg playConfig) workerResult {
	rng := rand.New(rand.NewPCG(cfg.seed, uint64(cfg.id)))
	display := &counter{}
	game := engine.New(engine.Config{
		Shapes:   engine.RandomShapes(rand.New(rand.NewPCG(cfg.seed, uint64(cfg.id)+1<<32))),
		Display:  display,
		Recorder: cfg.board,
	})

	var result workerResult
	for ctx.Err() == nil && (cfg.games <= 0 || result.Games < cfg.games) {
		clock := &engine.StepClock{}
		driver := engine.NewDriver(game, clock)
		game.Reset(fmt.Sprintf("bot-%d", cfg.id), cfg.level)
		for ctx.Err() == nil {
			clock.Advance(cfg.step)
			cmd := botCommands[rng.IntN(len(botCommands))]
			engine.Input{Command: cmd, Pressed: cmd == engine.CommandDown}.Apply(game)
			if driver.Once() == engine.Stopped {
				break
			}
		}
		result.TickTime.Merge(driver.Stats())
		if game.State() != engine.Over {
			break
		}

		result.Games++
		result.Lines += game.Lines()
		if final := game.Final(); result.Games == 1 || ranking.Compare(final, result.Best) < 0 {
			result.Best = final
		}
	}

	result.Ticks = result.TickTime.Ticks
	result.Frames = display.frames
	return result
}
