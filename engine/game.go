// Package engine runs a falling-block game.
//
// A Game is a deterministic state machine driven by Tick with caller supplied millisecond
// timestamps. It never reads a clock, sleeps or spawns goroutines; a Driver couples it to
// a real clock. A Game is not safe for concurrent use.
package engine

import (
	"io"
	"log"

	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/ranking"
	"github.com/plus3/blockstack/stack"
)

const (
	// BaseInterval is the frame interval in milliseconds before the level is applied.
	BaseInterval = 500
	// IntervalStep shortens the frame interval per level.
	IntervalStep = 50
	// BoostLevel is the level whose interval applies while boosting.
	BoostLevel = 8
	// RowsPerLevel cleared rows advance one level.
	RowsPerLevel = 10

	MinStartLevel = 1
	MaxStartLevel = 9
)

// Config wires a Game to its collaborators. Nil fields get defaults: random shapes, a
// NopDisplay, no recorder and a discarding logger.
type Config struct {
	Shapes   ShapeSource
	Display  Display
	Recorder Recorder
	Logger   *log.Logger
}

// Game is one falling-block session.
type Game struct {
	shapes   ShapeSource
	display  Display
	recorder Recorder
	log      *log.Logger

	name  string
	score int
	lines int
	level int

	current piece.Piece
	next    piece.Piece
	stack   *stack.Stack

	state State
	input Latch

	// started is set by the first tick after a reset, firstFrame until the first frame
	// that runs the simulation.
	started    bool
	firstFrame bool

	lastFrame  uint32
	start      uint32
	pauseStart uint32
	pauseSum   uint32

	final    ranking.Entry
	recordID string
}

// New creates a game in the NotStarted state. Call Reset to begin.
func New(cfg Config) *Game {
	g := &Game{
		shapes:   cfg.Shapes,
		display:  cfg.Display,
		recorder: cfg.Recorder,
		log:      cfg.Logger,
		level:    MinStartLevel,
		stack:    stack.New(),
		state:    NotStarted,
	}
	if g.shapes == nil {
		g.shapes = RandomShapes(nil)
	}
	if g.display == nil {
		g.display = NopDisplay{}
	}
	if g.log == nil {
		g.log = log.New(io.Discard, "", 0)
	}
	g.input.clear()
	return g
}

// Reset starts a fresh session for the named player. startLevel outside
// [MinStartLevel, MaxStartLevel] starts at MinStartLevel. It returns false, changing
// nothing, while a session is running or paused.
func (g *Game) Reset(name string, startLevel int) bool {
	if g.state == Running || g.state == Paused {
		return false
	}
	if startLevel < MinStartLevel || startLevel > MaxStartLevel {
		startLevel = MinStartLevel
	}

	g.log.Printf("resetting game name=%q level=%d", name, startLevel)

	g.name = name
	g.score = 0
	g.lines = 0
	g.level = startLevel
	g.current = g.spawn()
	g.next = g.spawn()
	g.stack = stack.New()
	g.state = Running
	g.input.clear()

	g.started = false
	g.firstFrame = false
	g.lastFrame = 0
	g.start = 0
	g.pauseStart = 0
	g.pauseSum = 0

	g.final = ranking.Entry{}
	g.recordID = ""

	g.display.SetBackground(piece.DefaultBackground)
	g.display.UpdateStats(g.score, g.lines, g.level)
	return true
}

// Tick advances the game to ts, a millisecond timestamp that never decreases within a
// session. The first tick after Reset only marks the start of the session. Later ticks do
// work only when more than Interval milliseconds have passed since the last frame.
func (g *Game) Tick(ts uint32) Status {
	if g.state == NotStarted || g.state == Over {
		return Stopped
	}

	if !g.started {
		g.started = true
		g.firstFrame = true
		g.start = ts
		g.lastFrame = ts
		return Continue
	}

	if !g.frameDue(ts) {
		return Continue
	}

	g.controlInput(ts)
	if g.state == Paused {
		g.display.DrawPause()
		return Continue
	}

	skipGravity := g.firstFrame
	g.firstFrame = false

	if !g.step(skipGravity) {
		if g.lockedOut() {
			g.gameOver(ts)
			return Stopped
		}
		g.lock()
	}

	g.display.UpdateDuration(g.Duration(ts))
	g.display.Draw(g.DrawState())
	return Continue
}

// SetInput latches c for the next frame and releases any boost.
func (g *Game) SetInput(c Command) {
	g.input.Set(c)
}

// SetPressed reports whether the key behind the latched command is held down.
func (g *Game) SetPressed(down bool) {
	g.input.Press(down)
}

// Interval is the current minimum time between frames in milliseconds.
func (g *Game) Interval() uint32 {
	level := g.level
	if g.input.Boost {
		level = BoostLevel
	}
	interval := BaseInterval - level*IntervalStep
	if interval < 0 {
		interval = 0
	}
	return uint32(interval)
}

func (g *Game) frameDue(ts uint32) bool {
	if ts <= g.lastFrame || ts-g.lastFrame <= g.Interval() {
		return false
	}
	g.lastFrame = ts
	return true
}

// Duration is the unpaused play time at ts.
func (g *Game) Duration(ts uint32) uint32 {
	if !g.started || ts < g.start {
		return 0
	}
	elapsed := ts - g.start
	if elapsed < g.pauseSum {
		return 0
	}
	return elapsed - g.pauseSum
}

func (g *Game) spawn() piece.Piece {
	return piece.Spawn(g.shapes.NextShape(), g.level)
}

func (g *Game) gameOver(ts uint32) {
	g.state = Over
	g.final = ranking.Entry{
		Name:     g.name,
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.level,
		Duration: g.Duration(ts),
	}
	g.log.Printf("game over name=%q score=%d lines=%d level=%d", g.name, g.score, g.lines, g.level)

	if g.recorder != nil {
		id, err := g.recorder.Record(g.final)
		if err != nil {
			g.log.Printf("recording score failed: %v", err)
		}
		g.recordID = id
		g.final.Time = id
	}

	g.display.DrawGameOver(g.final, g.recordID)
}

func (g *Game) Name() string { return g.name }
func (g *Game) Score() int { return g.score }
func (g *Game) Lines() int { return g.lines }
func (g *Game) Level() int { return g.level }
func (g *Game) State() State { return g.state }
func (g *Game) Input() Latch { return g.input }
func (g *Game) Stack() *stack.Stack { return g.stack }

// Current returns a copy of the active piece.
func (g *Game) Current() piece.Piece { return g.current.Clone() }

// Next returns a copy of the preview piece.
func (g *Game) Next() piece.Piece { return g.next.Clone() }

// Final returns the entry reported at game over.
func (g *Game) Final() ranking.Entry { return g.final }

// RecordID returns what the recorder returned for the final entry.
func (g *Game) RecordID() string { return g.recordID }

// DrawState returns the current frame for a display.
func (g *Game) DrawState() DrawState {
	return DrawState{
		Current: g.current.Clone(),
		Next:    g.next.Clone(),
		Stack:   g.stack,
	}
}

// Snapshot is a read-only summary of a game for inspectors.
type Snapshot struct {
	Name     string
	State    State
	Score    int
	Lines    int
	Level    int
	Current  piece.Piece
	Next     piece.Piece
	Input    Latch
	Interval uint32
	// Duration is the play time as of the last frame.
	Duration  uint32
	Settled   int
	StackRows int
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Name:      g.name,
		State:     g.state,
		Score:     g.score,
		Lines:     g.lines,
		Level:     g.level,
		Current:   g.current.Clone(),
		Next:      g.next.Clone(),
		Input:     g.input,
		Interval:  g.Interval(),
		Duration:  g.Duration(g.lastFrame),
		Settled:   g.stack.Len(),
		StackRows: g.stack.RowCount(),
	}
}
