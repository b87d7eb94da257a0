package engine_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/ranking"
)

func TestNewGameIsNotStarted(t *testing.T) {
	g := engine.New(engine.Config{})

	assert.Equal(t, engine.NotStarted, g.State())
	assert.Equal(t, engine.Stopped, g.Tick(1000))
	assert.Equal(t, engine.Stopped, g.Tick(5000))
	assert.Equal(t, engine.NotStarted, g.State())
}

func TestResetStartLevel(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{requested: 1, want: 1},
		{requested: 5, want: 5},
		{requested: 9, want: 9},
		{requested: 0, want: 1},
		{requested: -3, want: 1},
		{requested: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level %d", tt.requested), func(t *testing.T) {
			display := &recordingDisplay{}
			g := engine.New(engine.Config{Shapes: engine.Cycle(0), Display: display})

			require.True(t, g.Reset("ada", tt.requested))

			assert.Equal(t, tt.want, g.Level())
			assert.Equal(t, engine.Running, g.State())
			assert.Equal(t, []piece.Color{piece.DefaultBackground}, display.backgrounds)
			assert.Equal(t, [][3]int{{0, 0, tt.want}}, display.stats)
			assert.Equal(t, piece.Spawn(0, tt.want), g.Current())
			assert.Equal(t, engine.Latch{Command: engine.CommandNone, Consumed: true}, g.Input())
		})
	}
}

func TestResetRejectedWhileRunning(t *testing.T) {
	h := newHarness(t, 3, 0)
	h.frame()

	assert.False(t, h.game.Reset("other", 1))
	assert.Equal(t, "tester", h.game.Name())
	assert.Equal(t, 3, h.game.Level())

	h.game.SetInput(engine.CommandPause)
	h.frame()
	require.Equal(t, engine.Paused, h.game.State())
	assert.False(t, h.game.Reset("other", 1))
}

func TestFrameGate(t *testing.T) {
	display := &recordingDisplay{}
	g := engine.New(engine.Config{Shapes: engine.Cycle(0), Display: display})
	g.Reset("ada", 1)

	assert.Equal(t, engine.Continue, g.Tick(1000))
	assert.Zero(t, display.draws, "the first tick only marks the start")

	g.Tick(1450)
	assert.Zero(t, display.draws, "exactly one interval is not enough")

	g.Tick(1451)
	assert.Equal(t, 1, display.draws)

	g.Tick(1451)
	g.Tick(1200)
	assert.Equal(t, 1, display.draws, "repeated and earlier timestamps are ignored")

	g.Tick(1901)
	assert.Equal(t, 1, display.draws)

	g.Tick(1902)
	assert.Equal(t, 2, display.draws)
	assert.Equal(t, []uint32{451, 902}, display.durations)
}

func TestInterval(t *testing.T) {
	tests := []struct {
		name  string
		level int
		input func(g *engine.Game)
		want  uint32
	}{
		{"level 1", 1, func(g *engine.Game) {}, 450},
		{"level 9", 9, func(g *engine.Game) {}, 50},
		{"boost", 1, func(g *engine.Game) {
			g.SetInput(engine.CommandDown)
			g.SetPressed(true)
		}, 100},
		{"boost ignores level", 9, func(g *engine.Game) {
			g.SetInput(engine.CommandDown)
			g.SetPressed(true)
		}, 100},
		{"released", 1, func(g *engine.Game) {
			g.SetInput(engine.CommandDown)
			g.SetPressed(true)
			g.SetPressed(false)
		}, 450},
		{"other key held", 1, func(g *engine.Game) {
			g.SetInput(engine.CommandLeft)
			g.SetPressed(true)
		}, 450},
		{"new input releases boost", 1, func(g *engine.Game) {
			g.SetInput(engine.CommandDown)
			g.SetPressed(true)
			g.SetInput(engine.CommandDown)
		}, 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := engine.New(engine.Config{Shapes: engine.Cycle(0)})
			g.Reset("ada", tt.level)
			tt.input(g)
			assert.Equal(t, tt.want, g.Interval())
		})
	}
}

func TestBoostShortensFrames(t *testing.T) {
	display := &recordingDisplay{}
	g := engine.New(engine.Config{Shapes: engine.Cycle(0), Display: display})
	g.Reset("ada", 1)
	g.Tick(1000)

	g.SetInput(engine.CommandDown)
	g.SetPressed(true)
	g.Tick(1101)
	assert.Equal(t, 1, display.draws)

	g.SetPressed(false)
	g.Tick(1202)
	assert.Equal(t, 1, display.draws)
}

func TestFirstFrameSkipsGravity(t *testing.T) {
	h := newHarness(t, 1, 0)
	spawned := h.game.Current()

	h.frame()
	assert.Equal(t, spawned.Cells, h.game.Current().Cells)

	h.frame()
	assert.Equal(t, fallen(spawned).Cells, h.game.Current().Cells)
}

func TestLockOutOnlyAfterFirstFrame(t *testing.T) {
	h := newHarness(t, 1, 0)
	block(h.game.Stack(),
		piece.Point{X: 7, Y: 1}, piece.Point{X: 8, Y: 1},
		piece.Point{X: 9, Y: 1}, piece.Point{X: 10, Y: 1})

	assert.Equal(t, engine.Continue, h.frame())
	assert.Equal(t, engine.Running, h.game.State())
	assert.Equal(t, 1, h.display.draws)

	assert.Equal(t, engine.Stopped, h.frame())
	assert.Equal(t, engine.Over, h.game.State())

	want := ranking.Entry{Name: "tester", Level: 1, Duration: 2 * frameStep}
	require.Len(t, h.recorder.entries, 1)
	assert.Equal(t, want, h.recorder.entries[0])

	want.Time = "id-1"
	assert.Equal(t, []string{"id-1"}, h.display.ids)
	assert.Equal(t, want, h.display.gameOvers[0])
	assert.Equal(t, want, h.game.Final())
	assert.Equal(t, "id-1", h.game.RecordID())
	assert.Equal(t, 1, h.display.draws, "game over does not draw a frame")

	assert.Equal(t, engine.Stopped, h.frame())
	assert.Len(t, h.recorder.entries, 1)
	assert.Len(t, h.display.gameOvers, 1)
}

func TestRecorderFailureStillEndsGame(t *testing.T) {
	var logs bytes.Buffer
	display := &recordingDisplay{}
	g := engine.New(engine.Config{
		Shapes:   engine.Cycle(0),
		Display:  display,
		Recorder: &memoryRecorder{fail: true},
		Logger:   log.New(&logs, "", 0),
	})
	g.Reset("ada", 1)
	block(g.Stack(), piece.Point{X: 8, Y: 1})

	g.Tick(0)
	g.Tick(1000)
	status := g.Tick(2000)

	assert.Equal(t, engine.Stopped, status)
	assert.Equal(t, engine.Over, g.State())
	assert.Empty(t, g.RecordID())
	assert.Equal(t, []string{""}, display.ids)
	assert.Contains(t, logs.String(), "recording score failed: leaderboard unavailable")
}

func TestRecorderSaveFailureKeepsID(t *testing.T) {
	var logs bytes.Buffer
	display := &recordingDisplay{}
	recorder := &memoryRecorder{saveErr: errors.New("disk full")}
	g := engine.New(engine.Config{
		Shapes:   engine.Cycle(0),
		Display:  display,
		Recorder: recorder,
		Logger:   log.New(&logs, "", 0),
	})
	g.Reset("ada", 1)
	block(g.Stack(), piece.Point{X: 8, Y: 1})

	g.Tick(0)
	g.Tick(1000)
	g.Tick(2000)

	require.Equal(t, engine.Over, g.State())
	assert.Len(t, recorder.entries, 1)
	assert.Equal(t, "id-1", g.RecordID())
	assert.Equal(t, "id-1", g.Final().Time)
	assert.Equal(t, []string{"id-1"}, display.ids)
	assert.Contains(t, logs.String(), "recording score failed: disk full")
}

func TestResetAfterGameOver(t *testing.T) {
	h := newHarness(t, 4, 0)
	block(h.game.Stack(), piece.Point{X: 8, Y: 1})
	h.frame()
	h.frame()
	require.Equal(t, engine.Over, h.game.State())

	require.True(t, h.game.Reset("again", 2))

	assert.Equal(t, engine.Running, h.game.State())
	assert.Equal(t, 0, h.game.Stack().Len())
	assert.Empty(t, h.game.RecordID())

	h.game.Tick(50_000)
	h.game.Tick(51_000)
	assert.Equal(t, piece.Spawn(0, 2).Cells, h.game.Current().Cells, "first frame of the new session skips gravity")
	assert.Equal(t, uint32(1000), h.display.durations[len(h.display.durations)-1])
}

func TestLockPromotesNextPiece(t *testing.T) {
	h := newHarness(t, 1, 2, 0)
	require.Equal(t, piece.Quad, h.game.Current().Shape)
	require.Equal(t, piece.Long, h.game.Next().Shape)

	for i := 0; i < 40 && h.game.Stack().Len() == 0; i++ {
		h.frame()
	}

	require.Equal(t, 4, h.game.Stack().Len())
	for _, x := range []int{7, 8} {
		for _, y := range []int{28, 29} {
			assert.False(t, h.game.Stack().IsFree(piece.Point{X: x, Y: y}))
		}
	}
	assert.Equal(t, piece.Spawn(0, 1), h.game.Current())
	assert.Equal(t, piece.Quad, h.game.Next().Shape)
	assert.Equal(t, h.game.Current(), h.display.last.Current)
	assert.Equal(t, engine.Running, h.game.State())
}

func TestScoring(t *testing.T) {
	tests := []struct {
		rows      int
		selector  int
		fill      []int
		skip      []int
		wantScore int
	}{
		{rows: 1, selector: 2, fill: []int{29}, skip: []int{7, 8}, wantScore: 2},
		{rows: 2, selector: 2, fill: []int{28, 29}, skip: []int{7, 8}, wantScore: 6},
		{rows: 3, selector: 0, fill: []int{27, 28, 29}, skip: []int{8}, wantScore: 8},
		{rows: 4, selector: 0, fill: []int{26, 27, 28, 29}, skip: []int{8}, wantScore: 16},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d rows", tt.rows), func(t *testing.T) {
			h := newHarness(t, 2, tt.selector)
			fillRows(h.game.Stack(), tt.fill, tt.skip...)

			if tt.selector == 0 {
				dropLongIntoColumn8(t, h)
			} else {
				for i := 0; i < 40 && h.game.Lines() == 0; i++ {
					h.frame()
				}
			}

			assert.Equal(t, tt.rows, h.game.Lines())
			assert.Equal(t, tt.wantScore, h.game.Score())
			assert.Equal(t, 2, h.game.Level())
			assert.Equal(t, [3]int{tt.wantScore, tt.rows, 2}, h.display.lastStats())
			assert.Equal(t, tt.wantScore, engine.Points(tt.rows, 2))
		})
	}
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 0, engine.Points(0, 5))
	assert.Equal(t, 5, engine.Points(1, 5))
	assert.Equal(t, 40, engine.Points(4, 5))
	assert.Equal(t, 0, engine.Points(5, 5))
	assert.Equal(t, 0, engine.Points(-1, 5))
}

func TestLevelUp(t *testing.T) {
	h := newHarness(t, 1, 0)

	wantStats := [][3]int{{8, 4, 1}, {16, 8, 1}, {32, 12, 2}}
	for round, want := range wantStats {
		fillRows(h.game.Stack(), []int{26, 27, 28, 29}, 8)
		dropLongIntoColumn8(t, h)

		require.Equal(t, 0, h.game.Stack().Len(), "round %d", round)
		assert.Equal(t, want, h.display.lastStats(), "round %d", round)
	}

	assert.Equal(t, 2, h.game.Level())
	assert.Equal(t, []piece.Color{piece.DefaultBackground, piece.PaletteFor(2).Background}, h.display.backgrounds)

	// the piece that was waiting when the level changed has been repainted
	levelTwo := piece.Spawn(0, 2)
	assert.Equal(t, levelTwo.Primary, h.game.Current().Primary)
	assert.Equal(t, levelTwo.Secondary, h.game.Current().Secondary)
	assert.Equal(t, levelTwo, h.game.Next())
	assert.NotEqual(t, piece.Spawn(0, 1).Primary, levelTwo.Primary)
}

func TestMovementIsAllOrNothing(t *testing.T) {
	for selector := 0; selector < piece.ShapeCount; selector++ {
		shape := piece.Spawn(selector, 1).Shape

		t.Run(shape.String(), func(t *testing.T) {
			t.Run("left wall", func(t *testing.T) {
				h := newHarness(t, 1, selector)
				for i := 0; i < 12 && minX(h.game.Current()) > 0; i++ {
					h.game.SetInput(engine.CommandLeft)
					h.frame()
				}
				require.Equal(t, 0, minX(h.game.Current()))

				want := fallen(h.game.Current())
				h.game.SetInput(engine.CommandLeft)
				h.frame()
				assert.Equal(t, want.Cells, h.game.Current().Cells)
			})

			t.Run("right wall", func(t *testing.T) {
				h := newHarness(t, 1, selector)
				for i := 0; i < 12 && maxX(h.game.Current()) < piece.BoardWidth-1; i++ {
					h.game.SetInput(engine.CommandRight)
					h.frame()
				}
				require.Equal(t, piece.BoardWidth-1, maxX(h.game.Current()))

				want := fallen(h.game.Current())
				h.game.SetInput(engine.CommandRight)
				h.frame()
				assert.Equal(t, want.Cells, h.game.Current().Cells)
			})

			t.Run("settled cell", func(t *testing.T) {
				h := newHarness(t, 1, selector)
				h.frame()
				h.frame()

				want := fallen(h.game.Current())
				var blocker piece.Point
				for _, c := range want.Cells {
					left := piece.Point{X: c.X - 1, Y: c.Y}
					if !contains(want.Cells, left) {
						blocker = left
						break
					}
				}
				block(h.game.Stack(), blocker)

				h.game.SetInput(engine.CommandLeft)
				h.frame()
				assert.Equal(t, want.Cells, h.game.Current().Cells)
			})

			t.Run("rotation into row 0", func(t *testing.T) {
				h := newHarness(t, 1, selector)
				spawned := h.game.Current()

				h.game.SetInput(engine.CommandRotateLeft)
				h.frame()
				assert.Equal(t, spawned.Cells, h.game.Current().Cells)
			})

			t.Run("rotation onto settled cell", func(t *testing.T) {
				if shape == piece.Quad {
					t.Skip("quad rotation never changes its cells")
				}
				h := newHarness(t, 1, selector)
				for i := 0; i < 4; i++ {
					h.frame()
				}

				current := h.game.Current()
				want := fallen(current)
				candidate := want.RotateRight()
				blocked := false
				for _, c := range candidate {
					require.True(t, c.X > 0 && c.X < piece.BoardWidth && c.Y > 0, "candidate %v", candidate)
					if !blocked && !contains(want.Cells, c) && !contains(current.Cells, c) {
						block(h.game.Stack(), c)
						blocked = true
					}
				}
				require.True(t, blocked)

				h.game.SetInput(engine.CommandRotateRight)
				h.frame()
				assert.Equal(t, want.Cells, h.game.Current().Cells)
			})

			t.Run("rotation accepted", func(t *testing.T) {
				h := newHarness(t, 1, selector)
				for i := 0; i < 4; i++ {
					h.frame()
				}

				want := fallen(h.game.Current()).RotateRight()
				h.game.SetInput(engine.CommandRotateRight)
				h.frame()
				assert.Equal(t, want, h.game.Current().Cells)
			})
		})
	}
}

func TestInputIsAppliedOnce(t *testing.T) {
	h := newHarness(t, 1, 0)
	h.frame()

	h.game.SetInput(engine.CommandLeft)
	h.frame()
	assert.Equal(t, 6, minX(h.game.Current()))
	assert.True(t, h.game.Input().Consumed)

	h.frame()
	assert.Equal(t, 6, minX(h.game.Current()))
	assert.Equal(t, 2, h.game.Current().Pivot().Y)
}

func TestLatestInputWins(t *testing.T) {
	h := newHarness(t, 1, 0)
	h.frame()

	h.game.SetInput(engine.CommandLeft)
	h.game.SetInput(engine.CommandRight)
	h.frame()

	assert.Equal(t, 8, minX(h.game.Current()))
}

func TestUnknownCommandIsNeutral(t *testing.T) {
	h := newHarness(t, 1, 0)
	h.frame()
	want := fallen(h.game.Current())

	h.game.SetInput(engine.Command('z'))
	h.frame()

	assert.Equal(t, want.Cells, h.game.Current().Cells)
	assert.Equal(t, engine.Running, h.game.State())
}

func TestInputWaitsWhileBlocked(t *testing.T) {
	h := newHarness(t, 1, 2, 2)
	for i := 0; i < 29; i++ {
		h.frame()
	}
	require.Equal(t, 29, h.game.Current().Cells[3].Y)

	h.game.SetInput(engine.CommandLeft)
	h.frame()
	require.Equal(t, 4, h.game.Stack().Len())
	assert.False(t, h.game.Input().Consumed, "a lock leaves the command for the next piece")

	h.frame()
	assert.Equal(t, 6, minX(h.game.Current()))
}

func TestPauseExcludedFromDuration(t *testing.T) {
	h := newHarness(t, 1, 0)
	spawned := h.game.Current()
	h.frame() // 2000

	h.game.SetInput(engine.CommandPause)
	h.frame() // 3000
	assert.Equal(t, engine.Paused, h.game.State())
	assert.Equal(t, engine.Latch{Command: engine.CommandNone, Consumed: true}, h.game.Input())
	assert.Equal(t, 1, h.display.pauses)

	h.game.SetInput(engine.CommandLeft)
	h.frame() // 4000
	assert.Equal(t, 2, h.display.pauses)
	assert.Equal(t, 1, h.display.draws)
	assert.Equal(t, spawned.Cells, h.game.Current().Cells)

	h.game.SetInput(engine.CommandPause)
	h.frame() // 5000
	assert.Equal(t, engine.Running, h.game.State())
	assert.Equal(t, 2, h.display.draws)
	assert.Equal(t, fallen(spawned).Cells, h.game.Current().Cells)
	assert.Equal(t, uint32(2000), h.display.durations[len(h.display.durations)-1])

	h.frame() // 6000
	assert.Equal(t, uint32(3000), h.game.Duration(h.ts))
}

func TestDebugDump(t *testing.T) {
	var logs bytes.Buffer
	g := engine.New(engine.Config{Shapes: engine.Cycle(0), Logger: log.New(&logs, "", 0)})
	g.Reset("ada", 1)
	block(g.Stack(), piece.Point{X: 3, Y: 29})

	g.Tick(0)
	g.SetInput(engine.CommandDebug)
	g.Tick(1000)
	g.Tick(2000)

	out := logs.String()
	assert.Equal(t, 1, strings.Count(out, "current piece (Long):"))
	assert.Contains(t, out, "  x: 7, y: 0\n")
	assert.Contains(t, out, "stack:\n  x: 3, y: 29\n")
	assert.True(t, g.Input().Consumed)
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t, 3, 4)
	h.frame()
	h.frame()
	block(h.game.Stack(), piece.Point{X: 0, Y: 29}, piece.Point{X: 1, Y: 28})

	snap := h.game.Snapshot()

	assert.Equal(t, "tester", snap.Name)
	assert.Equal(t, engine.Running, snap.State)
	assert.Equal(t, 3, snap.Level)
	assert.Equal(t, uint32(350), snap.Interval)
	assert.Equal(t, uint32(2000), snap.Duration)
	assert.Equal(t, piece.StepRight, snap.Current.Shape)
	assert.Equal(t, 2, snap.Settled)
	assert.Equal(t, 2, snap.StackRows)

	snap.Current.Cells[0].X = 99
	assert.NotEqual(t, 99, h.game.Current().Cells[0].X)
}

func TestPreviewCell(t *testing.T) {
	var cells []piece.Point
	for _, c := range piece.Spawn(2, 1).Cells {
		cells = append(cells, engine.PreviewCell(c))
	}
	assert.Equal(t, []piece.Point{{X: 3, Y: 4}, {X: 4, Y: 4}, {X: 3, Y: 5}, {X: 4, Y: 5}}, cells)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "paused", engine.Paused.String())
	assert.Equal(t, "unknown", engine.State(42).String())
	assert.Equal(t, "stopped", engine.Stopped.String())
	assert.Equal(t, "rotate-left", engine.CommandRotateLeft.String())
	assert.Equal(t, `unknown('z')`, engine.Command('z').String())
}

func ExampleGame() {
	g := engine.New(engine.Config{Shapes: engine.Cycle(2)})
	g.Reset("ada", 3)

	g.Tick(0)
	fmt.Println(g.State(), g.Interval())

	g.Tick(351)
	fmt.Println(g.Current().Cells)

	g.SetInput(engine.CommandLeft)
	g.Tick(702)
	fmt.Println(g.Current().Cells)

	// Output:
	// running 350
	// [(7,0) (8,0) (7,1) (8,1)]
	// [(6,1) (7,1) (6,2) (7,2)]
}
