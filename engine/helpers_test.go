package engine_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/ranking"
	"github.com/plus3/blockstack/stack"
)

type recordingDisplay struct {
	draws       int
	pauses      int
	gameOvers   []ranking.Entry
	ids         []string
	stats       [][3]int
	durations   []uint32
	backgrounds []piece.Color
	last        engine.DrawState
}

func (d *recordingDisplay) Draw(s engine.DrawState) {
	d.draws++
	d.last = s
}

func (d *recordingDisplay) DrawPause() {
	d.pauses++
}

func (d *recordingDisplay) DrawGameOver(final ranking.Entry, id string) {
	d.gameOvers = append(d.gameOvers, final)
	d.ids = append(d.ids, id)
}

func (d *recordingDisplay) UpdateStats(score, lines, level int) {
	d.stats = append(d.stats, [3]int{score, lines, level})
}

func (d *recordingDisplay) UpdateDuration(ms uint32) {
	d.durations = append(d.durations, ms)
}

func (d *recordingDisplay) SetBackground(c piece.Color) {
	d.backgrounds = append(d.backgrounds, c)
}

func (d *recordingDisplay) lastStats() [3]int {
	return d.stats[len(d.stats)-1]
}

// memoryRecorder hands out ids "id-1", "id-2", ... A failing recorder stores nothing.
// saveErr keeps the entry and its id but reports a persistence failure.
type memoryRecorder struct {
	entries []ranking.Entry
	fail    bool
	saveErr error
}

func (r *memoryRecorder) Record(e ranking.Entry) (string, error) {
	if r.fail {
		return "", errors.New("leaderboard unavailable")
	}
	r.entries = append(r.entries, e)
	return fmt.Sprintf("id-%d", len(r.entries)), r.saveErr
}

// harness is a running game whose first tick has already been taken at ts.
type harness struct {
	game     *engine.Game
	display  *recordingDisplay
	recorder *memoryRecorder
	ts       uint32
}

// frameStep exceeds every frame interval, so each frame() is an accepted frame.
const frameStep = 1000

func newHarness(t *testing.T, level int, selectors ...int) *harness {
	t.Helper()
	h := &harness{
		display:  &recordingDisplay{},
		recorder: &memoryRecorder{},
		ts:       frameStep,
	}
	h.game = engine.New(engine.Config{
		Shapes:   engine.Cycle(selectors...),
		Display:  h.display,
		Recorder: h.recorder,
	})
	if !h.game.Reset("tester", level) {
		t.Fatal("reset of a new game was rejected")
	}
	h.game.Tick(h.ts)
	return h
}

func (h *harness) frame() engine.Status {
	h.ts += frameStep
	return h.game.Tick(h.ts)
}

func block(s *stack.Stack, points ...piece.Point) {
	s.Commit(piece.Piece{Cells: points, Shape: piece.Quad, Primary: "#999", Secondary: "#999"})
}

// fillRows fills the given rows across the board except for the skipped columns.
func fillRows(s *stack.Stack, rows []int, skip ...int) {
	skipped := map[int]bool{}
	for _, x := range skip {
		skipped[x] = true
	}
	for _, y := range rows {
		for x := 0; x < piece.BoardWidth; x++ {
			if !skipped[x] {
				block(s, piece.Point{X: x, Y: y})
			}
		}
	}
}

// dropLongIntoColumn8 stands the active Long upright in column 8 and lets it fall until
// it locks and clears rows.
func dropLongIntoColumn8(t *testing.T, h *harness) {
	t.Helper()
	for i := 0; i < 5 && h.game.Current().Pivot().Y < 2; i++ {
		h.frame()
	}
	h.game.SetInput(engine.CommandRotateRight)
	h.frame()
	for _, c := range h.game.Current().Cells {
		if c.X != 8 {
			t.Fatalf("long did not stand upright in column 8: %v", h.game.Current().Cells)
		}
	}

	lines := h.game.Lines()
	for i := 0; i < 60 && h.game.Lines() == lines; i++ {
		h.frame()
	}
	if h.game.Lines() == lines {
		t.Fatal("no rows were cleared")
	}
}

func minX(p piece.Piece) int {
	m := p.Cells[0].X
	for _, c := range p.Cells {
		m = min(m, c.X)
	}
	return m
}

func maxX(p piece.Piece) int {
	m := p.Cells[0].X
	for _, c := range p.Cells {
		m = max(m, c.X)
	}
	return m
}

func contains(cells []piece.Point, p piece.Point) bool {
	for _, c := range cells {
		if c == p {
			return true
		}
	}
	return false
}

func fallen(p piece.Piece) piece.Piece {
	p = p.Clone()
	p.Translate(0, 1)
	return p
}
