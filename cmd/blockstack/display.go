package main

import (
	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/ranking"
)

// screenDisplay keeps what the game last asked to show. Ebiten draws it every frame.
type screenDisplay struct {
	board ranking.Board

	state  engine.DrawState
	drawn  bool
	paused bool

	over     bool
	final    ranking.Entry
	recordID string
	scores   []ranking.Entry

	background piece.Color
	score      int
	lines      int
	level      int
	duration   uint32
}

func newScreenDisplay(board ranking.Board) *screenDisplay {
	return &screenDisplay{
		board:      board,
		background: piece.DefaultBackground,
		level:      engine.MinStartLevel,
	}
}

func (d *screenDisplay) Draw(s engine.DrawState) {
	d.state = s
	d.drawn = true
	d.paused = false
}

func (d *screenDisplay) DrawPause() {
	d.paused = true
}

func (d *screenDisplay) DrawGameOver(final ranking.Entry, id string) {
	d.over = true
	d.paused = false
	d.final = final
	d.recordID = id
	if d.board != nil {
		d.scores = d.board.Entries()
	}
}

func (d *screenDisplay) UpdateStats(score, lines, level int) {
	d.score, d.lines, d.level = score, lines, level
}

func (d *screenDisplay) UpdateDuration(ms uint32) {
	d.duration = ms
}

func (d *screenDisplay) SetBackground(c piece.Color) {
	d.background = c
}

// reset forgets the previous session. The game's own Reset sends fresh stats.
func (d *screenDisplay) reset() {
	d.state = engine.DrawState{}
	d.drawn = false
	d.paused = false
	d.over = false
	d.final = ranking.Entry{}
	d.recordID = ""
	d.scores = nil
}

// highlight is the one-based leaderboard row of the last recorded game, or 0.
func (d *screenDisplay) highlight() int {
	return ranking.Rank(d.scores, d.recordID)
}
