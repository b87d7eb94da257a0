package engine

import (
	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/ranking"
	"github.com/plus3/blockstack/stack"
)

// PreviewOffset moves a freshly spawned piece into a 10x10 preview box.
var PreviewOffset = piece.Point{X: -4, Y: 4}

// PreviewCell returns where a cell of the next piece is drawn inside the preview box.
func PreviewCell(p piece.Point) piece.Point {
	return p.Add(PreviewOffset)
}

// DrawState is what a display renders for one frame. Stack is the live settled-cell
// store; it must be treated as read-only and is only valid until the next tick.
type DrawState struct {
	Current piece.Piece
	Next    piece.Piece
	Stack   *stack.Stack
}

// Display receives everything a game wants shown. All calls happen on the goroutine
// that calls Tick or Reset.
type Display interface {
	// Draw is called once per accepted frame while the game is running.
	Draw(s DrawState)
	// DrawPause is called once per accepted frame while the game is paused.
	DrawPause()
	// DrawGameOver is called once, after the final entry has been recorded. id is what the
	// recorder returned, or "" when nothing was recorded.
	DrawGameOver(final ranking.Entry, id string)
	UpdateStats(score, lines, level int)
	// UpdateDuration reports the unpaused play time in milliseconds.
	UpdateDuration(ms uint32)
	SetBackground(c piece.Color)
}

// NopDisplay discards everything.
type NopDisplay struct{}

func (NopDisplay) Draw(DrawState) {}
func (NopDisplay) DrawPause() {}
func (NopDisplay) DrawGameOver(ranking.Entry, string) {}
func (NopDisplay) UpdateStats(score, lines, level int) {}
func (NopDisplay) UpdateDuration(uint32) {}
func (NopDisplay) SetBackground(piece.Color) {}

// Recorder stores finished games. It returns an identity for the stored entry. A recorder
// that kept the entry but failed to persist it returns the identity with the error, and
// the game still uses that identity.
// *ranking.Store and *rankhttp.Client implement it.
type Recorder interface {
	Record(e ranking.Entry) (string, error)
}
