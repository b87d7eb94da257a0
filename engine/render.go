package engine

import "github.com/plus3/blockstack/piece"

const (
	// BlockSize is the edge of one board cell in pixels.
	BlockSize = 15
	// SubBlockSize is the frame width of a bordered cell, and the edge of its center dot.
	SubBlockSize = 3
)

// Rect is a filled rectangle in pixels, relative to the top-left corner of a cell.
type Rect struct {
	X, Y, W, H int
	Color      piece.Color
}

// CellRects returns the rectangles, in paint order, that draw one cell of p. Cells whose
// primary and secondary colors match are a flat square. Otherwise the secondary color
// fills the cell and the primary color draws a frame and a center dot over it.
func CellRects(p piece.Piece) []Rect {
	if p.Flat() {
		return []Rect{{0, 0, BlockSize, BlockSize, p.Primary}}
	}

	edge := BlockSize - SubBlockSize
	return []Rect{
		{0, 0, BlockSize, BlockSize, p.Secondary},
		{0, 0, BlockSize, SubBlockSize, p.Primary},
		{0, edge, BlockSize, SubBlockSize, p.Primary},
		{0, 0, SubBlockSize, BlockSize, p.Primary},
		{edge, 0, SubBlockSize, BlockSize, p.Primary},
		{2 * SubBlockSize, 2 * SubBlockSize, SubBlockSize, SubBlockSize, p.Primary},
	}
}
