// Package stack holds the cells that have settled at the bottom of the board.
//
// Cells are stored sparsely by row: a row index maps to the single-cell pieces that
// occupy it, in insertion order, and rows without cells are absent. Clearing complete
// rows rebuilds the whole index.
package stack

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockstack/piece"
	"github.com/zyedidia/generic/mapset"
)

// Stack is the settled-cell store. The zero value is not usable; call New.
type Stack struct {
	rows *intmap.Map[int, []piece.Piece]
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{
		rows: intmap.New[int, []piece.Piece](piece.BoardHeight),
	}
}

// IsFree reports whether no settled cell occupies p.
func (s *Stack) IsFree(p piece.Point) bool {
	row, ok := s.rows.Get(p.Y)
	if !ok {
		return true
	}
	for _, settled := range row {
		for _, cell := range settled.Cells {
			if cell == p {
				return false
			}
		}
	}
	return true
}

// Commit splits p into settled cells and files each one under its row.
func (s *Stack) Commit(p piece.Piece) {
	for _, settled := range piece.Stackify(p) {
		y := settled.Cells[0].Y
		row, _ := s.rows.Get(y)
		s.rows.Put(y, append(row, settled))
	}
}

// ClearCompletedRows removes every row whose cells cover all columns in [0, width) and
// moves the remaining rows down. A row moves by the number of removed rows with a larger
// index. It returns the number of removed rows.
func (s *Stack) ClearCompletedRows(width int) int {
	complete := s.completeRows(width)
	if complete.Size() == 0 {
		return 0
	}

	reduced := intmap.New[int, []piece.Piece](piece.BoardHeight)
	s.rows.ForEach(func(y int, row []piece.Piece) bool {
		if complete.Has(y) {
			return true
		}

		shift := 0
		complete.Each(func(cleared int) {
			if cleared > y {
				shift++
			}
		})

		newY := y + shift
		for i := range row {
			for j := range row[i].Cells {
				row[i].Cells[j].Y = newY
			}
		}
		reduced.Put(newY, row)
		return true
	})

	s.rows = reduced
	return complete.Size()
}

func (s *Stack) completeRows(width int) mapset.Set[int] {
	complete := mapset.New[int]()
	s.rows.ForEach(func(y int, row []piece.Piece) bool {
		columns := mapset.New[int]()
		for _, settled := range row {
			for _, cell := range settled.Cells {
				columns.Put(cell.X)
			}
		}
		for x := 0; x < width; x++ {
			if !columns.Has(x) {
				return true
			}
		}
		complete.Put(y)
		return true
	})
	return complete
}

// Row returns the settled cells of row y in insertion order.
func (s *Stack) Row(y int) []piece.Piece {
	row, _ := s.rows.Get(y)
	return row
}

// Rows calls fn for every non-empty row in unspecified order until fn returns false.
// fn must not modify the stack.
func (s *Stack) Rows(fn func(y int, row []piece.Piece) bool) {
	s.rows.ForEach(fn)
}

// RowIndexes returns the indexes of all non-empty rows in ascending order.
func (s *Stack) RowIndexes() []int {
	indexes := make([]int, 0, s.rows.Len())
	s.rows.ForEach(func(y int, _ []piece.Piece) bool {
		indexes = append(indexes, y)
		return true
	})
	slices.Sort(indexes)
	return indexes
}

// Cells returns every settled piece ordered by row, then by column.
func (s *Stack) Cells() []piece.Piece {
	cells := make([]piece.Piece, 0, s.Len())
	for _, y := range s.RowIndexes() {
		row, _ := s.rows.Get(y)
		cells = append(cells, row...)
	}
	slices.SortStableFunc(cells, func(a, b piece.Piece) int {
		if a.Cells[0].Y != b.Cells[0].Y {
			return a.Cells[0].Y - b.Cells[0].Y
		}
		return a.Cells[0].X - b.Cells[0].X
	})
	return cells
}

// Len returns the number of settled cells.
func (s *Stack) Len() int {
	n := 0
	s.rows.ForEach(func(_ int, row []piece.Piece) bool {
		n += len(row)
		return true
	})
	return n
}

// RowCount returns the number of non-empty rows.
func (s *Stack) RowCount() int {
	return s.rows.Len()
}
