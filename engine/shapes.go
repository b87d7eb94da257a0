package engine

import (
	"math/rand/v2"

	"github.com/plus3/blockstack/piece"
)

// ShapeSource picks the selector, in [0, piece.ShapeCount), of every spawned piece.
type ShapeSource interface {
	NextShape() int
}

// ShapeFunc adapts a function to ShapeSource.
type ShapeFunc func() int

func (f ShapeFunc) NextShape() int { return f() }

// RandomShapes picks shapes uniformly. A nil r uses the global generator.
func RandomShapes(r *rand.Rand) ShapeSource {
	if r == nil {
		return ShapeFunc(func() int { return rand.IntN(piece.ShapeCount) })
	}
	return ShapeFunc(func() int { return r.IntN(piece.ShapeCount) })
}

// Cycle repeats selectors in order forever. It panics when selectors is empty.
func Cycle(selectors ...int) ShapeSource {
	if len(selectors) == 0 {
		panic("engine: Cycle needs at least one selector")
	}
	i := 0
	return ShapeFunc(func() int {
		s := selectors[i%len(selectors)]
		i++
		return s
	})
}
