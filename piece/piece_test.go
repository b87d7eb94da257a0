package piece_test

import (
	"fmt"
	"testing"

	"github.com/plus3/blockstack/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnLayouts(t *testing.T) {
	tests := []struct {
		selector  int
		shape     piece.Shape
		cells     []piece.Point
		primary   piece.Color
		secondary piece.Color
	}{
		{0, piece.Long, []piece.Point{{7, 0}, {8, 0}, {9, 0}, {10, 0}}, "#00F", "#009"},
		{1, piece.Tee, []piece.Point{{7, 0}, {8, 0}, {9, 0}, {8, 1}}, "#00F", "#009"},
		{2, piece.Quad, []piece.Point{{7, 0}, {8, 0}, {7, 1}, {8, 1}}, "#009", "#00F"},
		{3, piece.StepLeft, []piece.Point{{7, 0}, {8, 0}, {8, 1}, {9, 1}}, "#00F", "#00F"},
		{4, piece.StepRight, []piece.Point{{7, 1}, {8, 1}, {8, 0}, {9, 0}}, "#009", "#009"},
		{5, piece.LLeft, []piece.Point{{7, 0}, {8, 0}, {9, 0}, {7, 1}}, "#00F", "#00F"},
		{6, piece.LRight, []piece.Point{{7, 0}, {8, 0}, {9, 0}, {9, 1}}, "#009", "#009"},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			p := piece.Spawn(tt.selector, 1)
			assert.Equal(t, tt.shape, p.Shape)
			assert.Equal(t, tt.cells, p.Cells)
			assert.Equal(t, tt.primary, p.Primary)
			assert.Equal(t, tt.secondary, p.Secondary)
			assert.Equal(t, tt.selector, p.Shape.Index())
		})
	}
}

func TestSpawnOutOfRangeSelectorYieldsLRight(t *testing.T) {
	assert.Equal(t, piece.LRight, piece.Spawn(7, 1).Shape)
	assert.Equal(t, piece.LRight, piece.Spawn(-3, 1).Shape)
}

func TestSpawnIsCenteredOnBoard(t *testing.T) {
	for selector := 0; selector < piece.ShapeCount; selector++ {
		p := piece.Spawn(selector, 1)
		assert.Equal(t, piece.Point{X: piece.BoardWidth / 2, Y: p.Pivot().Y}, p.Pivot())
		for _, cell := range p.Cells {
			assert.GreaterOrEqual(t, cell.X, 0)
			assert.Less(t, cell.X, piece.BoardWidth)
			assert.GreaterOrEqual(t, cell.Y, 0)
		}
	}
}

func TestPaletteFor(t *testing.T) {
	tests := []struct {
		level   int
		primary piece.Color
	}{
		{1, "#00F"},
		{2, "#F00"},
		{9, "#090"},
		{10, "#999"},
		{11, "#00F"},
		{19, "#090"},
		{20, "#999"},
		{21, "#00F"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level=%d", tt.level), func(t *testing.T) {
			assert.Equal(t, tt.primary, piece.PaletteFor(tt.level).Primary)
		})
	}
}

func TestPaletteBackgroundMatchesPrimary(t *testing.T) {
	for level := 1; level <= 10; level++ {
		pal := piece.PaletteFor(level)
		assert.Equal(t, pal.Primary, pal.Background)
		assert.NotEqual(t, pal.Primary, pal.Secondary)
	}
}

func TestStackify(t *testing.T) {
	p := piece.Spawn(1, 3)
	settled := piece.Stackify(p)

	require.Len(t, settled, 4)
	for i, s := range settled {
		assert.Equal(t, piece.Settled, s.Shape)
		assert.Equal(t, []piece.Point{p.Cells[i]}, s.Cells)
		assert.Equal(t, p.Primary, s.Primary)
		assert.Equal(t, p.Secondary, s.Secondary)
	}

	// the settled cells do not alias the source piece
	settled[0].Cells[0].X = 99
	assert.Equal(t, 7, p.Cells[0].X)
}

func TestRecolorKeepsCells(t *testing.T) {
	p := piece.Spawn(2, 1)
	before := append([]piece.Point(nil), p.Cells...)

	p.Recolor(2)

	assert.Equal(t, before, p.Cells)
	assert.Equal(t, piece.Quad, p.Shape)
	assert.Equal(t, piece.Color("#900"), p.Primary)
	assert.Equal(t, piece.Color("#F00"), p.Secondary)
}

func TestRecolorIgnoresSettled(t *testing.T) {
	p := piece.Stackify(piece.Spawn(0, 1))[0]
	p.Recolor(4)
	assert.Equal(t, piece.Color("#00F"), p.Primary)
}

func TestTranslateAndClone(t *testing.T) {
	p := piece.Spawn(0, 1)
	c := p.Clone()

	p.Translate(-2, 3)

	assert.Equal(t, []piece.Point{{5, 3}, {6, 3}, {7, 3}, {8, 3}}, p.Cells)
	assert.Equal(t, []piece.Point{{7, 0}, {8, 0}, {9, 0}, {10, 0}}, c.Cells)
}

func TestFlat(t *testing.T) {
	assert.False(t, piece.Spawn(0, 1).Flat())
	assert.True(t, piece.Spawn(3, 1).Flat())
}

func TestColorChannels(t *testing.T) {
	r, g, b := piece.Color("#00F").RGB255()
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})

	r, g, b = piece.Color("#FF0000").RGB255()
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})

	_, _, _, a := piece.Color("not a color").RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "StepLeft", piece.StepLeft.String())
	assert.Equal(t, "Shape(42)", piece.Shape(42).String())
	assert.Equal(t, -1, piece.Settled.Index())
}
