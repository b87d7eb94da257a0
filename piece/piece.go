// Package piece defines the falling pieces of the board: their cells, shapes, colors,
// spawn layouts and the pivot-relative rotation rules of every shape.
package piece

import "fmt"

// Board dimensions in cells. They are fixed at build time.
const (
	BoardWidth  = 16
	BoardHeight = 30
)

// ShapeCount is the number of spawnable shapes. Valid selectors are 0..ShapeCount-1.
const ShapeCount = 7

const halfWidth = BoardWidth / 2

// Point is a cell coordinate. Y grows downward, X grows rightward.
type Point struct {
	X, Y int
}

// Add returns p shifted by the offset d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Shape tags a piece with the rotation rule it follows.
type Shape uint8

const (
	// Settled tags a single cell that has been absorbed into the stack.
	Settled Shape = iota
	Long
	Tee
	Quad
	StepLeft
	StepRight
	LLeft
	LRight
)

var shapeNames = [...]string{
	Settled:   "Settled",
	Long:      "Long",
	Tee:       "Tee",
	Quad:      "Quad",
	StepLeft:  "StepLeft",
	StepRight: "StepRight",
	LLeft:     "LLeft",
	LRight:    "LRight",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// Index returns the spawn selector that produces s, or -1 for Settled.
func (s Shape) Index() int {
	if s == Settled || int(s) >= len(shapeNames) {
		return -1
	}
	return int(s) - 1
}

// Piece is an ordered list of cells with a shape tag and a color pair.
// Cells[1] is the pivot of every four-cell piece; for Tee and the L shapes Cells[3]
// is the extension whose side of the pivot encodes the orientation.
type Piece struct {
	Cells     []Point
	Shape     Shape
	Primary   Color
	Secondary Color
}

// Flat reports whether the piece is drawn with a single fill color.
func (p Piece) Flat() bool {
	return p.Primary == p.Secondary
}

// Pivot returns the rotation anchor of a four-cell piece, or its only cell.
func (p Piece) Pivot() Point {
	if len(p.Cells) > 1 {
		return p.Cells[1]
	}
	if len(p.Cells) == 1 {
		return p.Cells[0]
	}
	return Point{}
}

// Clone returns a copy of p that does not share its cell slice.
func (p Piece) Clone() Piece {
	p.Cells = append([]Point(nil), p.Cells...)
	return p
}

// Translate shifts every cell by (dx, dy).
func (p *Piece) Translate(dx, dy int) {
	for i := range p.Cells {
		p.Cells[i].X += dx
		p.Cells[i].Y += dy
	}
}

// Apply replaces the cells with a validated layout returned by RotateLeft or RotateRight.
func (p *Piece) Apply(cells []Point) {
	p.Cells = append(p.Cells[:0], cells...)
}

// Recolor assigns the colors the piece's shape receives at the given level.
// The cells are left untouched.
func (p *Piece) Recolor(level int) {
	i := p.Shape.Index()
	if i < 0 {
		return
	}
	p.Primary, p.Secondary = spawnRules[i].colors(PaletteFor(level))
}

// spawnRule describes the initial cells of a shape relative to (BoardWidth/2, 0) and
// which palette colors it is painted with.
type spawnRule struct {
	shape  Shape
	cells  [4]Point
	colors func(Palette) (Color, Color)
}

func bordered(pal Palette) (Color, Color)  { return pal.Primary, pal.Secondary }
func inverted(pal Palette) (Color, Color)  { return pal.Secondary, pal.Primary }
func flatLight(pal Palette) (Color, Color) { return pal.Primary, pal.Primary }
func flatDark(pal Palette) (Color, Color)  { return pal.Secondary, pal.Secondary }

var spawnRules = [ShapeCount]spawnRule{
	{shape: Long, cells: [4]Point{{-1, 0}, {0, 0}, {1, 0}, {2, 0}}, colors: bordered},
	{shape: Tee, cells: [4]Point{{-1, 0}, {0, 0}, {1, 0}, {0, 1}}, colors: bordered},
	{shape: Quad, cells: [4]Point{{-1, 0}, {0, 0}, {-1, 1}, {0, 1}}, colors: inverted},
	{shape: StepLeft, cells: [4]Point{{-1, 0}, {0, 0}, {0, 1}, {1, 1}}, colors: flatLight},
	{shape: StepRight, cells: [4]Point{{-1, 1}, {0, 1}, {0, 0}, {1, 0}}, colors: flatDark},
	{shape: LLeft, cells: [4]Point{{-1, 0}, {0, 0}, {1, 0}, {-1, 1}}, colors: flatLight},
	{shape: LRight, cells: [4]Point{{-1, 0}, {0, 0}, {1, 0}, {1, 1}}, colors: flatDark},
}

// Spawn creates a new piece at the top center of the board. Selectors 0..5 map to
// Long, Tee, Quad, StepLeft, StepRight and LLeft; any other value yields LRight.
func Spawn(selector, level int) Piece {
	if selector < 0 || selector >= ShapeCount {
		selector = ShapeCount - 1
	}
	rule := spawnRules[selector]
	origin := Point{X: halfWidth, Y: 0}

	cells := make([]Point, len(rule.cells))
	for i, offset := range rule.cells {
		cells[i] = origin.Add(offset)
	}

	primary, secondary := rule.colors(PaletteFor(level))
	return Piece{
		Cells:     cells,
		Shape:     rule.shape,
		Primary:   primary,
		Secondary: secondary,
	}
}

// Stackify splits a piece into one Settled piece per cell, keeping colors and positions.
func Stackify(p Piece) []Piece {
	settled := make([]Piece, 0, len(p.Cells))
	for _, cell := range p.Cells {
		settled = append(settled, Piece{
			Cells:     []Point{cell},
			Shape:     Settled,
			Primary:   p.Primary,
			Secondary: p.Secondary,
		})
	}
	return settled
}
