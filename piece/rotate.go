package piece

type direction int

const (
	left direction = iota
	right
)

// Bars of three cells through the pivot. A horizontal piece rotates into a vertical bar
// and a vertical piece into a horizontal one.
var (
	horizontalBar = [3]Point{{-1, 0}, {0, 0}, {1, 0}}
	verticalBar   = [3]Point{{0, -1}, {0, 0}, {0, 1}}
)

// extensionRule gives the new extension offset of a Tee or L shape. The first entry of
// each pair applies when the current extension lies beyond the pivot (below it for a
// horizontal piece, right of it for a vertical one), the second entry otherwise.
type extensionRule struct {
	fromHorizontal [2]Point
	fromVertical   [2]Point
}

// extensionRules is indexed by shape, then by rotation direction.
var extensionRules = map[Shape][2]extensionRule{
	Tee: {
		left: {
			fromHorizontal: [2]Point{{1, 0}, {-1, 0}},
			fromVertical:   [2]Point{{0, -1}, {0, 1}},
		},
		right: {
			fromHorizontal: [2]Point{{-1, 0}, {1, 0}},
			fromVertical:   [2]Point{{0, 1}, {0, -1}},
		},
	},
	LLeft: {
		left: {
			fromHorizontal: [2]Point{{1, 1}, {-1, -1}},
			fromVertical:   [2]Point{{1, -1}, {-1, 1}},
		},
		right: {
			fromHorizontal: [2]Point{{-1, -1}, {1, 1}},
			fromVertical:   [2]Point{{-1, 1}, {1, -1}},
		},
	},
	LRight: {
		left: {
			fromHorizontal: [2]Point{{1, -1}, {-1, 1}},
			fromVertical:   [2]Point{{-1, -1}, {1, 1}},
		},
		right: {
			fromHorizontal: [2]Point{{-1, 1}, {1, -1}},
			fromVertical:   [2]Point{{1, 1}, {-1, -1}},
		},
	},
}

// Step shapes toggle between two layouts; rotation direction does not matter.
var (
	stepLeftFromHorizontal  = [4]Point{{0, 1}, {0, 0}, {1, 0}, {1, -1}}
	stepLeftFromVertical    = [4]Point{{1, 0}, {0, 0}, {0, -1}, {-1, -1}}
	stepRightFromHorizontal = [4]Point{{0, 1}, {0, 0}, {-1, 0}, {-1, -1}}
	stepRightFromVertical   = [4]Point{{1, 0}, {0, 0}, {1, -1}, {2, -1}}
	longHorizontal          = [4]Point{{-1, 0}, {0, 0}, {1, 0}, {2, 0}}
	longVertical            = [4]Point{{0, -1}, {0, 0}, {0, 1}, {0, 2}}
)

// RotateLeft returns the candidate cells of p after a left rotation. The piece itself
// is not modified; callers validate the layout and then Apply it.
func (p Piece) RotateLeft() []Point {
	return p.rotate(left)
}

// RotateRight returns the candidate cells of p after a right rotation.
func (p Piece) RotateRight() []Point {
	return p.rotate(right)
}

func (p Piece) rotate(dir direction) []Point {
	if len(p.Cells) != 4 {
		return append([]Point(nil), p.Cells...)
	}

	switch p.Shape {
	case Long:
		// vertical when the first cell shares the pivot's column
		if p.Cells[0].X == p.Pivot().X {
			return p.layout(longHorizontal)
		}
		return p.layout(longVertical)
	case StepLeft:
		if p.horizontal() {
			return p.layout(stepLeftFromHorizontal)
		}
		return p.layout(stepLeftFromVertical)
	case StepRight:
		if p.horizontal() {
			return p.layout(stepRightFromHorizontal)
		}
		return p.layout(stepRightFromVertical)
	case Tee, LLeft, LRight:
		return p.layout(p.barWithExtension(extensionRules[p.Shape][dir]))
	default:
		// Quad and Settled pieces look the same in every orientation.
		return append([]Point(nil), p.Cells...)
	}
}

func (p Piece) horizontal() bool {
	return p.Cells[0].Y == p.Pivot().Y
}

// barWithExtension builds the three-in-line bar crossing the pivot plus the extension
// chosen by rule.
func (p Piece) barWithExtension(rule extensionRule) [4]Point {
	pivot, extension := p.Pivot(), p.Cells[3]

	var offsets [4]Point
	if p.horizontal() {
		copy(offsets[:3], verticalBar[:])
		if extension.Y > pivot.Y {
			offsets[3] = rule.fromHorizontal[0]
		} else {
			offsets[3] = rule.fromHorizontal[1]
		}
		return offsets
	}

	copy(offsets[:3], horizontalBar[:])
	if extension.X > pivot.X {
		offsets[3] = rule.fromVertical[0]
	} else {
		offsets[3] = rule.fromVertical[1]
	}
	return offsets
}

// layout places pivot-relative offsets on the board.
func (p Piece) layout(offsets [4]Point) []Point {
	pivot := p.Pivot()
	cells := make([]Point, len(offsets))
	for i, offset := range offsets {
		cells[i] = pivot.Add(offset)
	}
	return cells
}
