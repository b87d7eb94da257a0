package engine

import "github.com/plus3/blockstack/piece"

// linePoints is the score per level for clearing 1 to 4 rows with one lock.
var linePoints = [...]int{0, 1, 3, 4, 8}

// Points is the score for clearing rows rows with one lock at level.
func Points(rows, level int) int {
	if rows < 0 || rows >= len(linePoints) {
		return 0
	}
	return linePoints[rows] * level
}

// controlInput handles the commands that act even while paused.
func (g *Game) controlInput(ts uint32) {
	switch g.input.Command {
	case CommandPause:
		g.togglePause(ts)
	case CommandDebug:
		if !g.input.Consumed {
			g.input.Consumed = true
			g.dumpDebug()
		}
	}
}

func (g *Game) togglePause(ts uint32) {
	g.log.Printf("toggling pause at %d", ts)
	if g.state == Paused {
		g.pauseSum += ts - g.pauseStart
		g.pauseStart = 0
		g.state = Running
	} else {
		g.pauseStart = ts
		g.state = Paused
	}
	g.input.clear()
}

// step applies gravity and then the latched command. It returns false when the active
// piece cannot fall, in which case the command stays latched.
func (g *Game) step(skipGravity bool) bool {
	if !skipGravity && !g.fall() {
		return false
	}

	command, ok := g.input.take()
	if !ok {
		return true
	}

	switch command {
	case CommandLeft:
		g.shift(-1)
	case CommandRight:
		g.shift(1)
	case CommandRotateLeft:
		g.rotate(g.current.RotateLeft())
	case CommandRotateRight:
		g.rotate(g.current.RotateRight())
	}
	return true
}

func (g *Game) fall() bool {
	for _, c := range g.current.Cells {
		if c.Y >= piece.BoardHeight-1 || !g.stack.IsFree(piece.Point{X: c.X, Y: c.Y + 1}) {
			return false
		}
	}
	g.current.Translate(0, 1)
	return true
}

func (g *Game) shift(dx int) bool {
	for _, c := range g.current.Cells {
		x := c.X + dx
		if x < 0 || x >= piece.BoardWidth || !g.stack.IsFree(piece.Point{X: x, Y: c.Y}) {
			return false
		}
	}
	g.current.Translate(dx, 0)
	return true
}

// rotate accepts a rotated layout only if every cell lies strictly inside the board.
// Column 0 and row 0 are never valid rotation targets.
func (g *Game) rotate(cells []piece.Point) bool {
	for _, c := range cells {
		inside := c.X > 0 && c.X < piece.BoardWidth && c.Y > 0 && c.Y < piece.BoardHeight
		if !inside || !g.stack.IsFree(c) {
			return false
		}
	}
	g.current.Apply(cells)
	return true
}

func (g *Game) lockedOut() bool {
	for _, c := range g.current.Cells {
		if c.Y == 0 {
			return true
		}
	}
	return false
}

func (g *Game) lock() {
	g.stack.Commit(g.current)
	if rows := g.stack.ClearCompletedRows(piece.BoardWidth); rows > 0 {
		g.rowsCleared(rows)
	}
	g.current = g.next
	g.next = g.spawn()
}

// rowsCleared advances the level before scoring, so the points use the new level.
func (g *Game) rowsCleared(rows int) {
	g.lines += rows
	if g.lines > g.level*RowsPerLevel-1 {
		g.levelUp()
	}
	g.score += Points(rows, g.level)
	g.display.UpdateStats(g.score, g.lines, g.level)
}

func (g *Game) levelUp() {
	g.level++
	g.log.Printf("level up to %d", g.level)
	g.display.SetBackground(piece.PaletteFor(g.level).Background)
	g.next.Recolor(g.level)
}

func (g *Game) dumpDebug() {
	g.log.Printf("---- debug: %s score=%d lines=%d level=%d ----", g.state, g.score, g.lines, g.level)
	g.log.Printf("current piece (%s):", g.current.Shape)
	for _, c := range g.current.Cells {
		g.log.Printf("  x: %d, y: %d", c.X, c.Y)
	}
	g.log.Printf("stack:")
	for _, settled := range g.stack.Cells() {
		for _, c := range settled.Cells {
			g.log.Printf("  x: %d, y: %d", c.X, c.Y)
		}
	}
}
