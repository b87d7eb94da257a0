package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/ranking"
)

const (
	margin = 20

	boardX      = margin
	boardY      = margin
	boardWidth  = piece.BoardWidth * engine.BlockSize
	boardHeight = piece.BoardHeight * engine.BlockSize

	previewSize = 10 * engine.BlockSize
	panelX      = boardX + boardWidth + margin
	panelWidth  = 240
	statsY      = boardY + previewSize + margin

	screenWidth  = panelX + panelWidth + margin
	screenHeight = boardY + boardHeight + margin

	lineHeight = 16
)

var (
	canvasColor    = color.White
	textColor      = color.Black
	pauseColor     = color.RGBA{0x00, 0x00, 0xcc, 0xff}
	overColor      = color.RGBA{0xcc, 0x00, 0x00, 0xff}
	highlightColor = color.RGBA{0xff, 0xee, 0x88, 0xff}
)

func fillRect(dst *ebiten.Image, x, y, w, h int, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// drawCell paints one cell of p with its top-left corner at (x, y).
func drawCell(dst *ebiten.Image, p piece.Piece, x, y int) {
	for _, r := range engine.CellRects(p) {
		fillRect(dst, x+r.X, y+r.Y, r.W, r.H, r.Color)
	}
}

func drawPiece(dst *ebiten.Image, p piece.Piece, originX, originY int) {
	for _, c := range p.Cells {
		drawCell(dst, p, originX+c.X*engine.BlockSize, originY+c.Y*engine.BlockSize)
	}
}

func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, x, y, clr)
}

// drawCentered writes s centered on the board, lineOffset lines below its middle.
func drawCentered(dst *ebiten.Image, s string, lineOffset int, clr color.Color) {
	width := len(s) * basicfont.Face7x13.Advance
	x := boardX + (boardWidth-width)/2
	y := boardY + boardHeight/2 + lineOffset*lineHeight
	fillRect(dst, x-6, y-lineHeight+2, width+12, lineHeight+2, canvasColor)
	drawText(dst, s, x, y, clr)
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	d := g.display
	screen.Fill(d.background)
	fillRect(screen, boardX, boardY, boardWidth, boardHeight, canvasColor)

	if !d.drawn {
		return
	}
	if d.state.Stack != nil {
		for _, settled := range d.state.Stack.Cells() {
			drawPiece(screen, settled, boardX, boardY)
		}
	}
	drawPiece(screen, d.state.Current, boardX, boardY)
}

func (g *Game) drawPreview(screen *ebiten.Image) {
	d := g.display
	fillRect(screen, panelX, boardY, previewSize, previewSize, canvasColor)
	if !d.drawn {
		return
	}
	for _, c := range d.state.Next.Cells {
		at := engine.PreviewCell(c)
		drawCell(screen, d.state.Next, panelX+at.X*engine.BlockSize, boardY+at.Y*engine.BlockSize)
	}
}

func (g *Game) drawStats(screen *ebiten.Image) {
	d := g.display
	rows := []string{
		fmt.Sprintf("Player  %s", g.name),
		fmt.Sprintf("Score   %d", d.score),
		fmt.Sprintf("Lines   %d", d.lines),
		fmt.Sprintf("Level   %d", d.level),
		fmt.Sprintf("Time    %s", ranking.FormatDuration(d.duration)),
	}
	fillRect(screen, panelX, statsY, panelWidth, (len(rows)+1)*lineHeight, canvasColor)
	for i, row := range rows {
		drawText(screen, row, panelX+8, statsY+(i+1)*lineHeight, textColor)
	}
}

func (g *Game) drawLeaderboard(screen *ebiten.Image) {
	d := g.display
	top := statsY + 7*lineHeight
	rows := min(len(d.scores), ranking.MaxEntries)
	fillRect(screen, panelX, top, panelWidth, (rows+3)*lineHeight, canvasColor)
	drawText(screen, "LEADERBOARD", panelX+8, top+lineHeight, textColor)

	highlight := d.highlight()
	for i := 0; i < rows; i++ {
		e := d.scores[i]
		y := top + (i+2)*lineHeight
		if i+1 == highlight {
			fillRect(screen, panelX, y-lineHeight+3, panelWidth, lineHeight, highlightColor)
		}
		line := fmt.Sprintf("%2d %-8.8s %6d %3d %2d %s", i+1, e.Name, e.Score, e.Lines, e.Level, ranking.FormatDuration(e.Duration))
		drawText(screen, line, panelX+4, y, textColor)
	}
	drawText(screen, "Enter: new game", panelX+8, top+(rows+2)*lineHeight+lineHeight/2, textColor)
}
