package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/ranking"
)

const (
	// cellWidth columns draw one board cell so cells come out roughly square.
	cellWidth = 2

	boardLeft = 1
	boardTop  = 1
	// boardRight and boardBottom are the frame columns and rows after the last cell.
	boardRight  = boardLeft + 1 + piece.BoardWidth*cellWidth
	boardBottom = boardTop + 1 + piece.BoardHeight

	previewSize   = 10
	previewRows   = 4
	previewTop    = boardTop
	panelLeft     = boardRight + 3
	statsTop      = previewTop + previewRows + 3
	helpTop       = statsTop + 7
	scoresTop     = statsTop + 7
	scoresVisible = 15
)

var (
	defaultStyle = tcell.StyleDefault
	labelStyle   = defaultStyle.Foreground(tcell.ColorGray)
	pauseStyle   = defaultStyle.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true)
	overStyle    = defaultStyle.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
)

// termDisplay draws a game onto a tcell screen.
type termDisplay struct {
	screen tcell.Screen
	sound  *sound
	board  ranking.Board
	player string

	background piece.Color
	score      int
	lines      int
	level      int
	duration   uint32
}

func newTermDisplay(screen tcell.Screen, s *sound, board ranking.Board, player string) *termDisplay {
	return &termDisplay{
		screen:     screen,
		sound:      s,
		board:      board,
		player:     player,
		background: piece.DefaultBackground,
		level:      engine.MinStartLevel,
	}
}

func (d *termDisplay) Draw(s engine.DrawState) {
	d.screen.Clear()
	d.drawFrame()

	if s.Stack != nil {
		s.Stack.Rows(func(y int, row []piece.Piece) bool {
			for _, settled := range row {
				for _, c := range settled.Cells {
					d.drawCell(settled, c, boardLeft+1, boardTop+1)
				}
			}
			return true
		})
	}
	for _, c := range s.Current.Cells {
		d.drawCell(s.Current, c, boardLeft+1, boardTop+1)
	}

	d.drawPreview(s.Next)
	d.drawStats()
	d.drawHelp()
	d.screen.Show()
}

func (d *termDisplay) DrawPause() {
	d.drawBanner(" PAUSE ", pauseStyle)
	d.screen.Show()
}

func (d *termDisplay) DrawGameOver(final ranking.Entry, id string) {
	d.sound.gameOver()
	d.drawBanner(" GAME OVER ", overStyle)
	d.clearPanel(helpTop, boardBottom)
	d.drawLeaderboard(id)
	d.screen.Show()
}

// UpdateStats plays a tone when lines were cleared. Resets only ever lower the line
// count, so they stay silent.
func (d *termDisplay) UpdateStats(score, lines, level int) {
	if lines > d.lines {
		if level > d.level {
			d.sound.levelUp()
		} else {
			d.sound.linesCleared(lines - d.lines)
		}
	}
	d.score, d.lines, d.level = score, lines, level
}

func (d *termDisplay) UpdateDuration(ms uint32) {
	d.duration = ms
}

func (d *termDisplay) SetBackground(c piece.Color) {
	d.background = c
}

func tcellColor(c piece.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// cellGlyph returns the two runes and the style of one cell of p. Flat pieces are a solid
// block of color; bordered pieces draw brackets in the primary color over the secondary.
func cellGlyph(p piece.Piece) (left, right rune, style tcell.Style) {
	if p.Flat() {
		return ' ', ' ', defaultStyle.Background(tcellColor(p.Primary))
	}
	return '[', ']', defaultStyle.Foreground(tcellColor(p.Primary)).Background(tcellColor(p.Secondary))
}

func (d *termDisplay) drawCell(p piece.Piece, at piece.Point, originX, originY int) {
	left, right, style := cellGlyph(p)
	x := originX + at.X*cellWidth
	y := originY + at.Y
	d.screen.SetContent(x, y, left, nil, style)
	d.screen.SetContent(x+1, y, right, nil, style)
}

func (d *termDisplay) drawBox(left, top, right, bottom int, style tcell.Style) {
	for x := left + 1; x < right; x++ {
		d.screen.SetContent(x, top, tcell.RuneHLine, nil, style)
		d.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := top + 1; y < bottom; y++ {
		d.screen.SetContent(left, y, tcell.RuneVLine, nil, style)
		d.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	d.screen.SetContent(left, top, tcell.RuneULCorner, nil, style)
	d.screen.SetContent(right, top, tcell.RuneURCorner, nil, style)
	d.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, style)
	d.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

// drawFrame outlines the board in the level's background color.
func (d *termDisplay) drawFrame() {
	d.drawBox(boardLeft, boardTop, boardRight, boardBottom, defaultStyle.Foreground(tcellColor(d.background)))
}

// drawPreview shows the rows of the preview box that a spawned piece can occupy.
func (d *termDisplay) drawPreview(next piece.Piece) {
	right := panelLeft + 1 + previewSize*cellWidth
	d.drawBox(panelLeft, previewTop, right, previewTop+previewRows+1, labelStyle)
	d.drawText(panelLeft+2, previewTop, " NEXT ", labelStyle)

	for _, c := range next.Cells {
		at := engine.PreviewCell(c)
		d.drawCell(next, piece.Point{X: at.X, Y: at.Y - engine.PreviewOffset.Y}, panelLeft+1, previewTop+2)
	}
}

func (d *termDisplay) drawStats() {
	rows := [][2]string{
		{"Player", d.player},
		{"Score", fmt.Sprint(d.score)},
		{"Lines", fmt.Sprint(d.lines)},
		{"Level", fmt.Sprint(d.level)},
		{"Time", ranking.FormatDuration(d.duration)},
	}
	for i, row := range rows {
		d.drawText(panelLeft, statsTop+i, row[0], labelStyle)
		d.drawText(panelLeft+8, statsTop+i, row[1], defaultStyle.Bold(true))
	}
}

func (d *termDisplay) drawHelp() {
	help := []string{
		"a / ←     move left",
		"d / →     move right",
		"q         rotate left",
		"e / ↑     rotate right",
		"s / ↓     drop faster",
		"space     pause",
		"p         debug dump",
		"esc       quit",
	}
	for i, line := range help {
		d.drawText(panelLeft, helpTop+i, line, labelStyle)
	}
}

// drawLeaderboard lists the top entries and highlights the one recorded as id.
func (d *termDisplay) drawLeaderboard(id string) {
	d.drawText(panelLeft, scoresTop, "LEADERBOARD", defaultStyle.Bold(true))

	var entries []ranking.Entry
	if d.board != nil {
		entries = d.board.Entries()
	}
	rank := ranking.Rank(entries, id)

	for i, e := range entries {
		if i == scoresVisible {
			break
		}
		style := defaultStyle
		if i+1 == rank {
			style = style.Reverse(true)
		}
		line := fmt.Sprintf("%2d. %-10.10s %7d %4d %2d %s", i+1, e.Name, e.Score, e.Lines, e.Level, ranking.FormatDuration(e.Duration))
		d.drawText(panelLeft, scoresTop+1+i, line, style)
	}
	if len(entries) == 0 {
		d.drawText(panelLeft, scoresTop+1, "no scores yet", labelStyle)
	}

	d.drawText(panelLeft, boardBottom, "enter: new game   esc: quit", labelStyle)
}

// drawBanner writes text centered over the middle row of the board.
func (d *termDisplay) drawBanner(text string, style tcell.Style) {
	width := len([]rune(text))
	x := boardLeft + 1 + (piece.BoardWidth*cellWidth-width)/2
	d.drawText(x, boardTop+1+piece.BoardHeight/2, text, style)
}

func (d *termDisplay) clearPanel(top, bottom int) {
	w, _ := d.screen.Size()
	for y := top; y <= bottom; y++ {
		for x := panelLeft; x < w; x++ {
			d.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}
}

func (d *termDisplay) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		d.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
