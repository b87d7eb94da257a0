package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/ranking"
)

func (in *Inspector) renderGameState(g *engine.Game) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 320), imgui.CondOnce)

	if !imgui.BeginV("Game State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := g.Snapshot()

	imgui.Text(fmt.Sprintf("Player: %s", snap.Name))
	imgui.Text(fmt.Sprintf("State: %s", snap.State))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Lines: %d", snap.Lines))
	imgui.Text(fmt.Sprintf("Level: %d", snap.Level))
	imgui.Text(fmt.Sprintf("Duration: %s", ranking.FormatDuration(snap.Duration)))
	imgui.Text(fmt.Sprintf("Frame Interval: %d ms", snap.Interval))
	imgui.Separator()

	imgui.Text(fmt.Sprintf("Input: %s consumed=%t boost=%t", snap.Input.Command, snap.Input.Consumed, snap.Input.Boost))
	imgui.Separator()

	pieceTree("Current Piece", snap.Current)
	pieceTree("Next Piece", snap.Next)

	imgui.Separator()
	if imgui.Button("Pause / Resume") {
		g.SetInput(engine.CommandPause)
	}
	imgui.SameLine()
	if imgui.Button("Dump To Log") {
		g.SetInput(engine.CommandDebug)
	}

	imgui.End()
}

func pieceTree(label string, p piece.Piece) {
	if !imgui.TreeNodeStr(label) {
		return
	}

	colorText(p.Primary, fmt.Sprintf("■ %s", p.Primary))
	if !p.Flat() {
		imgui.SameLine()
		colorText(p.Secondary, fmt.Sprintf("■ %s", p.Secondary))
	}
	imgui.Text(fmt.Sprintf("Shape: %s", p.Shape))
	imgui.Text(fmt.Sprintf("Cells: %s", formatCells(p.Cells)))
	imgui.Text(fmt.Sprintf("Pivot: %s", p.Pivot()))

	imgui.TreePop()
}

func colorText(c piece.Color, text string) {
	r, g, b := c.RGB255()
	imgui.PushStyleColorVec4(imgui.ColText, imgui.NewVec4(
		float32(r)/255.0,
		float32(g)/255.0,
		float32(b)/255.0,
		1.0,
	))
	imgui.Text(text)
	imgui.PopStyleColor()
}

func formatCells(cells []piece.Point) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
