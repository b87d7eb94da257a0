package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/piece"
	"github.com/plus3/blockstack/stack"
)

// RowSummary describes one non-empty stack row.
type RowSummary struct {
	Y     int
	Cells int
	// Pattern has one rune per column: '#' for a settled cell, '.' for a free one.
	Pattern string
}

// Summarize returns every non-empty row of s from top to bottom.
func Summarize(s *stack.Stack) []RowSummary {
	indexes := s.RowIndexes()
	rows := make([]RowSummary, 0, len(indexes))
	for _, y := range indexes {
		pattern := []byte(strings.Repeat(".", piece.BoardWidth))
		cells := s.Row(y)
		for _, settled := range cells {
			for _, c := range settled.Cells {
				if c.X >= 0 && c.X < piece.BoardWidth {
					pattern[c.X] = '#'
				}
			}
		}
		rows = append(rows, RowSummary{Y: y, Cells: len(cells), Pattern: string(pattern)})
	}
	return rows
}

func (in *Inspector) renderStack(g *engine.Game) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 360), imgui.CondOnce)

	if !imgui.BeginV("Stack", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := g.Stack()
	imgui.Text(fmt.Sprintf("Settled Cells: %d", s.Len()))
	imgui.Text(fmt.Sprintf("Rows: %d", s.RowCount()))

	imgui.InputTextWithHint("##row", "Row...", &in.stackFilter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		in.stackFilter = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StackTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Row")
		imgui.TableSetupColumn("Cells")
		imgui.TableSetupColumn("Columns")
		imgui.TableHeadersRow()

		for _, row := range Summarize(s) {
			label := fmt.Sprintf("%d", row.Y)
			if in.stackFilter != "" && !strings.Contains(label, in.stackFilter) {
				continue
			}

			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(label)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Cells))
			imgui.TableNextColumn()
			imgui.Text(row.Pattern)
		}

		imgui.EndTable()
	}

	imgui.End()
}
