package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockstack/engine"
)

// tickHistory is a ring of recent tick durations in milliseconds.
type tickHistory struct {
	samples []float32
	index   int
}

func newTickHistory(size int) *tickHistory {
	if size < 1 {
		size = 1
	}
	return &tickHistory{samples: make([]float32, size)}
}

func (h *tickHistory) push(d time.Duration) {
	h.samples[h.index] = float32(d.Seconds() * 1000.0)
	h.index = (h.index + 1) % len(h.samples)
}

func (h *tickHistory) average() float32 {
	var sum float32
	for _, s := range h.samples {
		sum += s
	}
	return sum / float32(len(h.samples))
}

func (in *Inspector) renderTickStats(stats engine.TickStats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 220), imgui.CondOnce)

	if !imgui.BeginV("Tick Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Avg: %s", stats.AvgDuration))
	imgui.Text(fmt.Sprintf("Min/Max: %s / %s", stats.MinDuration, stats.MaxDuration))
	imgui.Text(fmt.Sprintf("Last: %s", stats.LastDuration))
	imgui.Text(fmt.Sprintf("Total: %s", stats.TotalDuration))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Tick Time Graph (ms, avg %.3f)", in.ticks.average()))
	imgui.PlotLinesFloatPtr("##ticktime", &in.ticks.samples[0], int32(len(in.ticks.samples)))

	imgui.End()
}
