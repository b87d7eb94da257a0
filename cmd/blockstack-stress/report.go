package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockstack/engine"
	"github.com/plus3/blockstack/ranking"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Workers  int
	Level    int
	Step     time.Duration
	Seed     uint64

	// Results
	TotalGames     int
	TotalTicks     int64
	TotalFrames    int64
	TotalLines     int
	TotalTime      time.Duration
	TickTime       Stats
	Best           ranking.Entry
	Leaderboard    []ranking.Entry
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats merges the tick timings of several drivers.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Total time.Duration
	Ticks int64
}

func (s *Stats) Merge(t engine.TickStats) {
	if t.Ticks == 0 {
		return
	}
	if s.Ticks == 0 || t.MinDuration < s.Min {
		s.Min = t.MinDuration
	}
	if t.MaxDuration > s.Max {
		s.Max = t.MaxDuration
	}
	s.Total += t.TotalDuration
	s.Ticks += t.Ticks
}

// Combine folds in timings that were already merged from other drivers.
func (s *Stats) Combine(o Stats) {
	s.Merge(engine.TickStats{
		Ticks:         o.Ticks,
		MinDuration:   o.Min,
		MaxDuration:   o.Max,
		TotalDuration: o.Total,
	})
}

func (s *Stats) Finalize() {
	if s.Ticks == 0 {
		return
	}
	s.Avg = s.Total / time.Duration(s.Ticks)
}

// Add folds one worker's result into the report.
func (r *Report) Add(w workerResult) {
	r.TotalTicks += w.Ticks
	r.TotalFrames += w.Frames
	r.TotalLines += w.Lines
	r.TickTime.Combine(w.TickTime)
	if w.Games > 0 && (r.TotalGames == 0 || ranking.Compare(w.Best, r.Best) < 0) {
		r.Best = w.Best
	}
	r.TotalGames += w.Games
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockstack Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Concurrent Games:** {{.Workers}}
- **Starting Level:** {{.Level}}
- **Clock Step:** {{.Step}}
- **Seed:** {{.Seed}}

## Performance Results
- **Games Finished:** {{.TotalGames}}
- **Total Ticks:** {{.TotalTicks}}
- **Total Frames:** {{.TotalFrames}}
- **Lines Cleared:** {{.TotalLines}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{if .TotalGames}}
## Best Game
- {{.Best.Name}}: score {{.Best.Score}}, {{.Best.Lines}} lines, level {{.Best.Level}}, {{.Best.Duration | playtime}} played

## Leaderboard
| # | Name | Score | Lines | Level | Time |
|---|------|-------|-------|-------|------|
{{range $i, $e := .Leaderboard}}| {{inc $i}} | {{$e.Name}} | {{$e.Score}} | {{$e.Lines}} | {{$e.Level}} | {{$e.Duration | playtime}} |
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"inc": func(i int) int {
			return i + 1
		},
		"playtime": func(ms uint32) string {
			return ranking.FormatDuration(ms)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
