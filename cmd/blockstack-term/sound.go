package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

var sampleRate = beep.SampleRate(44100)

// sound plays short sine tones for game events. A sound that failed to initialize, or
// was muted, stays silent.
type sound struct {
	enabled bool
}

func newSound(enabled bool) *sound {
	if !enabled {
		return &sound{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio initialization failed: %v", err)
		return &sound{}
	}
	return &sound{enabled: true}
}

type note struct {
	freq float64
	dur  time.Duration
}

func (s *sound) play(notes ...note) {
	if !s.enabled {
		return
	}

	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			streamers = append(streamers, beep.Silence(sampleRate.N(n.dur)))
			continue
		}
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			log.Printf("tone %.0fHz: %v", n.freq, err)
			return
		}
		streamers = append(streamers, beep.Take(sampleRate.N(n.dur), sine))
	}
	speaker.Play(beep.Seq(streamers...))
}

// linesCleared rises by one step per cleared row.
func (s *sound) linesCleared(rows int) {
	notes := make([]note, 0, rows)
	for i := 0; i < rows; i++ {
		notes = append(notes, note{freq: 660 + float64(i)*110, dur: 60 * time.Millisecond})
	}
	s.play(notes...)
}

func (s *sound) levelUp() {
	s.play(
		note{freq: 523, dur: 80 * time.Millisecond},
		note{freq: 659, dur: 80 * time.Millisecond},
		note{freq: 784, dur: 80 * time.Millisecond},
		note{freq: 1047, dur: 160 * time.Millisecond},
	)
}

func (s *sound) gameOver() {
	s.play(
		note{freq: 392, dur: 200 * time.Millisecond},
		note{dur: 50 * time.Millisecond},
		note{freq: 330, dur: 200 * time.Millisecond},
		note{dur: 50 * time.Millisecond},
		note{freq: 262, dur: 400 * time.Millisecond},
	)
}

func (s *sound) Close() {
	if s.enabled {
		speaker.Close()
	}
}
