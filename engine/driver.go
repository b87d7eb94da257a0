package engine

import (
	"context"
	"time"
)

// Clock supplies tick timestamps in milliseconds.
type Clock interface {
	Now() uint32
}

// MonotonicClock counts milliseconds since it was created.
type MonotonicClock struct {
	origin time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

func (c *MonotonicClock) Now() uint32 {
	return uint32(time.Since(c.origin).Milliseconds())
}

// StepClock is a synthetic clock that only moves when told to.
type StepClock struct {
	ms uint32
}

func (c *StepClock) Now() uint32 {
	return c.ms
}

// Advance moves the clock forward by ms milliseconds.
func (c *StepClock) Advance(ms uint32) {
	c.ms += ms
}

// TickStats provides timing statistics about Driver ticks.
type TickStats struct {
	Ticks         int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type tickStatsInternal struct {
	ticks         int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

// Driver ticks a game from a clock.
type Driver struct {
	game  *Game
	clock Clock
	stats tickStatsInternal
}

// NewDriver creates a driver for game reading timestamps from clock.
func NewDriver(game *Game, clock Clock) *Driver {
	return &Driver{
		game:  game,
		clock: clock,
		stats: tickStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
}

func (d *Driver) Game() *Game {
	return d.game
}

// Once ticks the game with the current clock reading.
func (d *Driver) Once() Status {
	ts := d.clock.Now()

	start := time.Now()
	status := d.game.Tick(ts)
	duration := time.Since(start)

	d.stats.ticks++
	d.stats.lastDuration = duration
	d.stats.totalDuration += duration
	if duration < d.stats.minDuration {
		d.stats.minDuration = duration
	}
	if duration > d.stats.maxDuration {
		d.stats.maxDuration = duration
	}

	return status
}

// Run ticks the game at the given interval and applies inputs between ticks, all on the
// calling goroutine. It returns nil once the game stops and the context's error when the
// context is cancelled first. A nil or closed inputs channel is ignored.
func (d *Driver) Run(ctx context.Context, interval time.Duration, inputs <-chan Input) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-inputs:
			if !ok {
				inputs = nil
				continue
			}
			in.Apply(d.game)
		case <-ticker.C:
			if d.Once() == Stopped {
				return nil
			}
		}
	}
}

// Stats returns timing statistics about the ticks so far.
func (d *Driver) Stats() TickStats {
	stats := TickStats{
		Ticks:         d.stats.ticks,
		MaxDuration:   d.stats.maxDuration,
		LastDuration:  d.stats.lastDuration,
		TotalDuration: d.stats.totalDuration,
	}
	if d.stats.ticks > 0 {
		stats.MinDuration = d.stats.minDuration
		stats.AvgDuration = d.stats.totalDuration / time.Duration(d.stats.ticks)
	}
	return stats
}
