// Package delay implements a long wait split into short ticks so that
// cancellation and progress reporting happen at tick granularity.
package delay

import (
	"context"
	"time"
)

// DefaultTick is the length of one wait step.
const DefaultTick = 60 * time.Second

// Clock abstracts time.After so waits can be driven by tests.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// RealClock returns a Clock backed by the runtime timer.
func RealClock() Clock {
	return realClock{}
}

// Progress describes the wait after a completed tick.
type Progress struct {
	Tick      int
	Ticks     int
	Elapsed   time.Duration
	Remaining time.Duration
	Total     time.Duration
}

// Waiter waits for a total duration in steps of Tick.
type Waiter struct {
	// Tick is the step length. Zero means DefaultTick.
	Tick time.Duration
	// Clock supplies timers. Nil means RealClock.
	Clock Clock
	// OnTick, if set, is called after every completed step.
	OnTick func(Progress)
}

// Ticks returns the number of steps a wait of total takes with the given tick.
// The last step is shorter when total is not a multiple of tick.
func Ticks(total, tick time.Duration) int {
	if total <= 0 {
		return 0
	}
	if tick <= 0 {
		tick = DefaultTick
	}
	n := int(total / tick)
	if total%tick != 0 {
		n++
	}
	return n
}

// Wait blocks for total or until ctx is done, whichever comes first.
// It returns ctx.Err() on cancellation and nil once the full duration elapsed.
func (w *Waiter) Wait(ctx context.Context, total time.Duration) error {
	tick := w.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	clock := w.Clock
	if clock == nil {
		clock = realClock{}
	}

	ticks := Ticks(total, tick)
	var elapsed time.Duration
	for i := 1; i <= ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := tick
		if remaining := total - elapsed; remaining < step {
			step = remaining
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(step):
		}

		elapsed += step
		if w.OnTick != nil {
			w.OnTick(Progress{
				Tick:      i,
				Ticks:     ticks,
				Elapsed:   elapsed,
				Remaining: total - elapsed,
				Total:     total,
			})
		}
	}
	return ctx.Err()
}
