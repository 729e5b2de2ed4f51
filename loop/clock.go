package loop

import "time"

// Clock supplies the time elapsed since rendering started.
type Clock interface {
	Elapsed() time.Duration
}

type ClockFunc func() time.Duration

func (f ClockFunc) Elapsed() time.Duration {
	return f()
}

// WallClock starts a Clock backed by the monotonic system clock.
func WallClock() Clock {
	start := time.Now()
	return ClockFunc(func() time.Duration {
		return time.Since(start)
	})
}

// PausableClock freezes an underlying Clock while paused. Resuming carries on
// from the paused instant, so elapsed time never jumps or runs backwards.
type PausableClock struct {
	Clock

	paused   bool
	pausedAt time.Duration
	offset   time.Duration
}

func NewPausableClock(c Clock) *PausableClock {
	return &PausableClock{Clock: c}
}

func (p *PausableClock) Elapsed() time.Duration {
	if p.paused {
		return p.pausedAt
	}
	return p.Clock.Elapsed() - p.offset
}

func (p *PausableClock) Paused() bool {
	return p.paused
}

// Toggle pauses a running clock or resumes a paused one.
func (p *PausableClock) Toggle() {
	if p.paused {
		p.offset = p.Clock.Elapsed() - p.pausedAt
		p.paused = false
		return
	}
	p.pausedAt = p.Elapsed()
	p.paused = true
}
