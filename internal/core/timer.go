package core

import "time"

// maxCatchUp bounds how many ticks a single frame may run after a stall.
const maxCatchUp = 8

// FixedStep paces engine ticks at a steady ticks-per-second rate for loops
// that do not get a fixed update cadence from their host (the terminal
// runner).
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Advance accounts for the time elapsed up to now and returns how many ticks
// are due, at most maxCatchUp.
func (f *FixedStep) Advance(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	due := 0
	for f.accumulator >= f.step && due < maxCatchUp {
		f.accumulator -= f.step
		due++
	}
	if due == maxCatchUp {
		f.accumulator = 0
	}
	return due
}
