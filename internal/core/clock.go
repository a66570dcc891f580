package core

import "time"

// MaxFrameDelta bounds a single dt so that a stalled terminal does not
// teleport entities across the arena.
const MaxFrameDelta int64 = 250

// FrameClock converts tick timestamps into elapsed milliseconds.
// The platform enforces the upper bound on tick rate via TickInterval.
type FrameClock struct {
	fps  int
	last time.Time
}

// NewFrameClock creates a clock targeting the given frames per second.
// Non-positive values fall back to 60.
func NewFrameClock(fps int) *FrameClock {
	if fps <= 0 {
		fps = 60
	}
	return &FrameClock{fps: fps}
}

// TickInterval returns the minimum interval between ticks.
func (c *FrameClock) TickInterval() time.Duration {
	return time.Second / time.Duration(c.fps)
}

// Tick records a tick at now and returns milliseconds since the previous tick.
// The first tick after Reset returns 0.
func (c *FrameClock) Tick(now time.Time) int64 {
	if c.last.IsZero() || now.Before(c.last) {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Milliseconds()
	c.last = now
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	return dt
}

// Reset forgets the previous tick, e.g. after a pause between screens.
func (c *FrameClock) Reset() {
	c.last = time.Time{}
}
