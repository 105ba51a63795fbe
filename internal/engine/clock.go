package engine

import "time"

// Clock turns elapsed real time into a number of due ticks using a fixed
// timestep. Several ticks may fall due in a single frame.
type Clock struct {
	interval time.Duration
	elapsed  time.Duration
	lastTick time.Duration
}

// NewClock creates a clock that fires once per interval.
func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		panic("engine: clock interval must be positive")
	}
	return &Clock{interval: interval}
}

// Advance adds dt to the accumulated time and returns how many ticks are due.
// A tick is due only once strictly more than one interval has passed since
// the previous one.
func (c *Clock) Advance(dt time.Duration) int {
	c.elapsed += dt
	n := 0
	for c.elapsed-c.lastTick > c.interval {
		c.lastTick += c.interval
		n++
	}
	return n
}

// Interval returns the tick interval.
func (c *Clock) Interval() time.Duration { return c.interval }
