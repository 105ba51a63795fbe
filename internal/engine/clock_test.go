package engine

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(500 * time.Millisecond)

	tests := []struct {
		dt   time.Duration
		want int
	}{
		{100 * time.Millisecond, 0},
		{400 * time.Millisecond, 0}, // exactly one interval is not yet due
		{1 * time.Millisecond, 1},
		{1600 * time.Millisecond, 3}, // catch-up after a long frame
		{0, 0},
	}
	for i, tt := range tests {
		if got := c.Advance(tt.dt); got != tt.want {
			t.Errorf("step %d: Advance(%v) = %d, want %d", i, tt.dt, got, tt.want)
		}
	}
}

func TestClockRejectsZeroInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewClock(0) did not panic")
		}
	}()
	NewClock(0)
}
