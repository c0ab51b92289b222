package idle

import "time"

// Timer counts down idle ticks. Remaining stays within [0, Max].
type Timer struct {
	max       int
	remaining int
}

// NewTimer returns a timer that starts full. max is clamped to at least 1.
func NewTimer(max int) *Timer {
	if max < 1 {
		max = 1
	}
	return &Timer{max: max, remaining: max}
}

// TicksFor converts an idle timeout into a whole number of tick periods,
// never less than one.
func TicksFor(timeout, period time.Duration) int {
	if period <= 0 {
		return 1
	}
	n := int(timeout / period)
	if n < 1 {
		return 1
	}
	return n
}

func (t *Timer) Max() int { return t.max }
func (t *Timer) Remaining() int { return t.remaining }

// Reset refills the timer.
func (t *Timer) Reset() {
	t.remaining = t.max
}

// Decrement takes one tick off the timer, stopping at zero, and returns
// what is left.
func (t *Timer) Decrement() int {
	if t.remaining > 0 {
		t.remaining--
	}
	return t.remaining
}
