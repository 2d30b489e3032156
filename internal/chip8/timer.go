package chip8

import "time"

// TimerInterval is the period at which the timers are decremented (60Hz).
const TimerInterval = time.Second / 60

// Timer is an 8-bit countdown counter that decrements at 60Hz of wall-clock time.
type Timer struct {
	value uint8
	last  time.Time // reference time of the last decrement
}

// Value returns the current counter value.
func (t *Timer) Value() uint8 {
	return t.value
}

// Set sets the counter value.
func (t *Timer) Set(value uint8) {
	t.value = value
}

// Update decrements the counter by 1 if at least one TimerInterval has passed
// since the last decrement. It returns whether the counter was decremented.
// Calling it more often than the interval has no effect besides the first call
// per window. The reference time advances by one interval per decrement, so
// the call rate does not introduce drift.
func (t *Timer) Update(now time.Time) bool {
	if t.last.IsZero() {
		t.last = now
		return false
	}

	elapsed := now.Sub(t.last)
	if elapsed < TimerInterval {
		return false
	}

	if elapsed >= 2*TimerInterval {
		t.last = now // host stalled, do not catch up with a burst of decrements
	} else {
		t.last = t.last.Add(TimerInterval)
	}

	if t.value == 0 {
		return false
	}
	t.value--
	return true
}

func (t *Timer) reset() {
	*t = Timer{}
}
