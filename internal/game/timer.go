package game

// Timer is a repeating countdown driven by frame time.
// It first fires once delay has accumulated, then every period.
// Firing resets the accumulator to zero; overshoot is not carried over.
type Timer struct {
	period    float64
	threshold float64
	elapsed   float64
}

// NewTimer returns a timer that first fires after delay and then every period.
func NewTimer(period, delay float64) *Timer {
	return &Timer{period: period, threshold: delay}
}

// Advance adds dt and reports whether the timer fired.
func (t *Timer) Advance(dt float64) bool {
	t.elapsed += dt
	if t.elapsed < t.threshold {
		return false
	}
	t.elapsed = 0
	t.threshold = t.period
	return true
}

// Elapsed returns the time accumulated since the last firing (or since start).
func (t *Timer) Elapsed() float64 {
	return t.elapsed
}

// delayedAction runs fn once remaining seconds of frame time have passed.
type delayedAction struct {
	remaining float64
	fn        func()
}
