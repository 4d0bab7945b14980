package core

// TimerMode selects whether a Timer stops or wraps when it completes.
type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer is a frame-delta driven countdown. It is advanced explicitly with Tick
// so simulation time is fully deterministic.
type Timer struct {
	duration float64
	elapsed  float64
	mode     TimerMode
	paused   bool
	finished bool // completed at least once; sticky for TimerOnce
	times    int  // completions during the last Tick
}

// NewTimer creates a timer of the given duration in seconds.
func NewTimer(duration float64, mode TimerMode) Timer {
	return Timer{duration: duration, mode: mode}
}

// Tick advances the timer by dt seconds.
func (t *Timer) Tick(dt float64) {
	t.times = 0
	if t.paused || dt < 0 {
		return
	}

	if t.mode == TimerOnce {
		if t.finished {
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished = true
			t.times = 1
		}
		return
	}

	t.elapsed += dt
	if t.duration <= 0 {
		// A non-positive repeating timer fires once per tick.
		t.elapsed = 0
		t.times = 1
		t.finished = true
		return
	}
	for t.elapsed >= t.duration {
		t.elapsed -= t.duration
		t.times++
	}
	t.finished = t.times > 0
}

// Finished reports whether the timer has completed. For a repeating timer
// this means it completed at least once during the last Tick.
func (t *Timer) Finished() bool {
	if t.mode == TimerOnce {
		return t.finished || t.duration <= 0
	}
	return t.times > 0
}

// JustFinished reports whether the timer completed during the last Tick.
func (t *Timer) JustFinished() bool {
	return t.times > 0
}

// TimesFinished returns the number of completions during the last Tick.
func (t *Timer) TimesFinished() int {
	return t.times
}

// Elapsed returns the seconds elapsed in the current cycle.
func (t *Timer) Elapsed() float64 {
	return t.elapsed
}

// Duration returns the timer period in seconds.
func (t *Timer) Duration() float64 {
	return t.duration
}

// Remaining returns the seconds left in the current cycle.
func (t *Timer) Remaining() float64 {
	return max(t.duration-t.elapsed, 0)
}

// SetDuration changes the period without touching elapsed time.
func (t *Timer) SetDuration(d float64) {
	t.duration = d
}

// Mode returns the timer mode.
func (t *Timer) Mode() TimerMode {
	return t.mode
}

// Reset restarts the current cycle.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.times = 0
}

// Pause stops the timer from advancing.
func (t *Timer) Pause() {
	t.paused = true
}

// Resume lets a paused timer advance again.
func (t *Timer) Resume() {
	t.paused = false
}

// Paused reports whether the timer is paused.
func (t *Timer) Paused() bool {
	return t.paused
}
