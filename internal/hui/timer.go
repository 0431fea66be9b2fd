package hui

import (
	"fmt"
	"math"
)

// Timer is a countdown that fires once or repeatedly.
//
// JustStarted and JustFinished are edge flags: Tick clears both before
// evaluating, so each is true only for the frame that set it.
type Timer struct {
	Duration     float64
	Time         float64
	Running      bool
	Repeat       bool
	AutoRemove   bool
	JustStarted  bool
	JustFinished bool

	removal bool
}

// NewTimer returns an idle timer. Negative durations are treated as zero.
func NewTimer(duration float64, repeat, autoRemove bool) *Timer {
	return &Timer{
		Duration:   math.Max(duration, 0),
		Repeat:     repeat,
		AutoRemove: autoRemove,
	}
}

// Start restarts the timer from zero with its current duration.
func (t *Timer) Start() {
	t.Time = 0
	t.Running = true
	t.JustStarted = true
}

// StartWith restarts the timer and overrides duration and repeat.
// A negative duration keeps both current settings.
func (t *Timer) StartWith(duration float64, repeat bool) {
	if duration >= 0 {
		t.Duration = duration
		t.Repeat = repeat
	}
	t.Start()
}

// Pause stops the timer without touching its flags.
func (t *Timer) Pause() {
	t.Running = false
}

// Stop ends the timer immediately as if it had run out.
func (t *Timer) Stop() {
	t.JustFinished = true
	t.Time = t.Duration
	t.Running = false
}

// Tick advances the timer by dt seconds.
func (t *Timer) Tick(dt float64) {
	t.JustStarted = false
	t.JustFinished = false

	if !t.Running {
		return
	}
	t.Time += dt
	if t.Time <= t.Duration {
		return
	}

	t.JustFinished = true
	if t.Repeat {
		t.JustStarted = true
		if t.Duration > 0 {
			t.Time = math.Mod(t.Time, t.Duration)
		} else {
			t.Time = 0
		}
		return
	}

	t.Time = t.Duration
	t.Running = false
	if t.AutoRemove {
		t.removal = true
	}
}

// WantsRemoval reports whether a finished auto-remove timer should leave the scene.
func (t *Timer) WantsRemoval() bool {
	return t.removal
}

// Progress is Time/Duration, or 0 for a zero-length timer.
func (t *Timer) Progress() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return t.Time / t.Duration
}

// Axis maps progress onto [-1, 1].
func (t *Timer) Axis() float64 {
	return 2*t.Progress() - 1
}

// PingPong is a triangle wave rising from 0 to 1 and back over the timer's span.
func (t *Timer) PingPong() float64 {
	return 1 - math.Abs(t.Axis())
}

func (t *Timer) String() string {
	return fmt.Sprintf("<hui:timer t=%g p=%g d=%g>", t.Time, t.Progress(), t.Duration)
}
