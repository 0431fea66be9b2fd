package hui

import (
	"fmt"
	"math"
	"time"
)

// reavgWindow caps the number of frames in the running phase averages.
const reavgWindow = 50

// Diagnostics are frame timing statistics refreshed by every Step.
type Diagnostics struct {
	// Frames is the number of frames stepped so far.
	Frames uint64
	// FPS is derived from the last five frame deltas.
	FPS        float64
	FrameTimes [5]float64

	// Running averages over up to 50 frames.
	Tick       time.Duration
	Physics    time.Duration
	Draw       time.Duration
	DrawThings time.Duration
	Layers     time.Duration
	Input      time.Duration
	Removal    time.Duration

	// Full is the duration of the last frame.
	Full time.Duration

	window int
}

// reavg folds v into a running average over n samples.
func reavg(avg, v time.Duration, n int) time.Duration {
	if n <= 1 {
		return v
	}
	return avg + (v-avg)/time.Duration(n)
}

func (d *Diagnostics) frame(dt float64) {
	d.Frames++
	if d.window < reavgWindow {
		d.window++
	}
	copy(d.FrameTimes[:], d.FrameTimes[1:])
	d.FrameTimes[len(d.FrameTimes)-1] = dt

	var sum float64
	for _, ft := range d.FrameTimes {
		sum += ft
	}
	if sum > 0 {
		d.FPS = math.Round(float64(len(d.FrameTimes)) / sum)
	}
}

// phaseTimer measures consecutive phases of a frame.
type phaseTimer struct {
	start, last time.Time
}

func newPhaseTimer() phaseTimer {
	now := time.Now()
	return phaseTimer{start: now, last: now}
}

func (p *phaseTimer) lap() time.Duration {
	now := time.Now()
	d := now.Sub(p.last)
	p.last = now
	return d
}

func (d Diagnostics) String() string {
	return fmt.Sprintf("fps %3.0f  tick %v  draw %v  frame %v", d.FPS, d.Tick, d.Draw+d.DrawThings, d.Full)
}
