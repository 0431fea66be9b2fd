package hui

import "math"

// Sample is one random payload drawn by a RandomTimer.
type Sample struct {
	Scalar float64 // in [-1, 1)
	Dir    Vec2    // unit vector
}

// RandomTimer re-rolls its own duration and a random payload every time it
// completes. Between blends the previous and current payloads over the
// timer's progress, which gives smooth noise-like motion.
type RandomTimer struct {
	Timer

	// Period is the mean interval; each interval is drawn from [0, 2*Period).
	Period float64

	Current Sample
	Last    Sample

	rng *Rand
}

// NewRandomTimer returns a running random timer. rng may be nil.
func NewRandomTimer(period float64, repeat bool, rng *Rand) *RandomTimer {
	r := &RandomTimer{Period: math.Max(period, 0), rng: rng}
	r.Repeat = repeat
	r.Current = r.sample()
	r.Last = r.Current
	r.reroll()
	return r
}

func (r *RandomTimer) sample() Sample {
	return Sample{Scalar: r.rng.Rndr(-1, 1), Dir: r.rng.RndDir()}
}

func (r *RandomTimer) reroll() {
	r.Last = r.Current
	r.Current = r.sample()
	r.StartWith(r.Period+r.rng.Rndr(-r.Period, r.Period), r.Repeat)
}

// Tick advances the timer and re-rolls when it finishes. A non-repeating
// random timer rolls once more and then stays idle.
func (r *RandomTimer) Tick(dt float64) {
	r.Timer.Tick(dt)
	if !r.JustFinished {
		return
	}
	if r.Repeat {
		rem := r.Time
		r.reroll()
		r.Time = math.Min(rem, r.Duration)
		r.JustFinished = true
		return
	}
	r.Last = r.Current
	r.Current = r.sample()
}

// Between returns the eased blend of the last and current scalar payloads.
func (r *RandomTimer) Between() float64 {
	return Querp(r.Last.Scalar, r.Current.Scalar, r.Progress())
}

// BetweenDir returns the eased blend of the last and current directions.
func (r *RandomTimer) BetweenDir() Vec2 {
	return r.Last.Dir.Querp(r.Current.Dir, r.Progress())
}
