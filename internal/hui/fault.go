package hui

import (
	"fmt"
	"runtime/debug"
)

// Phase names the frame phase in which a fault happened.
type Phase string

const (
	PhaseSetup   Phase = "setup"
	PhaseTick    Phase = "tick"
	PhaseDraw    Phase = "draw"
	PhaseDebug   Phase = "draw_debug"
	PhaseRelease Phase = "release"
	PhaseHook    Phase = "hook"
	PhasePhysics Phase = "physics"
)

// Fault records a panic recovered from a single thing or hook. The frame
// keeps running after a fault.
type Fault struct {
	Handle Handle // zero for user hooks
	Phase  Phase
	Err    error
	Frame  uint64
}

func (f Fault) Error() string {
	return fmt.Sprintf("frame %d: %s %v: %v", f.Frame, f.Phase, f.Handle, f.Err)
}

func (f Fault) Unwrap() error { return f.Err }

const faultRingSize = 64

// faultLog keeps the most recent faults.
type faultLog struct {
	ring  [faultRingSize]Fault
	next  int
	total int
}

func (l *faultLog) add(f Fault) {
	l.ring[l.next] = f
	l.next = (l.next + 1) % faultRingSize
	l.total++
}

// recent returns the stored faults, oldest first.
func (l *faultLog) recent() []Fault {
	n := l.total
	if n > faultRingSize {
		n = faultRingSize
	}
	out := make([]Fault, 0, n)
	start := (l.next - n + faultRingSize) % faultRingSize
	for i := 0; i < n; i++ {
		out = append(out, l.ring[(start+i)%faultRingSize])
	}
	return out
}

// guard runs fn and converts a panic into a recorded Fault.
func (s *Scene) guard(h Handle, phase Phase, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		f := Fault{Handle: h, Phase: phase, Err: err, Frame: s.frame}
		s.faults.add(f)
		s.logger.Warn("entity fault", "handle", h, "phase", phase, "frame", s.frame, "err", err)
		s.logger.Debug("fault stack", "stack", string(debug.Stack()))
	}()
	fn()
}

// Faults returns up to the 64 most recent faults, oldest first.
func (s *Scene) Faults() []Fault {
	return s.faults.recent()
}

// FaultCount returns the number of faults since the scene was created.
func (s *Scene) FaultCount() int {
	return s.faults.total
}
