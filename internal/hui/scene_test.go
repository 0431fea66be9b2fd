package hui

import (
	"errors"
	"testing"
)

// recorder logs every call it receives into a shared trace.
type recorder struct {
	name  string
	trace *[]string
}

func (r *recorder) Setup()            { *r.trace = append(*r.trace, r.name+".setup") }
func (r *recorder) Tick(float64)      { *r.trace = append(*r.trace, r.name+".tick") }
func (r *recorder) Draw(float64)      { *r.trace = append(*r.trace, r.name+".draw") }
func (r *recorder) DrawDebug(Surface) { *r.trace = append(*r.trace, r.name+".debug") }

// ticker only implements Tick.
type ticker struct{ n int }

func (t *ticker) Tick(float64) { t.n++ }

func TestSceneCascadeRemoval(t *testing.T) {
	s := NewScene(nil)
	var trace []string
	parent := s.Add(&recorder{name: "parent", trace: &trace})
	child, err := s.AddChild(parent, &recorder{name: "child", trace: &trace})
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	grandchild, _ := s.AddChild(child, &ticker{})

	s.Remove(parent)
	if !s.Contains(parent) || !s.Contains(child) {
		t.Fatal("Remove must not take effect before Sweep")
	}
	s.Sweep()

	for _, h := range []Handle{parent, child, grandchild} {
		if s.Contains(h) {
			t.Errorf("%v still live after sweep", h)
		}
		if _, ok := s.Get(h); ok {
			t.Errorf("Get(%v) found a removed thing", h)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, expected 0", s.Len())
	}

	// Reused slots get new generations.
	fresh := s.Add(&ticker{})
	if fresh == parent || fresh == child || fresh == grandchild {
		t.Errorf("new handle %v aliases a removed one", fresh)
	}
	if s.Children(fresh) != nil {
		t.Error("reused slot kept a stale child set")
	}
	if _, err := s.AddChild(parent, &ticker{}); !errors.Is(err, ErrNoParent) {
		t.Errorf("AddChild on stale parent err = %v, expected ErrNoParent", err)
	}
}

func TestSceneRemoveIdempotent(t *testing.T) {
	run := func(times int) (int, int) {
		s := NewScene(nil)
		a := s.Add(&ticker{})
		s.Add(&ticker{})
		for i := 0; i < times; i++ {
			s.Remove(a)
		}
		pending := s.Pending()
		s.Sweep()
		return pending, s.Len()
	}

	p1, l1 := run(1)
	p2, l2 := run(2)
	if p1 != p2 || l1 != l2 {
		t.Errorf("removing twice differs: pending %d/%d, len %d/%d", p1, p2, l1, l2)
	}

	s := NewScene(nil)
	h := s.Add(&ticker{})
	s.Remove(h)
	s.Sweep()
	s.Remove(h)
	s.Sweep()
	s.Remove(Handle{})
	if s.Len() != 0 {
		t.Error("removing stale handles should be a no-op")
	}
}

func TestSceneInsertionOrderAndCapabilities(t *testing.T) {
	s := NewScene(nil)
	var trace []string
	a := &recorder{name: "a", trace: &trace}
	b := &recorder{name: "b", trace: &trace}
	s.Add(a)
	s.Add(b)
	tk := &ticker{}
	s.Add(tk)

	s.Tick(0.1)
	s.Draw(0.1)

	expected := []string{"a.setup", "b.setup", "a.tick", "b.tick", "a.draw", "b.draw"}
	if len(trace) != len(expected) {
		t.Fatalf("trace = %v, expected %v", trace, expected)
	}
	for i := range expected {
		if trace[i] != expected[i] {
			t.Errorf("trace[%d] = %q, expected %q", i, trace[i], expected[i])
		}
	}
	if tk.n != 1 {
		t.Errorf("ticker ticked %d times", tk.n)
	}
}

func TestSceneSkipsMarkedSubtree(t *testing.T) {
	s := NewScene(nil)
	parent := s.Add(&ticker{})
	kid := &ticker{}
	s.AddChild(parent, kid)
	other := &ticker{}
	s.Add(other)

	s.Remove(parent)
	s.Tick(0.1)
	if kid.n != 0 {
		t.Error("child of a marked parent should not tick")
	}
	if other.n != 1 {
		t.Error("unrelated thing should still tick")
	}
}

func TestSceneAddDuringTick(t *testing.T) {
	s := NewScene(nil)
	late := &ticker{}
	s.Add(&Funcs{OnTick: func(float64) { s.Add(late) }})

	s.Tick(0.1)
	if late.n != 0 {
		t.Error("things added during a phase start ticking next frame")
	}
	if _, ok := s.Lookup(late); !ok {
		t.Error("late thing should be registered")
	}
}

type signaler struct {
	ticker
	done bool
}

func (s *signaler) WantsRemoval() bool { return s.done }

func TestSceneRemovalSignal(t *testing.T) {
	s := NewScene(nil)
	sig := &signaler{}
	h := s.Add(sig)
	s.Sweep()
	if !s.Contains(h) {
		t.Fatal("thing removed without signaling")
	}
	sig.done = true
	s.Sweep()
	if s.Contains(h) {
		t.Error("signaling thing should be removed at sweep")
	}
}

func TestSceneReparent(t *testing.T) {
	s := NewScene(nil)
	a := s.Add(&ticker{})
	b, _ := s.AddChild(a, &ticker{})
	c := s.Add(&ticker{})

	if err := s.Reparent(a, b); !errors.Is(err, ErrCycle) {
		t.Errorf("Reparent into own child err = %v, expected ErrCycle", err)
	}
	if err := s.Reparent(b, c); err != nil {
		t.Fatalf("Reparent: %v", err)
	}
	if p, _ := s.Parent(b); p != c {
		t.Errorf("Parent(b) = %v, expected %v", p, c)
	}
	if len(s.Children(a)) != 0 {
		t.Error("old parent kept a child reference")
	}

	s.Remove(c)
	s.Sweep()
	if s.Contains(b) {
		t.Error("reparented child should go with its new parent")
	}
	if !s.Contains(a) {
		t.Error("old parent should survive")
	}
	if err := s.Reparent(b, a); err != nil {
		t.Errorf("reparenting a stale child should be a no-op, got %v", err)
	}
}

type proxy struct {
	target any
	err    error
}

func (p *proxy) Retain() (any, error) { return p.target, p.err }

type releaser struct {
	ticker
	released bool
}

func (r *releaser) Release() { r.released = true }

func TestSceneForeignProxy(t *testing.T) {
	s := NewScene(nil)
	inner := &releaser{}
	h := s.Add(&proxy{target: inner})

	got, ok := s.Get(h)
	if !ok || got != inner {
		t.Fatalf("Get = %v, expected the retained thing", got)
	}
	s.Tick(0.1)
	if inner.n != 1 {
		t.Error("retained thing should be ticked")
	}

	s.Remove(h)
	s.Sweep()
	if !inner.released {
		t.Error("retained thing should be released on removal")
	}

	if h := s.Add(&proxy{err: errors.New("gone")}); !h.IsZero() {
		t.Error("failed retain should not register anything")
	}
}

func TestSceneRemoveThroughProxy(t *testing.T) {
	s := NewScene(nil)
	inner := &releaser{}
	p := &proxy{target: inner}
	h := s.Add(p)

	if got, ok := s.Lookup(p); !ok || got != h {
		t.Fatalf("Lookup(proxy) = %v, %v; want %v", got, ok, h)
	}
	if got, ok := s.Lookup(inner); !ok || got != h {
		t.Fatalf("Lookup(retained) = %v, %v; want %v", got, ok, h)
	}

	s.RemoveThing(p)
	s.Sweep()
	if s.Contains(h) {
		t.Fatal("thing removed through its proxy is still live")
	}
	if !inner.released {
		t.Error("retained thing should be released")
	}
	if _, ok := s.Lookup(p); ok {
		t.Error("proxy still indexed after removal")
	}
	if _, ok := s.Lookup(inner); ok {
		t.Error("retained thing still indexed after removal")
	}
}

type panicky struct{}

func (panicky) Tick(float64) { panic("boom") }

func TestSceneFaultIsolation(t *testing.T) {
	s := NewScene(nil)
	bad := s.Add(panicky{})
	good := &ticker{}
	s.Add(good)

	s.Tick(0.1)
	s.Tick(0.1)

	if good.n != 2 {
		t.Errorf("healthy thing ticked %d times, expected 2", good.n)
	}
	if s.FaultCount() != 2 {
		t.Fatalf("FaultCount = %d, expected 2", s.FaultCount())
	}
	f := s.Faults()[0]
	if f.Handle != bad || f.Phase != PhaseTick || f.Err == nil {
		t.Errorf("fault = %+v", f)
	}
}

func TestFaultRingKeepsRecent(t *testing.T) {
	var l faultLog
	for i := 0; i < faultRingSize+10; i++ {
		l.add(Fault{Frame: uint64(i)})
	}
	got := l.recent()
	if len(got) != faultRingSize {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Frame != 10 || got[len(got)-1].Frame != faultRingSize+9 {
		t.Errorf("ring order wrong: first %d last %d", got[0].Frame, got[len(got)-1].Frame)
	}
}

func TestSceneAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding nil should panic")
		}
	}()
	NewScene(nil).Add(nil)
}
