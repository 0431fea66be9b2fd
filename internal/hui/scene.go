package hui

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/charmbracelet/log"
)

var (
	// ErrStaleHandle is returned for handles whose thing has been removed.
	ErrStaleHandle = errors.New("hui: stale handle")
	// ErrNoParent is returned when a parent handle does not refer to a live thing.
	ErrNoParent = errors.New("hui: parent not found")
	// ErrCycle is returned when a reparent would make a thing its own ancestor.
	ErrCycle = errors.New("hui: reparent would create a cycle")
)

// Handle identifies a thing in a Scene. Slots are reused after removal with
// a bumped generation, so a handle to a removed thing never aliases a new one.
// The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "#-"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type node struct {
	thing    any
	proxy    any // foreign proxy the thing was retained from
	gen      uint32
	live     bool
	marked   bool
	caps     capability
	seq      uint64
	parent   Handle
	children map[Handle]struct{}
}

// Scene owns every registered thing, their parent/child relation and the
// capability flags captured at insertion.
//
// Removal is two-phase: Remove only marks, Sweep destroys marked things and
// their descendants. Iteration follows insertion order and skips marked
// subtrees.
type Scene struct {
	nodes  []node
	free   []uint32
	order  []Handle
	marked []Handle
	seq    uint64

	byThing map[any]Handle

	logger *log.Logger
	debug  bool
	frame  uint64
	faults faultLog
}

// NewScene returns an empty scene. A nil logger discards output.
func NewScene(logger *log.Logger) *Scene {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scene{
		byThing: make(map[any]Handle),
		logger:  logger,
	}
}

// Add registers thing at the top level and runs its Setup.
// It returns the zero Handle if a Foreign thing cannot be retained.
func (s *Scene) Add(thing any) Handle {
	h, err := s.Insert(thing, Handle{})
	if err != nil {
		s.logger.Error("add failed", "thing", describe(thing), "err", err)
	}
	return h
}

// AddChild registers thing as a child of parent. Nothing is added if
// parent is not live.
func (s *Scene) AddChild(parent Handle, thing any) (Handle, error) {
	if !s.Contains(parent) {
		return Handle{}, fmt.Errorf("add child of %v: %w", parent, ErrNoParent)
	}
	return s.Insert(thing, parent)
}

// Insert registers thing under parent (zero for none).
func (s *Scene) Insert(thing any, parent Handle) (Handle, error) {
	if thing == nil {
		panic("hui: cannot add a nil thing")
	}
	if !parent.IsZero() && !s.Contains(parent) {
		return Handle{}, fmt.Errorf("insert under %v: %w", parent, ErrNoParent)
	}
	var proxy any
	if f, ok := thing.(Foreign); ok {
		retained, err := f.Retain()
		if err != nil {
			return Handle{}, fmt.Errorf("retain %s: %w", describe(thing), err)
		}
		if retained == nil {
			return Handle{}, fmt.Errorf("retain %s: nil handle", describe(thing))
		}
		proxy, thing = thing, retained
	}

	h := s.alloc()
	n := &s.nodes[h.index]
	n.thing = thing
	n.proxy = proxy
	n.caps = capabilitiesOf(thing)
	n.parent = parent
	s.seq++
	n.seq = s.seq
	s.order = append(s.order, h)

	s.index(thing, h)
	if proxy != nil {
		s.index(proxy, h)
	}
	if !parent.IsZero() {
		p := &s.nodes[parent.index]
		if p.children == nil {
			p.children = make(map[Handle]struct{})
		}
		p.children[h] = struct{}{}
	}

	if s.debug {
		s.logger.Debug("added", "handle", h, "thing", describe(thing), "parent", parent)
	}
	if n.caps.has(capSetup) {
		s.guard(h, PhaseSetup, func() { thing.(Setupper).Setup() })
	}
	return h, nil
}

func (s *Scene) alloc() Handle {
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		nd := &s.nodes[idx]
		nd.live = true
		return Handle{index: idx, gen: nd.gen}
	}
	s.nodes = append(s.nodes, node{gen: 1, live: true})
	return Handle{index: uint32(len(s.nodes) - 1), gen: 1}
}

// identityKey returns a map key for things that have a stable identity.
func identityKey(thing any) (any, bool) {
	switch reflect.TypeOf(thing).Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return thing, true
	}
	return nil, false
}

// index makes h reachable through thing for Lookup and RemoveThing.
func (s *Scene) index(thing any, h Handle) {
	if key, ok := identityKey(thing); ok {
		s.byThing[key] = h
	}
}

func (s *Scene) unindex(thing any, h Handle) {
	if key, ok := identityKey(thing); ok {
		if cur, found := s.byThing[key]; found && cur == h {
			delete(s.byThing, key)
		}
	}
}

func describe(thing any) string {
	if s, ok := thing.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", thing)
}

func (s *Scene) node(h Handle) *node {
	if h.IsZero() || int(h.index) >= len(s.nodes) {
		return nil
	}
	n := &s.nodes[h.index]
	if !n.live || n.gen != h.gen {
		return nil
	}
	return n
}

// Contains reports whether h refers to a live thing, including things
// marked for removal but not yet swept.
func (s *Scene) Contains(h Handle) bool {
	return s.node(h) != nil
}

// Get returns the thing behind h.
func (s *Scene) Get(h Handle) (any, bool) {
	n := s.node(h)
	if n == nil {
		return nil, false
	}
	return n.thing, true
}

// Lookup finds the handle of a pointer-like thing.
func (s *Scene) Lookup(thing any) (Handle, bool) {
	key, ok := identityKey(thing)
	if !ok {
		return Handle{}, false
	}
	h, ok := s.byThing[key]
	if !ok || !s.Contains(h) {
		return Handle{}, false
	}
	return h, true
}

// Parent returns the parent of h, if any.
func (s *Scene) Parent(h Handle) (Handle, bool) {
	n := s.node(h)
	if n == nil || n.parent.IsZero() {
		return Handle{}, false
	}
	return n.parent, true
}

// Children returns the children of h in insertion order.
func (s *Scene) Children(h Handle) []Handle {
	n := s.node(h)
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]Handle, 0, len(n.children))
	for c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.nodes[out[i].index].seq < s.nodes[out[j].index].seq
	})
	return out
}

// Len returns the number of live things, including those pending removal.
func (s *Scene) Len() int {
	return len(s.order)
}

// Pending returns the number of Remove calls waiting for the next Sweep.
func (s *Scene) Pending() int {
	return len(s.marked)
}

// Remove marks h and, at the next Sweep, its descendants for removal.
// Removing an unknown or already marked handle does nothing.
func (s *Scene) Remove(h Handle) {
	n := s.node(h)
	if n == nil || n.marked {
		return
	}
	n.marked = true
	s.marked = append(s.marked, h)
}

// RemoveThing marks the thing for removal if it is registered.
func (s *Scene) RemoveThing(thing any) {
	if h, ok := s.Lookup(thing); ok {
		s.Remove(h)
	}
}

// Reparent moves child under parent; a zero parent detaches it.
// An unknown child is ignored.
func (s *Scene) Reparent(child, parent Handle) error {
	c := s.node(child)
	if c == nil {
		return nil
	}
	if !parent.IsZero() {
		if s.node(parent) == nil {
			return fmt.Errorf("reparent %v: %w", child, ErrNoParent)
		}
		for p := parent; !p.IsZero(); p = s.nodes[p.index].parent {
			if p == child {
				return fmt.Errorf("reparent %v under %v: %w", child, parent, ErrCycle)
			}
		}
	}

	if old := s.node(c.parent); old != nil {
		delete(old.children, child)
	}
	c.parent = parent
	if !parent.IsZero() {
		p := &s.nodes[parent.index]
		if p.children == nil {
			p.children = make(map[Handle]struct{})
		}
		p.children[child] = struct{}{}
	}
	return nil
}

// hidden reports whether h or one of its ancestors is marked.
func (s *Scene) hidden(h Handle) bool {
	for !h.IsZero() {
		n := s.node(h)
		if n == nil || n.marked {
			return true
		}
		h = n.parent
	}
	return false
}

// each calls fn for every visible thing with capability c that was present
// when the phase started.
func (s *Scene) each(c capability, fn func(h Handle, thing any)) {
	n := len(s.order)
	for i := 0; i < n; i++ {
		h := s.order[i]
		nd := s.node(h)
		if nd == nil || !nd.caps.has(c) || s.hidden(h) {
			continue
		}
		fn(h, nd.thing)
	}
}

// Each visits every visible thing in insertion order until fn returns false.
func (s *Scene) Each(fn func(h Handle, thing any) bool) {
	n := len(s.order)
	for i := 0; i < n; i++ {
		h := s.order[i]
		nd := s.node(h)
		if nd == nil || s.hidden(h) {
			continue
		}
		if !fn(h, nd.thing) {
			return
		}
	}
}

// Tick ticks every thing with a Tick method.
func (s *Scene) Tick(dt float64) {
	s.each(capTick, func(h Handle, thing any) {
		s.guard(h, PhaseTick, func() { thing.(Ticker).Tick(dt) })
	})
}

// Draw draws every thing with a Draw method.
func (s *Scene) Draw(dt float64) {
	s.each(capDraw, func(h Handle, thing any) {
		s.guard(h, PhaseDraw, func() { thing.(Drawer).Draw(dt) })
	})
}

// DrawDebug draws every debug overlay onto dst.
func (s *Scene) DrawDebug(dst Surface) {
	s.each(capDebug, func(h Handle, thing any) {
		s.guard(h, PhaseDebug, func() { thing.(DebugDrawer).DrawDebug(dst) })
	})
}

// Sweep removes every marked thing together with its descendants. Things
// that report WantsRemoval are marked first.
func (s *Scene) Sweep() {
	s.each(capSignal, func(h Handle, thing any) {
		if thing.(RemovalSignaler).WantsRemoval() {
			s.Remove(h)
		}
	})
	if len(s.marked) == 0 {
		return
	}

	for len(s.marked) > 0 {
		batch := s.marked
		s.marked = nil
		for _, h := range batch {
			s.destroy(h)
		}
	}

	live := s.order[:0]
	for _, h := range s.order {
		if s.Contains(h) {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(s.order); i++ {
		s.order[i] = Handle{}
	}
	s.order = live
}

// destroy removes h after all of its descendants, depth first.
func (s *Scene) destroy(h Handle) {
	if s.node(h) == nil {
		return
	}
	for _, c := range s.Children(h) {
		s.destroy(c)
	}

	n := s.nodes[h.index]
	if p := s.node(n.parent); p != nil {
		delete(p.children, h)
	}
	s.unindex(n.thing, h)
	if n.proxy != nil {
		s.unindex(n.proxy, h)
	}
	if n.caps.has(capRelease) {
		s.guard(h, PhaseRelease, func() { n.thing.(Releaser).Release() })
	}
	if s.debug {
		s.logger.Debug("removed", "handle", h, "thing", describe(n.thing))
	}

	// Release may have grown s.nodes; index again.
	gen := n.gen + 1
	if gen == 0 {
		gen = 1
	}
	s.nodes[h.index] = node{gen: gen}
	s.free = append(s.free, h.index)
}

// SetDebug toggles logging of additions and removals.
func (s *Scene) SetDebug(on bool) {
	s.debug = on
}
