package hui

import (
	"math"

	"github.com/solarlune/resolv"
)

// BodyType selects how a World moves a shape.
type BodyType uint8

const (
	// Dynamic shapes fall, receive forces and get pushed out of contacts.
	Dynamic BodyType = iota
	// Static shapes never move.
	Static
	// Kinematic shapes move with their velocity only and push dynamic shapes.
	Kinematic
)

// World defaults.
const (
	DefaultWorldStep  = 1.0 / 60
	DefaultCellSize   = 8
	DefaultIterations = 4
)

// DefaultGravity pulls towards the bottom of the screen.
var DefaultGravity = V(0, 500)

// Contact normal sectors, as angles of the direction a shape was pushed.
const (
	groundMin  = -0.7 * math.Pi
	groundMax  = -0.3 * math.Pi
	ceilingMin = 0.3 * math.Pi
	ceilingMax = 0.7 * math.Pi
	wallInner  = 0.2 * math.Pi
	wallOuter  = 0.8 * math.Pi
)

// World is a fixed-step physics simulation over shapes. Candidate pairs
// come from a resolv.Space grid; contacts are resolved by pushing shapes
// apart along the minimum translation vector and reflecting the normal
// velocity.
type World struct {
	Gravity    Vec2
	FixedStep  float64
	MaxDelta   float64
	Iterations int

	width, height float64
	margin        float64
	space         *resolv.Space

	shapes   []*Shape
	types    map[*Shape]BodyType
	boundary [4]*Shape
	bounded  bool
	nextID   int
	ids      map[*Shape]int

	ownStatic map[*Shape]bool // Static flag each shape had before Add

	accumulator float64
}

// WorldOption configures a World.
type WorldOption func(*worldSettings)

type worldSettings struct {
	gravity    Vec2
	step       float64
	maxDelta   float64
	cellSize   int
	iterations int
}

// WithGravity sets the world gravity.
func WithGravity(g Vec2) WorldOption {
	return func(s *worldSettings) { s.gravity = g }
}

// WithWorldStep sets the fixed step of the world.
func WithWorldStep(h float64) WorldOption {
	return func(s *worldSettings) {
		if h > 0 {
			s.step = h
		}
	}
}

// WithCellSize sets the broad-phase grid cell size.
func WithCellSize(n int) WorldOption {
	return func(s *worldSettings) {
		if n > 0 {
			s.cellSize = n
		}
	}
}

// WithIterations sets how many resolution passes run per substep.
func WithIterations(n int) WorldOption {
	return func(s *worldSettings) {
		if n > 0 {
			s.iterations = n
		}
	}
}

// NewWorld returns a world covering a w by h area. The boundary starts off.
func NewWorld(w, h float64, opts ...WorldOption) *World {
	cfg := worldSettings{
		gravity:    DefaultGravity,
		step:       DefaultWorldStep,
		maxDelta:   DefaultMaxDelta,
		cellSize:   DefaultCellSize,
		iterations: DefaultIterations,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// The grid extends past the visible area so shapes near the edge and
	// the boundary walls are still found.
	margin := float64(cfg.cellSize * 4)
	world := &World{
		Gravity:    cfg.gravity,
		FixedStep:  cfg.step,
		MaxDelta:   cfg.maxDelta,
		Iterations: cfg.iterations,
		width:      w,
		height:     h,
		margin:     margin,
		space: resolv.NewSpace(
			int(math.Ceil(w+2*margin)), int(math.Ceil(h+2*margin)),
			cfg.cellSize, cfg.cellSize,
		),
		types: make(map[*Shape]BodyType),
		ids:   make(map[*Shape]int),

		ownStatic: make(map[*Shape]bool),
	}

	t := margin / 2
	world.boundary = [4]*Shape{
		NewBox(w/2, -t/2, w+2*t, t),  // top
		NewBox(w/2, h+t/2, w+2*t, t), // bottom
		NewBox(-t/2, h/2, t, h+2*t),  // left
		NewBox(w+t/2, h/2, t, h+2*t), // right
	}
	return world
}

// Size returns the area covered by the world.
func (w *World) Size() (float64, float64) { return w.width, w.height }

// SetBoundary turns the walls around the world area on or off.
func (w *World) SetBoundary(on bool) {
	if on == w.bounded {
		return
	}
	w.bounded = on
	for _, b := range w.boundary {
		if on {
			w.Add(b, Static)
		} else {
			w.detach(b)
		}
	}
}

// Boundary reports whether the walls are on.
func (w *World) Boundary() bool { return w.bounded }

// Add makes s part of the simulation. A shape belongs to one world at a time.
func (w *World) Add(s *Shape, typ BodyType) *Shape {
	if s.world != nil {
		s.world.detach(s)
	}
	s.world = w
	w.ownStatic[s] = s.Static
	s.Static = typ == Static
	w.types[s] = typ
	w.nextID++
	w.ids[s] = w.nextID
	w.shapes = append(w.shapes, s)

	s.obj = resolv.NewObject(0, 0, 1, 1, typ.tag())
	s.obj.Data = s
	w.space.Add(s.obj)
	w.sync(s)
	return s
}

// AddBox creates a box in the world.
func (w *World) AddBox(x, y, width, height float64, typ BodyType) *Shape {
	return w.Add(NewBox(x, y, width, height), typ)
}

// AddDisc creates a disc in the world.
func (w *World) AddDisc(x, y, r float64, typ BodyType) *Shape {
	return w.Add(NewDisc(x, y, r), typ)
}

// Remove takes s out of the simulation. s keeps its state and integrates
// on its own again.
func (w *World) Remove(s *Shape) {
	if s.world == w {
		w.detach(s)
	}
}

func (w *World) detach(s *Shape) {
	if _, ok := w.types[s]; !ok {
		return
	}
	if s.obj != nil {
		w.space.Remove(s.obj)
		s.obj = nil
	}
	delete(w.types, s)
	delete(w.ids, s)
	for i, o := range w.shapes {
		if o == s {
			w.shapes = append(w.shapes[:i], w.shapes[i+1:]...)
			break
		}
	}
	s.world = nil
	s.Static = w.ownStatic[s]
	delete(w.ownStatic, s)
	s.OnGround, s.OnWall, s.OnCeiling = false, false, false
}

// Release detaches the shape from its world when the scene removes it.
func (s *Shape) Release() {
	if s.world != nil {
		s.world.detach(s)
	}
}

// Shapes returns the simulated shapes, boundary walls included.
func (w *World) Shapes() []*Shape {
	return append([]*Shape(nil), w.shapes...)
}

// TypeOf returns how s is simulated.
func (w *World) TypeOf(s *Shape) (BodyType, bool) {
	t, ok := w.types[s]
	return t, ok
}

func (t BodyType) tag() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	}
	return "dynamic"
}

// sync moves the broad-phase box of s onto its simulated position.
func (w *World) sync(s *Shape) {
	if s.obj == nil {
		return
	}
	pos := s.pos.cur
	var half Vec2
	if s.Kind == KindBox {
		// Bounds of the rotated box.
		ax := s.Axes()
		hx, hy := s.Size.X/2, s.Size.Y/2
		half = V(math.Abs(ax[0].X)*hx+math.Abs(ax[1].X)*hy, math.Abs(ax[0].Y)*hx+math.Abs(ax[1].Y)*hy)
	} else {
		half = V(s.radius(), s.radius())
	}
	s.obj.X = pos.X - half.X + w.margin
	s.obj.Y = pos.Y - half.Y + w.margin
	s.obj.W = math.Max(2*half.X, 1)
	s.obj.H = math.Max(2*half.Y, 1)
	s.obj.Update()
}

// Step advances the world by dt seconds in fixed substeps.
func (w *World) Step(dt float64) {
	h := w.FixedStep
	if h <= 0 {
		h = DefaultWorldStep
	}
	if w.MaxDelta > 0 && dt > w.MaxDelta {
		dt = w.MaxDelta
	}
	if dt > 0 {
		w.accumulator += dt
	}

	for w.accumulator >= h-stepEpsilon {
		w.substep(h)
		w.accumulator -= h
	}
	if w.accumulator < 0 {
		w.accumulator = 0
	}

	a := w.accumulator / h
	for _, s := range w.shapes {
		if w.types[s] == Static {
			s.hold()
			continue
		}
		s.interpolate(a)
	}
}

func (w *World) substep(h float64) {
	for _, s := range w.shapes {
		s.OnGround, s.OnWall, s.OnCeiling = false, false, false
		switch w.types[s] {
		case Dynamic:
			s.step(h, w.Gravity)
		case Kinematic:
			s.pos.shift()
			s.vel.shift()
			s.angle.shift()
			s.angVel.shift()
			s.pos.cur = s.pos.cur.Add(s.vel.cur.Scale(h))
			s.angle.cur += s.angVel.cur * h
		case Static:
			s.hold()
		}
		w.sync(s)
	}

	for i := 0; i < w.Iterations; i++ {
		if !w.resolve() {
			break
		}
	}
}

// resolve runs one pass over all dynamic shapes. It reports whether any
// contact was found.
func (w *World) resolve() bool {
	found := false
	for _, s := range w.shapes {
		if w.types[s] != Dynamic || s.obj == nil {
			continue
		}
		check := s.obj.Check(0, 0)
		if check == nil {
			continue
		}
		for _, obj := range check.Objects {
			o, ok := obj.Data.(*Shape)
			if !ok || o == s || o.obj == nil {
				continue
			}
			if w.types[o] == Dynamic && w.ids[o] < w.ids[s] {
				continue
			}
			c := w.collide(s, o)
			if !c.Collided {
				continue
			}
			found = true
			w.separate(s, o, c)
			w.sync(s)
			w.sync(o)
		}
	}
	return found
}

// collide runs the narrow phase on the simulated (not interpolated) state.
func (w *World) collide(a, b *Shape) Contact {
	pa, pb := a.pos.now, b.pos.now
	aa, ab := a.angle.now, b.angle.now
	a.pos.now, b.pos.now = a.pos.cur, b.pos.cur
	a.angle.now, b.angle.now = a.angle.cur, b.angle.cur
	c := Collide(a, b)
	a.pos.now, b.pos.now = pa, pb
	a.angle.now, b.angle.now = aa, ab
	return c
}

func (w *World) invMass(s *Shape) float64 {
	if w.types[s] != Dynamic {
		return 0
	}
	return 1 / s.mass()
}

// separate pushes a and b apart and removes their approaching velocity.
func (w *World) separate(a, b *Shape, c Contact) {
	ia, ib := w.invMass(a), w.invMass(b)
	total := ia + ib
	if total == 0 {
		return
	}
	a.nudge(c.MTV.Scale(-ia / total))
	b.nudge(c.MTV.Scale(ib / total))

	n := c.Normal
	rv := b.vel.cur.Sub(a.vel.cur).Dot(n)
	if rv < 0 {
		e := math.Max(a.Restitution, b.Restitution)
		j := -(1 + e) * rv / total
		a.vel.cur = a.vel.cur.Sub(n.Scale(j * ia))
		b.vel.cur = b.vel.cur.Add(n.Scale(j * ib))
	}

	classify(a, n.Neg())
	classify(b, n)
}

// classify sets the contact flags of s from the direction it was pushed.
func classify(s *Shape, push Vec2) {
	angle := wrapAngle(push.Angle())
	switch {
	case angle > groundMin && angle < groundMax:
		s.OnGround = true
	case angle > ceilingMin && angle < ceilingMax:
		s.OnCeiling = true
	case math.Abs(angle) < wallInner || math.Abs(angle) > wallOuter:
		s.OnWall = true
	}
}
