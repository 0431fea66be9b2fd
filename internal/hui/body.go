package hui

import (
	"fmt"
	"math"
)

// Integration defaults.
const (
	DefaultFixedStep = 0.01
	DefaultMaxDelta  = 0.1
)

// stepEpsilon absorbs float drift so that n frames of n*h seconds yield
// exactly n substeps.
const stepEpsilon = 1e-9

// kinematic is one integrated quantity: the last two fixed-step samples
// and the interpolated value between them.
type kinematic[T any] struct {
	last, cur, now T
}

func (k *kinematic[T]) set(v T) {
	k.last, k.cur, k.now = v, v, v
}

func (k *kinematic[T]) shift() {
	k.last = k.cur
}

// Body is a point mass advanced with a fixed-timestep semi-implicit Euler
// integrator. Reads return the state interpolated between the last two
// substeps; setters teleport.
type Body struct {
	Force   Vec2
	Torque  float64
	Gravity Vec2
	Mass    float64
	Inertia float64
	Static  bool

	// FixedStep is the substep size h; MaxDelta caps the time fed to the
	// accumulator per Move call.
	FixedStep float64
	MaxDelta  float64

	pos    kinematic[Vec2]
	vel    kinematic[Vec2]
	angle  kinematic[float64]
	angVel kinematic[float64]

	accumulator float64
}

// NewBody returns a body at (x, y) moving with (vx, vy).
func NewBody(x, y, vx, vy float64) *Body {
	b := &Body{}
	b.init(V(x, y), V(vx, vy))
	return b
}

func (b *Body) init(pos, vel Vec2) {
	b.Mass = 1
	b.Inertia = 1
	b.FixedStep = DefaultFixedStep
	b.MaxDelta = DefaultMaxDelta
	b.pos.set(pos)
	b.vel.set(vel)
}

func (b *Body) Pos() Vec2           { return b.pos.now }
func (b *Body) Vel() Vec2           { return b.vel.now }
func (b *Body) Angle() float64      { return b.angle.now }
func (b *Body) AngularVel() float64 { return b.angVel.now }
func (b *Body) X() float64          { return b.pos.now.X }
func (b *Body) Y() float64          { return b.pos.now.Y }
func (b *Body) VX() float64         { return b.vel.now.X }
func (b *Body) VY() float64         { return b.vel.now.Y }

func (b *Body) SetPos(p Vec2)           { b.pos.set(p) }
func (b *Body) SetVel(v Vec2)           { b.vel.set(v) }
func (b *Body) SetAngle(a float64)      { b.angle.set(a) }
func (b *Body) SetAngularVel(w float64) { b.angVel.set(w) }
func (b *Body) SetX(x float64)          { b.pos.set(V(x, b.pos.now.Y)) }
func (b *Body) SetY(y float64)          { b.pos.set(V(b.pos.now.X, y)) }
func (b *Body) SetVX(vx float64)        { b.vel.set(V(vx, b.vel.now.Y)) }
func (b *Body) SetVY(vy float64)        { b.vel.set(V(b.vel.now.X, vy)) }

// State is one fixed-step sample of a body.
type State struct {
	Pos, Vel          Vec2
	Angle, AngularVel float64
}

// Simulated returns the latest fixed-step sample. The interpolated readout
// trails it by at most one substep.
func (b *Body) Simulated() State {
	return State{Pos: b.pos.cur, Vel: b.vel.cur, Angle: b.angle.cur, AngularVel: b.angVel.cur}
}

// Speed is the length of the velocity.
func (b *Body) Speed() float64 { return b.vel.now.Len() }

// SetSpeed keeps the heading and rescales the velocity.
func (b *Body) SetSpeed(s float64) { b.vel.set(b.vel.now.Norm(s)) }

// Acc is the acceleration caused by Force.
func (b *Body) Acc() Vec2 { return b.Force.Div(b.mass()) }

// SetAcc sets Force so that Acc returns a.
func (b *Body) SetAcc(a Vec2) { b.Force = a.Scale(b.mass()) }

func (b *Body) mass() float64 {
	if b.Mass <= 0 {
		return 1
	}
	return b.Mass
}

func (b *Body) inertia() float64 {
	if b.Inertia <= 0 {
		return 1
	}
	return b.Inertia
}

// Move feeds dt seconds to the accumulator, runs all complete substeps and
// refreshes the interpolated state.
func (b *Body) Move(dt float64) {
	h := b.FixedStep
	if h <= 0 {
		h = DefaultFixedStep
	}
	if b.Static {
		b.hold()
		return
	}

	if b.MaxDelta > 0 && dt > b.MaxDelta {
		dt = b.MaxDelta
	}
	if dt > 0 {
		b.accumulator += dt
	}

	for b.accumulator >= h-stepEpsilon {
		b.step(h, Zero)
		b.accumulator -= h
	}
	if b.accumulator < 0 {
		b.accumulator = 0
	}
	b.interpolate(b.accumulator / h)
}

// Tick lets a Body live in the scene on its own.
func (b *Body) Tick(dt float64) {
	b.Move(dt)
}

// step integrates one substep: velocity first, then position. g is extra
// gravity applied by a World.
func (b *Body) step(h float64, g Vec2) {
	b.pos.shift()
	b.vel.shift()
	b.angle.shift()
	b.angVel.shift()

	acc := b.Force.Div(b.mass()).Add(b.Gravity).Add(g)
	b.vel.cur = b.vel.cur.Add(acc.Scale(h))
	b.pos.cur = b.pos.cur.Add(b.vel.cur.Scale(h))

	b.angVel.cur += b.Torque / b.inertia() * h
	b.angle.cur += b.angVel.cur * h
}

func (b *Body) interpolate(a float64) {
	a = Clamp(a, 0, 1)
	b.pos.now = b.pos.last.Lerp(b.pos.cur, a)
	b.vel.now = b.vel.last.Lerp(b.vel.cur, a)
	b.angle.now = Lerp(b.angle.last, b.angle.cur, a)
	b.angVel.now = Lerp(b.angVel.last, b.angVel.cur, a)
}

// hold keeps a static body's samples in sync with its externally driven state.
func (b *Body) hold() {
	b.accumulator = 0
	b.pos.set(b.pos.now)
	b.vel.set(b.vel.now)
	b.angle.set(b.angle.now)
	b.angVel.set(b.angVel.now)
}

// nudge displaces the simulated position without restarting interpolation.
func (b *Body) nudge(d Vec2) {
	b.pos.cur = b.pos.cur.Add(d)
}

// LocalPos returns p in the body's rotated frame, relative to its position.
func (b *Body) LocalPos(p Vec2) Vec2 {
	return b.Pos().To(p).Rotate(-b.Angle())
}

func (b *Body) String() string {
	return fmt.Sprintf("<hui:body pos=%v vel=%v>", b.Pos(), b.Vel())
}

// wrapAngle folds an angle into (-pi, pi].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
