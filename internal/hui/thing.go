package hui

import "github.com/vovakirdan/hui-playground/internal/core"

// Surface is the drawing contract things and layers use.
type Surface = core.Surface

// A thing is any value registered with the Scene. It opts into behavior by
// implementing any of the interfaces below. Capabilities are checked once,
// when the thing is added.

// Setupper is called once, synchronously, when the thing is added.
type Setupper interface {
	Setup()
}

// Ticker advances the thing once per frame.
type Ticker interface {
	Tick(dt float64)
}

// Drawer draws the thing once per frame, after every tick.
type Drawer interface {
	Draw(dt float64)
}

// DebugDrawer draws an overlay onto the debug surface while debug is on.
type DebugDrawer interface {
	DrawDebug(s Surface)
}

// RemovalSignaler lets a thing ask to be removed at the end of the frame.
type RemovalSignaler interface {
	WantsRemoval() bool
}

// Foreign is implemented by proxies whose lifetime is managed elsewhere,
// such as objects owned by an embedded interpreter. The Scene stores the
// value returned by Retain instead of the proxy itself.
type Foreign interface {
	Retain() (any, error)
}

// Releaser is notified when a retained thing leaves the Scene.
type Releaser interface {
	Release()
}

// Funcs adapts plain functions into a thing. Nil fields are skipped.
type Funcs struct {
	OnSetup func()
	OnTick  func(dt float64)
	OnDraw  func(dt float64)
}

func (f *Funcs) Setup() {
	if f.OnSetup != nil {
		f.OnSetup()
	}
}

func (f *Funcs) Tick(dt float64) {
	if f.OnTick != nil {
		f.OnTick(dt)
	}
}

func (f *Funcs) Draw(dt float64) {
	if f.OnDraw != nil {
		f.OnDraw(dt)
	}
}

type capability uint8

const (
	capSetup capability = 1 << iota
	capTick
	capDraw
	capDebug
	capSignal
	capRelease
)

func capabilitiesOf(thing any) capability {
	var c capability
	if _, ok := thing.(Setupper); ok {
		c |= capSetup
	}
	if _, ok := thing.(Ticker); ok {
		c |= capTick
	}
	if _, ok := thing.(Drawer); ok {
		c |= capDraw
	}
	if _, ok := thing.(DebugDrawer); ok {
		c |= capDebug
	}
	if _, ok := thing.(RemovalSignaler); ok {
		c |= capSignal
	}
	if _, ok := thing.(Releaser); ok {
		c |= capRelease
	}
	return c
}

func (c capability) has(f capability) bool {
	return c&f != 0
}
