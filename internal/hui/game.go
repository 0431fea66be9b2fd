package hui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/hui-playground/internal/core"
)

// Game drives one frame at a time over a Scene, an Input and a LayerStack.
//
// User code plugs in through SetupFunc, TickFunc and DrawFunc and through
// things added to the Scene.
type Game struct {
	Scene  *Scene
	Input  *Input
	Layers *LayerStack
	Rand   *Rand

	// Shortcuts to the fixed layers.
	BG, MG, FG, UI Surface

	// Time is the game clock passed to the last Step.
	Time float64

	SetupFunc func()
	TickFunc  func(dt float64)
	DrawFunc  func(dt float64)

	output   Surface
	world    *World
	debug    bool
	prepared bool
	logger   *log.Logger
	diag     Diagnostics
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for faults and debug output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithSeed makes the game's random helpers deterministic.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.Rand = NewRand(seed) }
}

// WithDebug starts the game with the debug overlay on.
func WithDebug(on bool) Option {
	return func(g *Game) { g.debug = on }
}

// New returns a game that composites its layers onto output. newLayer
// allocates each layer; layers should match the size of output.
func New(output Surface, newLayer func() Surface, opts ...Option) *Game {
	if output == nil || newLayer == nil {
		panic("hui: New needs an output surface and a layer allocator")
	}
	g := &Game{
		Input:  NewInput(),
		output: output,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.Rand == nil {
		g.Rand = &Rand{}
	}

	g.Scene = NewScene(g.logger)
	g.Scene.SetDebug(g.debug)
	g.Layers = newLayerStack(newLayer)
	g.BG, g.MG, g.FG, g.UI = g.Layers.BG, g.Layers.MG, g.Layers.FG, g.Layers.UI
	return g
}

// Size returns the world extent of the output surface.
func (g *Game) Size() (w, h float64) {
	return g.output.Size()
}

func (g *Game) Width() float64 {
	w, _ := g.output.Size()
	return w
}

func (g *Game) Height() float64 {
	_, h := g.output.Size()
	return h
}

// Logger returns the game's logger.
func (g *Game) Logger() *log.Logger { return g.logger }

// Prepare runs SetupFunc once. Step calls it on the first frame if needed.
func (g *Game) Prepare() {
	if g.prepared {
		return
	}
	g.prepared = true
	if g.SetupFunc != nil {
		g.Scene.guard(Handle{}, PhaseHook, g.SetupFunc)
	}
}

// Step runs one frame at game time t, dt seconds after the previous one.
func (g *Game) Step(t, dt float64) {
	g.Prepare()

	g.Scene.frame++
	g.diag.frame(dt)
	g.Time = t
	pt := newPhaseTimer()
	n := g.diag.window

	if g.TickFunc != nil {
		g.Scene.guard(Handle{}, PhaseHook, func() { g.TickFunc(dt) })
	}
	g.Scene.Tick(dt)
	g.diag.Tick = reavg(g.diag.Tick, pt.lap(), n)

	if g.world != nil {
		g.Scene.guard(Handle{}, PhasePhysics, func() { g.world.Step(dt) })
	}
	g.diag.Physics = reavg(g.diag.Physics, pt.lap(), n)

	if g.DrawFunc != nil {
		g.Scene.guard(Handle{}, PhaseHook, func() { g.DrawFunc(dt) })
	}
	g.diag.Draw = reavg(g.diag.Draw, pt.lap(), n)

	g.Scene.Draw(dt)
	if g.debug {
		g.Layers.Debug.Clear()
		g.Scene.DrawDebug(g.Layers.Debug)
		g.drawOverlay()
	}
	g.diag.DrawThings = reavg(g.diag.DrawThings, pt.lap(), n)

	g.Layers.composite(g.output, g.debug)
	g.diag.Layers = reavg(g.diag.Layers, pt.lap(), n)

	g.Input.Decay()
	g.diag.Input = reavg(g.diag.Input, pt.lap(), n)

	g.Scene.Sweep()
	g.diag.Removal = reavg(g.diag.Removal, pt.lap(), n)

	g.diag.Full = pt.last.Sub(pt.start)
}

func (g *Game) drawOverlay() {
	text := fmt.Sprintf("%v  things %d  faults %d", g.diag, g.Scene.Len(), g.Scene.FaultCount())
	g.Layers.Debug.Text(0, 0, text, core.ColorBrightYellow)
}

// Diagnostics returns timing statistics of the recent frames.
func (g *Game) Diagnostics() Diagnostics { return g.diag }

// Faults returns the most recent recovered faults.
func (g *Game) Faults() []Fault { return g.Scene.Faults() }

// FaultCount returns the number of recovered faults.
func (g *Game) FaultCount() int { return g.Scene.FaultCount() }

// Debug reports whether the debug overlay is on.
func (g *Game) Debug() bool { return g.debug }

// SetDebug turns the debug overlay and add/remove logging on or off.
func (g *Game) SetDebug(on bool) {
	g.debug = on
	g.Scene.SetDebug(on)
	if !on {
		g.Layers.Debug.Clear()
	}
}

// ToggleDebug flips the debug overlay.
func (g *Game) ToggleDebug() {
	g.SetDebug(!g.debug)
}

// Add registers a thing with the scene.
func (g *Game) Add(thing any) Handle {
	return g.Scene.Add(thing)
}

// AddChild registers a thing under parent.
func (g *Game) AddChild(parent Handle, thing any) (Handle, error) {
	return g.Scene.AddChild(parent, thing)
}

// Remove marks a Handle or a registered thing for removal at the end of
// the frame. Shapes are also detached from an attached World.
func (g *Game) Remove(x any) {
	var h Handle
	switch v := x.(type) {
	case Handle:
		h = v
	default:
		var ok bool
		if h, ok = g.Scene.Lookup(x); !ok {
			return
		}
	}
	g.Scene.Remove(h)
}

// AddLayer creates a custom layer between mg and fg.
func (g *Game) AddLayer() Surface {
	return g.Layers.Add()
}

// AttachWorld steps w in every frame after the tick phase. Shapes
// registered with w stop integrating on their own.
func (g *Game) AttachWorld(w *World) {
	g.world = w
}

// World returns the attached physics world, if any.
func (g *Game) World() *World { return g.world }

// NewTimer returns an idle timer that is not registered.
func (g *Game) NewTimer(duration float64, repeat bool) *Timer {
	return NewTimer(duration, repeat, false)
}

// AddTimer starts a timer that removes itself after finishing (unless it
// repeats) and registers it.
func (g *Game) AddTimer(duration float64, repeat bool) *Timer {
	t := NewTimer(duration, repeat, true)
	t.Start()
	g.Add(t)
	return t
}

// NewRandom returns a random timer seeded from the game's source.
func (g *Game) NewRandom(period float64, repeat bool) *RandomTimer {
	return NewRandomTimer(period, repeat, g.Rand)
}

// NewBody registers a new body.
func (g *Game) NewBody(x, y, vx, vy float64) *Body {
	b := NewBody(x, y, vx, vy)
	g.Add(b)
	return b
}

// NewBox registers a new box drawn on the mg layer.
func (g *Game) NewBox(x, y, w, h float64) *Shape {
	s := NewBox(x, y, w, h)
	s.Layer = g.MG
	g.Add(s)
	return s
}

// NewDisc registers a new disc drawn on the mg layer.
func (g *Game) NewDisc(x, y, r float64) *Shape {
	s := NewDisc(x, y, r)
	s.Layer = g.MG
	g.Add(s)
	return s
}
