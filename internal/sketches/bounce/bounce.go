// Package bounce drops discs and boxes into a physics world with ledges.
// Click or press space to spawn more, c to clear them.
package bounce

import (
	"fmt"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
	"github.com/vovakirdan/hui-playground/internal/registry"
	"github.com/vovakirdan/hui-playground/internal/sketches"
)

// MaxBodies caps the number of spawned shapes; the oldest goes first.
const MaxBodies = 40

var palette = []core.Color{
	core.ColorBrightRed,
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
	core.ColorBrightYellow,
	core.ColorOrange,
	core.ColorSky,
}

// Sketch implements the bounce sketch.
type Sketch struct {
	game   *hui.Game
	world  *hui.World
	engine config.EngineConfig
	bodies []*hui.Shape
}

// New creates a new bounce sketch.
func New() *Sketch {
	return &Sketch{}
}

func (s *Sketch) ID() string    { return "bounce" }
func (s *Sketch) Title() string { return "Bounce" }

// Setup builds the world, its static ledges and a first handful of shapes.
func (s *Sketch) Setup(g *hui.Game, cfg config.Config) {
	s.game = g
	s.engine = cfg.Engine
	s.world = sketches.AttachWorld(g, cfg.Physics)

	w, h := g.Size()
	s.ledge(w*0.3, h*0.65, w*0.35, 2, 0)
	s.ledge(w*0.72, h*0.45, w*0.3, 2, -0.25)
	s.ledge(w/2, h-1, w, 2, 0)

	for i := 0; i < 6; i++ {
		s.Spawn(hui.V(g.Rand.Rndr(4, w-4), g.Rand.Rndr(2, h/3)), i%3 == 2)
	}

	g.TickFunc = s.tick
	g.DrawFunc = s.draw
}

func (s *Sketch) ledge(x, y, w, h, angle float64) *hui.Shape {
	l := s.game.NewBox(x, y, w, h)
	l.SetAngle(angle)
	l.Color = core.ColorGray
	s.world.Add(l, hui.Static)
	return l
}

// Spawn drops a disc, or a box when box is set, at p.
func (s *Sketch) Spawn(p hui.Vec2, box bool) *hui.Shape {
	g := s.game
	var shape *hui.Shape
	if box {
		size := g.Rand.Rndr(2, 4)
		shape = g.NewBox(p.X, p.Y, size*1.5, size)
	} else {
		shape = g.NewDisc(p.X, p.Y, g.Rand.Rndr(1, 2.5))
	}
	shape.Restitution = g.Rand.Rndr(0.3, 0.8)
	shape.Color = palette[g.Rand.Rndi(0, len(palette))]
	shape.SetVel(g.Rand.RndDir().Scale(g.Rand.Rndr(10, 40)))
	sketches.Tune(&shape.Body, s.engine)
	s.world.Add(shape, hui.Dynamic)

	s.bodies = append(s.bodies, shape)
	if len(s.bodies) > MaxBodies {
		g.Remove(s.bodies[0])
		s.bodies = s.bodies[1:]
	}
	return shape
}

// Clear removes every spawned shape.
func (s *Sketch) Clear() {
	for _, b := range s.bodies {
		s.game.Remove(b)
	}
	s.bodies = nil
}

// Bodies returns the number of spawned shapes.
func (s *Sketch) Bodies() int { return len(s.bodies) }

func (s *Sketch) tick(float64) {
	in := s.game.Input
	switch {
	case in.JustPressed(hui.MouseKey(0)):
		s.Spawn(in.Mouse, false)
	case in.JustPressed(" "):
		w, _ := s.game.Size()
		s.Spawn(hui.V(s.game.Rand.Rndr(4, w-4), 2), true)
	case in.JustPressed("c"):
		s.Clear()
	}
}

func (s *Sketch) draw(float64) {
	sketches.ClearLayers(s.game)
	resting := 0
	for _, b := range s.bodies {
		if b.OnGround {
			resting++
		}
	}
	s.game.UI.Text(1, 0, fmt.Sprintf("bodies %d  resting %d  [click/space spawn, c clear]", len(s.bodies), resting), core.ColorGray)
}

func init() {
	registry.Register("bounce", func() registry.Sketch {
		return New()
	})
}
