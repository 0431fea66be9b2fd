package bounce

import (
	"testing"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
)

const frame = 1.0 / 60

func newSketch(t *testing.T) (*Sketch, *hui.Game) {
	t.Helper()
	out := core.NewScreen(60, 20)
	g := hui.New(out, func() hui.Surface { return core.NewScreen(60, 20) }, hui.WithSeed(5))
	s := New()
	s.Setup(g, config.DefaultConfig())
	return s, g
}

func run(g *hui.Game, frames int) {
	for i := 0; i < frames; i++ {
		g.Step(g.Time+frame, frame)
	}
}

func TestShapesStayInside(t *testing.T) {
	s, g := newSketch(t)
	if s.Bodies() != 6 {
		t.Fatalf("Bodies = %d, expected 6", s.Bodies())
	}

	run(g, 300)

	w, h := g.Size()
	for _, b := range s.bodies {
		p := b.Pos()
		if p.X < -3 || p.X > w+3 || p.Y < -3 || p.Y > h+3 {
			t.Errorf("%v escaped the %vx%v world", b, w, h)
		}
	}
}

func TestClickSpawnsAtMouse(t *testing.T) {
	s, g := newSketch(t)
	g.Input.Mouse = hui.V(20, 10)
	g.Input.Press(hui.MouseKey(0))
	run(g, 1)

	if s.Bodies() != 7 {
		t.Fatalf("Bodies = %d, expected 7", s.Bodies())
	}
	last := s.bodies[len(s.bodies)-1]
	if last.Kind != hui.KindDisc {
		t.Errorf("click should spawn a disc, got %v", last.Kind)
	}
	if d := last.Simulated().Pos.Distance(hui.V(20, 10)); d > 2 {
		t.Errorf("disc spawned %v away from the mouse", d)
	}
}

func TestSpawnCapRemovesOldest(t *testing.T) {
	s, g := newSketch(t)
	first := s.bodies[0]
	for i := 0; i < MaxBodies; i++ {
		s.Spawn(hui.V(30, 5), false)
	}
	run(g, 1)

	if s.Bodies() != MaxBodies {
		t.Errorf("Bodies = %d, expected %d", s.Bodies(), MaxBodies)
	}
	if _, ok := g.Scene.Lookup(first); ok {
		t.Error("oldest shape should have been removed")
	}
	if _, ok := s.world.TypeOf(first); ok {
		t.Error("removed shape should leave the world")
	}
}

func TestClear(t *testing.T) {
	s, g := newSketch(t)
	g.Input.Press("c")
	run(g, 1)

	if s.Bodies() != 0 {
		t.Errorf("Bodies = %d after clear", s.Bodies())
	}
	// Three ledges plus four boundary walls.
	if n := len(s.world.Shapes()); n != 7 {
		t.Errorf("world has %d shapes after clear, expected 7", n)
	}
}
