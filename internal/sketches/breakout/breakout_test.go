package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
)

const frame = 1.0 / 60

func newSketch(t *testing.T) (*Sketch, *hui.Game) {
	t.Helper()
	out := core.NewScreen(80, 24)
	g := hui.New(out, func() hui.Surface { return core.NewScreen(80, 24) }, hui.WithSeed(9))
	s := New()
	s.Setup(g, config.DefaultConfig())
	return s, g
}

func run(g *hui.Game, frames int) {
	for i := 0; i < frames; i++ {
		g.Step(g.Time+frame, frame)
	}
}

// aim places the ball just overlapping the bottom of b, moving up.
func aim(s *Sketch, b *hui.Shape) {
	s.stuck = false
	s.ball.SetPos(hui.V(b.X(), b.Y()+brickH/2+ballRadius-0.2))
	s.ball.SetVel(hui.V(0, -s.speed()))
}

func TestWallLayout(t *testing.T) {
	s, g := newSketch(t)
	cfg := config.DefaultConfig().Breakout
	if len(s.bricks) != cfg.Rows*cfg.Cols {
		t.Fatalf("bricks = %d, expected %d", len(s.bricks), cfg.Rows*cfg.Cols)
	}
	if n := len(g.Scene.Children(s.wall)); n != len(s.bricks) {
		t.Errorf("wall has %d children, expected %d", n, len(s.bricks))
	}
	w, _ := g.Size()
	for i, a := range s.bricks {
		box := a.AABB()
		if box.Left() < 0 || box.Right() > w {
			t.Errorf("brick %d outside the screen: %v", i, box)
		}
		for _, b := range s.bricks[i+1:] {
			if a.Touches(b) {
				t.Fatalf("bricks %v and %v overlap", a, b)
			}
		}
	}
}

func TestLaunch(t *testing.T) {
	s, g := newSketch(t)
	run(g, 2)
	if !s.stuck || s.ball.Vel() != hui.Zero {
		t.Fatal("ball should wait on the paddle")
	}

	g.Input.Press(" ")
	run(g, 1)

	if s.stuck {
		t.Fatal("space should launch the ball")
	}
	if s.ball.VY() >= 0 {
		t.Errorf("ball should fly up, vel=%v", s.ball.Vel())
	}
}

func TestPaddleClamped(t *testing.T) {
	s, g := newSketch(t)
	g.Input.Press("ArrowRight")
	run(g, 180)

	w, _ := g.Size()
	if x := s.paddle.X(); x > w-paddleW/2+2 {
		t.Errorf("paddle left the screen, x=%v", x)
	}
	if s.paddle.X() <= w/2 {
		t.Errorf("paddle should have moved right, x=%v", s.paddle.X())
	}
	if !s.stuck || math.Abs(s.ball.X()-s.paddle.X()) > 2 {
		t.Error("parked ball should follow the paddle")
	}
}

func TestBrickHitReflects(t *testing.T) {
	s, g := newSketch(t)
	run(g, 1)
	target := s.bricks[len(s.bricks)-1]
	count := len(s.bricks)

	aim(s, target)
	run(g, 1)

	if len(s.bricks) != count-1 {
		t.Fatalf("bricks = %d, expected %d", len(s.bricks), count-1)
	}
	if _, ok := g.Scene.Lookup(target); ok {
		t.Error("hit brick should leave the scene")
	}
	if s.Score() != brickPoints {
		t.Errorf("Score = %d, expected %d", s.Score(), brickPoints)
	}
	if s.ball.VY() <= 0 {
		t.Errorf("ball should bounce down, vel=%v", s.ball.Vel())
	}
}

func TestClearingWallAdvancesLevel(t *testing.T) {
	s, g := newSketch(t)
	run(g, 1)
	for _, b := range s.bricks[1:] {
		g.Remove(b)
	}
	s.bricks = s.bricks[:1]
	oldWall := s.wall

	aim(s, s.bricks[0])
	run(g, 1)

	if s.level != 2 {
		t.Errorf("level = %d, expected 2", s.level)
	}
	if g.Scene.Contains(oldWall) {
		t.Error("cleared wall should be removed")
	}
	cfg := config.DefaultConfig().Breakout
	if len(s.bricks) != cfg.Rows*cfg.Cols {
		t.Errorf("new wall has %d bricks", len(s.bricks))
	}
	if !s.stuck {
		t.Error("ball should be served again")
	}
}

func TestLosingAllLives(t *testing.T) {
	s, g := newSketch(t)
	_, h := g.Size()
	for i := 0; i < startLives; i++ {
		s.stuck = false
		s.ball.SetPos(hui.V(10, h+5))
		s.ball.SetVel(hui.V(0, 10))
		run(g, 1)
	}
	if !s.Over() {
		t.Fatalf("expected game over, lives=%d", s.lives)
	}

	g.Input.Press("r")
	run(g, 1)
	if s.Over() || s.lives != startLives || s.Score() != 0 {
		t.Errorf("restart should reset: over=%v lives=%d score=%d", s.Over(), s.lives, s.Score())
	}
}
