// Package breakout is a brick breaker built on shape collision. Every
// contact is resolved by pushing the ball out along the minimum
// translation vector and reflecting its velocity about the contact normal.
package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
	"github.com/vovakirdan/hui-playground/internal/registry"
	"github.com/vovakirdan/hui-playground/internal/sketches"
)

const (
	paddleW     = 12.0
	paddleH     = 2.0
	ballRadius  = 1.0
	brickH      = 2.0
	rowPitch    = 4.0 // One terminal row between brick rows
	wallTop     = 6.0
	wallMargin  = 2.0
	brickGap    = 1.0
	startLives  = 3
	brickPoints = 10
	maxEnglish  = 0.75 // Horizontal share of the bounce at the paddle edge
)

var rowColors = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightBlue,
}

// Sketch implements the breakout sketch.
type Sketch struct {
	cfg    config.BreakoutConfig
	engine config.EngineConfig

	game   *hui.Game
	paddle *hui.Shape
	ball   *hui.Shape
	wall   hui.Handle
	bricks []*hui.Shape

	score int
	lives int
	level int
	stuck bool // Ball rides the paddle until launched
	over  bool
}

// wall is the parent of a level's bricks.
type wall struct{}

// New creates a new breakout sketch.
func New() *Sketch {
	return &Sketch{}
}

func (s *Sketch) ID() string    { return "breakout" }
func (s *Sketch) Title() string { return "Breakout" }

// Score returns the points scored this round.
func (s *Sketch) Score() int { return s.score }

// Over reports whether all lives are lost.
func (s *Sketch) Over() bool { return s.over }

// Setup creates the paddle, the ball and the first wall.
func (s *Sketch) Setup(g *hui.Game, cfg config.Config) {
	s.game = g
	s.cfg = cfg.Breakout
	s.engine = cfg.Engine

	w, h := g.Size()
	s.paddle = g.NewBox(w/2, h-4, paddleW, paddleH)
	s.paddle.Color = core.ColorBrightWhite
	sketches.Tune(&s.paddle.Body, cfg.Engine)

	s.ball = g.NewDisc(w/2, h/2, ballRadius)
	s.ball.Color = core.ColorBrightWhite
	sketches.Tune(&s.ball.Body, cfg.Engine)

	s.restart()

	g.TickFunc = s.tick
	g.DrawFunc = s.draw
}

func (s *Sketch) restart() {
	if !s.wall.IsZero() {
		s.game.Remove(s.wall)
	}
	s.score = 0
	s.lives = startLives
	s.level = 1
	s.over = false
	s.buildWall()
	s.serve()
}

// buildWall lays out a fresh grid of bricks under a new wall parent.
func (s *Sketch) buildWall() {
	g := s.game
	w, _ := g.Size()
	cols := max(s.cfg.Cols, 1)
	brickW := (w - 2*wallMargin - float64(cols-1)*brickGap) / float64(cols)

	s.wall = g.Add(&wall{})
	s.bricks = s.bricks[:0]
	for r := 0; r < s.cfg.Rows; r++ {
		for c := 0; c < cols; c++ {
			x := wallMargin + brickW/2 + float64(c)*(brickW+brickGap)
			y := wallTop + float64(r)*rowPitch
			b := hui.NewBox(x, y, brickW, brickH)
			b.Layer = g.MG
			b.Color = rowColors[r%len(rowColors)]
			if _, err := g.AddChild(s.wall, b); err != nil {
				g.Logger().Error("cannot add brick", "error", err)
				continue
			}
			s.bricks = append(s.bricks, b)
		}
	}
}

// serve parks the ball on the paddle.
func (s *Sketch) serve() {
	s.stuck = true
	s.ball.SetVel(hui.Zero)
	s.park()
}

func (s *Sketch) park() {
	s.ball.SetPos(hui.V(s.paddle.X(), s.paddle.Y()-paddleH/2-ballRadius))
}

func (s *Sketch) speed() float64 {
	return s.cfg.BallSpeed * (1 + 0.1*float64(s.level-1))
}

func (s *Sketch) launch() {
	s.stuck = false
	angle := -math.Pi/2 + s.game.Rand.Rndr(-0.5, 0.5)
	s.ball.SetVel(hui.Polar(angle, s.speed()))
}

func (s *Sketch) tick(float64) {
	in := s.game.Input
	if s.over {
		if in.JustPressed("r") {
			s.restart()
		}
		return
	}

	s.movePaddle(in.AxisPressed("ArrowLeft", "ArrowRight"))
	if s.stuck {
		s.park()
		if in.JustPressed(" ") {
			s.launch()
		}
		return
	}

	s.bounceWalls()
	s.hitPaddle()
	s.hitBricks()

	if _, h := s.game.Size(); s.ball.Y()-ballRadius > h {
		s.loseBall()
	}
}

func (s *Sketch) movePaddle(dir float64) {
	w, _ := s.game.Size()
	s.paddle.SetVX(dir * s.cfg.PaddleSpeed)
	half := paddleW / 2
	if x := s.paddle.X(); x < half || x > w-half {
		s.paddle.SetX(hui.Clamp(x, half, w-half))
	}
}

func (s *Sketch) bounceWalls() {
	w, _ := s.game.Size()
	p, v := s.ball.Pos(), s.ball.Vel()
	bounced := false
	if (p.X-ballRadius < 0 && v.X < 0) || (p.X+ballRadius > w && v.X > 0) {
		v.X = -v.X
		bounced = true
	}
	if p.Y-ballRadius < 0 && v.Y < 0 {
		v.Y = -v.Y
		bounced = true
	}
	if bounced {
		s.ball.SetVel(v)
	}
}

// resolve pushes the ball out of c and reflects it if it still moves into
// the contact.
func (s *Sketch) resolve(c hui.Contact) {
	s.ball.SetPos(s.ball.Pos().Sub(c.MTV))
	v := s.ball.Vel()
	if d := v.Dot(c.Normal); d > 0 {
		s.ball.SetVel(v.Sub(c.Normal.Scale(2 * d)))
	}
}

func (s *Sketch) hitPaddle() {
	c := hui.Collide(s.ball, s.paddle)
	if !c.Collided || s.ball.VY() < 0 {
		return
	}
	s.ball.SetPos(s.ball.Pos().Sub(c.MTV))

	// The further from the center, the flatter the bounce.
	off := hui.Clamp((s.ball.X()-s.paddle.X())/(paddleW/2), -1, 1)
	s.ball.SetVel(hui.V(off*maxEnglish, -1).Norm(s.speed()))
}

func (s *Sketch) hitBricks() {
	for i, b := range s.bricks {
		c := hui.Collide(s.ball, b)
		if !c.Collided {
			continue
		}
		s.resolve(c)
		s.game.Remove(b)
		s.bricks = append(s.bricks[:i], s.bricks[i+1:]...)
		s.score += brickPoints * s.level
		break
	}

	if len(s.bricks) == 0 {
		s.game.Remove(s.wall)
		s.level++
		s.game.Logger().Debug("breakout: level cleared", "level", s.level, "score", s.score)
		s.buildWall()
		s.serve()
	}
}

func (s *Sketch) loseBall() {
	s.lives--
	if s.lives <= 0 {
		s.over = true
		s.ball.SetVel(hui.Zero)
		return
	}
	s.serve()
}

func (s *Sketch) draw(float64) {
	sketches.ClearLayers(s.game)
	hud := fmt.Sprintf(" Score: %d  Lives: %d  Level: %d ", s.score, s.lives, s.level)
	s.game.UI.Text(1, 0, hud, core.ColorBrightWhite)
	switch {
	case s.over:
		sketches.Banner(s.game.UI, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.score))
	case s.stuck:
		w, h := s.game.Size()
		msg := "SPACE to launch, arrows to move"
		s.game.UI.Text(float64(int((w-float64(len(msg)))/2)), h/2, msg, core.ColorGray)
	}
}

func init() {
	registry.Register("breakout", func() registry.Sketch {
		return New()
	})
}
