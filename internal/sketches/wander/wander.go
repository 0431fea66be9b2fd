// Package wander lets a flock of critters drift on random timers. Hold the
// mouse button to call them, click or press space for a spark.
package wander

import (
	"fmt"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
	"github.com/vovakirdan/hui-playground/internal/registry"
	"github.com/vovakirdan/hui-playground/internal/sketches"
)

const (
	critterCount  = 12
	critterSpeed  = 12.0
	turnPeriod    = 1.5 // Mean seconds between heading changes
	pulsePeriod   = 2.0
	sparkLife     = 0.6
	sparkRadius   = 6.0
	followerSpeed = 40.0
)

// Sketch implements the wander sketch.
type Sketch struct {
	game     *hui.Game
	engine   config.EngineConfig
	pulse    *hui.Timer
	critters []*critter
	follower *hui.Shape
	sparks   int
}

// New creates a new wander sketch.
func New() *Sketch {
	return &Sketch{}
}

func (s *Sketch) ID() string    { return "wander" }
func (s *Sketch) Title() string { return "Wander" }

// Setup spawns the critters, the shared pulse and the mouse follower.
func (s *Sketch) Setup(g *hui.Game, cfg config.Config) {
	s.game = g
	s.engine = cfg.Engine

	s.pulse = g.NewTimer(pulsePeriod, true)
	s.pulse.Start()
	g.Add(s.pulse)

	w, h := g.Size()
	for i := 0; i < critterCount; i++ {
		s.spawnCritter(hui.V(g.Rand.Rndr(0, w), g.Rand.Rndr(0, h)))
	}

	s.follower = g.NewDisc(w/2, h/2, 1)
	s.follower.Layer = g.FG
	s.follower.Color = core.ColorBrightWhite

	g.TickFunc = s.tick
	g.DrawFunc = s.draw
}

func (s *Sketch) spawnCritter(p hui.Vec2) {
	g := s.game
	c := &critter{sketch: s}
	parent := g.Add(c)

	c.body = hui.NewDisc(p.X, p.Y, 1)
	c.body.Layer = g.MG
	c.body.Color = core.ColorBrightGreen
	sketches.Tune(&c.body.Body, s.engine)
	c.turn = g.NewRandom(turnPeriod, true)

	for _, child := range []any{c.body, c.turn} {
		if _, err := g.AddChild(parent, child); err != nil {
			g.Logger().Error("cannot add critter part", "error", err)
		}
	}
	s.critters = append(s.critters, c)
}

// Spark starts an expanding ring at p.
func (s *Sketch) Spark(p hui.Vec2) {
	g := s.game
	sp := &spark{sketch: s, pos: p, life: g.NewTimer(sparkLife, false)}
	sp.life.Start()
	parent := g.Add(sp)
	if _, err := g.AddChild(parent, sp.life); err != nil {
		g.Logger().Error("cannot add spark timer", "error", err)
	}
	s.sparks++
}

func (s *Sketch) tick(dt float64) {
	in := s.game.Input
	if in.JustPressed(hui.MouseKey(0)) || in.JustPressed(" ") {
		s.Spark(in.Mouse)
	}
	s.follower.SetPos(s.follower.Pos().MoveTowards(in.Mouse, followerSpeed*dt))
}

func (s *Sketch) draw(float64) {
	sketches.ClearLayers(s.game)
	s.game.UI.Text(1, 0, fmt.Sprintf("critters %d  sparks %d  [hold mouse to call, space spark]", len(s.critters), s.sparks), core.ColorGray)
}

// critter steers along the eased heading of its random timer and wraps
// around the screen edges.
type critter struct {
	sketch *Sketch
	body   *hui.Shape
	turn   *hui.RandomTimer
}

func (c *critter) Tick(float64) {
	g := c.sketch.game
	pos := c.body.Pos()

	heading := c.turn.BetweenDir()
	if g.Input.IsPressed(hui.MouseKey(0)) {
		heading = pos.DirTo(g.Input.Mouse)
	}
	speed := critterSpeed * (1 + 0.5*c.turn.Between())
	c.body.SetVel(heading.Norm(speed))

	c.body.Radius = hui.Lerp(1, 2, c.sketch.pulse.PingPong())

	w, h := g.Size()
	if pos.X < 0 || pos.X > w || pos.Y < 0 || pos.Y > h {
		c.body.SetPos(hui.V(hui.Wrap(pos.X, 0, w), hui.Wrap(pos.Y, 0, h)))
	}
}

// spark draws a ring that grows over its timer and leaves once the timer
// has run out.
type spark struct {
	sketch *Sketch
	pos    hui.Vec2
	life   *hui.Timer
}

func (s *spark) Draw(float64) {
	t := s.life.Progress()
	c := core.ColorBrightYellow
	if t > 0.5 {
		c = core.ColorOrange
	}
	s.sketch.game.FG.StrokeCircle(s.pos.X, s.pos.Y, hui.Querp(0.5, sparkRadius, t), c)
}

func (s *spark) WantsRemoval() bool {
	return !s.life.Running
}

func (s *spark) Release() {
	s.sketch.sparks--
}

func init() {
	registry.Register("wander", func() registry.Sketch {
		return New()
	})
}
