// Package flappy is a Flappy Bird-style sketch. The bird is a free disc
// under gravity; pipes are parent things whose top and bottom boxes are
// children, so removing a pipe removes both halves.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
	"github.com/vovakirdan/hui-playground/internal/registry"
	"github.com/vovakirdan/hui-playground/internal/sketches"
)

const (
	birdX       = 12.0
	birdRadius  = 1.5
	pipeWidth   = 6.0
	pipeMargin  = 4.0  // Minimum pipe length above and below the gap
	minGap      = 10.0 // Gap never shrinks below this
	minInterval = 1.0  // Seconds between pipes at most difficulty
	groundH     = 2.0
)

// Sketch implements the flappy sketch.
type Sketch struct {
	cfg  config.FlappyConfig
	diff *config.DifficultyManager

	game    *hui.Game
	bird    *hui.Shape
	spawn   *hui.Timer
	pipes   []*pipe
	score   int
	over    bool
	elapsed float64
}

// New creates a new flappy sketch.
func New() *Sketch {
	return &Sketch{}
}

func (s *Sketch) ID() string    { return "flappy" }
func (s *Sketch) Title() string { return "Flappy" }

// Score returns the number of pipes passed.
func (s *Sketch) Score() int { return s.score }

// Over reports whether the bird crashed.
func (s *Sketch) Over() bool { return s.over }

// Setup installs the bird, the pipe spawner and the hooks.
func (s *Sketch) Setup(g *hui.Game, cfg config.Config) {
	s.game = g
	s.cfg = cfg.Flappy
	s.diff = config.NewDifficultyManager(cfg.Flappy.Difficulty)

	w, h := g.Size()
	s.bird = g.NewDisc(birdX, h/2, birdRadius)
	s.bird.Gravity = hui.V(0, s.cfg.Gravity)
	s.bird.Color = core.ColorBrightYellow
	sketches.Tune(&s.bird.Body, cfg.Engine)

	s.spawn = g.NewTimer(s.cfg.PipeInterval, true)
	s.spawn.Start()
	g.Add(s.spawn)

	g.BG.Clear()
	g.BG.FillRect(0, h-groundH, w, groundH, core.ColorGreen)

	g.TickFunc = s.tick
	g.DrawFunc = s.draw
}

func (s *Sketch) tick(dt float64) {
	in := s.game.Input
	if s.over {
		if in.JustPressed("r") {
			s.restart()
		}
		return
	}

	s.elapsed += dt
	if in.JustPressed(" ") || in.JustPressed("ArrowUp") {
		s.bird.SetVY(s.cfg.Flap)
	}
	if s.spawn.JustFinished {
		s.spawnPipe()
	}
	if s.crashed() {
		s.crash()
	}
}

// spawnPipe adds a pipe just past the right edge, sized by the current
// difficulty level.
func (s *Sketch) spawnPipe() {
	g := s.game
	w, h := g.Size()
	level := s.diff.Level(s.score, s.elapsed)
	speed := s.diff.Speed(s.cfg.PipeSpeed, level)
	gap := s.diff.Gap(s.cfg.PipeGap, minGap, level)

	floor := h - groundH
	gapTop := g.Rand.Rndr(pipeMargin, max(pipeMargin, floor-pipeMargin-gap))

	p := &pipe{sketch: s}
	parent := g.Add(p)
	x := w + pipeWidth/2
	p.top = s.pipeBox(parent, x, 0, gapTop, speed)
	p.bottom = s.pipeBox(parent, x, gapTop+gap, floor, speed)
	s.pipes = append(s.pipes, p)

	s.spawn.Duration = s.diff.Interval(s.cfg.PipeInterval, minInterval, level)
}

func (s *Sketch) pipeBox(parent hui.Handle, x, y0, y1, speed float64) *hui.Shape {
	box := hui.NewBox(x, (y0+y1)/2, pipeWidth, y1-y0)
	box.SetVX(-speed)
	box.Layer = s.game.MG
	box.Color = core.ColorGreen
	if _, err := s.game.AddChild(parent, box); err != nil {
		s.game.Logger().Error("cannot add pipe half", "error", err)
	}
	return box
}

func (s *Sketch) crashed() bool {
	_, h := s.game.Size()
	y := s.bird.Y()
	if y+birdRadius >= h-groundH || y-birdRadius <= 0 {
		return true
	}
	for _, p := range s.pipes {
		if s.bird.Touches(p.top) || s.bird.Touches(p.bottom) {
			return true
		}
	}
	return false
}

// crash freezes the scene until restart.
func (s *Sketch) crash() {
	s.over = true
	s.bird.Static = true
	for _, p := range s.pipes {
		p.top.SetVX(0)
		p.bottom.SetVX(0)
	}
	s.spawn.Pause()
	s.game.Logger().Debug("flappy: crashed", "score", s.score, "elapsed", s.elapsed)
}

func (s *Sketch) restart() {
	for _, p := range s.pipes {
		s.game.Remove(p)
	}
	_, h := s.game.Size()
	s.bird.Static = false
	s.bird.SetPos(hui.V(birdX, h/2))
	s.bird.SetVel(hui.Zero)
	s.score = 0
	s.elapsed = 0
	s.over = false
	s.spawn.StartWith(s.cfg.PipeInterval, true)
}

func (s *Sketch) draw(float64) {
	sketches.ClearLayers(s.game)
	s.game.UI.Text(2, 0, fmt.Sprintf(" Score: %d ", s.score), core.ColorBrightWhite)
	if s.over {
		sketches.Banner(s.game.UI, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.score))
	}
}

// pipe scores once the bird is past it and leaves the scene, together with
// its halves, once it has scrolled off the left edge.
type pipe struct {
	sketch      *Sketch
	top, bottom *hui.Shape
	passed      bool
}

func (p *pipe) Tick(float64) {
	if !p.passed && p.top.X()+pipeWidth/2 < birdX-birdRadius {
		p.passed = true
		p.sketch.score++
	}
}

func (p *pipe) WantsRemoval() bool {
	return p.top.X()+pipeWidth/2 < 0
}

func (p *pipe) Release() {
	pipes := p.sketch.pipes
	for i, o := range pipes {
		if o == p {
			p.sketch.pipes = append(pipes[:i], pipes[i+1:]...)
			return
		}
	}
}

func init() {
	registry.Register("flappy", func() registry.Sketch {
		return New()
	})
}
