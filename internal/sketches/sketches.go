// Package sketches holds helpers shared by the bundled sketches.
package sketches

import (
	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
)

// AttachWorld creates a physics world covering the whole game area,
// configured from cfg, and attaches it to g.
func AttachWorld(g *hui.Game, cfg config.PhysicsConfig) *hui.World {
	w, h := g.Size()
	world := hui.NewWorld(w, h,
		hui.WithGravity(hui.V(cfg.Gravity[0], cfg.Gravity[1])),
		hui.WithWorldStep(cfg.FixedStep),
		hui.WithCellSize(cfg.CellSize),
		hui.WithIterations(cfg.Iterations),
	)
	world.SetBoundary(cfg.Boundary)
	g.AttachWorld(world)
	return world
}

// Tune applies the engine integration settings to a body.
func Tune(b *hui.Body, cfg config.EngineConfig) {
	b.FixedStep = cfg.FixedStep
	b.MaxDelta = cfg.MaxFrameDelta
}

// ClearLayers clears the layers sketches redraw every frame.
func ClearLayers(g *hui.Game) {
	g.MG.Clear()
	g.FG.Clear()
	g.UI.Clear()
}

// Banner draws a framed message box in the center of dst.
func Banner(dst hui.Surface, title, subtitle string) {
	w, h := dst.Size()

	boxW := float64(max(len(title), len(subtitle)) + 4)
	boxH := 5 * core.CellAspect
	boxX := float64(int((w - boxW) / 2))
	boxY := float64(int((h-boxH)/(2*core.CellAspect))) * core.CellAspect

	dst.FillRect(boxX, boxY, boxW, boxH, core.ColorBlack)
	dst.StrokeRect(boxX, boxY, boxW, boxH, core.ColorWhite)

	row := func(n int) float64 { return boxY + float64(n)*core.CellAspect }
	dst.Text(boxX+float64(int((boxW-float64(len(title)))/2)), row(1), title, core.ColorBrightWhite)
	dst.Text(boxX+float64(int((boxW-float64(len(subtitle)))/2)), row(3), subtitle, core.ColorGray)
}
