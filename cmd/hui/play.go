package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hui-playground/internal/platform/tui"
	"github.com/vovakirdan/hui-playground/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <sketch>",
	Short: "Run a sketch",
	Long: `Start the specified sketch.

Controls (common to all sketches):
  F1         - Toggle debug overlay (timings, shapes)
  Ctrl+S     - Save a text screenshot to ~/.hui/screenshots
  Esc/Ctrl+C - Quit

Sketch controls:
  flappy     Space/Up flap, R restart
  breakout   Left/Right move, Space launch, R restart
  bounce     Click spawn disc, Space spawn box, C clear
  wander     Hold left mouse button to call the critters

Examples:
  hui play bounce
  hui play flappy --seed 7
  hui play breakout --fps 30 --debug`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown sketch %q (run 'hui list' to see available sketches)", id)
	}

	sketch, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("creating sketch: %w", err)
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	e.logger.Info("starting sketch", "sketch", id, "size", fmt.Sprintf("%dx%d", e.rt.ScreenW, e.rt.ScreenH))
	if err := tui.Run(sketch, e.store, e.cfg, e.rt, e.logger); err != nil {
		return fmt.Errorf("running sketch: %w", err)
	}
	return nil
}
