package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hui-playground/internal/platform/tui"
	"github.com/vovakirdan/hui-playground/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start hui with a sketch picker menu",
	Long: `Start hui in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a sketch.
Leaving a sketch with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select sketch
  Tab          - Run history
  Q            - Quit

Examples:
  hui menu
  hui menu --fps 30
  hui menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	rt := e.rt
	for {
		result, err := tui.RunMenu(e.store, rt)
		if err != nil {
			return err
		}
		rt = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsHistory {
			goBack, histErr := tui.RunHistory(e.store, rt.ScreenW, rt.ScreenH)
			if histErr != nil {
				return histErr
			}
			if goBack {
				continue
			}
			return nil
		}

		sketch, err := registry.Create(result.SketchID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating sketch: %v\n", err)
			continue
		}

		// Fresh seed per run unless one was pinned.
		run := rt
		if flagSeed == 0 {
			run.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(sketch, e.store, e.cfg, run, e.logger); err != nil {
			e.logger.Error("sketch failed", "sketch", result.SketchID, "error", err)
			fmt.Fprintf(os.Stderr, "Error running sketch: %v\n", err)
		}
	}
}
