// hui runs small interactive sketches built on the hui engine in the terminal.
//
// Usage:
//
//	hui list              - List available sketches
//	hui play <sketch>     - Run a sketch
//	hui menu              - Pick sketches interactively
//	hui serve             - Start SSH server for remote play
//	hui runs [sketch]     - Show recorded runs
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default from config, 60)
//	--seed <value>    - Set RNG seed for reproducible runs
//	--db <path>       - Set database path (default: ~/.hui/runs.db)
//	--config <path>   - Load a custom YAML config
//	--debug           - Start with the debug overlay
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import sketches to register them
	_ "github.com/vovakirdan/hui-playground/internal/sketches/all"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hui",
	Short: "hui - sketches with a tiny game engine in your terminal",
	Long: `hui runs small sketches on a frame-based engine with a scene graph,
fixed-step bodies, collision shapes and timers, rendered in the terminal.

Available commands:
  list     - Show all available sketches
  play     - Run a specific sketch directly
  menu     - Interactive sketch picker
  serve    - Start SSH server for remote play
  runs     - View recorded runs

Examples:
  hui list
  hui play bounce
  hui play flappy --seed 42 --debug
  hui menu --config ./hui.yaml
  hui serve --ssh :2222
  hui runs flappy`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = terminal.tick_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hui/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Start with the debug overlay enabled")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}
