package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hui-playground/internal/registry"
	"github.com/vovakirdan/hui-playground/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [sketch]",
	Short: "Show recorded runs",
	Long: `Display recorded runs.

With a sketch id, shows its best runs and aggregate stats.
Without one, shows a summary per sketch and the most recent runs.

Examples:
  hui runs
  hui runs flappy
  hui runs flappy --limit 25
  hui runs flappy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs of the sketch")
}

func runRuns(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown sketch %q (run 'hui list' to see available sketches)", id)
	}

	if flagRunsClear {
		if err := store.ClearRuns(id); err != nil {
			return err
		}
		fmt.Printf("Cleared runs of %s.\n", id)
		return nil
	}

	runs, err := store.TopRuns(id, flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	sketch, err := registry.Create(id)
	if err != nil {
		return err
	}
	fmt.Printf("Runs - %s\n\n", sketch.Title())

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'hui play %s' to record one.\n", id)
		return nil
	}
	printRuns(runs)

	stats, err := store.SketchStats(id)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Played: %.0fs  Avg FPS: %.0f  Faults: %d\n",
			stats.BestScore, stats.Runs, stats.TotalSeconds, stats.AvgFPS, stats.Faults)
	}
	return nil
}

func printRuns(runs []storage.Run) {
	fmt.Printf("  %-4s  %-6s  %-5s  %-8s  %-4s  %-6s  %s\n", "Rank", "Sketch", "Score", "Time", "FPS", "Faults", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-8s  %-4s  %-6s  %s\n", "----", "------", "-----", "----", "---", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6s  %-5d  %-8s  %-4.0f  %-6d  %s\n",
			i+1, r.SketchID, r.Score, fmt.Sprintf("%.1fs", r.Seconds), r.AvgFPS, r.Faults,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func printSummary(store *storage.Store) error {
	all, err := store.AllSketchStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-5s  %-5s  %-8s  %s\n", "Sketch", "Runs", "Best", "Played", "Last")
	fmt.Printf("  %-10s  %-5s  %-5s  %-8s  %s\n", "------", "----", "----", "------", "----")
	for _, id := range slices.Sorted(maps.Keys(all)) {
		st := all[id]
		fmt.Printf("  %-10s  %-5d  %-5d  %-8s  %s\n",
			st.SketchID, st.Runs, st.BestScore, fmt.Sprintf("%.0fs", st.TotalSeconds),
			st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	printRuns(recent)
	return nil
}
