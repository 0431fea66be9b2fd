package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hui-playground/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available sketches",
	Long:  `Shows a list of all sketches registered in hui.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	sketches := registry.List()

	if len(sketches) == 0 {
		fmt.Println("No sketches available.")
		return
	}

	fmt.Println("Available sketches:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range sketches {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range sketches {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'hui play <id>' to run a sketch.")
}
