// Package core provides the terminal drawing surface of the hui playground:
// the Screen cell buffer, colors and the runtime settings of the platform.
// It contains no external dependencies (especially no Bubble Tea) to keep
// drawing pure and testable.
package core

// CellAspect is the number of world units covered by one terminal row.
// A column covers one world unit; rows are roughly twice as tall as columns
// in common terminal fonts, so circles stay round.
const CellAspect = 2.0

// RuntimeConfig holds the platform settings a sketch is started with:
// terminal size, frame rate and the seed of its random helpers.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic sketches
	Debug    bool  // Start with the debug overlay enabled
}
