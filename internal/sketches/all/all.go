// Package all registers every bundled sketch.
package all

import (
	_ "github.com/vovakirdan/hui-playground/internal/sketches/bounce"
	_ "github.com/vovakirdan/hui-playground/internal/sketches/breakout"
	_ "github.com/vovakirdan/hui-playground/internal/sketches/flappy"
	_ "github.com/vovakirdan/hui-playground/internal/sketches/wander"
)
