// Package registry provides a global registry for sketch factories.
// Sketches register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/hui"
)

// Sketch is a small program built on a hui.Game.
// A sketch installs its hooks and things in Setup; the platform owns the
// frame loop, input mapping and rendering.
type Sketch interface {
	// ID returns a unique identifier for this sketch (e.g., "bounce").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Setup installs the sketch into a freshly created game.
	Setup(g *hui.Game, cfg config.Config)
}

// Scorer is implemented by sketches that keep a score.
type Scorer interface {
	Score() int
	// Over reports whether the round has ended.
	Over() bool
}

// SketchInfo contains metadata about a registered sketch.
type SketchInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a sketch.
type Factory func() Sketch

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a sketch factory to the registry.
// Panics if a sketch with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: sketch %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered sketches, sorted by ID.
func List() []SketchInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SketchInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SketchInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new sketch by its ID.
func Create(id string) (Sketch, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown sketch %q", id)
	}

	return f(), nil
}

// Exists checks if a sketch with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
