package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Load loads the playground configuration. Values missing from a file keep
// their defaults.
// Search order: customPath -> ~/.hui/configs/hui.yaml -> ./configs/hui.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("hui.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if loaded, ok := parse(data); ok {
				return loaded, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/hui.yaml"); err == nil {
		if loaded, ok := parse(data); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if loaded, ok := parse(defaultYAML); ok {
		return loaded, nil
	}
	return DefaultConfig(), nil // Fallback to hardcoded if embed fails
}

// parse decodes data over the defaults and accepts only valid results.
func parse(data []byte) (Config, bool) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Engine.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("engine.fixed_step must be positive, got %v", c.Engine.FixedStep))
	}
	if c.Engine.MaxFrameDelta <= 0 {
		errs = append(errs, fmt.Errorf("engine.max_frame_delta must be positive, got %v", c.Engine.MaxFrameDelta))
	}
	if c.Physics.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("physics.fixed_step must be positive, got %v", c.Physics.FixedStep))
	}
	if c.Physics.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("physics.cell_size must be positive, got %d", c.Physics.CellSize))
	}
	if c.Physics.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("physics.iterations must be positive, got %d", c.Physics.Iterations))
	}
	if c.Terminal.TickRate <= 0 || c.Terminal.TickRate > 240 {
		errs = append(errs, fmt.Errorf("terminal.tick_rate must be within 1..240, got %d", c.Terminal.TickRate))
	}
	if c.Terminal.KeyHold <= 0 {
		errs = append(errs, fmt.Errorf("terminal.key_hold must be positive, got %v", c.Terminal.KeyHold))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Flappy.Difficulty.Progression.Type {
	case "", "score", "time", "none":
	default:
		errs = append(errs, fmt.Errorf("flappy.difficulty.progression.type %q is not score, time or none", c.Flappy.Difficulty.Progression.Type))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hui", "configs", filename)
}
