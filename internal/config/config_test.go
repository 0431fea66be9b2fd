package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, ok := parse(defaultYAML)
	if !ok {
		t.Fatal("embedded defaults failed to parse or validate")
	}
	def := DefaultConfig()
	if cfg.Terminal != def.Terminal || cfg.Engine != def.Engine || cfg.Breakout != def.Breakout {
		t.Errorf("embedded YAML drifted from DefaultConfig:\n%+v\n%+v", cfg, def)
	}
	if cfg.Physics.Gravity != def.Physics.Gravity {
		t.Errorf("gravity = %v, expected %v", cfg.Physics.Gravity, def.Physics.Gravity)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hui.yaml")
	data := "terminal:\n  tick_rate: 30\nphysics:\n  gravity: [0, 100]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Terminal.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.Terminal.TickRate)
	}
	if cfg.Physics.Gravity != [2]float64{0, 100} {
		t.Errorf("Gravity = %v", cfg.Physics.Gravity)
	}
	if cfg.Terminal.KeyHold != 0.5 {
		t.Errorf("missing keys should keep defaults, KeyHold = %v", cfg.Terminal.KeyHold)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("engine:\n  fixed_step: -1\n"), 0o644)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "engine.fixed_step") {
		t.Errorf("invalid custom file err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"tick rate zero", func(c *Config) { c.Terminal.TickRate = 0 }, "tick_rate"},
		{"tick rate huge", func(c *Config) { c.Terminal.TickRate = 1000 }, "tick_rate"},
		{"cell size", func(c *Config) { c.Physics.CellSize = 0 }, "cell_size"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"progression", func(c *Config) { c.Flappy.Difficulty.Progression.Type = "level" }, "progression.type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Validate() = %v, expected mention of %s", err, tt.field)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %q", got)
	}
}

func TestDifficultyManager(t *testing.T) {
	dm := NewDifficultyManager(DefaultConfig().Flappy.Difficulty)

	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level at start = %v", got)
	}
	if got := dm.Level(15, 0); got != 0.5 {
		t.Errorf("Level halfway = %v", got)
	}
	if got := dm.Level(100, 0); got != 1 {
		t.Errorf("Level should clamp at 1, got %v", got)
	}

	if got := dm.Speed(30, 1); got != 60 {
		t.Errorf("Speed at max = %v", got)
	}
	if got := dm.Gap(16, 12, 1); got != 12 {
		t.Errorf("Gap should not go below minimum, got %v", got)
	}
	if got := dm.Interval(2.2, 1, 0.5); math.Abs(got-1.8) > 1e-9 {
		t.Errorf("Interval = %v", got)
	}

	fixed := NewDifficultyManager(DifficultyConfig{Enabled: false, InitialLevel: 0.3})
	if got := fixed.Level(1000, 1000); got != 0.3 {
		t.Errorf("disabled progression Level = %v", got)
	}
}
