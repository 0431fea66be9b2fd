package config

import (
	_ "embed"
)

//go:embed defaults/hui.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			FixedStep:     0.01,
			MaxFrameDelta: 0.1,
		},
		Physics: PhysicsConfig{
			FixedStep:  1.0 / 60,
			Gravity:    [2]float64{0, 500},
			Boundary:   true,
			CellSize:   8,
			Iterations: 4,
		},
		Terminal: TerminalConfig{
			TickRate: 60,
			KeyHold:  0.5,
			Mouse:    true,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.hui/hui.log",
		},
		Flappy: FlappyConfig{
			Gravity:      260,
			Flap:         -90,
			PipeSpeed:    30,
			PipeGap:      16,
			PipeInterval: 2.2,
			Difficulty: DifficultyConfig{
				Enabled: true,
				Progression: ProgressionConfig{
					Type:  "score",
					MaxAt: 30,
				},
				Scaling: ScalingConfig{
					SpeedMultiplier:   1.0,
					GapReduction:      6,
					IntervalReduction: 0.8,
				},
			},
		},
		Breakout: BreakoutConfig{
			BallSpeed:   45,
			PaddleSpeed: 70,
			Rows:        4,
			Cols:        8,
		},
	}
}
