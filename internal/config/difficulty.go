package config

import "math"

// DifficultyManager calculates dynamic sketch parameters based on score or time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for a score and
// elapsed seconds.
func (d *DifficultyManager) Level(score int, seconds float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = seconds / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales base from base to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(base float64, level float64) float64 {
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Gap shrinks base by up to gap_reduction, never below minGap.
func (d *DifficultyManager) Gap(base, minGap float64, level float64) float64 {
	return math.Max(base-level*d.cfg.Scaling.GapReduction, minGap)
}

// Interval shrinks base by up to interval_reduction, never below minInterval.
func (d *DifficultyManager) Interval(base, minInterval float64, level float64) float64 {
	return math.Max(base-level*d.cfg.Scaling.IntervalReduction, minInterval)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
