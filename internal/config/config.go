// Package config provides YAML-based configuration loading for the hui
// playground: engine timing, physics, terminal input, logging and the
// tunables of the bundled sketches.
package config

// Config is the full playground configuration.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Terminal TerminalConfig `yaml:"terminal"`
	Log      LogConfig      `yaml:"log"`
	Flappy   FlappyConfig   `yaml:"flappy"`
	Breakout BreakoutConfig `yaml:"breakout"`
}

// EngineConfig defines the integration parameters of free bodies.
type EngineConfig struct {
	FixedStep     float64 `yaml:"fixed_step"`
	MaxFrameDelta float64 `yaml:"max_frame_delta"`
	Debug         bool    `yaml:"debug"`
}

// PhysicsConfig defines the attached physics world.
type PhysicsConfig struct {
	FixedStep  float64    `yaml:"fixed_step"`
	Gravity    [2]float64 `yaml:"gravity"`
	Boundary   bool       `yaml:"boundary"`
	CellSize   int        `yaml:"cell_size"`
	Iterations int        `yaml:"iterations"`
}

// TerminalConfig defines how the terminal frontend drives frames and input.
type TerminalConfig struct {
	TickRate int     `yaml:"tick_rate"` // Frames per second
	KeyHold  float64 `yaml:"key_hold"`  // Seconds a key counts as held after its last event
	Mouse    bool    `yaml:"mouse"`
}

// LogConfig defines log output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// FlappyConfig contains the tunables of the flappy sketch.
type FlappyConfig struct {
	Gravity      float64          `yaml:"gravity"`
	Flap         float64          `yaml:"flap"`
	PipeSpeed    float64          `yaml:"pipe_speed"`
	PipeGap      float64          `yaml:"pipe_gap"`
	PipeInterval float64          `yaml:"pipe_interval"`
	Difficulty   DifficultyConfig `yaml:"difficulty"`
}

// BreakoutConfig contains the tunables of the breakout sketch.
type BreakoutConfig struct {
	BallSpeed   float64 `yaml:"ball_speed"`
	PaddleSpeed float64 `yaml:"paddle_speed"`
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
}

// DifficultyConfig defines the difficulty progression of a sketch.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to speed at max difficulty
	GapReduction      float64 `yaml:"gap_reduction"`      // Gap shrink at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Spawn interval shrink at max difficulty
}
