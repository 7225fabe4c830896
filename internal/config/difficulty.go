package config

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Minimum gap left after difficulty scaling, as a multiple of actor height.
const minGapActorHeights = 3.0

// DifficultyManager derives per-run tuning from a difficulty level.
// The level never changes within a run: the obstacle stream relies on a
// constant speed to keep spacing uniform.
type DifficultyManager struct {
	cfg   DifficultyConfig
	level float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		level: core.ClampF(cfg.Level, 0.0, 1.0),
	}
}

// SetLevel overrides the difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetLevel(level float64) {
	d.level = core.ClampF(level, 0.0, 1.0)
}

// Level returns the current difficulty level.
func (d *DifficultyManager) Level() float64 {
	return d.level
}

// Speed scales the base stream speed. Sign is preserved.
func (d *DifficultyManager) Speed(baseSpeed float64) float64 {
	return baseSpeed * (1.0 + d.level*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize shrinks a base gap size, never below floor.
func (d *DifficultyManager) GapSize(baseGap, floor float64) float64 {
	return math.Max(floor, baseGap-d.level*d.cfg.Scaling.GapReduction)
}

// Apply returns a copy of cfg tuned for the manager's level. The gap floor
// never exceeds the sky left between the obstacle margins.
func (d *DifficultyManager) Apply(cfg FlappyConfig) FlappyConfig {
	sky := cfg.World.Height - cfg.World.GroundHeight - 2*cfg.Obstacles.Margin
	floor := math.Min(cfg.Actor.Height*minGapActorHeights, math.Max(0, sky))
	cfg.Stream.Speed = d.Speed(cfg.Stream.Speed)
	cfg.Obstacles.MinGap = d.GapSize(cfg.Obstacles.MinGap, floor)
	cfg.Obstacles.MaxGap = d.GapSize(cfg.Obstacles.MaxGap, floor)
	cfg.Difficulty.Level = d.level
	return cfg
}
