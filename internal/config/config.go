// Package config provides YAML/TOML game configuration loading and
// difficulty presets for the flappy simulation.
//
// All distances are world units (pixels of a virtual playfield whose Y axis
// grows upward from the bottom edge); all durations are seconds.
package config

// FlappyConfig contains all configuration for the flappy game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics" toml:"physics"`
	Stream     FlappyStream     `yaml:"stream" toml:"stream"`
	Obstacles  FlappyObstacles  `yaml:"obstacles" toml:"obstacles"`
	Actor      FlappyActor      `yaml:"actor" toml:"actor"`
	World      FlappyWorld      `yaml:"world" toml:"world"`
	Effects    FlappyEffects    `yaml:"effects" toml:"effects"`
	Medals     FlappyMedals     `yaml:"medals" toml:"medals"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// FlappyPhysics defines the actor's vertical kinematics.
type FlappyPhysics struct {
	Gravity          float64 `yaml:"gravity" toml:"gravity"`                       // Downward acceleration, units/s²
	InitialRiseSpeed float64 `yaml:"initial_rise_speed" toml:"initial_rise_speed"` // Upward speed set by each flap, units/s
}

// FlappyStream defines how obstacles scroll through the playfield.
type FlappyStream struct {
	Speed    float64 `yaml:"speed" toml:"speed"`         // Horizontal velocity, negative = leftward
	Spacing  float64 `yaml:"spacing" toml:"spacing"`     // Distance between consecutive obstacles
	SpawnX   float64 `yaml:"spawn_x" toml:"spawn_x"`     // Left edge of a freshly spawned obstacle
	DespawnX float64 `yaml:"despawn_x" toml:"despawn_x"` // Trailing edge of the playfield
}

// FlappyObstacles defines obstacle geometry.
type FlappyObstacles struct {
	Width  float64 `yaml:"width" toml:"width"`
	MinGap float64 `yaml:"min_gap" toml:"min_gap"`
	MaxGap float64 `yaml:"max_gap" toml:"max_gap"`
	Margin float64 `yaml:"margin" toml:"margin"` // Minimum solid body length above and below the gap
}

// FlappyActor defines the actor's launch position and hitbox.
type FlappyActor struct {
	X      float64 `yaml:"x" toml:"x"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// FlappyWorld defines the playfield.
type FlappyWorld struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	GroundHeight float64 `yaml:"ground_height" toml:"ground_height"`
}

// GroundTop returns the y-coordinate of the ground surface.
func (w FlappyWorld) GroundTop() float64 {
	return w.GroundHeight
}

// FlappyEffects defines the timing of delegated audio/visual cues.
type FlappyEffects struct {
	DropSoundDelay float64 `yaml:"drop_sound_delay" toml:"drop_sound_delay"`
	RiseTilt       Tilt    `yaml:"rise_tilt" toml:"rise_tilt"`
	FallTilt       Tilt    `yaml:"fall_tilt" toml:"fall_tilt"`
	DropTilt       Tilt    `yaml:"drop_tilt" toml:"drop_tilt"`
}

// Tilt is a cosmetic rotation cue: rotate to Angle degrees over Duration seconds.
// Positive angles point the nose down.
type Tilt struct {
	Angle    float64 `yaml:"angle" toml:"angle"`
	Duration float64 `yaml:"duration" toml:"duration"`
}

// FlappyMedals defines the score thresholds for medal tiers.
type FlappyMedals struct {
	Silver int `yaml:"silver" toml:"silver"`
	Gold   int `yaml:"gold" toml:"gold"`
}

// DifficultyConfig defines per-run scaling applied by difficulty presets.
// Scaling is fixed for the whole run so obstacle spacing stays uniform.
type DifficultyConfig struct {
	Level   float64       `yaml:"level" toml:"level"` // 0.0 = easy, 1.0 = hard
	Scaling ScalingConfig `yaml:"scaling" toml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Added to the speed factor at max difficulty
	GapReduction    float64 `yaml:"gap_reduction" toml:"gap_reduction"`       // Gap size reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// LevelForPreset returns the difficulty level for a preset.
func LevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
