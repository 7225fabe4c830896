package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in flappy configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file
// cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:          1000,
			InitialRiseSpeed: 800,
		},
		Stream: FlappyStream{
			Speed:    -300,
			Spacing:  400,
			SpawnX:   1000,
			DespawnX: 0,
		},
		Obstacles: FlappyObstacles{
			Width:  104,
			MinGap: 250,
			MaxGap: 290,
			Margin: 80,
		},
		Actor: FlappyActor{
			X:      300,
			Width:  48,
			Height: 36,
		},
		World: FlappyWorld{
			Width:        960,
			Height:       960,
			GroundHeight: 120,
		},
		Effects: FlappyEffects{
			DropSoundDelay: 0.3,
			RiseTilt:       Tilt{Angle: -30, Duration: 0.3},
			FallTilt:       Tilt{Angle: 90, Duration: 0.6},
			DropTilt:       Tilt{Angle: 90, Duration: 0.4},
		},
		Medals: FlappyMedals{
			Silver: 10,
			Gold:   30,
		},
		Difficulty: DifficultyConfig{
			Level: 0.0,
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				GapReduction:    60,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
