package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	var fromYAML FlappyConfig
	if err := yaml.Unmarshal(defaultFlappyYAML, &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if fromYAML != DefaultFlappyConfig() {
		t.Errorf("embedded YAML and DefaultFlappyConfig() differ:\n%+v\n%+v", fromYAML, DefaultFlappyConfig())
	}
	if err := fromYAML.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFlappyCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	content := "physics:\n  gravity: 1500\nstream:\n  speed: -200\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}

	if cfg.Physics.Gravity != 1500 {
		t.Errorf("Gravity = %v, expected 1500", cfg.Physics.Gravity)
	}
	if cfg.Stream.Speed != -200 {
		t.Errorf("Speed = %v, expected -200", cfg.Stream.Speed)
	}
	// Keys not present keep defaults
	if cfg.Stream.Spacing != 400 {
		t.Errorf("Spacing = %v, expected default 400", cfg.Stream.Spacing)
	}
}

func TestLoadFlappyCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.toml")
	content := "[physics]\ngravity = 900.0\n\n[medals]\nsilver = 5\ngold = 15\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}

	if cfg.Physics.Gravity != 900 {
		t.Errorf("Gravity = %v, expected 900", cfg.Physics.Gravity)
	}
	if cfg.Medals.Silver != 5 || cfg.Medals.Gold != 15 {
		t.Errorf("Medals = %+v, expected silver 5 gold 15", cfg.Medals)
	}
}

func TestLoadFlappyRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte("stream:\n  speed: 300\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFlappy(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for rightward stream, got %v", err)
	}
}

func TestLoadFlappyMissingCustomPath(t *testing.T) {
	_, err := LoadFlappy(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero gravity", func(c *FlappyConfig) { c.Physics.Gravity = 0 }},
		{"zero spacing", func(c *FlappyConfig) { c.Stream.Spacing = 0 }},
		{"spacing narrower than obstacle", func(c *FlappyConfig) { c.Stream.Spacing = c.Obstacles.Width - 1 }},
		{"inverted gap range", func(c *FlappyConfig) { c.Obstacles.MinGap = 300; c.Obstacles.MaxGap = 200 }},
		{"ground above ceiling", func(c *FlappyConfig) { c.World.GroundHeight = c.World.Height }},
		{"gap does not fit", func(c *FlappyConfig) { c.Obstacles.MaxGap = c.World.Height }},
		{"gold below silver", func(c *FlappyConfig) { c.Medals.Gold = 1; c.Medals.Silver = 2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestDifficultyApply(t *testing.T) {
	base := DefaultFlappyConfig()

	easy := NewDifficultyManager(base.Difficulty).Apply(base)
	if easy.Stream.Speed != base.Stream.Speed {
		t.Errorf("level 0 should keep speed, got %v", easy.Stream.Speed)
	}

	dm := NewDifficultyManager(base.Difficulty)
	dm.SetLevel(1.0)
	hard := dm.Apply(base)

	if hard.Stream.Speed != -450 {
		t.Errorf("level 1 speed = %v, expected -450", hard.Stream.Speed)
	}
	if hard.Obstacles.MaxGap != base.Obstacles.MaxGap-60 {
		t.Errorf("level 1 max gap = %v, expected %v", hard.Obstacles.MaxGap, base.Obstacles.MaxGap-60)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("tuned config should validate: %v", err)
	}
}

func TestDifficultyGapFloor(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{Scaling: ScalingConfig{GapReduction: 1000}})
	dm.SetLevel(1.0)

	if got := dm.GapSize(200, 108); got != 108 {
		t.Errorf("GapSize() = %v, expected floor 108", got)
	}
}

func TestDifficultyGapFloorFitsSky(t *testing.T) {
	cfg := DefaultFlappyConfig()
	// A tall actor pushes the floor past the sky between the margins.
	cfg.Actor.Height = 300
	cfg.Obstacles.MinGap = 200
	cfg.Obstacles.MaxGap = 500
	cfg.Obstacles.Margin = 100
	if err := cfg.Validate(); err != nil {
		t.Fatalf("base config should validate: %v", err)
	}

	dm := NewDifficultyManager(cfg.Difficulty)
	dm.SetLevel(1.0)
	tuned := dm.Apply(cfg)

	sky := cfg.World.Height - cfg.World.GroundHeight - 2*cfg.Obstacles.Margin
	if tuned.Obstacles.MaxGap > sky {
		t.Errorf("max gap = %v, exceeds sky %v", tuned.Obstacles.MaxGap, sky)
	}
	if err := tuned.Validate(); err != nil {
		t.Errorf("tuned config should still validate: %v", err)
	}
}

func TestPresets(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyHard)
	if cfg.Difficulty.Level != 0.7 {
		t.Errorf("hard preset level = %v, expected 0.7", cfg.Difficulty.Level)
	}

	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Level != 0.7 {
		t.Errorf("fixed preset should keep level, got %v", cfg.Difficulty.Level)
	}

	if _, err := ParsePreset("HARD"); err != nil {
		t.Errorf("ParsePreset should be case-insensitive: %v", err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}
