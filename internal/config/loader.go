package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFlappy loads the flappy configuration.
// Search order: customPath -> ~/.flappy/configs/flappy.{yaml,toml} ->
// ./configs/flappy.yaml -> embedded default.
//
// A custom path that cannot be read, parsed or validated is an error; the
// implicit locations fall through to the next candidate instead.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath("flappy.yaml"),
		userConfigPath("flappy.toml"),
		filepath.Join("configs", "flappy.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile decodes a config file, choosing the format by extension.
// Missing keys keep their built-in default values.
func loadFile(path string) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// An empty or fixed preset keeps the configured level.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	if preset == "" || preset == DifficultyFixed {
		return
	}
	cfg.Difficulty.Level = LevelForPreset(preset)
}

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
