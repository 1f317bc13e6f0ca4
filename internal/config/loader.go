package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const surfjumpFile = "surfjump.yaml"

// LoadSurfjump loads surfjump configuration.
// Search order: customPath -> ~/.surfjump/configs/surfjump.yaml -> ./configs/surfjump.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadSurfjump(customPath string) (SurfjumpConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SurfjumpConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSurfjump(data)
		if err != nil {
			return SurfjumpConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return SurfjumpConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(surfjumpFile), filepath.Join("configs", surfjumpFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// Broken user files fall through to the next candidate.
		if cfg, err := parseSurfjump(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSurfjump(defaultSurfjumpYAML)
	if err != nil {
		return DefaultSurfjumpConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSurfjump decodes YAML on top of the hardcoded defaults.
func parseSurfjump(data []byte) (SurfjumpConfig, error) {
	cfg := DefaultSurfjumpConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SurfjumpConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".surfjump", "configs", filename)
}

// ApplySurfjumpPreset modifies the config based on a difficulty preset.
func ApplySurfjumpPreset(cfg *SurfjumpConfig, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Initial = 0
		cfg.Platforms.CollisionTolerance = 0.025
		cfg.Player.IdleDecay = 0.93
	case DifficultyNormal:
		cfg.Difficulty.Initial = 0
	case DifficultyHard:
		cfg.Difficulty.Initial = 2
		cfg.Platforms.CollisionTolerance = 0.0075
	}
}
