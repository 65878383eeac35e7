package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadKong loads the game configuration.
// Search order: customPath -> ~/.kong/configs/kong.yaml -> ./configs/kong.yaml -> embedded default
func LoadKong(customPath string) (KongConfig, error) {
	// Custom path errors are reported; the other locations are best-effort.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return KongConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return KongConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath("kong.yaml"), filepath.Join("configs", "kong.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultKongYAML)
	if err != nil {
		return DefaultKongConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so partial files only
// override the keys they name, and validates the result.
func Parse(data []byte) (KongConfig, error) {
	cfg := DefaultKongConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KongConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return KongConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kong", "configs", filename)
}

// ApplyKongPreset modifies the config based on a difficulty preset.
func ApplyKongPreset(cfg *KongConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Enemies.FireChance = 0.1
		cfg.Enemies.ThrowInterval *= 1.5
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Enemies.FireChance = 0.4
		cfg.Enemies.BarrelSpeed *= 1.25
	}
}
