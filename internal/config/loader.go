package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the user and local config directories.
const configFile = "lanedodge.yaml"

// LoadLaneDodge loads Lane Dodge configuration.
// Search order: customPath -> ~/.lanedodge/configs/lanedodge.yaml -> ./configs/lanedodge.yaml -> embedded default
func LoadLaneDodge(customPath string) (LaneDodgeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LaneDodgeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return LaneDodgeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultLaneDodgeYAML)
	if err != nil {
		return DefaultLaneDodgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults and validates the result.
// Sections missing from data keep their default values.
func Parse(data []byte) (LaneDodgeConfig, error) {
	cfg := DefaultLaneDodgeConfig()
	cfg.Stages = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LaneDodgeConfig{}, fmt.Errorf("config: yaml unmarshal: %w", err)
	}
	if len(cfg.Stages) == 0 {
		cfg.Stages = DefaultStages()
	}
	if err := cfg.Validate(); err != nil {
		return LaneDodgeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lanedodge", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// The fixed preset is applied by the game as a stage lock, not here.
func ApplyPreset(cfg *LaneDodgeConfig, preset DifficultyPreset) {
	cfg.Player.InitialLives = LivesForPreset(preset, cfg.Player.InitialLives)
}
