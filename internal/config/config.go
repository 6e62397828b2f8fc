// Package config provides YAML-based game configuration loading and
// the stage-based difficulty table for Lane Dodge.
package config

// LaneDodgeConfig contains all configuration for the Lane Dodge game.
type LaneDodgeConfig struct {
	Field     FieldConfig    `yaml:"field"`
	Player    PlayerConfig   `yaml:"player"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Timing    TimingConfig   `yaml:"timing"`
	Stages    StageTable     `yaml:"stages"`
}

// FieldConfig defines the virtual playfield the simulation runs in.
// All positions are in virtual pixels; renderers scale them to their output.
type FieldConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	LaneCount int     `yaml:"lane_count"`
}

// PlayerConfig defines player geometry and per-run starting values.
type PlayerConfig struct {
	StartLane    int     `yaml:"start_lane"`
	Y            float64 `yaml:"y"`
	WidthRatio   float64 `yaml:"width_ratio"` // fraction of lane width
	Height       float64 `yaml:"height"`
	InnerHeight  float64 `yaml:"inner_height"` // cosmetic only
	InitialLives int     `yaml:"initial_lives"`
}

// ObstacleConfig defines obstacle geometry and spawn placement.
type ObstacleConfig struct {
	WidthRatio    float64 `yaml:"width_ratio"` // fraction of lane width
	Height        float64 `yaml:"height"`
	SpawnY        float64 `yaml:"spawn_y"`
	NearPlayerGap float64 `yaml:"near_player_gap"` // debug placement distance above the player
}

// TimingConfig defines the temporal limits of the simulation.
type TimingConfig struct {
	InvincibleMs   float64 `yaml:"invincible_ms"`
	MaxDeltaMs     float64 `yaml:"max_delta_ms"`
	MaxSpawnSteps  int     `yaml:"max_spawn_steps"`
	PatternRedraws int     `yaml:"pattern_redraws"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values map to "",
// meaning the config is used as loaded.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// LivesForPreset returns the initial lives for a preset, or fallback when the
// preset does not change them.
func LivesForPreset(preset DifficultyPreset, fallback int) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 2
	default:
		return fallback
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
