package config

import (
	_ "embed"
)

//go:embed defaults/lanedodge.yaml
var defaultLaneDodgeYAML []byte

// DefaultStages returns the built-in difficulty table.
func DefaultStages() StageTable {
	return StageTable{
		{ID: 1, MinScore: 0, MaxScore: 14, SpeedPxPerSec: 420, SpawnIntervalMs: 900, DoubleSpawnChance: 0.0},
		{ID: 2, MinScore: 15, MaxScore: 34, SpeedPxPerSec: 520, SpawnIntervalMs: 760, DoubleSpawnChance: 0.1},
		{ID: 3, MinScore: 35, MaxScore: 59, SpeedPxPerSec: 630, SpawnIntervalMs: 620, DoubleSpawnChance: 0.2},
		{ID: 4, MinScore: 60, MaxScore: 79, SpeedPxPerSec: 760, SpawnIntervalMs: 500, DoubleSpawnChance: 0.3},
		{ID: 5, MinScore: 80, MaxScore: 99, SpeedPxPerSec: 840, SpawnIntervalMs: 450, DoubleSpawnChance: 0.34},
		{ID: 6, MinScore: 100, MaxScore: 119, SpeedPxPerSec: 930, SpawnIntervalMs: 410, DoubleSpawnChance: 0.38},
		{ID: 7, MinScore: 120, MaxScore: 139, SpeedPxPerSec: 1020, SpawnIntervalMs: 380, DoubleSpawnChance: 0.42},
		{ID: 8, MinScore: 140, MaxScore: 159, SpeedPxPerSec: 1120, SpawnIntervalMs: 350, DoubleSpawnChance: 0.46},
		{ID: 9, MinScore: 160, MaxScore: 179, SpeedPxPerSec: 1230, SpawnIntervalMs: 330, DoubleSpawnChance: 0.5},
		{ID: 10, MinScore: 180, MaxScore: Unbounded, SpeedPxPerSec: 1340, SpawnIntervalMs: 310, DoubleSpawnChance: 0.55},
	}
}

// DefaultLaneDodgeConfig returns the default Lane Dodge configuration.
func DefaultLaneDodgeConfig() LaneDodgeConfig {
	return LaneDodgeConfig{
		Field: FieldConfig{
			Width:     360,
			Height:    640,
			LaneCount: 3,
		},
		Player: PlayerConfig{
			StartLane:    1,
			Y:            548,
			WidthRatio:   0.62,
			Height:       24,
			InnerHeight:  12,
			InitialLives: 3,
		},
		Obstacles: ObstacleConfig{
			WidthRatio:    0.7,
			Height:        26,
			SpawnY:        -40,
			NearPlayerGap: 160,
		},
		Timing: TimingConfig{
			InvincibleMs:   500,
			MaxDeltaMs:     50,
			MaxSpawnSteps:  4,
			PatternRedraws: 4,
		},
		Stages: DefaultStages(),
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultLaneDodgeYAML
}
