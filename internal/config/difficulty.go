package config

import (
	"errors"
	"fmt"
	"math"
)

// Unbounded marks a stage whose score range has no upper limit.
const Unbounded = -1

// Stage is one difficulty tier, selected by the current score.
type Stage struct {
	ID                int     `yaml:"id"`
	MinScore          int     `yaml:"min_score"`
	MaxScore          int     `yaml:"max_score"` // inclusive; Unbounded for the last stage
	SpeedPxPerSec     float64 `yaml:"speed_px_per_sec"`
	SpawnIntervalMs   float64 `yaml:"spawn_interval_ms"`
	DoubleSpawnChance float64 `yaml:"double_spawn_chance"`
}

// Contains reports whether score falls inside the stage's inclusive range.
func (s Stage) Contains(score int) bool {
	if score < s.MinScore {
		return false
	}
	return s.MaxScore == Unbounded || score <= s.MaxScore
}

// StageTable is the ordered list of stages, easiest first.
type StageTable []Stage

// StageForScore returns the stage whose range contains score.
// Scores outside every declared range fall back to the last (hardest) stage.
// The table must not be empty.
func (t StageTable) StageForScore(score int) Stage {
	for _, s := range t {
		if s.Contains(score) {
			return s
		}
	}
	return t[len(t)-1]
}

// ByID returns the stage with the given 1-based id, clamped to the table.
func (t StageTable) ByID(id int) Stage {
	if id < 1 {
		id = 1
	}
	if id > len(t) {
		id = len(t)
	}
	return t[id-1]
}

// Validate checks that the table covers every non-negative score exactly once.
func (t StageTable) Validate() error {
	if len(t) == 0 {
		return errors.New("config: stage table is empty")
	}

	next := 0
	for i, s := range t {
		if s.ID != i+1 {
			return fmt.Errorf("config: stage %d has id %d, expected %d", i, s.ID, i+1)
		}
		if s.MinScore != next {
			return fmt.Errorf("config: stage %d starts at %d, expected %d", s.ID, s.MinScore, next)
		}
		last := i == len(t)-1
		if last && s.MaxScore != Unbounded {
			return fmt.Errorf("config: last stage %d must be unbounded (max_score: %d)", s.ID, Unbounded)
		}
		if !last {
			if s.MaxScore < s.MinScore {
				return fmt.Errorf("config: stage %d has max_score %d below min_score %d", s.ID, s.MaxScore, s.MinScore)
			}
			next = s.MaxScore + 1
		}
		if !positive(s.SpeedPxPerSec) {
			return fmt.Errorf("config: stage %d speed must be positive", s.ID)
		}
		if !positive(s.SpawnIntervalMs) {
			return fmt.Errorf("config: stage %d spawn interval must be positive", s.ID)
		}
		if !(s.DoubleSpawnChance >= 0 && s.DoubleSpawnChance < 1) {
			return fmt.Errorf("config: stage %d double spawn chance %.2f outside [0,1)", s.ID, s.DoubleSpawnChance)
		}
	}
	return nil
}

// Validate checks the whole game config for values the simulation cannot run with.
func (c LaneDodgeConfig) Validate() error {
	if !positive(c.Field.Width) || !positive(c.Field.Height) {
		return fmt.Errorf("config: field size %.0fx%.0f must be positive", c.Field.Width, c.Field.Height)
	}
	// Pattern keys are single lane digits.
	if c.Field.LaneCount < 1 || c.Field.LaneCount > 9 {
		return fmt.Errorf("config: lane_count %d outside [1,9]", c.Field.LaneCount)
	}
	if c.Player.StartLane < 0 || c.Player.StartLane >= c.Field.LaneCount {
		return fmt.Errorf("config: start_lane %d outside [0,%d)", c.Player.StartLane, c.Field.LaneCount)
	}
	if c.Player.InitialLives < 1 {
		return fmt.Errorf("config: initial_lives must be at least 1, got %d", c.Player.InitialLives)
	}
	if !positive(c.Player.Height) || !positive(c.Obstacles.Height) {
		return errors.New("config: player and obstacle height must be positive")
	}
	if !positive(c.Player.WidthRatio) || !positive(c.Obstacles.WidthRatio) {
		return errors.New("config: width ratios must be positive")
	}
	if c.Timing.MaxSpawnSteps < 1 {
		return fmt.Errorf("config: max_spawn_steps must be at least 1, got %d", c.Timing.MaxSpawnSteps)
	}
	if c.Timing.PatternRedraws < 0 {
		return fmt.Errorf("config: pattern_redraws must not be negative, got %d", c.Timing.PatternRedraws)
	}
	if !finite(c.Player.Y) || !finite(c.Player.InnerHeight) || !finite(c.Obstacles.SpawnY) || !finite(c.Obstacles.NearPlayerGap) {
		return errors.New("config: player and obstacle positions must be finite")
	}
	if !(c.Timing.InvincibleMs >= 0) || !finite(c.Timing.InvincibleMs) || !positive(c.Timing.MaxDeltaMs) {
		return errors.New("config: invincible_ms must be >= 0 and max_delta_ms > 0, both finite")
	}
	return c.Stages.Validate()
}

// positive rejects zero, negatives, NaN and +Inf.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
