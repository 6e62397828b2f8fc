// Package lanedodge implements Lane Dodge: the player switches between lanes
// to avoid falling obstacles and scores a point for every obstacle that passes
// the bottom of the field. Difficulty is keyed to the score.
//
// Engine holds the pure, deterministic tick logic. Game adapts it to the
// platform's registry.Game interface.
package lanedodge

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// UpdateOptions adjusts a single Update or Finish call. The zero value is the
// normal gameplay behavior.
type UpdateOptions struct {
	// SuppressPersist keeps a new high score in memory only.
	SuppressPersist bool

	// Random replaces the engine's random source for this call.
	Random RandomSource

	// StageOverride is used instead of the score-keyed stage.
	StageOverride *config.Stage

	// DisableSpawning skips the spawn phase entirely.
	DisableSpawning bool
}

// Metrics is the lane geometry derived from the field configuration.
type Metrics struct {
	LaneWidth      float64
	LaneCenters    []float64
	PlayerWidth    float64
	PlayerHeight   float64
	PlayerY        float64
	ObstacleWidth  float64
	ObstacleHeight float64
}

// Engine runs the simulation. It holds only immutable configuration, its
// default random source and the high score collaborator; all mutable data
// lives in the State passed to each call.
type Engine struct {
	cfg     config.LaneDodgeConfig
	metrics Metrics
	random  RandomSource
	scores  core.HighScoreStore

	singles  []Pattern
	patterns []Pattern // singles followed by every lane pair
}

// NewEngine creates an engine. A nil random source is replaced by a
// time-seeded generator and a nil store by one that persists nothing.
func NewEngine(cfg config.LaneDodgeConfig, random RandomSource, scores core.HighScoreStore) *Engine {
	if random == nil {
		random = FromRand(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	if scores == nil {
		scores = core.NopHighScores{}
	}

	e := &Engine{
		cfg:     cfg,
		metrics: computeMetrics(cfg),
		random:  random,
		scores:  scores,
	}
	e.singles, e.patterns = buildPatterns(cfg.Field.LaneCount)
	return e
}

func computeMetrics(cfg config.LaneDodgeConfig) Metrics {
	laneWidth := cfg.Field.Width / float64(cfg.Field.LaneCount)
	centers := make([]float64, cfg.Field.LaneCount)
	for i := range centers {
		centers[i] = laneWidth * (float64(i) + 0.5)
	}
	return Metrics{
		LaneWidth:      laneWidth,
		LaneCenters:    centers,
		PlayerWidth:    laneWidth * cfg.Player.WidthRatio,
		PlayerHeight:   cfg.Player.Height,
		PlayerY:        cfg.Player.Y,
		ObstacleWidth:  laneWidth * cfg.Obstacles.WidthRatio,
		ObstacleHeight: cfg.Obstacles.Height,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() config.LaneDodgeConfig {
	return e.cfg
}

// Metrics returns the lane geometry.
func (e *Engine) Metrics() Metrics {
	return e.metrics
}

// StageForScore returns the stage in effect at the given score.
func (e *Engine) StageForScore(score int) config.Stage {
	return e.cfg.Stages.StageForScore(score)
}

// ActiveStage returns the stage an Update with opts would use.
func (e *Engine) ActiveStage(s *State, opts UpdateOptions) config.Stage {
	if opts.StageOverride != nil {
		return *opts.StageOverride
	}
	return e.StageForScore(s.Score)
}

// NewState creates a session on the title screen.
func (e *Engine) NewState(highScore int) *State {
	if highScore < 0 {
		highScore = 0
	}
	return &State{
		Screen:         ScreenTitle,
		HighScore:      highScore,
		Lives:          e.cfg.Player.InitialLives,
		PlayerLane:     e.cfg.Player.StartLane,
		Obstacles:      []Obstacle{},
		NextObstacleID: 1,
	}
}

// Start begins a new run. HighScore, LastScore and the obstacle id counter
// carry over.
func (e *Engine) Start(s *State) {
	s.Screen = ScreenPlaying
	s.Score = 0
	s.Lives = e.cfg.Player.InitialLives
	s.PlayerLane = e.cfg.Player.StartLane
	s.Obstacles = s.Obstacles[:0]
	s.SpawnTimerMs = 0
	s.ElapsedMs = 0
	s.Invincible = false
	s.InvincibleTimerMs = 0
	s.LastSpawnPatternKey = ""
	s.JustHitFlashMs = 0
}

// ReturnToTitle leaves the result screen.
func (e *Engine) ReturnToTitle(s *State) {
	if s.Screen == ScreenResult {
		s.Screen = ScreenTitle
	}
}

// HandleLaneTap moves the player to lane. It reports whether the move was
// accepted: only while playing and only for a lane in range.
func (e *Engine) HandleLaneTap(s *State, lane int) bool {
	if s.Screen != ScreenPlaying {
		return false
	}
	if lane < 0 || lane >= e.cfg.Field.LaneCount {
		return false
	}
	s.PlayerLane = lane
	return true
}

// Update advances a playing session by deltaMs milliseconds. Non-playing
// screens and deltas that are not positive finite numbers leave the state
// untouched.
func (e *Engine) Update(s *State, deltaMs float64, opts UpdateOptions) Outcome {
	if s.Screen != ScreenPlaying {
		return Outcome{}
	}
	if !(deltaMs > 0) || math.IsInf(deltaMs, 1) {
		return Outcome{}
	}

	s.ElapsedMs += deltaMs
	s.JustHitFlashMs = math.Max(0, s.JustHitFlashMs-deltaMs)

	if s.Invincible {
		s.InvincibleTimerMs -= deltaMs
		if s.InvincibleTimerMs <= 0 {
			s.Invincible = false
			s.InvincibleTimerMs = 0
		}
	}

	stage := e.ActiveStage(s, opts)

	if !opts.DisableSpawning {
		random := opts.Random
		if random == nil {
			random = e.random
		}
		s.SpawnTimerMs += deltaMs
		for steps := 0; s.SpawnTimerMs >= stage.SpawnIntervalMs && steps < e.cfg.Timing.MaxSpawnSteps; steps++ {
			s.SpawnTimerMs -= stage.SpawnIntervalMs
			e.spawn(s, stage.DoubleSpawnChance, random)
		}
	}

	move := stage.SpeedPxPerSec * deltaMs / 1000
	for i := range s.Obstacles {
		s.Obstacles[i].Y += move
	}

	e.resolveCollisions(s)

	if s.Lives <= 0 {
		result := e.Finish(s, opts)
		return Outcome{Finished: true, Result: &result}
	}

	s.Score += e.sweep(s)
	return Outcome{}
}

// sweep removes obstacles that reached the bottom and returns how many.
func (e *Engine) sweep(s *State) int {
	passed := 0
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if o.Y >= e.cfg.Field.Height {
			passed++
			continue
		}
		kept = append(kept, o)
	}
	s.Obstacles = kept
	return passed
}

// Finish ends the run and shows the result screen. A new high score is
// saved through the store unless opts.SuppressPersist is set.
func (e *Engine) Finish(s *State, opts UpdateOptions) Result {
	s.Screen = ScreenResult
	s.LastScore = s.Score

	updated := false
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		updated = true
		if !opts.SuppressPersist {
			e.scores.Save(s.HighScore)
		}
	}

	return Result{
		Score:            s.Score,
		HighScore:        s.HighScore,
		UpdatedHighScore: updated,
	}
}
