package lanedodge

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

const (
	// DefaultDebugSeed seeds the harness LCG when no seed is given.
	DefaultDebugSeed uint32 = 12345

	infiniteInvincibleMs = 1_000_000_000
)

// Single-step sizes offered while paused.
const (
	StepShortMs  = 16
	StepMediumMs = 100
	StepLongMs   = 500
)

// ScorePresets are the stage boundary scores the harness cycles through.
var ScorePresets = []int{
	0, 14, 15, 34, 35, 59, 60, 79, 80, 99, 100, 119, 120, 139, 140, 159, 160, 179, 180,
}

// Harness is the developer control surface. It owns no game state; every
// method works on the State it is handed. Overrides from a harness always
// suppress high score persistence.
type Harness struct {
	engine *Engine

	Paused             bool
	DisableSpawning    bool
	InfiniteInvincible bool
	ShowHitboxes       bool
	ShowTelemetry      bool
	Placement          Placement

	stageLock int // 0 = off

	seeded     bool
	seedSource uint32
	lcg        *LCG

	lastDeltaMs   float64
	scorePreset   int
	pendingStepMs float64
}

// NewHarness creates a harness for e. When seeded is true random draws come
// from an LCG started at seed instead of the engine's own source.
func NewHarness(e *Engine, seed uint32, seeded bool) *Harness {
	return &Harness{
		engine:        e,
		ShowTelemetry: true,
		seeded:        seeded,
		seedSource:    seed,
		lcg:           NewLCG(seed),
	}
}

// Overrides returns the UpdateOptions the host must pass to Update.
func (h *Harness) Overrides() UpdateOptions {
	opts := UpdateOptions{
		SuppressPersist: true,
		DisableSpawning: h.DisableSpawning,
	}
	if h.seeded {
		opts.Random = h.lcg.Next
	}
	if h.stageLock > 0 {
		stage := h.engine.cfg.Stages.ByID(h.stageLock)
		opts.StageOverride = &stage
	}
	return opts
}

// OnGameStart restarts the seeded sequence and reapplies persistent toggles.
func (h *Harness) OnGameStart(s *State) {
	if h.seeded {
		h.lcg.Seed(h.seedSource)
	}
	if h.InfiniteInvincible {
		h.applyInfiniteInvincibility(s)
	}
	h.lastDeltaMs = 0
	h.pendingStepMs = 0
}

// BeforeUpdate runs ahead of Engine.Update.
func (h *Harness) BeforeUpdate(s *State) {
	if h.InfiniteInvincible && s.Screen == ScreenPlaying {
		h.applyInfiniteInvincibility(s)
	}
}

// AfterUpdate records the applied delta and reapplies persistent toggles.
func (h *Harness) AfterUpdate(s *State, deltaMs float64) {
	h.lastDeltaMs = clampNonNegative(deltaMs)
	if h.InfiniteInvincible && s.Screen == ScreenPlaying {
		h.applyInfiniteInvincibility(s)
	}
}

// SetLastDelta records a delta that was not applied, e.g. while paused.
func (h *Harness) SetLastDelta(deltaMs float64) {
	h.lastDeltaMs = clampNonNegative(deltaMs)
}

// TogglePause pauses or resumes the simulation.
func (h *Harness) TogglePause() {
	h.Paused = !h.Paused
	h.pendingStepMs = 0
}

// RequestStep queues a single step of ms while paused and playing.
func (h *Harness) RequestStep(s *State, ms float64) bool {
	if !h.Paused || s.Screen != ScreenPlaying {
		return false
	}
	h.pendingStepMs += ms
	return true
}

// TakeStep returns and clears the queued step.
func (h *Harness) TakeStep() float64 {
	ms := h.pendingStepMs
	h.pendingStepMs = 0
	return ms
}

// SetInfiniteInvincible toggles a never-expiring invincibility window.
// Turning it off only clears a window that the toggle itself created.
func (h *Harness) SetInfiniteInvincible(s *State, on bool) {
	h.InfiniteInvincible = on
	if on {
		h.applyInfiniteInvincibility(s)
		return
	}
	if s.InvincibleTimerMs >= infiniteInvincibleMs/2 {
		s.Invincible = false
		s.InvincibleTimerMs = 0
	}
}

func (h *Harness) applyInfiniteInvincibility(s *State) {
	s.Invincible = true
	s.InvincibleTimerMs = infiniteInvincibleMs
}

// StageLock returns the locked stage id, or 0 when unlocked.
func (h *Harness) StageLock() int {
	return h.stageLock
}

// SetStageLock locks the stage to id, clamped to the table. Zero or a
// negative id unlocks.
func (h *Harness) SetStageLock(id int) {
	if id <= 0 {
		h.stageLock = 0
		return
	}
	h.stageLock = core.Clamp(id, 1, len(h.engine.cfg.Stages))
}

// CycleStageLock advances off -> 1 -> 2 ... -> last -> off.
func (h *Harness) CycleStageLock() {
	if h.stageLock >= len(h.engine.cfg.Stages) {
		h.stageLock = 0
		return
	}
	h.stageLock++
}

// Seeded reports whether the LCG feeds the simulation.
func (h *Harness) Seeded() bool {
	return h.seeded
}

// SetSeeded switches between the LCG and the engine's source. Switching to
// seeded restarts the sequence.
func (h *Harness) SetSeeded(on bool) {
	h.seeded = on
	if on {
		h.lcg.Seed(h.seedSource)
	}
}

// ResetSeed sets a new seed and restarts the sequence from it.
func (h *Harness) ResetSeed(seed uint32) {
	h.seedSource = seed
	h.lcg.Seed(seed)
}

// TogglePlacement switches debug spawns between top and near-player.
func (h *Harness) TogglePlacement() {
	if h.Placement == PlacementTop {
		h.Placement = PlacementNearPlayer
	} else {
		h.Placement = PlacementTop
	}
}

// SetScore sets the score, floored at 0.
func (h *Harness) SetScore(s *State, score int) {
	s.Score = max(0, score)
}

// NextScorePreset jumps to the next stage boundary score.
func (h *Harness) NextScorePreset(s *State) {
	h.SetScore(s, ScorePresets[h.scorePreset])
	h.scorePreset = (h.scorePreset + 1) % len(ScorePresets)
}

// SetLives sets lives clamped to [0, initial lives].
func (h *Harness) SetLives(s *State, lives int) {
	s.Lives = core.Clamp(lives, 0, h.engine.cfg.Player.InitialLives)
}

// SetLane moves the player, clamped to the field. Only while playing.
func (h *Harness) SetLane(s *State, lane int) {
	if s.Screen != ScreenPlaying {
		return
	}
	s.PlayerLane = core.Clamp(lane, 0, h.engine.cfg.Field.LaneCount-1)
}

// SetInvincibleTimer opens an invincibility window of ms (floored at 0).
func (h *Harness) SetInvincibleTimer(s *State, ms float64) {
	ms = clampNonNegative(ms)
	s.Invincible = ms > 0
	s.InvincibleTimerMs = ms
	s.JustHitFlashMs = ms
}

// ClearObstacles removes every obstacle.
func (h *Harness) ClearObstacles(s *State) {
	s.Obstacles = s.Obstacles[:0]
}

// ForceResult ends a playing run without persisting the high score.
func (h *Harness) ForceResult(s *State) (Result, bool) {
	if s.Screen != ScreenPlaying {
		return Result{}, false
	}
	return h.engine.Finish(s, UpdateOptions{SuppressPersist: true}), true
}

// Spawn injects pattern at the current placement.
func (h *Harness) Spawn(s *State, pattern string) int {
	return h.engine.SpawnPattern(s, pattern, h.Placement)
}

// Telemetry returns the overlay lines describing the session.
func (h *Harness) Telemetry(s *State) []string {
	run := "RUN"
	if h.Paused {
		run = "PAUSED"
	}
	spawn := "SPAWN_ON"
	if h.DisableSpawning {
		spawn = "SPAWN_OFF"
	}

	scoreStage := h.engine.StageForScore(s.Score)
	stageLine := fmt.Sprintf("stage %d", scoreStage.ID)
	if h.stageLock > 0 {
		stageLine = fmt.Sprintf("stage score=%d  eff=%d LOCK", scoreStage.ID, h.stageLock)
	}

	inf := ""
	if h.InfiniteInvincible {
		inf = " INF"
	}
	inv := "off"
	if s.Invincible {
		inv = "on"
	}

	rng := "native"
	if h.seeded {
		rng = "seeded"
	}

	return []string{
		fmt.Sprintf("DBG %s %s", run, spawn),
		fmt.Sprintf("score %d  lives %d  lane %d", s.Score, s.Lives, s.PlayerLane),
		stageLine,
		fmt.Sprintf("elapsed %.0fms  spawnT %.0fms", s.ElapsedMs, s.SpawnTimerMs),
		fmt.Sprintf("inv %s  invT %.0fms%s", inv, math.Max(0, s.InvincibleTimerMs), inf),
		fmt.Sprintf("obstacles %d  delta %.0fms", len(s.Obstacles), h.lastDeltaMs),
		fmt.Sprintf("rng %s  seed %d  place %s", rng, h.lcg.State(), h.Placement),
		"persistHighScore false",
	}
}

func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Trunc(v)
}
