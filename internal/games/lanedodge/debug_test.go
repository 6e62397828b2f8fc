package lanedodge

import (
	"strings"
	"testing"
)

func newTestHarness(seeded bool) (*Harness, *Engine, *State, *recordingStore) {
	e, store := newTestEngine(Constant(0.5))
	h := NewHarness(e, DefaultDebugSeed, seeded)
	s := playing(e)
	h.OnGameStart(s)
	return h, e, s, store
}

func TestHarnessOverrides(t *testing.T) {
	h, _, _, _ := newTestHarness(false)

	opts := h.Overrides()
	if !opts.SuppressPersist {
		t.Error("harness overrides must suppress persistence")
	}
	if opts.Random != nil || opts.StageOverride != nil || opts.DisableSpawning {
		t.Errorf("Overrides() = %+v, expected only SuppressPersist", opts)
	}

	h.DisableSpawning = true
	h.SetStageLock(4)
	h.SetSeeded(true)
	opts = h.Overrides()
	if !opts.DisableSpawning {
		t.Error("DisableSpawning should pass through")
	}
	if opts.StageOverride == nil || opts.StageOverride.ID != 4 {
		t.Errorf("StageOverride = %+v, expected stage 4", opts.StageOverride)
	}
	if opts.Random == nil {
		t.Fatal("seeded harness should supply a random source")
	}
	if v := opts.Random(); v != float64(87628868)/4294967296 {
		t.Errorf("first seeded draw = %v", v)
	}
}

func TestHarnessSeededRunsRepeat(t *testing.T) {
	run := func() []float64 {
		h, e, s, _ := newTestHarness(true)
		for i := 0; i < 400 && s.Screen == ScreenPlaying; i++ {
			h.BeforeUpdate(s)
			e.Update(s, 16, h.Overrides())
			h.AfterUpdate(s, 16)
		}
		ys := make([]float64, 0, len(s.Obstacles))
		for _, o := range s.Obstacles {
			ys = append(ys, o.Y)
		}
		return append(ys, float64(s.Score), float64(s.Lives))
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs differ at %d: %v vs %v", i, a, b)
		}
	}
}

func TestHarnessOnGameStartReseeds(t *testing.T) {
	h, _, s, _ := newTestHarness(true)

	first := h.Overrides().Random()
	h.Overrides().Random()
	h.OnGameStart(s)

	if again := h.Overrides().Random(); again != first {
		t.Errorf("after restart first draw = %v, expected %v", again, first)
	}
}

func TestHarnessStageLockCycle(t *testing.T) {
	h, _, _, _ := newTestHarness(false)

	for want := 1; want <= 10; want++ {
		h.CycleStageLock()
		if h.StageLock() != want {
			t.Fatalf("StageLock = %d, expected %d", h.StageLock(), want)
		}
	}
	h.CycleStageLock()
	if h.StageLock() != 0 {
		t.Errorf("StageLock = %d, expected the cycle to wrap to off", h.StageLock())
	}

	h.SetStageLock(99)
	if h.StageLock() != 10 {
		t.Errorf("SetStageLock(99) = %d, expected 10", h.StageLock())
	}
	h.SetStageLock(-3)
	if h.StageLock() != 0 {
		t.Errorf("SetStageLock(-3) = %d, expected 0", h.StageLock())
	}
}

func TestHarnessInfiniteInvincibility(t *testing.T) {
	h, e, s, _ := newTestHarness(false)

	h.SetInfiniteInvincible(s, true)
	s.Obstacles = append(s.Obstacles, Obstacle{ID: 1, Lane: 1, Y: 540, Width: 84, Height: 26})
	for i := 0; i < 100; i++ {
		h.BeforeUpdate(s)
		e.Update(s, 50, h.Overrides())
		h.AfterUpdate(s, 50)
	}
	if s.Lives != 3 || !s.Invincible {
		t.Errorf("lives = %d invincible = %v, expected 3 and true", s.Lives, s.Invincible)
	}

	h.SetInfiniteInvincible(s, false)
	if s.Invincible || s.InvincibleTimerMs != 0 {
		t.Error("turning infinite invincibility off should clear its window")
	}

	// A regular window survives the toggle.
	h.SetInvincibleTimer(s, 300)
	h.SetInfiniteInvincible(s, false)
	if !s.Invincible || s.InvincibleTimerMs != 300 {
		t.Errorf("regular window = %v/%v, expected it untouched", s.Invincible, s.InvincibleTimerMs)
	}
}

func TestHarnessSetters(t *testing.T) {
	h, _, s, _ := newTestHarness(false)

	h.SetScore(s, -5)
	if s.Score != 0 {
		t.Errorf("SetScore(-5) = %d, expected 0", s.Score)
	}
	h.SetScore(s, 77)
	if s.Score != 77 {
		t.Errorf("SetScore(77) = %d", s.Score)
	}

	h.SetLives(s, 9)
	if s.Lives != 3 {
		t.Errorf("SetLives(9) = %d, expected 3", s.Lives)
	}
	h.SetLives(s, -1)
	if s.Lives != 0 {
		t.Errorf("SetLives(-1) = %d, expected 0", s.Lives)
	}

	h.SetLane(s, 7)
	if s.PlayerLane != 2 {
		t.Errorf("SetLane(7) = %d, expected 2", s.PlayerLane)
	}

	h.SetInvincibleTimer(s, 499.7)
	if !s.Invincible || s.InvincibleTimerMs != 499 || s.JustHitFlashMs != 499 {
		t.Errorf("SetInvincibleTimer(499.7) = %v/%v/%v", s.Invincible, s.InvincibleTimerMs, s.JustHitFlashMs)
	}
	h.SetInvincibleTimer(s, -20)
	if s.Invincible || s.InvincibleTimerMs != 0 {
		t.Error("negative timer should clear invincibility")
	}

	s.Obstacles = append(s.Obstacles, Obstacle{ID: 1}, Obstacle{ID: 2})
	h.ClearObstacles(s)
	if len(s.Obstacles) != 0 {
		t.Errorf("ClearObstacles left %d", len(s.Obstacles))
	}
}

func TestHarnessScorePresets(t *testing.T) {
	h, _, s, _ := newTestHarness(false)

	for i := 0; i < 3; i++ {
		h.NextScorePreset(s)
	}
	if s.Score != ScorePresets[2] {
		t.Errorf("Score = %d, expected %d", s.Score, ScorePresets[2])
	}
}

func TestHarnessForceResult(t *testing.T) {
	h, _, s, store := newTestHarness(false)
	s.Score = 40

	res, ok := h.ForceResult(s)
	if !ok {
		t.Fatal("ForceResult should apply while playing")
	}
	if s.Screen != ScreenResult || !res.UpdatedHighScore || res.HighScore != 40 {
		t.Errorf("ForceResult = %+v, screen %q", res, s.Screen)
	}
	if len(store.saved) != 0 {
		t.Errorf("saved = %v, expected nothing persisted", store.saved)
	}

	if _, ok := h.ForceResult(s); ok {
		t.Error("ForceResult should not apply on the result screen")
	}
}

func TestHarnessStepRequests(t *testing.T) {
	h, _, s, _ := newTestHarness(false)

	if h.RequestStep(s, StepShortMs) {
		t.Error("steps should only queue while paused")
	}

	h.TogglePause()
	if !h.RequestStep(s, StepShortMs) || !h.RequestStep(s, StepMediumMs) {
		t.Fatal("steps should queue while paused")
	}
	if got := h.TakeStep(); got != StepShortMs+StepMediumMs {
		t.Errorf("TakeStep = %v, expected %v", got, StepShortMs+StepMediumMs)
	}
	if got := h.TakeStep(); got != 0 {
		t.Errorf("TakeStep = %v, expected the queue to be drained", got)
	}
}

func TestHarnessTelemetry(t *testing.T) {
	h, _, s, _ := newTestHarness(true)
	h.SetStageLock(3)
	h.TogglePause()

	lines := h.Telemetry(s)
	if len(lines) != 8 {
		t.Fatalf("telemetry lines = %d, expected 8", len(lines))
	}
	if lines[0] != "DBG PAUSED SPAWN_ON" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[2] != "stage score=1  eff=3 LOCK" {
		t.Errorf("line 2 = %q", lines[2])
	}
	if !strings.HasPrefix(lines[6], "rng seeded  seed 12345") {
		t.Errorf("line 6 = %q", lines[6])
	}
	if lines[7] != "persistHighScore false" {
		t.Errorf("line 7 = %q", lines[7])
	}
}
