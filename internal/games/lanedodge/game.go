package lanedodge

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "lanedodge"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var fixedStage = 1

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetFixedStage sets the stage used by the fixed preset.
func SetFixedStage(id int) {
	fixedStage = id
}

// Game adapts the Engine to the platform. It owns the session State and
// drives the title -> playing -> result flow from abstract input.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.LaneDodgeConfig
	preset  config.DifficultyPreset
	fixed   *config.Stage // stage lock of the fixed preset

	engine  *Engine
	state   *State
	harness *Harness // nil unless RuntimeConfig.Debug

	presetOverride *config.DifficultyPreset // per-instance preset, see Configure
	stageOverride  int

	paused bool
	forced *Result // debug forced result, reported on the next step
	result *Result // last finished run
	stage  int     // stage in effect at the end of the last update
}

// New creates a new Lane Dodge game instance.
func New() *Game {
	return &Game{}
}

// Configure sets the difficulty preset and fixed stage of this instance,
// taking precedence over SetDifficultyPreset and SetFixedStage. Hosts running
// several sessions at once use it. Applies from the next Reset.
func (g *Game) Configure(preset string, fixedStageID int) {
	p := config.ParsePreset(preset)
	g.presetOverride = &p
	g.stageOverride = fixedStageID
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Dodge"
}

// Reset loads the configuration, builds the engine and shows the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadLaneDodge(configPath)
	if err != nil {
		cfg = config.DefaultLaneDodgeConfig()
	}
	g.preset = difficultyPreset
	stageID := fixedStage
	if g.presetOverride != nil {
		g.preset = *g.presetOverride
		if g.stageOverride > 0 {
			stageID = g.stageOverride
		}
	}
	if g.preset != "" {
		config.ApplyPreset(&cfg, g.preset)
	}
	g.cfg = cfg

	g.fixed = nil
	if config.IsFixedPreset(g.preset) {
		stage := cfg.Stages.ByID(stageID)
		g.fixed = &stage
	}

	scores := runtime.HighScores
	if runtime.Debug {
		scores = nil
	}
	g.engine = NewEngine(cfg, FromRand(rand.New(rand.NewSource(runtime.Seed))), scores)

	high := 0
	if scores != nil {
		high = scores.Load()
	}
	g.state = g.engine.NewState(high)

	g.harness = nil
	if runtime.Debug {
		seed := DefaultDebugSeed
		if runtime.SeedProvided {
			seed = uint32(runtime.Seed)
		}
		g.harness = NewHarness(g.engine, seed, runtime.SeedProvided)
	}

	g.paused = false
	g.forced = nil
	g.result = nil
	g.stage = g.engine.StageForScore(0).ID
}

// Engine exposes the simulation engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Session exposes the live session state.
func (g *Game) Session() *State {
	return g.state
}

// Harness returns the debug harness, or nil outside debug sessions.
func (g *Game) Harness() *Harness {
	return g.harness
}

// LastResult returns the most recent finished run, if any.
func (g *Game) LastResult() *Result {
	return g.result
}

// Step applies input and advances a playing session by delta.
func (g *Game) Step(in core.InputFrame, delta time.Duration) core.StepResult {
	if g.forced != nil {
		res := g.forced
		g.forced = nil
		return g.finished(*res)
	}

	switch g.state.Screen {
	case ScreenTitle:
		if in.Has(core.ActionConfirm) || len(in.Taps) > 0 {
			g.start()
		}
		return core.StepResult{State: g.State()}
	case ScreenResult:
		switch {
		case in.Has(core.ActionRestart):
			g.start()
		case in.Has(core.ActionConfirm), in.Has(core.ActionBack):
			g.engine.ReturnToTitle(g.state)
		}
		return core.StepResult{State: g.State()}
	}

	return g.stepPlaying(in, delta)
}

func (g *Game) start() {
	g.engine.Start(g.state)
	g.paused = false
	g.stage = g.activeStage(UpdateOptions{StageOverride: g.fixed})
	if g.harness != nil {
		g.harness.OnGameStart(g.state)
	}
}

func (g *Game) stepPlaying(in core.InputFrame, delta time.Duration) core.StepResult {
	if in.Has(core.ActionPause) {
		if g.harness != nil {
			g.harness.TogglePause()
		} else {
			g.paused = !g.paused
		}
	}

	// Lane input still applies while the harness is paused so a lane can be
	// set up before single-stepping. The player pause swallows it.
	if !g.paused {
		if in.Has(core.ActionLeft) {
			g.engine.HandleLaneTap(g.state, g.state.PlayerLane-1)
		}
		if in.Has(core.ActionRight) {
			g.engine.HandleLaneTap(g.state, g.state.PlayerLane+1)
		}
		for _, lane := range in.Taps {
			g.engine.HandleLaneTap(g.state, lane)
		}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	deltaMs := ClampDelta(float64(delta)/float64(time.Millisecond), g.cfg.Timing.MaxDeltaMs)
	opts := UpdateOptions{StageOverride: g.fixed}

	if h := g.harness; h != nil {
		if h.Paused {
			step := h.TakeStep()
			if step <= 0 {
				h.SetLastDelta(0)
				return core.StepResult{State: g.State()}
			}
			deltaMs = step
		}
		opts = h.Overrides()
		if opts.StageOverride == nil {
			opts.StageOverride = g.fixed
		}
		h.BeforeUpdate(g.state)
	}

	out := g.engine.Update(g.state, deltaMs, opts)
	g.stage = g.activeStage(opts)

	if g.harness != nil {
		g.harness.AfterUpdate(g.state, deltaMs)
	}

	if !out.Finished {
		return core.StepResult{State: g.State()}
	}
	return g.finished(*out.Result)
}

func (g *Game) activeStage(opts UpdateOptions) int {
	return g.engine.ActiveStage(g.state, opts).ID
}

func (g *Game) finished(res Result) core.StepResult {
	g.result = &res
	g.paused = false
	return core.StepResult{
		State:    g.State(),
		Finished: true,
		Result: &core.RunResult{
			Score:            res.Score,
			HighScore:        res.HighScore,
			UpdatedHighScore: res.UpdatedHighScore,
			Stage:            g.stage,
			ElapsedMs:        g.state.ElapsedMs,
		},
	}
}

// ClampDelta bounds a frame delta to [0, maxMs]. NaN becomes 0.
func ClampDelta(deltaMs, maxMs float64) float64 {
	if math.IsNaN(deltaMs) || deltaMs < 0 {
		return 0
	}
	return math.Min(deltaMs, maxMs)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	paused := g.paused
	if g.harness != nil {
		paused = g.harness.Paused
	}
	return core.GameState{
		Screen:    string(g.state.Screen),
		Score:     g.state.Score,
		HighScore: g.state.HighScore,
		Lives:     g.state.Lives,
		Stage:     g.stage,
		Paused:    paused && g.state.Screen == ScreenPlaying,
		GameOver:  g.state.Screen == ScreenResult,
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
