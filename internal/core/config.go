package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host loop ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Debug    bool  // Attach the debug harness; scores are never persisted

	// SeedProvided is set when Seed was chosen by the user rather than
	// filled in from the clock. Debug sessions start seeded only then.
	SeedProvided bool

	// HighScores is the persistence collaborator. Nil means nothing is stored.
	HighScores HighScoreStore
}

// HighScoreStore persists a single best score. Implementations never fail
// loudly: Load returns 0 when nothing usable is stored and Save swallows errors.
type HighScoreStore interface {
	Load() int
	Save(score int)
}

// NopHighScores stores nothing.
type NopHighScores struct{}

func (NopHighScores) Load() int { return 0 }
func (NopHighScores) Save(int) {}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes a game for the platform layer.
// Returned by Game.State() to communicate status to the host.
type GameState struct {
	Screen    string // "title", "playing" or "result"
	Score     int
	HighScore int
	Lives     int
	Stage     int
	Paused    bool
	GameOver  bool // true while the result screen is shown
}

// RunResult is the payload of a finished run.
type RunResult struct {
	Score            int
	HighScore        int
	UpdatedHighScore bool
	Stage            int     // stage in effect when the run ended
	ElapsedMs        float64 // simulated run duration
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Finished is set on the single tick in which a run ends; Result is non-nil then.
	Finished bool
	Result   *RunResult
}
