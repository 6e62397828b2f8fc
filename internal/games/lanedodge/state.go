package lanedodge

// Screen is the coarse mode of a session.
type Screen string

const (
	ScreenTitle   Screen = "title"
	ScreenPlaying Screen = "playing"
	ScreenResult  Screen = "result"
)

// Obstacle is a falling block occupying one lane.
type Obstacle struct {
	ID     int
	Lane   int
	Y      float64 // top edge; negative while above the field
	Width  float64
	Height float64
}

// State is the mutable record of one session. The host owns it and hands it
// to the Engine by pointer on every call; nothing else may mutate it during a tick.
type State struct {
	Screen     Screen
	Score      int
	HighScore  int
	Lives      int
	PlayerLane int
	Obstacles  []Obstacle

	SpawnTimerMs float64
	ElapsedMs    float64

	Invincible        bool
	InvincibleTimerMs float64

	LastScore           int
	LastSpawnPatternKey string
	NextObstacleID      int
	JustHitFlashMs      float64
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	if s.Obstacles != nil {
		c.Obstacles = make([]Obstacle, len(s.Obstacles))
		copy(c.Obstacles, s.Obstacles)
	}
	return &c
}

// Result is the payload of a finished run.
type Result struct {
	Score            int
	HighScore        int
	UpdatedHighScore bool
}

// Outcome is returned by Engine.Update. Result is set only when Finished.
type Outcome struct {
	Finished bool
	Result   *Result
}
