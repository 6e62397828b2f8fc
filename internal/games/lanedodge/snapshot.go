package lanedodge

// Snapshot captures the session for determinism testing and replay checks.
type Snapshot struct {
	Screen         Screen
	Score          int
	HighScore      int
	Lives          int
	PlayerLane     int
	Obstacles      int
	ObstacleYs     []float64
	ElapsedMs      float64
	SpawnTimerMs   float64
	LastPatternKey string
	NextObstacleID int
	Stage          int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	ys := make([]float64, len(g.state.Obstacles))
	for i, o := range g.state.Obstacles {
		ys[i] = o.Y
	}
	return Snapshot{
		Screen:         g.state.Screen,
		Score:          g.state.Score,
		HighScore:      g.state.HighScore,
		Lives:          g.state.Lives,
		PlayerLane:     g.state.PlayerLane,
		Obstacles:      len(g.state.Obstacles),
		ObstacleYs:     ys,
		ElapsedMs:      g.state.ElapsedMs,
		SpawnTimerMs:   g.state.SpawnTimerMs,
		LastPatternKey: g.state.LastSpawnPatternKey,
		NextObstacleID: g.state.NextObstacleID,
		Stage:          g.stage,
	}
}
