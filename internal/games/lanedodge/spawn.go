package lanedodge

import "strconv"

// Pattern is a set of lanes that receive an obstacle together.
type Pattern struct {
	Key   string // lane digits in ascending order, e.g. "0" or "12"
	Lanes []int
}

// Placement selects where debug-spawned obstacles appear.
type Placement int

const (
	PlacementTop        Placement = iota // at the regular spawn height
	PlacementNearPlayer                  // just above the player
)

func (p Placement) String() string {
	if p == PlacementNearPlayer {
		return "near-player"
	}
	return "top"
}

// buildPatterns enumerates single-lane patterns and the full candidate list
// (singles followed by every lane pair).
func buildPatterns(laneCount int) (singles, all []Pattern) {
	for i := 0; i < laneCount; i++ {
		singles = append(singles, Pattern{Key: strconv.Itoa(i), Lanes: []int{i}})
	}
	all = append(all, singles...)
	for i := 0; i < laneCount; i++ {
		for j := i + 1; j < laneCount; j++ {
			all = append(all, Pattern{
				Key:   strconv.Itoa(i) + strconv.Itoa(j),
				Lanes: []int{i, j},
			})
		}
	}
	return singles, all
}

// Patterns returns every pattern the spawner can choose from.
func (e *Engine) Patterns() []Pattern {
	return e.patterns
}

// spawn performs one spawn event. The first draw decides whether pairs are
// eligible; the next picks a pattern, redrawing a bounded number of times to
// avoid repeating the previous key.
func (e *Engine) spawn(s *State, doubleChance float64, random RandomSource) {
	candidates := e.singles
	if random() < doubleChance {
		candidates = e.patterns
	}
	if len(candidates) == 0 {
		return
	}

	idx := pick(random, len(candidates))
	if len(candidates) > 1 {
		for attempt := 0; attempt < e.cfg.Timing.PatternRedraws && candidates[idx].Key == s.LastSpawnPatternKey; attempt++ {
			idx = pick(random, len(candidates))
		}
	}

	p := candidates[idx]
	s.LastSpawnPatternKey = p.Key
	for _, lane := range p.Lanes {
		e.addObstacle(s, lane, e.cfg.Obstacles.SpawnY)
	}
}

func (e *Engine) addObstacle(s *State, lane int, y float64) {
	s.Obstacles = append(s.Obstacles, Obstacle{
		ID:     s.NextObstacleID,
		Lane:   lane,
		Y:      y,
		Width:  e.metrics.ObstacleWidth,
		Height: e.metrics.ObstacleHeight,
	})
	s.NextObstacleID++
}

// SpawnPattern injects obstacles outside the regular spawn schedule. pattern
// is a string of lane digits; characters that are not a lane in range and
// repeated lanes are ignored. Only works while playing and leaves the
// anti-repeat key alone. Returns the number of obstacles created.
func (e *Engine) SpawnPattern(s *State, pattern string, placement Placement) int {
	if s.Screen != ScreenPlaying {
		return 0
	}

	y := e.cfg.Obstacles.SpawnY
	if placement == PlacementNearPlayer {
		y = e.metrics.PlayerY - e.cfg.Obstacles.NearPlayerGap - e.metrics.ObstacleHeight
	}

	seen := make(map[int]bool)
	created := 0
	for _, r := range pattern {
		lane := int(r - '0')
		if r < '0' || r > '9' || lane >= e.cfg.Field.LaneCount || seen[lane] {
			continue
		}
		seen[lane] = true
		e.addObstacle(s, lane, y)
		created++
	}
	return created
}
