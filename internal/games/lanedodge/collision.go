package lanedodge

import "github.com/vovakirdan/lane-dodge/internal/core"

// PlayerBox returns the player's hit box when standing in lane.
func (e *Engine) PlayerBox(lane int) core.Box {
	m := e.metrics
	return core.CenteredBox(m.LaneCenters[lane], m.PlayerY, m.PlayerWidth, m.PlayerHeight)
}

// ObstacleBox returns the hit box of o.
func (e *Engine) ObstacleBox(o Obstacle) core.Box {
	return core.CenteredBox(e.metrics.LaneCenters[o.Lane], o.Y, o.Width, o.Height)
}

// resolveCollisions walks obstacles in order. The first hit makes the player
// invincible, which shields it from the rest of the list in the same tick.
// Hit obstacles are removed without scoring.
func (e *Engine) resolveCollisions(s *State) {
	if len(s.Obstacles) == 0 {
		return
	}

	player := e.PlayerBox(s.PlayerLane)
	survived := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if s.Invincible || o.Lane != s.PlayerLane || !player.Overlaps(e.ObstacleBox(o)) {
			survived = append(survived, o)
			continue
		}

		s.Lives = max(0, s.Lives-1)
		s.Invincible = true
		s.InvincibleTimerMs = e.cfg.Timing.InvincibleMs
		s.JustHitFlashMs = e.cfg.Timing.InvincibleMs
	}
	s.Obstacles = survived
}
