package lanedodge

// DebugCommand is a harness action bound to a key by the host.
type DebugCommand int

const (
	DebugTogglePause DebugCommand = iota
	DebugStepShort
	DebugStepMedium
	DebugStepLong
	DebugToggleHitboxes
	DebugToggleTelemetry
	DebugToggleInvincible
	DebugToggleSpawning
	DebugToggleSeeded
	DebugResetSeed
	DebugCycleStageLock
	DebugTogglePlacement
	DebugNextScorePreset
	DebugClearObstacles
	DebugLivesUp
	DebugLivesDown
	DebugForceResult
)

// Debug applies cmd to the session. Commands only work in debug sessions
// while a run is in progress; the return value reports whether cmd applied.
func (g *Game) Debug(cmd DebugCommand) bool {
	h := g.harness
	if h == nil || g.state.Screen != ScreenPlaying {
		return false
	}
	s := g.state

	switch cmd {
	case DebugTogglePause:
		h.TogglePause()
	case DebugStepShort:
		return h.RequestStep(s, StepShortMs)
	case DebugStepMedium:
		return h.RequestStep(s, StepMediumMs)
	case DebugStepLong:
		return h.RequestStep(s, StepLongMs)
	case DebugToggleHitboxes:
		h.ShowHitboxes = !h.ShowHitboxes
	case DebugToggleTelemetry:
		h.ShowTelemetry = !h.ShowTelemetry
	case DebugToggleInvincible:
		h.SetInfiniteInvincible(s, !h.InfiniteInvincible)
	case DebugToggleSpawning:
		h.DisableSpawning = !h.DisableSpawning
	case DebugToggleSeeded:
		h.SetSeeded(!h.Seeded())
	case DebugResetSeed:
		if !h.Seeded() {
			return false
		}
		h.ResetSeed(h.seedSource)
	case DebugCycleStageLock:
		h.CycleStageLock()
	case DebugTogglePlacement:
		h.TogglePlacement()
	case DebugNextScorePreset:
		h.NextScorePreset(s)
	case DebugClearObstacles:
		h.ClearObstacles(s)
	case DebugLivesUp:
		h.SetLives(s, s.Lives+1)
	case DebugLivesDown:
		h.SetLives(s, s.Lives-1)
	case DebugForceResult:
		res, ok := h.ForceResult(s)
		if !ok {
			return false
		}
		g.stage = g.activeStage(h.Overrides())
		g.forced = &res
	default:
		return false
	}
	return true
}

// DebugSpawn injects a spawn pattern such as "0" or "12" in a debug session.
func (g *Game) DebugSpawn(pattern string) int {
	if g.harness == nil {
		return 0
	}
	return g.harness.Spawn(g.state, pattern)
}
