package lanedodge

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

const frame = 16 * time.Millisecond

func newTestGame(seed int64, store core.HighScoreStore, debug bool) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       seed,
		Debug:      debug,
		HighScores: store,
	})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func taps(lanes ...int) core.InputFrame {
	in := core.NewInputFrame()
	for _, l := range lanes {
		in.Tap(l)
	}
	return in
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("lanedodge should register itself")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Lane Dodge" {
		t.Errorf("Title = %q", g.Title())
	}
}

func TestGameScreenFlow(t *testing.T) {
	store := &recordingStore{loaded: 25}
	g := newTestGame(1, store, false)

	if st := g.State(); st.Screen != "title" || st.HighScore != 25 {
		t.Fatalf("initial state = %+v, expected title with high score 25", st)
	}

	// Ticks on the title screen do nothing.
	g.Step(core.NewInputFrame(), frame)
	if g.Session().Screen != ScreenTitle {
		t.Fatal("title should wait for confirm")
	}

	g.Step(input(core.ActionConfirm), frame)
	if g.Session().Screen != ScreenPlaying {
		t.Fatalf("Screen = %q, expected playing", g.Session().Screen)
	}
	if g.Session().ElapsedMs != 0 {
		t.Error("the starting step should not advance the simulation")
	}

	g.Step(core.NewInputFrame(), frame)
	if g.Session().ElapsedMs != 16 {
		t.Errorf("ElapsedMs = %v, expected 16", g.Session().ElapsedMs)
	}

	g.Session().Lives = 1
	g.Engine().SpawnPattern(g.Session(), "1", PlacementNearPlayer)
	g.Session().Obstacles[0].Y = 540

	res := g.Step(core.NewInputFrame(), frame)
	if !res.Finished || res.Result == nil {
		t.Fatalf("Step = %+v, expected the run to finish", res)
	}
	if !res.State.GameOver || res.State.Screen != "result" {
		t.Errorf("State = %+v, expected result screen", res.State)
	}
	if res.Result.Stage != 1 || res.Result.ElapsedMs != 32 {
		t.Errorf("Result = %+v, expected stage 1 after 32ms", res.Result)
	}

	g.Step(input(core.ActionConfirm), frame)
	if g.Session().Screen != ScreenTitle {
		t.Errorf("Screen = %q, expected title after confirm", g.Session().Screen)
	}

	g.Step(input(core.ActionConfirm), frame)
	g.Session().Lives = 0
	g.Engine().Finish(g.Session(), UpdateOptions{})
	g.Step(input(core.ActionRestart), frame)
	if g.Session().Screen != ScreenPlaying || g.Session().Lives != 3 {
		t.Errorf("restart = %q with %d lives", g.Session().Screen, g.Session().Lives)
	}
}

func TestGameLaneInput(t *testing.T) {
	g := newTestGame(1, nil, false)
	g.Step(input(core.ActionConfirm), frame)

	steps := []struct {
		in       core.InputFrame
		expected int
	}{
		{input(core.ActionLeft), 0},
		{input(core.ActionLeft), 0},
		{input(core.ActionRight), 1},
		{taps(2), 2},
		{taps(9), 2},
		{taps(0, 1), 1},
	}

	for i, s := range steps {
		g.Step(s.in, frame)
		if got := g.Session().PlayerLane; got != s.expected {
			t.Errorf("step %d: PlayerLane = %d, expected %d", i, got, s.expected)
		}
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1, nil, false)
	g.Step(input(core.ActionConfirm), frame)

	g.Step(input(core.ActionPause), frame)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	elapsed := g.Session().ElapsedMs
	g.Step(input(core.ActionLeft), frame)
	if g.Session().ElapsedMs != elapsed || g.Session().PlayerLane != 1 {
		t.Error("paused game should ignore time and lane input")
	}

	g.Step(input(core.ActionPause), frame)
	if g.State().Paused || g.Session().ElapsedMs != elapsed+16 {
		t.Error("unpausing should resume the simulation in the same step")
	}
}

func TestGameClampsDelta(t *testing.T) {
	g := newTestGame(1, nil, false)
	g.Step(input(core.ActionConfirm), frame)

	g.Step(core.NewInputFrame(), 3*time.Second)
	if g.Session().ElapsedMs != 50 {
		t.Errorf("ElapsedMs = %v, expected a 50ms clamp", g.Session().ElapsedMs)
	}
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{16, 16},
		{50, 50},
		{51, 50},
		{-3, 0},
		{math.NaN(), 0},
		{math.Inf(1), 50},
	}

	for _, tc := range tests {
		if got := ClampDelta(tc.in, 50); got != tc.expected {
			t.Errorf("ClampDelta(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestGameFixedPreset(t *testing.T) {
	SetDifficultyPreset("fixed")
	SetFixedStage(4)
	defer func() {
		SetDifficultyPreset("")
		SetFixedStage(1)
	}()

	g := newTestGame(1, nil, false)
	g.Step(input(core.ActionConfirm), frame)
	g.Step(core.NewInputFrame(), frame)

	if st := g.State(); st.Stage != 4 {
		t.Errorf("Stage = %d, expected the fixed stage 4", st.Stage)
	}
}

func TestGameDifficultyLives(t *testing.T) {
	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")

	g := newTestGame(1, nil, false)
	g.Step(input(core.ActionConfirm), frame)
	if g.Session().Lives != 2 {
		t.Errorf("Lives = %d, expected 2 on hard", g.Session().Lives)
	}
}

func TestGameDebugSession(t *testing.T) {
	store := &recordingStore{loaded: 90}
	g := newTestGame(0, store, true)

	if g.Harness() == nil {
		t.Fatal("debug session should have a harness")
	}
	if g.State().HighScore != 0 {
		t.Errorf("debug session high score = %d, expected 0", g.State().HighScore)
	}
	if g.Debug(DebugTogglePause) {
		t.Error("debug commands should not apply on the title screen")
	}

	g.Step(input(core.ActionConfirm), frame)
	g.Debug(DebugTogglePause)
	g.Step(core.NewInputFrame(), frame)
	if g.Session().ElapsedMs != 0 {
		t.Fatal("paused harness should hold the simulation")
	}

	g.Debug(DebugStepLong)
	g.Step(core.NewInputFrame(), frame)
	if g.Session().ElapsedMs != StepLongMs {
		t.Errorf("ElapsedMs = %v, expected a single %dms step", g.Session().ElapsedMs, StepLongMs)
	}

	if n := g.DebugSpawn("02"); n != 2 {
		t.Errorf("DebugSpawn = %d, expected 2", n)
	}

	g.Session().Score = 500
	if !g.Debug(DebugForceResult) {
		t.Fatal("force result should apply while playing")
	}
	res := g.Step(core.NewInputFrame(), frame)
	if !res.Finished || res.Result.Score != 500 {
		t.Errorf("Step after force = %+v", res)
	}
	if len(store.saved) != 0 {
		t.Errorf("saved = %v, debug sessions never persist", store.saved)
	}
}

func TestGameDebugSeedMode(t *testing.T) {
	tests := []struct {
		name     string
		seed     int64
		provided bool
		seeded   bool
		line     string
	}{
		{"clock seed", 987654321, false, false, "rng native  seed 12345"},
		{"user seed", 99, true, true, "rng seeded  seed 99"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: tc.seed, SeedProvided: tc.provided, Debug: true})

			h := g.Harness()
			if h.Seeded() != tc.seeded {
				t.Errorf("Seeded() = %v, expected %v", h.Seeded(), tc.seeded)
			}
			lines := strings.Join(h.Telemetry(g.Session()), "\n")
			if !strings.Contains(lines, tc.line) {
				t.Errorf("telemetry = %q, expected %q", lines, tc.line)
			}
		})
	}
}

func TestGameDebugPauseKeepsLaneInput(t *testing.T) {
	g := newTestGame(1, nil, true)
	g.Step(input(core.ActionConfirm), frame)

	g.Debug(DebugTogglePause)
	g.Step(taps(2), frame)
	if g.Session().PlayerLane != 2 {
		t.Errorf("PlayerLane = %d, lane taps should apply while the harness is paused", g.Session().PlayerLane)
	}
	if g.Session().ElapsedMs != 0 {
		t.Errorf("ElapsedMs = %v, paused harness should hold time", g.Session().ElapsedMs)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(12345, nil, false)
		g.Step(input(core.ActionConfirm), frame)
		for i := 0; i < 2000; i++ {
			in := core.NewInputFrame()
			if i%40 == 0 {
				in.Tap((i / 40) % 3)
			}
			if g.Step(in, frame).Finished {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("Determinism failed:\nrun1=%+v\nrun2=%+v", s1, s2)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(1, nil, false)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "L A N E   D O D G E") {
		t.Error("title screen should show the game name")
	}

	g.Step(input(core.ActionConfirm), frame)
	g.Engine().SpawnPattern(g.Session(), "0", PlacementNearPlayer)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(screen.Row(0), "Score 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.ContainsRune(out, ObstacleChar) || !strings.ContainsRune(out, PlayerChar) {
		t.Error("field should show the obstacle and the player")
	}

	small := core.NewScreen(10, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too") {
		t.Errorf("tiny screen = %q", small.String())
	}
}

func TestFieldLayout(t *testing.T) {
	g := newTestGame(1, nil, false)
	l := g.layoutFor(80, 24)

	if l.cols != l.laneCells*3 {
		t.Errorf("cols = %d, expected %d", l.cols, l.laneCells*3)
	}
	if l.left < 1 || l.left+l.cols >= 80 {
		t.Errorf("field [%d, %d) should leave room for the edges", l.left, l.left+l.cols)
	}
	if l.row(0) != l.top || l.row(640) != l.top+l.rows {
		t.Errorf("row mapping = %d..%d, expected %d..%d", l.row(0), l.row(640), l.top, l.top+l.rows)
	}

	// Boxes above the field are clipped away.
	if _, ok := l.cells(core.Box{Left: 0, Right: 84, Top: -40, Bottom: -14}); ok {
		t.Error("box above the field should be clipped")
	}
	r, ok := l.cells(core.Box{Left: 0, Right: 84, Top: -10, Bottom: 16})
	if !ok || r.Y != l.top || r.H < 1 {
		t.Errorf("partially visible box = %+v, %v", r, ok)
	}
}

func TestLaneAtColumn(t *testing.T) {
	g := newTestGame(1, nil, false)
	l := g.layoutFor(80, 24)

	tests := []struct {
		x        int
		expected int
	}{
		{l.left - 1, -1},
		{l.left, 0},
		{l.left + l.laneCells - 1, 0},
		{l.left + l.laneCells, 1},
		{l.left + l.cols - 1, 2},
		{l.left + l.cols, -1},
	}

	for _, tc := range tests {
		if got := g.LaneAtColumn(tc.x, 80, 24); got != tc.expected {
			t.Errorf("LaneAtColumn(%d) = %d, expected %d", tc.x, got, tc.expected)
		}
	}

	if got := g.LaneAtColumn(5, 10, 5); got != -1 {
		t.Errorf("LaneAtColumn on a tiny screen = %d, expected -1", got)
	}
}

func TestGameConfigureOverridesPackagePreset(t *testing.T) {
	SetDifficultyPreset("easy")
	defer SetDifficultyPreset("")

	g := New()
	g.Configure("fixed", 3)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	g.Step(input(core.ActionConfirm), frame)
	g.Step(core.NewInputFrame(), frame)

	if st := g.State(); st.Stage != 3 || st.Lives != 3 {
		t.Errorf("State = %+v, expected fixed stage 3 with default lives", st)
	}

	other := newTestGame(1, nil, false)
	other.Step(input(core.ActionConfirm), frame)
	if other.Session().Lives != 5 {
		t.Errorf("Lives = %d, unconfigured games should follow the package preset", other.Session().Lives)
	}
}
