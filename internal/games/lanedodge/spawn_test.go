package lanedodge

import (
	"math/rand"
	"reflect"
	"testing"
)

// countingSource wraps a source and counts draws.
type countingSource struct {
	next  RandomSource
	draws int
}

func (c *countingSource) source() RandomSource {
	return func() float64 {
		c.draws++
		return c.next()
	}
}

func patternKeys(ps []Pattern) []string {
	keys := make([]string, len(ps))
	for i, p := range ps {
		keys[i] = p.Key
	}
	return keys
}

func TestBuildPatterns(t *testing.T) {
	tests := []struct {
		lanes   int
		singles []string
		all     []string
	}{
		{1, []string{"0"}, []string{"0"}},
		{3, []string{"0", "1", "2"}, []string{"0", "1", "2", "01", "02", "12"}},
		{4, []string{"0", "1", "2", "3"}, []string{"0", "1", "2", "3", "01", "02", "03", "12", "13", "23"}},
	}

	for _, tc := range tests {
		singles, all := buildPatterns(tc.lanes)
		if got := patternKeys(singles); !reflect.DeepEqual(got, tc.singles) {
			t.Errorf("lanes=%d singles = %v, expected %v", tc.lanes, got, tc.singles)
		}
		if got := patternKeys(all); !reflect.DeepEqual(got, tc.all) {
			t.Errorf("lanes=%d all = %v, expected %v", tc.lanes, got, tc.all)
		}
	}
}

func TestSpawnSinglesWhenDrawAtOrAboveChance(t *testing.T) {
	e, _ := newTestEngine(nil)
	s := playing(e)

	// 0.5 >= 0.5 keeps pairs out; index int(0.99*3) = 2.
	e.spawn(s, 0.5, Sequence(0.5, 0.99))

	if s.LastSpawnPatternKey != "2" || len(s.Obstacles) != 1 {
		t.Errorf("key = %q, obstacles = %d, expected \"2\" and 1", s.LastSpawnPatternKey, len(s.Obstacles))
	}
}

func TestSpawnPairBelowChance(t *testing.T) {
	e, _ := newTestEngine(nil)
	s := playing(e)

	// 0.1 < 0.5 opens all six patterns; index int(0.99*6) = 5 is "12".
	e.spawn(s, 0.5, Sequence(0.1, 0.99))

	if s.LastSpawnPatternKey != "12" {
		t.Fatalf("key = %q, expected \"12\"", s.LastSpawnPatternKey)
	}
	if len(s.Obstacles) != 2 || s.Obstacles[0].Lane != 1 || s.Obstacles[1].Lane != 2 {
		t.Errorf("obstacles = %+v, expected lanes 1 and 2", s.Obstacles)
	}
	if s.Obstacles[0].Y != -40 || s.Obstacles[0].ID != 1 || s.Obstacles[1].ID != 2 {
		t.Errorf("obstacles = %+v, expected ids 1,2 at the spawn height", s.Obstacles)
	}
}

func TestSpawnRedrawsRepeatedPattern(t *testing.T) {
	e, _ := newTestEngine(nil)
	s := playing(e)
	s.LastSpawnPatternKey = "2"

	// chance draw, "2", redraw "2", redraw "0".
	e.spawn(s, 0, Sequence(0.9, 0.99, 0.99, 0.1))

	if s.LastSpawnPatternKey != "0" {
		t.Errorf("key = %q, expected the redraw to land on \"0\"", s.LastSpawnPatternKey)
	}
}

func TestSpawnRedrawsAreBounded(t *testing.T) {
	e, _ := newTestEngine(nil)
	s := playing(e)
	s.LastSpawnPatternKey = "2"

	counter := &countingSource{next: Constant(0.99)}
	e.spawn(s, 0, counter.source())

	// One chance draw, one pick and four redraws, then the repeat is accepted.
	if counter.draws != 6 {
		t.Errorf("draws = %d, expected 6", counter.draws)
	}
	if s.LastSpawnPatternKey != "2" || len(s.Obstacles) != 1 {
		t.Errorf("key = %q, obstacles = %d", s.LastSpawnPatternKey, len(s.Obstacles))
	}
}

func TestSpawnNoRedrawWithSingleCandidate(t *testing.T) {
	cfg := testConfig()
	cfg.Field.LaneCount = 1
	cfg.Player.StartLane = 0
	e := NewEngine(cfg, nil, nil)
	s := e.NewState(0)
	e.Start(s)
	s.LastSpawnPatternKey = "0"

	counter := &countingSource{next: Constant(0.3)}
	e.spawn(s, 0, counter.source())

	if counter.draws != 2 {
		t.Errorf("draws = %d, expected 2 with a single candidate", counter.draws)
	}
}

func TestSpawnRarelyRepeats(t *testing.T) {
	e, _ := newTestEngine(nil)
	s := playing(e)
	random := FromRand(rand.New(rand.NewSource(99)))

	const spawns = 2000
	repeats := 0
	prev := ""
	for i := 0; i < spawns; i++ {
		e.spawn(s, 0.3, random)
		if s.LastSpawnPatternKey == prev {
			repeats++
		}
		prev = s.LastSpawnPatternKey
		s.Obstacles = s.Obstacles[:0]
	}

	// Five draws per spawn make a repeat rare; pure chance would be ~1 in 4.
	if repeats > spawns/50 {
		t.Errorf("repeats = %d of %d spawns, expected anti-repeat to keep it under 2%%", repeats, spawns)
	}
}

func TestSpawnPattern(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		placement Placement
		lanes     []int
		y         float64
	}{
		{"single top", "0", PlacementTop, []int{0}, -40},
		{"pair top", "12", PlacementTop, []int{1, 2}, -40},
		{"near player", "1", PlacementNearPlayer, []int{1}, 548 - 160 - 26},
		{"duplicates collapse", "11", PlacementTop, []int{1}, -40},
		{"invalid digits ignored", "0a9", PlacementTop, []int{0}, -40},
		{"empty", "", PlacementTop, nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine(Constant(0.5))
			s := playing(e)
			s.LastSpawnPatternKey = "02"

			n := e.SpawnPattern(s, tc.pattern, tc.placement)

			if n != len(tc.lanes) || len(s.Obstacles) != len(tc.lanes) {
				t.Fatalf("SpawnPattern(%q) = %d (%d obstacles), expected %d", tc.pattern, n, len(s.Obstacles), len(tc.lanes))
			}
			for i, o := range s.Obstacles {
				if o.Lane != tc.lanes[i] || o.Y != tc.y {
					t.Errorf("obstacle %d = lane %d y %v, expected lane %d y %v", i, o.Lane, o.Y, tc.lanes[i], tc.y)
				}
			}
			if s.LastSpawnPatternKey != "02" {
				t.Errorf("LastSpawnPatternKey = %q, expected it untouched", s.LastSpawnPatternKey)
			}
		})
	}
}

func TestSpawnPatternOnlyWhilePlaying(t *testing.T) {
	e, _ := newTestEngine(Constant(0.5))
	s := e.NewState(0)

	if n := e.SpawnPattern(s, "012", PlacementTop); n != 0 || len(s.Obstacles) != 0 {
		t.Errorf("SpawnPattern on title = %d, expected 0", n)
	}
}

func TestPlacementString(t *testing.T) {
	if PlacementTop.String() != "top" || PlacementNearPlayer.String() != "near-player" {
		t.Errorf("placements = %q, %q", PlacementTop, PlacementNearPlayer)
	}
}

func TestLCG(t *testing.T) {
	l := NewLCG(DefaultDebugSeed)

	expected := []uint32{87628868, 71072467, 2332836374}
	for i, want := range expected {
		v := l.Next()
		if l.State() != want {
			t.Errorf("step %d: state = %d, expected %d", i, l.State(), want)
		}
		if v != float64(want)/4294967296 {
			t.Errorf("step %d: value = %v, expected %v", i, v, float64(want)/4294967296)
		}
	}

	l.Seed(DefaultDebugSeed)
	if l.Next(); l.State() != expected[0] {
		t.Error("Seed should restart the sequence")
	}
}

func TestPickStaysInRange(t *testing.T) {
	tests := []struct {
		value    float64
		n        int
		expected int
	}{
		{0, 3, 0},
		{0.3333, 3, 0},
		{0.34, 3, 1},
		{0.999999, 3, 2},
		{1, 3, 2},
		{-0.5, 3, 0},
	}

	for _, tc := range tests {
		if got := pick(Constant(tc.value), tc.n); got != tc.expected {
			t.Errorf("pick(%v, %d) = %d, expected %d", tc.value, tc.n, got, tc.expected)
		}
	}
}
