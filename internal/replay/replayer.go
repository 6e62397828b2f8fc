package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
)

// Replayer handles input playback from recorded data.
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data.
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file.
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("replay: cannot decode %s: %w", filename, err)
	}
	if data.GameID != "" && data.GameID != lanedodge.GameID {
		return nil, fmt.Errorf("replay: %s records game %q", filename, data.GameID)
	}
	return &data, nil
}

// Next returns the input and delta of the current frame and advances.
func (r *Replayer) Next() (core.InputFrame, time.Duration, bool) {
	if r.frame >= len(r.data.Frames) {
		return core.InputFrame{}, 0, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Input(), fi.D, true
}

// CurrentFrame returns the current frame number.
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames.
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay.
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Reset rewinds the replayer to the beginning.
func (r *Replayer) Reset() {
	r.frame = 0
}

// Outcome summarizes a headless playback.
type Outcome struct {
	Frames   int                // frames stepped
	Runs     []core.RunResult   // every run finished during playback
	Final    core.GameState     // state after the last frame
	Snapshot lanedodge.Snapshot // engine snapshot after the last frame
}

// Play steps a fresh game through every recorded frame. The game is built
// with the recorded seed and difficulty and never persists scores.
// Play stops early with ctx.Err() when ctx is cancelled.
func Play(ctx context.Context, data ReplayData) (Outcome, error) {
	g := lanedodge.New()
	g.Configure(data.Preset, data.Stage)
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     data.Seed,
	})

	var out Outcome
	r := NewReplayer(data)
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		in, delta, ok := r.Next()
		if !ok {
			break
		}
		res := g.Step(in, delta)
		if res.Finished && res.Result != nil {
			out.Runs = append(out.Runs, *res.Result)
		}
		out.Frames++
	}

	out.Final = g.State()
	out.Snapshot = g.Snapshot()
	return out, nil
}
