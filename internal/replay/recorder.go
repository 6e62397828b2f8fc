package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// ErrEmpty is returned when saving a recording without frames.
var ErrEmpty = errors.New("replay: no frames to save")

// Recorder handles input recording.
type Recorder struct {
	data      ReplayData
	recording bool
}

// NewRecorder creates a recorder for a session started with the given seed,
// difficulty preset and fixed stage.
func NewRecorder(gameID string, seed int64, preset string, stage int) *Recorder {
	return &Recorder{
		data: ReplayData{
			ID:        uuid.NewString(),
			Version:   Version,
			GameID:    gameID,
			Seed:      seed,
			Preset:    preset,
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records one host step.
func (r *Recorder) RecordFrame(in core.InputFrame, delta time.Duration) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, encodeFrame(len(r.data.Frames), in, delta))
}

// Stop stops recording. Frames recorded so far are kept.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames.
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recording.
func (r *Recorder) Data() ReplayData {
	return r.data
}

// Save writes the recording to filename as indented JSON.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrEmpty
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("replay: cannot create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	return nil
}

// GenerateFilename creates a filename based on the current time.
func GenerateFilename() string {
	return fmt.Sprintf("lanedodge_%s.json", time.Now().Format("20060102_150405"))
}
