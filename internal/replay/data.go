// Package replay records the input of a Lane Dodge session and plays it back
// headlessly. A recording holds the seed and difficulty of the session plus
// one entry per host step, so the same run can be reproduced exactly.
package replay

import (
	"time"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Version is written into every recording.
const Version = "1"

// FrameInput records the input and delta of a single host step.
type FrameInput struct {
	F int           `json:"f"`           // Frame number
	D time.Duration `json:"d"`           // Delta in nanoseconds
	L bool          `json:"l,omitempty"` // Left
	R bool          `json:"r,omitempty"` // Right
	C bool          `json:"c,omitempty"` // Confirm
	B bool          `json:"b,omitempty"` // Back
	X bool          `json:"x,omitempty"` // Restart
	P bool          `json:"p,omitempty"` // Pause
	T []int         `json:"t,omitempty"` // Lane taps, in arrival order
}

// ReplayData contains all data needed to replay a session.
type ReplayData struct {
	ID        string       `json:"id"`
	Version   string       `json:"version"`
	GameID    string       `json:"game"`
	Seed      int64        `json:"seed"`
	Preset    string       `json:"preset,omitempty"`
	Stage     int          `json:"stage,omitempty"` // stage of the fixed preset
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

func encodeFrame(n int, in core.InputFrame, delta time.Duration) FrameInput {
	fi := FrameInput{
		F: n,
		D: delta,
		L: in.Has(core.ActionLeft),
		R: in.Has(core.ActionRight),
		C: in.Has(core.ActionConfirm),
		B: in.Has(core.ActionBack),
		X: in.Has(core.ActionRestart),
		P: in.Has(core.ActionPause),
	}
	if len(in.Taps) > 0 {
		fi.T = append([]int(nil), in.Taps...)
	}
	return fi
}

// Input rebuilds the input frame that was recorded.
func (fi FrameInput) Input() core.InputFrame {
	in := core.NewInputFrame()
	flags := []struct {
		on     bool
		action core.Action
	}{
		{fi.L, core.ActionLeft},
		{fi.R, core.ActionRight},
		{fi.C, core.ActionConfirm},
		{fi.B, core.ActionBack},
		{fi.X, core.ActionRestart},
		{fi.P, core.ActionPause},
	}
	for _, f := range flags {
		if f.on {
			in.Set(f.action)
		}
	}
	for _, lane := range fi.T {
		in.Tap(lane)
	}
	return in
}
