package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H - move one lane left
	ActionRight          // Right arrow, D, L - move one lane right
	ActionConfirm        // Enter, Space - start a run / leave the result screen
	ActionBack           // B, Escape - back to title
	ActionRestart        // R - start a new run from the result screen
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Taps lists absolute lane selections (number keys, mouse clicks) in the
	// order they arrived.
	Taps []int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Tap records an absolute lane selection.
func (f *InputFrame) Tap(lane int) {
	f.Taps = append(f.Taps, lane)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Taps) == 0
}

// Clear resets all actions and taps for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Taps = f.Taps[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Taps) > 0 {
		clone.Taps = append([]int(nil), f.Taps...)
	}
	return clone
}

// LaneAt maps a horizontal position inside a surface of the given width to a
// lane index, clamped to [0, laneCount). Returns -1 when x lies outside.
func LaneAt(x, width, laneCount int) int {
	if width <= 0 || laneCount <= 0 || x < 0 || x >= width {
		return -1
	}
	return Clamp(x*laneCount/width, 0, laneCount-1)
}
