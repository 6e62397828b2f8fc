package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
)

// GameKeyMap defines the key bindings used while a game is running.
type GameKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Lane       key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Restart    key.Binding
	Pause      key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Lane, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Lane},
		{k.Confirm, k.Restart, k.Back},
		{k.Pause, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "lane left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "lane right"),
		),
		Lane: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to lane"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "back"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// debugBinding ties a key binding to a harness command.
type debugBinding struct {
	binding key.Binding
	command lanedodge.DebugCommand
}

// spawnBinding injects an obstacle pattern.
type spawnBinding struct {
	binding key.Binding
	pattern string
}

// DebugKeyMap defines the key bindings of debug sessions.
type DebugKeyMap struct {
	commands []debugBinding
	spawns   []spawnBinding
}

func bind(keys []string, help, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultDebugKeyMap returns default debug bindings.
func DefaultDebugKeyMap() DebugKeyMap {
	return DebugKeyMap{
		commands: []debugBinding{
			{bind([]string{"."}, ".", "step 16ms"), lanedodge.DebugStepShort},
			{bind([]string{">"}, ">", "step 100ms"), lanedodge.DebugStepMedium},
			{bind([]string{"/"}, "/", "step 500ms"), lanedodge.DebugStepLong},
			{bind([]string{"h"}, "h", "hitboxes"), lanedodge.DebugToggleHitboxes},
			{bind([]string{"t"}, "t", "telemetry"), lanedodge.DebugToggleTelemetry},
			{bind([]string{"i"}, "i", "invincible"), lanedodge.DebugToggleInvincible},
			{bind([]string{"s"}, "s", "spawning"), lanedodge.DebugToggleSpawning},
			{bind([]string{"g"}, "g", "seeded rng"), lanedodge.DebugToggleSeeded},
			{bind([]string{"r"}, "r", "reset seed"), lanedodge.DebugResetSeed},
			{bind([]string{"k"}, "k", "stage lock"), lanedodge.DebugCycleStageLock},
			{bind([]string{"n"}, "n", "placement"), lanedodge.DebugTogglePlacement},
			{bind([]string{"x"}, "x", "score preset"), lanedodge.DebugNextScorePreset},
			{bind([]string{"c"}, "c", "clear"), lanedodge.DebugClearObstacles},
			{bind([]string{"+", "="}, "+", "life"), lanedodge.DebugLivesUp},
			{bind([]string{"-"}, "-", "life"), lanedodge.DebugLivesDown},
			{bind([]string{"f"}, "f", "force result"), lanedodge.DebugForceResult},
		},
		spawns: []spawnBinding{
			{bind([]string{"!"}, "!", "spawn lane 1"), "0"},
			{bind([]string{"@"}, "@", "spawn lane 2"), "1"},
			{bind([]string{"#"}, "#", "spawn lane 3"), "2"},
			{bind([]string{"$"}, "$", "spawn 1+2"), "01"},
			{bind([]string{"%"}, "%", "spawn 2+3"), "12"},
			{bind([]string{"^"}, "^", "spawn 1+3"), "02"},
		},
	}
}

// KeyMapper translates Bubble Tea key messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Game  GameKeyMap
	Debug DebugKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Game:  DefaultGameKeyMap(),
		Debug: DefaultDebugKeyMap(),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.Game.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.Game.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.Game.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.Game.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, km.Game.Back):
		return core.ActionBack, false
	case key.Matches(msg, km.Game.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.Game.Pause):
		return core.ActionPause, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message. Number keys
// become lane taps (1 is the leftmost lane).
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if key.Matches(msg, km.Game.Lane) {
		frame.Tap(int(msg.String()[0] - '1'))
		return false
	}
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// DebugCommand returns the harness command bound to msg.
func (km *KeyMapper) DebugCommand(msg tea.KeyMsg) (lanedodge.DebugCommand, bool) {
	for _, b := range km.Debug.commands {
		if key.Matches(msg, b.binding) {
			return b.command, true
		}
	}
	return 0, false
}

// DebugSpawn returns the obstacle pattern bound to msg.
func (km *KeyMapper) DebugSpawn(msg tea.KeyMsg) (string, bool) {
	for _, b := range km.Debug.spawns {
		if key.Matches(msg, b.binding) {
			return b.pattern, true
		}
	}
	return "", false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
