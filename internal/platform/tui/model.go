package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/games/lanedodge"
	"github.com/vovakirdan/lane-dodge/internal/registry"
	"github.com/vovakirdan/lane-dodge/internal/replay"
	"github.com/vovakirdan/lane-dodge/internal/storage"
)

// Debugger is implemented by games that carry a debug harness.
type Debugger interface {
	Debug(cmd lanedodge.DebugCommand) bool
	DebugSpawn(pattern string) int
}

// laneLocator maps mouse columns to lanes.
type laneLocator interface {
	LaneAtColumn(x, screenW, screenH int) int
}

// Options wires a game model to its collaborators. Every field is optional.
type Options struct {
	Store    *storage.Store
	Logger   *log.Logger
	Recorder *replay.Recorder
	Preset   string                  // difficulty preset, stored with each run
	OnRun    func(storage.RunRecord) // called for every saved run

	// AllowBack lets Back on the title screen leave the game and return to
	// the launcher menu.
	AllowBack bool
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	loop       uint64 // tick chain id
	lastTick   time.Time
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game and resets it to the title screen.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		cfg.SeedProvided = false
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Store != nil && cfg.HighScores == nil {
		cfg.HighScores = storage.NewHighScores(opts.Store, game.ID(), opts.Logger)
	}

	game.Reset(cfg)

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		loop:       nextLoopID(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		// The field scales to any size, so the session survives resizes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if dbg, ok := m.game.(Debugger); ok && m.config.Debug && m.gameState.Screen == "playing" {
		if pattern, ok := m.keys.DebugSpawn(msg); ok {
			dbg.DebugSpawn(pattern)
			return m, nil
		}
		if cmd, ok := m.keys.DebugCommand(msg); ok && dbg.Debug(cmd) {
			return m, nil
		}
	}

	action, _ := m.keys.MapKey(msg)
	if action == core.ActionBack && m.opts.AllowBack && m.gameState.Screen == "title" {
		m.backToMenu = true
		return m, tea.Quit
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		if m.opts.Recorder != nil {
			m.opts.Recorder.Stop()
		}
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns left clicks into lane taps.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	lane := -1
	if loc, ok := m.game.(laneLocator); ok {
		lane = loc.LaneAtColumn(msg.X, m.screen.Width(), m.screen.Height())
	}
	switch {
	case lane >= 0:
		m.inputFrame.Tap(lane)
	case m.gameState.Screen == "title":
		// Clicking anywhere starts a run.
		m.inputFrame.Set(core.ActionConfirm)
	}
	return m, nil
}

// handleTick steps the game by the wall-clock time since the previous tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var delta time.Duration
	if !m.lastTick.IsZero() {
		delta = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if m.opts.Recorder != nil {
		m.opts.Recorder.RecordFrame(m.inputFrame, delta)
	}

	result := m.game.Step(m.inputFrame, delta)
	m.gameState = result.State
	if result.Finished && result.Result != nil {
		m.saveRun(*result.Result)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveRun records a finished run. Debug sessions never persist.
func (m GameModel) saveRun(res core.RunResult) {
	logger := m.opts.Logger
	logger.Info("run finished",
		"game", m.game.ID(),
		"score", res.Score,
		"stage", res.Stage,
		"elapsed", time.Duration(res.ElapsedMs*float64(time.Millisecond)).Round(time.Millisecond),
		"highScore", res.UpdatedHighScore,
	)

	if m.config.Debug || m.opts.Store == nil || res.Score <= 0 {
		return
	}

	run := storage.RunRecord{
		GameID:    m.game.ID(),
		Score:     res.Score,
		Stage:     res.Stage,
		ElapsedMs: int64(res.ElapsedMs),
		Seed:      m.config.Seed,
		Preset:    m.opts.Preset,
		CreatedAt: time.Now(),
	}
	id, err := m.opts.Store.SaveRun(run)
	if err != nil {
		logger.Warn("run not saved", "err", err)
		return
	}
	run.ID = id
	if m.opts.OnRun != nil {
		m.opts.OnRun(run)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".lanedodge", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot not saved", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game on the local terminal.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks pick lanes
	)

	_, err := p.Run()
	return err
}
