package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Presets offered by the launcher, in display order. The empty preset plays
// the configuration as loaded.
var Presets = []string{"", "easy", "normal", "hard", "fixed"}

// MenuItem is one launcher entry.
type MenuItem int

const (
	MenuPlay MenuItem = iota
	MenuDifficulty
	MenuScoreboard
	MenuQuit
)

var menuItems = []MenuItem{MenuPlay, MenuDifficulty, MenuScoreboard, MenuQuit}

// menuKeys is the launcher help shown at the bottom.
type menuKeys struct {
	Move   key.Binding
	Change key.Binding
	Select key.Binding
	Quit   key.Binding
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Change, k.Select, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultMenuKeys = menuKeys{
	Move:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("up/down", "navigate")),
	Change: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("left/right", "difficulty")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// MenuModel is the Bubble Tea model for the launcher menu.
type MenuModel struct {
	title     string
	cursor    int
	preset    int // index into Presets
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	quitting  bool
	selected  *MenuItem

	// exitOnSelect makes a selection end the program (local launcher loop).
	exitOnSelect bool
}

// NewMenuModel creates a launcher for the game titled title.
func NewMenuModel(title string, cfg core.RuntimeConfig, preset string) MenuModel {
	m := MenuModel{
		title:     title,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	for i, p := range Presets {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if menuItems[m.cursor] == MenuDifficulty {
			m.preset = (m.preset + len(Presets) - 1) % len(Presets)
		}

	case MenuActionRight:
		if menuItems[m.cursor] == MenuDifficulty {
			m.preset = (m.preset + 1) % len(Presets)
		}

	case MenuActionSelect:
		item := menuItems[m.cursor]
		switch item {
		case MenuDifficulty:
			m.preset = (m.preset + 1) % len(Presets)
			return m, nil
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &item
		if m.exitOnSelect {
			return m, tea.Quit
		}
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(spaced(m.title)), m.width))
	b.WriteString("\n\n\n")

	for i, item := range menuItems {
		label := m.label(item)
		if i == m.cursor {
			b.WriteString(centerText(menuActiveStyle.Render("> "+label+" <"), m.width))
		} else {
			b.WriteString(centerText("  "+label+"  ", m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render(m.help.View(defaultMenuKeys)), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) label(item MenuItem) string {
	switch item {
	case MenuPlay:
		return "Play"
	case MenuDifficulty:
		return fmt.Sprintf("Difficulty: %s", presetName(Presets[m.preset]))
	case MenuScoreboard:
		return "High Scores"
	default:
		return "Quit"
	}
}

func presetName(p string) string {
	if p == "" {
		return "config"
	}
	return p
}

// spaced renders "Lane Dodge" as "L A N E   D O D G E".
func spaced(title string) string {
	words := strings.Fields(strings.ToUpper(title))
	for i, w := range words {
		words[i] = strings.Join(strings.Split(w, ""), " ")
	}
	return strings.Join(words, "   ")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Preset returns the chosen difficulty preset.
func (m MenuModel) Preset() string {
	return Presets[m.preset]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Item   MenuItem
	Preset string
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the launcher and returns the selection result.
func RunMenu(title string, cfg core.RuntimeConfig, preset string) (MenuResult, error) {
	model := NewMenuModel(title, cfg, preset)
	model.exitOnSelect = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Quit: true}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Config: cfg, Preset: preset, Quit: true}, nil
	}

	return MenuResult{
		Item:   *m.Selected(),
		Preset: m.Preset(),
		Config: m.Config(),
	}, nil
}
