package lanedodge

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '▲'
	ObstacleChar  = '█'
	LaneSepChar   = '┆'
	FieldEdgeChar = '│'
	LifeChar      = '♥'
)

// Minimum terminal size for the play field.
const (
	MinScreenW = 24
	MinScreenH = 12
)

// fieldLayout maps virtual field coordinates onto screen cells.
type fieldLayout struct {
	left, top  int // first cell of the field
	cols, rows int
	laneCells  int
	width      float64 // virtual field size
	height     float64
}

// layoutFor fits the field between the HUD row and the help row, keeping
// it roughly as tall as it is wide in virtual units (cells are ~2:1).
func (g *Game) layoutFor(w, h int) fieldLayout {
	lanes := g.cfg.Field.LaneCount
	rows := h - 2
	maxCols := int(float64(rows) * g.cfg.Field.Width / g.cfg.Field.Height * 2)
	laneCells := (w - 2) / lanes
	laneCells = min(laneCells, max(3, maxCols/lanes))
	laneCells = max(laneCells, 3)

	cols := laneCells * lanes
	return fieldLayout{
		left:      (w - cols) / 2,
		top:       1,
		cols:      cols,
		rows:      rows,
		laneCells: laneCells,
		width:     g.cfg.Field.Width,
		height:    g.cfg.Field.Height,
	}
}

func (l fieldLayout) col(x float64) int {
	return l.left + int(math.Floor(x/l.width*float64(l.cols)))
}

func (l fieldLayout) row(y float64) int {
	return l.top + int(math.Floor(y/l.height*float64(l.rows)))
}

// colEnd and rowEnd map an exclusive right/bottom edge.
func (l fieldLayout) colEnd(x float64) int {
	return l.left + int(math.Ceil(x/l.width*float64(l.cols)))
}

func (l fieldLayout) rowEnd(y float64) int {
	return l.top + int(math.Ceil(y/l.height*float64(l.rows)))
}

// cells converts a box to a clipped cell rectangle. ok is false when the
// box lies entirely outside the field.
func (l fieldLayout) cells(b core.Box) (core.Rect, bool) {
	x0, x1 := l.col(b.Left), l.colEnd(b.Right)
	y0, y1 := l.row(b.Top), l.rowEnd(b.Bottom)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	bottom := l.top + l.rows
	if y1 <= l.top || y0 >= bottom {
		return core.Rect{}, false
	}
	y0 = max(y0, l.top)
	y1 = min(y1, bottom)
	return core.NewRect(x0, y0, x1-x0, y1-y0), true
}

// LaneAtColumn maps a screen column to the lane drawn under it for a screen
// of the given size. Returns -1 outside the field.
func (g *Game) LaneAtColumn(x, screenW, screenH int) int {
	if screenW < MinScreenW || screenH < MinScreenH {
		return -1
	}
	l := g.layoutFor(screenW, screenH)
	return core.LaneAt(x-l.left, l.cols, g.cfg.Field.LaneCount)
}

// Render draws the current screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < MinScreenW || h < MinScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorHUD)
		return
	}

	switch g.state.Screen {
	case ScreenTitle:
		g.renderTitle(dst)
		return
	case ScreenResult:
		g.renderResult(dst)
		return
	}

	l := g.layoutFor(w, h)
	g.renderField(dst, l)
	g.renderHUD(dst, l)

	if g.harness != nil {
		g.renderDebug(dst, l)
	}

	if g.State().Paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) renderField(dst *core.Screen, l fieldLayout) {
	s := g.state

	edge := core.ColorLane
	if s.JustHitFlashMs > 0 {
		edge = core.ColorHit
	}
	dst.DrawVLine(l.left-1, l.top, l.rows, FieldEdgeChar, edge)
	dst.DrawVLine(l.left+l.cols, l.top, l.rows, FieldEdgeChar, edge)
	for i := 1; i < g.cfg.Field.LaneCount; i++ {
		dst.DrawVLine(l.left+i*l.laneCells, l.top, l.rows, LaneSepChar, core.ColorLane)
	}

	// Marks along the player's lane.
	active := l.left + s.PlayerLane*l.laneCells + l.laneCells/2
	for y := l.top; y < l.top+l.rows; y += 2 {
		dst.SetColored(active, y, '·', core.ColorLaneActive)
	}

	for _, o := range s.Obstacles {
		if r, ok := l.cells(g.engine.ObstacleBox(o)); ok {
			dst.DrawRect(r, ObstacleChar, core.ColorObstacle)
		}
	}

	color := core.ColorPlayer
	if s.Invincible && int(s.InvincibleTimerMs/100)%2 == 0 {
		color = core.ColorPlayerHit
	}
	if r, ok := l.cells(g.engine.PlayerBox(s.PlayerLane)); ok {
		dst.DrawRect(r, PlayerChar, color)
	}
}

func (g *Game) renderHUD(dst *core.Screen, l fieldLayout) {
	s := g.state

	hud := fmt.Sprintf("Score %d  Best %d", s.Score, s.HighScore)
	dst.DrawTextColored(max(0, l.left+(l.cols-len(hud))/2), 0, hud, core.ColorHUD)

	// Side panel right of the field.
	side := l.left + l.cols + 3
	dst.DrawTextColored(side, l.top, fmt.Sprintf("Stage %d", g.stage), core.ColorHUD)
	dst.DrawTextColored(side, l.top+1, strings.Repeat(string(LifeChar), max(0, s.Lives)), core.ColorHit)

	help := fmt.Sprintf("←/→ or 1-%d move · P pause · Q quit", g.cfg.Field.LaneCount)
	dst.DrawTextCentered(dst.Height()-1, help, core.ColorLane)
}

func (g *Game) renderDebug(dst *core.Screen, l fieldLayout) {
	h := g.harness
	s := g.state

	if h.ShowHitboxes {
		for _, o := range s.Obstacles {
			if r, ok := l.cells(g.engine.ObstacleBox(o)); ok {
				tintRect(dst, r, core.ColorHitbox)
			}
		}
		if r, ok := l.cells(g.engine.PlayerBox(s.PlayerLane)); ok {
			tintRect(dst, r, core.ColorHitbox)
		}
	}

	if h.ShowTelemetry {
		for i, line := range h.Telemetry(s) {
			dst.DrawTextColored(0, l.top+i, line, core.ColorDebug)
		}
	}
}

func tintRect(dst *core.Screen, r core.Rect, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.Tint(x, y, c)
		}
	}
}

func (g *Game) renderTitle(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-4, "L A N E   D O D G E", core.ColorTitle)
	dst.DrawTextCentered(mid-2, fmt.Sprintf("High score: %d", g.state.HighScore), core.ColorHUD)
	if g.preset != "" {
		dst.DrawTextCentered(mid-1, fmt.Sprintf("Difficulty: %s", g.preset), core.ColorLane)
	}
	dst.DrawTextCentered(mid+1, "Press Enter or click to start", core.ColorDefault)
	dst.DrawTextCentered(mid+3, "Dodge the falling blocks. Each one that passes scores a point.", core.ColorLane)
	if g.harness != nil {
		dst.DrawTextCentered(mid+5, "DEBUG MODE · high score is not saved", core.ColorDebug)
	}
}

func (g *Game) renderResult(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-4, "GAME OVER", core.ColorHit)
	dst.DrawTextCentered(mid-2, fmt.Sprintf("Score: %d", g.state.LastScore), core.ColorHUD)
	dst.DrawTextCentered(mid-1, fmt.Sprintf("High score: %d", g.state.HighScore), core.ColorHUD)
	if g.result != nil && g.result.UpdatedHighScore {
		dst.DrawTextCentered(mid+1, "NEW HIGH SCORE!", core.ColorTitle)
	}
	dst.DrawTextCentered(mid+3, "R restart · Enter title · Q quit", core.ColorDefault)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorHUD)
	dst.DrawTextCentered(box.Y+1, title, core.ColorTitle)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}
