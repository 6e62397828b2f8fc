// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Box is an axis-aligned bounding box in virtual (floating point) coordinates.
// The simulation tests collisions with Box; Rect is its cell-grid counterpart.
type Box struct {
	Left, Top     float64
	Right, Bottom float64
}

// CenteredBox builds a box horizontally centered on cx with the given top edge.
func CenteredBox(cx, top, w, h float64) Box {
	return Box{
		Left:   cx - w*0.5,
		Right:  cx + w*0.5,
		Top:    top,
		Bottom: top + h,
	}
}

// Overlaps returns true if the two boxes share interior area.
// Edges that only touch do not count.
func (b Box) Overlaps(other Box) bool {
	return b.Left < other.Right && b.Right > other.Left &&
		b.Top < other.Bottom && b.Bottom > other.Top
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// Rect represents a rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
