// Package core provides fundamental types and utilities for the flappy
// simulation. It contains no terminal dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

// Rect is an integer rectangle in screen cells. Y grows downward.
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

// Box is an axis-aligned bounding box in world units.
// World Y grows upward; (X, Y) is the bottom-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box from its bottom-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// BoxAround creates a box of the given size centred on (cx, cy).
func BoxAround(cx, cy, w, h float64) Box {
	return Box{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.X }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the lower edge.
func (b Box) Bottom() float64 { return b.Y }

// Top returns the y-coordinate of the upper edge.
func (b Box) Top() float64 { return b.Y + b.H }

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Intersects reports whether two boxes overlap. Touching edges count as
// contact, so an actor resting exactly on the ground still intersects it.
// Empty boxes never intersect anything.
func (b Box) Intersects(other Box) bool {
	if b.Empty() || other.Empty() {
		return false
	}
	if b.X > other.Right() || other.X > b.Right() {
		return false
	}
	if b.Y > other.Top() || other.Y > b.Top() {
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
