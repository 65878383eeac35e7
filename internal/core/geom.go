// Package core provides fundamental types and utilities shared by the simulation
// and the terminal platform. It has no external dependencies (especially no
// Bubble Tea) so the game logic stays pure and testable.
package core

import "math"

// Epsilon is the tolerance used for resting-contact and edge comparisons in world units.
const Epsilon = 1e-6

// Vec is a position or velocity in world units. Y grows downward.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Size is the width and height of a bounding box.
type Size struct {
	W, H float64
}

// Box is an axis-aligned bounding box in world units.
type Box struct {
	Pos  Vec
	Size Size
}

// NewBox creates a box from its top-left corner and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{Pos: Vec{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.Pos.X }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Pos.Y }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.Pos.X + b.Size.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Pos.Y + b.Size.H }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.Pos.X + b.Size.W/2 }

// Overlaps reports whether two boxes intersect.
// Boxes that only share an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	if b.Left() >= o.Right()-Epsilon || o.Left() >= b.Right()-Epsilon {
		return false
	}
	if b.Top() >= o.Bottom()-Epsilon || o.Top() >= b.Bottom()-Epsilon {
		return false
	}
	return true
}

// OverlapsX reports whether the horizontal extents of two boxes intersect.
func (b Box) OverlapsX(o Box) bool {
	return b.Left() < o.Right()-Epsilon && o.Left() < b.Right()-Epsilon
}

// Translate returns the box moved by d.
func (b Box) Translate(d Vec) Box {
	b.Pos = b.Pos.Add(d)
	return b
}

// Cell returns the integer screen cell of the box's top-left corner.
func (b Box) Cell() (int, int) {
	return int(math.Floor(b.Pos.X + Epsilon)), int(math.Floor(b.Pos.Y + Epsilon))
}

// Rect is an integer rectangle in screen cells, used for drawing.
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

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
