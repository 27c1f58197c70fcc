package emojiart

import "math"

// Vec2 is a 2D vector used for points, offsets and translations in both
// document space and screen space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Div returns v divided by s. Division by zero returns the zero vector.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Vec2{}
	}
	return Vec2{v.X / s, v.Y / s}
}

// Size is a width/height pair for viewports and images.
type Size struct {
	Width, Height float64
}

// Half returns the center point of a rectangle of this size anchored at the origin.
func (s Size) Half() Vec2 { return Vec2{s.Width / 2, s.Height / 2} }

// Degenerate reports whether either dimension is zero, negative or not finite.
func (s Size) Degenerate() bool {
	return !(s.Width > 0) || !(s.Height > 0) ||
		math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// squareAround returns a side x side square centered on c.
func squareAround(c Vec2, side float64) Rect {
	return Rect{X: c.X - side/2, Y: c.Y - side/2, Width: side, Height: side}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}


// Phase identifies where a continuous gesture is in its lifecycle.
type Phase uint8

const (
	PhaseChanged   Phase = iota // gesture in progress, value is a live preview
	PhaseEnded                  // gesture finished, final value is committed
	PhaseCancelled              // gesture aborted, preview is discarded
)

func (p Phase) String() string {
	switch p {
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

const (
	// DefaultEmojiSize is the size given to emoji dropped onto the canvas.
	DefaultEmojiSize = 40
	// MinZoomScale is the smallest committed steady-state zoom.
	MinZoomScale = 0.01
	// minItemSize is the smallest size a scale operation can leave behind.
	minItemSize = 1
)

// validFactor reports whether f is usable as a scale factor.
func validFactor(f float64) bool {
	return f > 0 && finite(f)
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// clampInt32 truncates v toward zero and clamps it to the int32 range.
func clampInt32(v float64) int {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}
