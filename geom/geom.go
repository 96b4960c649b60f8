// Package geom provides the device-independent pixel geometry shared by
// layout, text measurement and display-list building.
package geom

import "math"

// Point is a position in layout pixels.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Size is a width and height in layout pixels.
type Size struct {
	Width, Height float32
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h float32) Size { return Size{Width: w, Height: h} }

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	Origin Point
	Size   Size
}

// R returns the rectangle with origin (x, y) and size w×h.
func R(x, y, w, h float32) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// FromSize returns the rectangle at the origin with the given size.
func FromSize(s Size) Rect { return Rect{Size: s} }

// MinX returns the left edge.
func (r Rect) MinX() float32 { return r.Origin.X }

// MinY returns the top edge.
func (r Rect) MinY() float32 { return r.Origin.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float32 { return r.Origin.Y + r.Size.Height }

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Point {
	return Point{X: r.Origin.X, Y: r.MaxY()}
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.Origin.X + r.Size.Width/2, Y: r.Origin.Y + r.Size.Height/2}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

// Intersect returns the overlap of r and o and whether they overlap.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	x0 := max(r.MinX(), o.MinX())
	y0 := max(r.MinY(), o.MinY())
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return R(x0, y0, x1-x0, y1-y0), true
}

// Contains reports whether p lies inside r. The max edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// SideOffsets holds one value per box edge.
type SideOffsets struct {
	Top, Right, Bottom, Left float32
}

// Uniform returns offsets with v on every side.
func Uniform(v float32) SideOffsets {
	return SideOffsets{Top: v, Right: v, Bottom: v, Left: v}
}

// IsZero reports whether every side is zero.
func (s SideOffsets) IsZero() bool {
	return s == SideOffsets{}
}

// Round rounds v to the nearest whole pixel.
func Round(v float32) float32 {
	return float32(math.Round(float64(v)))
}
