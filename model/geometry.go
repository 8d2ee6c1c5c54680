package model

import "math"

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect represents a rectangle as (x0,y0)-(x1,y1) corner coordinates.
// Y grows downward, so Y0 is the top edge and Y1 the bottom edge.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// NewRect creates a canonical rectangle from two opposite corners.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// RectFromPoints creates a canonical rectangle spanning two points.
func RectFromPoints(p1, p2 Point) Rect {
	return NewRect(p1.X, p1.Y, p2.X, p2.Y)
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{
		X: (r.X0 + r.X1) / 2,
		Y: (r.Y0 + r.Y1) / 2,
	}
}

// Contains reports whether the point lies inside the rectangle (edges
// inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 &&
		p.Y >= r.Y0 && p.Y <= r.Y1
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 || other.X1 < r.X0 ||
		r.Y1 < other.Y0 || other.Y1 < r.Y0)
}

// Union returns the smallest rectangle covering both.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Expand grows the rectangle by a margin on all sides.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X0: r.X0 - margin,
		Y0: r.Y0 - margin,
		X1: r.X1 + margin,
		Y1: r.Y1 + margin,
	}
}

// IsValid reports whether the rectangle has positive area.
func (r Rect) IsValid() bool {
	return r.X1 > r.X0 && r.Y1 > r.Y0
}

// IsEmpty reports whether the rectangle is the zero value or degenerate.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}
