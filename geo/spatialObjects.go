// Package geo implements the axis-aligned rectangle and point value
// types shared by the spatial index, plus the pure geometric helpers
// built on top of them.
package geo

import "math"

// Point is a location in the plane.
type Point struct {
	X float64
	Y float64
}

// Rectangle is an axis-aligned bounding rectangle.
// minX <= maxX and minY <= maxY, except for the Empty() sentinel.
type Rectangle struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Empty returns the bounds sentinel: Add()ing any rectangle into it
// yields that rectangle unchanged.
func Empty() Rectangle {
	return Rectangle{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether r is the Empty() sentinel (or equivalent).
func (r Rectangle) IsEmpty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// New builds a rectangle from two corner points, ordering the corners
// so the min/max invariant always holds.
func New(minX, minY, maxX, maxY float64) Rectangle {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rectangle{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// FromPoint returns the zero-area rectangle at p.
func FromPoint(p Point) Rectangle {
	return Rectangle{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// Equals is coordinate equality; it does not imply object identity.
func (r Rectangle) Equals(s Rectangle) bool {
	return r.MinX == s.MinX && r.MinY == s.MinY &&
		r.MaxX == s.MaxX && r.MaxY == s.MaxY
}

// Intersects reports whether r and s share at least one point.
// Rectangles that merely touch at an edge count as intersecting.
func Intersects(r, s Rectangle) bool {
	return r.MaxX >= s.MinX && r.MinX <= s.MaxX &&
		r.MaxY >= s.MinY && r.MinY <= s.MaxY
}

// Contains reports whether r fully contains s.
func Contains(r, s Rectangle) bool {
	return r.MaxX >= s.MaxX && r.MinX <= s.MinX &&
		r.MaxY >= s.MaxY && r.MinY <= s.MinY
}

// ContainsPoint reports whether r contains p.
func (r Rectangle) ContainsPoint(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Area returns the rectangle's area.
func (r Rectangle) Area() float64 {
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}

// Margin returns the rectangle's perimeter (2 * (width + height)).
func (r Rectangle) Margin() float64 {
	return 2 * ((r.MaxX - r.MinX) + (r.MaxY - r.MinY))
}

// Center returns the rectangle's center point.
func (r Rectangle) Center() Point {
	return Point{X: r.MinX + (r.MaxX-r.MinX)/2, Y: r.MinY + (r.MaxY-r.MinY)/2}
}

// Union returns the smallest rectangle containing both r and s.
func Union(r, s Rectangle) Rectangle {
	return Rectangle{
		MinX: math.Min(r.MinX, s.MinX),
		MinY: math.Min(r.MinY, s.MinY),
		MaxX: math.Max(r.MaxX, s.MaxX),
		MaxY: math.Max(r.MaxY, s.MaxY),
	}
}

// Add mutates *r in place to be the union of r and s, the way a
// node folds its MBR over its live entries.
func (r *Rectangle) Add(s Rectangle) {
	*r = Union(*r, s)
}

// Enlargement returns how much r's area would grow to absorb s:
// Area(Union(r, s)) - Area(r). Guards against infinities: a rectangle
// with infinite area enlarges by zero, and enlarging into an infinite
// union costs infinity.
func Enlargement(r, s Rectangle) float64 {
	if math.IsInf(r.Area(), 1) {
		return 0
	}
	u := Union(r, s)
	ua := u.Area()
	if math.IsInf(ua, 1) {
		return math.Inf(1)
	}
	return ua - r.Area()
}

// OverlapArea returns the area shared between r and s, zero if they
// don't intersect.
func OverlapArea(r, s Rectangle) float64 {
	if !Intersects(r, s) {
		return 0
	}
	left := math.Max(r.MinX, s.MinX)
	right := math.Min(r.MaxX, s.MaxX)
	bottom := math.Max(r.MinY, s.MinY)
	top := math.Min(r.MaxY, s.MaxY)
	return (right - left) * (top - bottom)
}

// DistanceSq returns the squared distance from r to p: zero if r
// contains p, otherwise the squared distance to the nearest point on
// r's boundary.
func DistanceSq(r Rectangle, p Point) float64 {
	dx := math.Max(0, math.Max(r.MinX-p.X, p.X-r.MaxX))
	dy := math.Max(0, math.Max(r.MinY-p.Y, p.Y-r.MaxY))
	return dx*dx + dy*dy
}

// Distance returns the (non-squared) distance from r to p.
func Distance(r Rectangle, p Point) float64 {
	return math.Sqrt(DistanceSq(r, p))
}
