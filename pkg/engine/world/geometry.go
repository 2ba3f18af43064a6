package world

import (
	"fmt"
	"math"
)

// Point is a position on the ground plane.
type Point struct {
	X float64
	Z float64
}

// Pt is shorthand for Point{X: x, Z: z}.
func Pt(x, z float64) Point {
	return Point{X: x, Z: z}
}

// Add returns p offset by (dx, dz).
func (p Point) Add(dx, dz float64) Point {
	return Point{X: p.X + dx, Z: p.Z + dz}
}

// Step returns p moved dist units in direction d.
func (p Point) Step(d Direction, dist float64) Point {
	dx, dz := d.Delta()
	return p.Add(dx*dist, dz*dist)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Z-q.Z)
}

// Manhattan returns the L1 distance between p and q.
func (p Point) Manhattan(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Z-q.Z)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Z)
}

// Rect is an axis-aligned rectangle on the ground plane. A rect with zero
// extent on one axis is a line, which is how walls are represented.
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// RectAround builds the rect of the given width (X) and depth (Z) centered on c.
func RectAround(c Point, width, depth float64) Rect {
	return Rect{
		MinX: c.X - width/2,
		MinZ: c.Z - depth/2,
		MaxX: c.X + width/2,
		MaxZ: c.Z + depth/2,
	}
}

// RectFromPoints builds the smallest rect containing a and b.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		MinX: math.Min(a.X, b.X),
		MinZ: math.Min(a.Z, b.Z),
		MaxX: math.Max(a.X, b.X),
		MaxZ: math.Max(a.Z, b.Z),
	}
}

// Width returns the extent along X.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Depth returns the extent along Z.
func (r Rect) Depth() float64 { return r.MaxZ - r.MinZ }

// Area returns Width*Depth.
func (r Rect) Area() float64 { return r.Width() * r.Depth() }

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Z: (r.MinZ + r.MaxZ) / 2}
}

// Intersects reports whether r and o share any point, boundaries included.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && r.MaxX >= o.MinX &&
		r.MinZ <= o.MaxZ && r.MaxZ >= o.MinZ
}

// Epsilon absorbs rounding when rects are moved and resized.
const Epsilon = 1e-9

// Overlaps reports whether r and o share a region of positive area. Rects
// that merely touch, within Epsilon, do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX-Epsilon && r.MaxX > o.MinX+Epsilon &&
		r.MinZ < o.MaxZ-Epsilon && r.MaxZ > o.MinZ+Epsilon
}

// Contains reports whether o lies entirely inside r, boundaries included,
// within Epsilon.
func (r Rect) Contains(o Rect) bool {
	return o.MinX >= r.MinX-Epsilon && o.MaxX <= r.MaxX+Epsilon &&
		o.MinZ >= r.MinZ-Epsilon && o.MaxZ <= r.MaxZ+Epsilon
}

// ContainsPoint reports whether p lies inside r, boundaries included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

// Intersection returns the shared region of r and o. ok is false when they
// do not intersect.
func (r Rect) Intersection(o Rect) (out Rect, ok bool) {
	if !r.Intersects(o) {
		return Rect{}, false
	}
	return Rect{
		MinX: math.Max(r.MinX, o.MinX),
		MinZ: math.Max(r.MinZ, o.MinZ),
		MaxX: math.Min(r.MaxX, o.MaxX),
		MaxZ: math.Min(r.MaxZ, o.MaxZ),
	}, true
}

// OverlapArea returns the area shared by r and o.
func (r Rect) OverlapArea(o Rect) float64 {
	in, ok := r.Intersection(o)
	if !ok {
		return 0
	}
	return in.Area()
}

// OverlapX returns the length of the shared X interval, or a negative gap.
func (r Rect) OverlapX(o Rect) float64 {
	return math.Min(r.MaxX, o.MaxX) - math.Max(r.MinX, o.MinX)
}

// OverlapZ returns the length of the shared Z interval, or a negative gap.
func (r Rect) OverlapZ(o Rect) float64 {
	return math.Min(r.MaxZ, o.MaxZ) - math.Max(r.MinZ, o.MinZ)
}

// Union returns the smallest rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinZ: math.Min(r.MinZ, o.MinZ),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxZ: math.Max(r.MaxZ, o.MaxZ),
	}
}

// Expand grows r by m on every side. Negative m shrinks it.
func (r Rect) Expand(m float64) Rect {
	return Rect{MinX: r.MinX - m, MinZ: r.MinZ - m, MaxX: r.MaxX + m, MaxZ: r.MaxZ + m}
}

// Edge returns the zero-thickness line along the side of r facing d.
func (r Rect) Edge(d Direction) Rect {
	switch d {
	case North:
		return Rect{MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MinZ}
	case South:
		return Rect{MinX: r.MinX, MinZ: r.MaxZ, MaxX: r.MaxX, MaxZ: r.MaxZ}
	case East:
		return Rect{MinX: r.MaxX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ}
	case West:
		return Rect{MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MinX, MaxZ: r.MaxZ}
	}
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("[%.2f,%.2f .. %.2f,%.2f]", r.MinX, r.MinZ, r.MaxX, r.MaxZ)
}
