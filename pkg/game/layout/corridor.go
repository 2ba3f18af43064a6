package layout

import (
	"math"

	"dungeonforge/pkg/engine/world"
)

// Orientation is the travel axis of a corridor segment.
type Orientation int

const (
	Horizontal Orientation = iota // travels along X
	Vertical                      // travels along Z
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// CorridorSegment is one straight, axis-aligned stretch of corridor floor with
// a wall on each long side.
type CorridorSegment struct {
	Orientation Orientation
	Rect        world.Rect
	Walls       []*WallSegment
	Floor       VisualID
}

// NewSegment builds a segment travelling from lo to hi on its axis, centered
// on line, width units wide. Both side walls span the full length.
func NewSegment(o Orientation, lo, hi, line, width float64) *CorridorSegment {
	if hi < lo {
		lo, hi = hi, lo
	}
	s := &CorridorSegment{Orientation: o}
	if o == Horizontal {
		s.Rect = world.Rect{MinX: lo, MaxX: hi, MinZ: line - width/2, MaxZ: line + width/2}
		s.Walls = []*WallSegment{
			NewWall(world.BaseWall(world.North), s.Rect.Edge(world.North)),
			NewWall(world.BaseWall(world.South), s.Rect.Edge(world.South)),
		}
	} else {
		s.Rect = world.Rect{MinX: line - width/2, MaxX: line + width/2, MinZ: lo, MaxZ: hi}
		s.Walls = []*WallSegment{
			NewWall(world.BaseWall(world.West), s.Rect.Edge(world.West)),
			NewWall(world.BaseWall(world.East), s.Rect.Edge(world.East)),
		}
	}
	return s
}

// Span returns the segment's extent along its travel axis.
func (s *CorridorSegment) Span() (lo, hi float64) {
	if s.Orientation == Horizontal {
		return s.Rect.MinX, s.Rect.MaxX
	}
	return s.Rect.MinZ, s.Rect.MaxZ
}

// Length returns the extent along the travel axis.
func (s *CorridorSegment) Length() float64 {
	lo, hi := s.Span()
	return hi - lo
}

// Line returns the centerline coordinate on the perpendicular axis.
func (s *CorridorSegment) Line() float64 {
	c := s.Rect.Center()
	if s.Orientation == Horizontal {
		return c.Z
	}
	return c.X
}

// Width returns the corridor width.
func (s *CorridorSegment) Width() float64 {
	if s.Orientation == Horizontal {
		return s.Rect.Depth()
	}
	return s.Rect.Width()
}

// Collinear reports whether o continues s on the same centerline.
func (s *CorridorSegment) Collinear(o *CorridorSegment) bool {
	return s.Orientation == o.Orientation && math.Abs(s.Line()-o.Line()) < 1e-6
}

// RemoveWall detaches w. It reports whether w belonged to the segment.
func (s *CorridorSegment) RemoveWall(w *WallSegment) bool {
	var ok bool
	s.Walls, ok = removeWall(s.Walls, w)
	return ok
}

// Corridor joins two rooms through one or more segments.
type Corridor struct {
	ID       int
	From     int
	To       int
	Segments []*CorridorSegment

	// Start and End are the door anchors on the From and To rooms.
	Start world.Point
	End   world.Point

	// Branches are secondary door points where the corridor meets a third room.
	Branches []world.Point
}

// Bounds returns the union of every segment footprint.
func (c *Corridor) Bounds() world.Rect {
	if len(c.Segments) == 0 {
		return world.RectFromPoints(c.Start, c.End)
	}
	b := c.Segments[0].Rect
	for _, s := range c.Segments[1:] {
		b = b.Union(s.Rect)
	}
	return b
}

// Contains reports whether p lies on any segment floor.
func (c *Corridor) Contains(p world.Point) bool {
	for _, s := range c.Segments {
		if s.Rect.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// Endpoints returns the anchors and branch points where doors may open onto
// this corridor.
func (c *Corridor) Endpoints() []world.Point {
	out := make([]world.Point, 0, 2+len(c.Branches))
	out = append(out, c.Start, c.End)
	return append(out, c.Branches...)
}
