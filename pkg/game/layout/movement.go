package layout

import (
	"dungeonforge/pkg/engine/world"
)

// Walkable reports whether p lies on a room or corridor floor.
func (l *Layout) Walkable(p world.Point) bool {
	return l.RoomAt(p) != nil || l.CorridorAt(p) != nil
}

// Move returns where a body at from ends up when it tries to step to to.
// Each axis is tried on its own so the body slides along walls instead of
// sticking to them.
func (l *Layout) Move(from, to world.Point) world.Point {
	p := from
	if x := world.Pt(to.X, p.Z); !l.Blocked(p, x) {
		p = x
	}
	if z := world.Pt(p.X, to.Z); !l.Blocked(p, z) {
		p = z
	}
	return p
}

// Blocked reports whether the straight step from a to b leaves walkable floor
// or crosses a wall.
func (l *Layout) Blocked(a, b world.Point) bool {
	if !l.Walkable(b) {
		return true
	}
	for _, r := range l.Rooms {
		for _, w := range r.Walls {
			if crosses(w, a, b) {
				return true
			}
		}
	}
	for _, c := range l.Corridors {
		for _, s := range c.Segments {
			for _, w := range s.Walls {
				if crosses(w, a, b) {
					return true
				}
			}
		}
	}
	return false
}

// crosses reports whether an axis-aligned step from a to b passes through w.
// Steps along the wall's own line never cross it.
func crosses(w *WallSegment, a, b world.Point) bool {
	lo, hi := w.Span()
	line := w.Line()
	var pa, pb, along float64
	if w.AlongX() {
		pa, pb, along = a.Z, b.Z, a.X
	} else {
		pa, pb, along = a.X, b.X, a.Z
	}
	if along < lo || along > hi {
		return false
	}
	return (pa < line && pb >= line) || (pa > line && pb <= line)
}
