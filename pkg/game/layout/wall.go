package layout

import (
	"math"

	"dungeonforge/pkg/engine/world"
)

// WallSegment is a zero-thickness wall lying on one edge of a room or along
// one side of a corridor segment.
type WallSegment struct {
	ID      VisualID
	Dir     world.WallDir
	Rect    world.Rect
	Visible bool
}

// NewWall creates a visible wall segment.
func NewWall(dir world.WallDir, rect world.Rect) *WallSegment {
	return &WallSegment{Dir: dir, Rect: rect, Visible: true}
}

// AlongX reports whether the wall runs along the X axis.
func (w *WallSegment) AlongX() bool {
	return w.Dir.Base.RunsAlongX()
}

// Span returns the wall's extent along its own axis.
func (w *WallSegment) Span() (lo, hi float64) {
	if w.AlongX() {
		return w.Rect.MinX, w.Rect.MaxX
	}
	return w.Rect.MinZ, w.Rect.MaxZ
}

// Length returns the extent along the wall's own axis.
func (w *WallSegment) Length() float64 {
	lo, hi := w.Span()
	return hi - lo
}

// Line returns the perpendicular coordinate the wall sits on.
func (w *WallSegment) Line() float64 {
	if w.AlongX() {
		return w.Rect.MinZ
	}
	return w.Rect.MinX
}

// Piece returns a new wall on the same line restricted to [lo, hi] of the
// wall axis, tagged with side s.
func (w *WallSegment) Piece(lo, hi float64, s world.Side) *WallSegment {
	r := w.Rect
	if w.AlongX() {
		r.MinX, r.MaxX = lo, hi
	} else {
		r.MinZ, r.MaxZ = lo, hi
	}
	return &WallSegment{Dir: w.Dir.WithSide(s), Rect: r, Visible: w.Visible}
}

// Overlap returns the interval of the wall axis that lies inside box. The
// wall line must be strictly inside the box on the perpendicular axis, so a
// wall lying on the box boundary never overlaps it.
func (w *WallSegment) Overlap(box world.Rect) (lo, hi float64, ok bool) {
	wlo, whi := w.Span()
	var blo, bhi, pmin, pmax float64
	if w.AlongX() {
		blo, bhi, pmin, pmax = box.MinX, box.MaxX, box.MinZ, box.MaxZ
	} else {
		blo, bhi, pmin, pmax = box.MinZ, box.MaxZ, box.MinX, box.MaxX
	}
	line := w.Line()
	if line <= pmin || line >= pmax {
		return 0, 0, false
	}
	lo = math.Max(wlo, blo)
	hi = math.Min(whi, bhi)
	if hi-lo <= 0 {
		return 0, 0, false
	}
	return lo, hi, true
}
