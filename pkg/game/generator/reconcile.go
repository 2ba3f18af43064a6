package generator

import (
	"slices"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// ReconcileReport counts what one reconcile pass changed.
type ReconcileReport struct {
	Removed     int
	Trimmed     int
	Cleaned     int
	Regenerated int
}

// Changed reports whether the pass touched any wall.
func (r ReconcileReport) Changed() bool {
	return r.Removed+r.Trimmed+r.Cleaned+r.Regenerated > 0
}

// reconcileWalls removes or trims every wall that cuts across walkable floor,
// drops slivers and gives bare room sides a wall again. Running it twice in a
// row changes nothing the second time.
func (b *builder) reconcileWalls() ReconcileReport {
	var rep ReconcileReport
	segs := b.segments()

	for _, s := range segs {
		for _, r := range b.l.Rooms {
			for _, w := range slices.Clone(r.Walls) {
				pieces, ok := b.cutWall(w, s.Rect)
				if !ok {
					continue
				}
				b.detachRoomWall(r, w)
				for _, p := range pieces {
					b.attachRoomWall(r, p)
				}
				rep.count(pieces)
			}
		}
		for _, o := range segs {
			if o != s {
				b.cutSegmentWalls(o, s.Rect, &rep)
			}
		}
	}

	for _, r := range b.l.Rooms {
		for _, s := range segs {
			b.cutSegmentWalls(s, r.Bounds(), &rep)
		}
	}

	for _, r := range b.l.Rooms {
		for _, w := range slices.Clone(r.Walls) {
			if w.Length() < b.cfg.MinWallSize {
				b.detachRoomWall(r, w)
				rep.Cleaned++
			}
		}
	}
	for _, s := range segs {
		for _, w := range slices.Clone(s.Walls) {
			if w.Length() < b.cfg.MinWallSize {
				b.detachSegmentWall(s, w)
				rep.Cleaned++
			}
		}
	}

	for _, r := range b.l.Rooms {
		for _, d := range world.AllDirections() {
			if r.HasDoor(d) || len(r.WallsFacing(d)) > 0 {
				continue
			}
			pieces := b.regenerateWall(r, d, segs)
			for _, p := range pieces {
				b.attachRoomWall(r, p)
			}
			if len(pieces) > 0 {
				rep.Regenerated++
			}
		}
	}
	return rep
}

func (b *builder) cutSegmentWalls(s *layout.CorridorSegment, box world.Rect, rep *ReconcileReport) {
	for _, w := range slices.Clone(s.Walls) {
		pieces, ok := b.cutWall(w, box)
		if !ok {
			continue
		}
		b.detachSegmentWall(s, w)
		for _, p := range pieces {
			b.attachSegmentWall(s, p)
		}
		rep.count(pieces)
	}
}

// regenerateWall rebuilds side d of r, minus whatever corridors cover. It
// returns nothing when the side would cross another room.
func (b *builder) regenerateWall(r *layout.Room, d world.Direction, segs []*layout.CorridorSegment) []*layout.WallSegment {
	full := r.EdgeWall(d)
	for _, o := range b.l.Rooms {
		if o == r {
			continue
		}
		if _, _, ok := full.Overlap(o.Bounds()); ok {
			return nil
		}
	}

	pieces := []*layout.WallSegment{full}
	for _, s := range segs {
		var next []*layout.WallSegment
		for _, w := range pieces {
			cut, ok := b.cutWall(w, s.Rect)
			if !ok {
				next = append(next, w)
				continue
			}
			next = append(next, cut...)
		}
		pieces = next
	}
	return slices.DeleteFunc(pieces, func(w *layout.WallSegment) bool {
		return w.Length() < b.cfg.MinWallSize
	})
}

// cutWall returns what is left of w outside box. ok is false when box does
// not touch w. A wall mostly covered by box is removed outright.
func (b *builder) cutWall(w *layout.WallSegment, box world.Rect) (pieces []*layout.WallSegment, ok bool) {
	lo, hi, ok := w.Overlap(box)
	if !ok {
		return nil, false
	}
	if hi-lo >= b.cfg.WallTrimRemoveRatio*w.Length() {
		return nil, true
	}
	wlo, whi := w.Span()
	if lo-wlo > b.cfg.MinWallSize {
		pieces = append(pieces, w.Piece(wlo, lo, world.SideLeft))
	}
	if whi-hi > b.cfg.MinWallSize {
		pieces = append(pieces, w.Piece(hi, whi, world.SideRight))
	}
	return pieces, true
}

func (r *ReconcileReport) count(pieces []*layout.WallSegment) {
	if len(pieces) == 0 {
		r.Removed++
		return
	}
	r.Trimmed++
}
