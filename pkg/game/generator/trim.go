package generator

import (
	"github.com/zyedidia/generic/mapset"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

const maxTrimPasses = 8

// trimOverlaps pushes overlapping rooms apart. Each overlapping axis is split
// in half: the room nearer the origin of that axis shifts away by one half
// and the other gives up the other half from its near edge. Shifts can cause
// new overlaps, so passes repeat; a final shrink-only pass settles anything
// left. Touched rooms get their geometry rebuilt from scratch.
func (b *builder) trimOverlaps() {
	touched := mapset.New[*layout.Room]()

	for pass := 0; pass < maxTrimPasses; pass++ {
		moved := false
		b.eachOverlap(func(p, q *layout.Room) {
			separate(p, q)
			touched.Put(p)
			touched.Put(q)
			moved = true
		})
		if !moved {
			break
		}
	}

	b.eachOverlap(func(p, q *layout.Room) {
		b.log.Debug("overlap left after trim passes, shrinking", "a", p.ID, "b", q.ID)
		shrinkApart(p, q)
		touched.Put(p)
		touched.Put(q)
	})

	for _, r := range b.l.Rooms {
		if touched.Has(r) {
			b.rebuildRoom(r)
		}
	}
	if touched.Size() > 0 {
		b.updateLargest()
		b.log.Debug("overlapping rooms trimmed", "rooms", touched.Size())
	}
}

func (b *builder) eachOverlap(fn func(p, q *layout.Room)) {
	for i, p := range b.l.Rooms {
		for _, q := range b.l.Rooms[i+1:] {
			if p.Bounds().Overlaps(q.Bounds()) {
				fn(p, q)
			}
		}
	}
}

// rebuildRoom regenerates walls, floor and ceiling of r from its extents.
func (b *builder) rebuildRoom(r *layout.Room) {
	b.scene.removeRoom(r)
	r.Walls = r.FullWalls()
	b.scene.addRoom(r)
}

// separate resolves the overlap of p and q on both axes. After it returns
// the two rooms touch, but do not overlap, on each axis they overlapped on.
func separate(p, q *layout.Room) {
	pb, qb := p.Bounds(), q.Bounds()
	if pb.OverlapX(qb) > 0 {
		lo, hi := p, q
		if q.Center.X < p.Center.X || (q.Center.X == p.Center.X && q.ID < p.ID) {
			lo, hi = q, p
		}
		pen := lo.Bounds().MaxX - hi.Bounds().MinX
		shrink := min(pen/2, hi.Width/2)
		lo.Center.X -= pen - shrink
		hi.Width -= shrink
		hi.Center.X += shrink / 2
	}
	if pb.OverlapZ(qb) > 0 {
		lo, hi := p, q
		if q.Center.Z < p.Center.Z || (q.Center.Z == p.Center.Z && q.ID < p.ID) {
			lo, hi = q, p
		}
		pen := lo.Bounds().MaxZ - hi.Bounds().MinZ
		shrink := min(pen/2, hi.Depth/2)
		lo.Center.Z -= pen - shrink
		hi.Depth -= shrink
		hi.Center.Z += shrink / 2
	}
}

// shrinkApart cuts the less important of p and q down to the largest part
// of it lying outside the other. Only shrinking happens, so no other pair can
// start overlapping.
func shrinkApart(p, q *layout.Room) {
	keep, cut := p, q
	if importance(q) > importance(p) {
		keep, cut = q, p
	}
	if rest, ok := largestRemainder(cut.Bounds(), keep.Bounds()); ok {
		setBounds(cut, rest)
		return
	}
	if rest, ok := largestRemainder(keep.Bounds(), cut.Bounds()); ok {
		setBounds(keep, rest)
		return
	}
	// identical footprints: split down the middle
	r := keep.Bounds()
	mid := r.Center().X
	setBounds(keep, world.Rect{MinX: r.MinX, MinZ: r.MinZ, MaxX: mid, MaxZ: r.MaxZ})
	setBounds(cut, world.Rect{MinX: mid, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ})
}

// largestRemainder returns the biggest of the four slabs of r that lie
// outside other.
func largestRemainder(r, other world.Rect) (world.Rect, bool) {
	slabs := []world.Rect{
		{MinX: r.MinX, MinZ: r.MinZ, MaxX: min(r.MaxX, other.MinX), MaxZ: r.MaxZ},
		{MinX: max(r.MinX, other.MaxX), MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ},
		{MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: min(r.MaxZ, other.MinZ)},
		{MinX: r.MinX, MinZ: max(r.MinZ, other.MaxZ), MaxX: r.MaxX, MaxZ: r.MaxZ},
	}
	best, found := world.Rect{}, false
	for _, s := range slabs {
		if s.Width() <= 0 || s.Depth() <= 0 {
			continue
		}
		if !found || s.Area() > best.Area() {
			best, found = s, true
		}
	}
	return best, found
}

func setBounds(r *layout.Room, rect world.Rect) {
	r.Center = rect.Center()
	r.Width = rect.Width()
	r.Depth = rect.Depth()
}

func importance(r *layout.Room) int {
	switch r.Type {
	case layout.RoomStart:
		return 4
	case layout.RoomBoss:
		return 3
	case layout.RoomShop:
		return 2
	case layout.RoomSecret:
		return 1
	default:
		return 0
	}
}
