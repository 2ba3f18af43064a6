package generator

import (
	"math"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// maxDoorShare caps a door at this fraction of its wall.
const maxDoorShare = 0.6

// splitWall cuts a door gap into w. The gap is doorWidth wide, or 60% of the
// wall when the wall is short, centered on anchor as far as the wall allows.
// Stubs run from each wall end to the gap; stubs no longer than minStub are
// dropped.
func splitWall(w *layout.WallSegment, doorWidth, anchor, minStub float64) (stubs []*layout.WallSegment, center, gap float64) {
	lo, hi := w.Span()
	length := hi - lo
	gap = math.Min(doorWidth, length*maxDoorShare)
	mid := (lo + hi) / 2
	slack := (length - gap) / 2
	center = mid + clamp(anchor-mid, -slack, slack)

	if left := center - gap/2 - lo; left > minStub {
		stubs = append(stubs, w.Piece(lo, center-gap/2, world.SideLeft))
	}
	if right := hi - (center + gap/2); right > minStub {
		stubs = append(stubs, w.Piece(center+gap/2, hi, world.SideRight))
	}
	return stubs, center, gap
}

// openDoor carves a door into side d of r as close to anchor as the wall
// allows. It returns the existing door and false when the side is taken.
func (b *builder) openDoor(r *layout.Room, d world.Direction, anchor world.Point) (*layout.Door, bool) {
	if door, ok := r.Doors[d]; ok {
		return door, false
	}

	base := r.BaseWall(d)
	if base == nil {
		for _, w := range r.WallsFacing(d) {
			b.detachRoomWall(r, w)
		}
		base = r.EdgeWall(d)
		b.log.Debug("synthesized wall for door", "room", r.ID, "dir", d)
	} else {
		b.detachRoomWall(r, base)
	}

	stubs, center, gap := splitWall(base, b.cfg.DoorWidth(), alongOf(anchor, d), b.cfg.MinWallSize)
	for _, s := range stubs {
		b.attachRoomWall(r, s)
	}

	door := &layout.Door{Dir: d, Pos: edgePoint(r, d, center), Width: gap}
	r.Doors[d] = door
	b.scene.addDoor(r, door)
	b.l.Doors.Add(door.Pos)
	return door, true
}

// closeDoor removes the door on side d of r and restores a solid wall. The
// link through the door stops counting for reachability, and is dropped once
// none of its doors remain.
func (b *builder) closeDoor(r *layout.Room, d world.Direction) {
	door, ok := r.Doors[d]
	if !ok {
		return
	}
	link := b.l.LinkForDoor(r.ID, d)
	b.scene.removeDoor(door)
	delete(r.Doors, d)
	b.l.Doors.Remove(door.Pos, layout.DefaultDoorTolerance)
	for _, w := range r.WallsFacing(d) {
		b.detachRoomWall(r, w)
	}
	b.attachRoomWall(r, r.EdgeWall(d))

	if link != nil && !b.anyDoorOpen(link) {
		b.l.RemoveLink(link)
		b.log.Debug("link dropped", "kind", link.Kind, "a", link.A.Room, "b", link.B.Room)
	}
}

// anyDoorOpen reports whether a door the link runs through is still open.
func (b *builder) anyDoorOpen(link *layout.Link) bool {
	for _, e := range []layout.LinkEnd{link.A, link.B} {
		if r := b.l.Room(e.Room); e.Door && r != nil && r.HasDoor(e.Dir) {
			return true
		}
	}
	return false
}

// connectWithDoor links two touching rooms through a pair of facing doors
// aligned on the middle of their shared wall span.
func (b *builder) connectWithDoor(a, c *layout.Room, dir world.Direction) bool {
	back := dir.Opposite()
	if a.HasDoor(dir) || c.HasDoor(back) || !b.l.CanOpen(a) || !b.l.CanOpen(c) {
		return false
	}
	if math.Abs(edgeLine(a, dir)-edgeLine(c, back)) > b.cfg.AdjacencyBuffer {
		return false
	}

	alo, ahi := wallSpan(a, dir)
	clo, chi := wallSpan(c, back)
	lo, hi := math.Max(alo, clo), math.Min(ahi, chi)
	dw := b.cfg.DoorWidth()
	if hi-lo < dw {
		return false
	}
	mid := (alongOf(a.Center, dir) + alongOf(c.Center, dir)) / 2
	along := clamp(mid, lo+dw/2, hi-dw/2)

	da, _ := b.openDoor(a, dir, edgePoint(a, dir, along))
	dc, _ := b.openDoor(c, back, edgePoint(c, back, along))
	b.l.AddLink(&layout.Link{
		Kind: layout.LinkDoor,
		A:    layout.LinkEnd{Room: a.ID, Dir: dir, Point: da.Pos, Door: true},
		B:    layout.LinkEnd{Room: c.ID, Dir: back, Point: dc.Pos, Door: true},
	})
	b.log.Debug("direct door", "a", a.ID, "b", c.ID, "dir", dir)
	return true
}

// wallAnchor returns the point on side d of r nearest to along at which a
// door of the configured width fits.
func (b *builder) wallAnchor(r *layout.Room, d world.Direction, along float64) world.Point {
	lo, hi := wallSpan(r, d)
	length := hi - lo
	gap := math.Min(b.cfg.DoorWidth(), length*maxDoorShare)
	mid := (lo + hi) / 2
	slack := (length - gap) / 2
	return edgePoint(r, d, mid+clamp(along-mid, -slack, slack))
}

// wallSpan returns the extent of side d of r along the wall axis.
func wallSpan(r *layout.Room, d world.Direction) (lo, hi float64) {
	rb := r.Bounds()
	if d.RunsAlongX() {
		return rb.MinX, rb.MaxX
	}
	return rb.MinZ, rb.MaxZ
}

// edgeLine returns the perpendicular coordinate of side d of r.
func edgeLine(r *layout.Room, d world.Direction) float64 {
	e := r.Bounds().Edge(d)
	if d.RunsAlongX() {
		return e.MinZ
	}
	return e.MinX
}

// edgePoint returns the point on side d of r at wall coordinate along.
func edgePoint(r *layout.Room, d world.Direction, along float64) world.Point {
	if d.RunsAlongX() {
		return world.Pt(along, edgeLine(r, d))
	}
	return world.Pt(edgeLine(r, d), along)
}

// alongOf projects p onto the axis a wall facing d runs along.
func alongOf(p world.Point, d world.Direction) float64 {
	if d.RunsAlongX() {
		return p.X
	}
	return p.Z
}
