package generator

import (
	"math"
	"slices"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// alignFactor is the fraction of the larger wall length within which two
// facing rooms share a midpoint anchor.
const alignFactor = 0.6

// RouteStatus is the outcome of a corridor routing attempt.
type RouteStatus int

const (
	RouteOK RouteStatus = iota
	RouteSideTaken
	RouteAtCapacity
	RouteDegenerate
	RouteRejected
)

func (s RouteStatus) String() string {
	switch s {
	case RouteOK:
		return "ok"
	case RouteSideTaken:
		return "side taken"
	case RouteAtCapacity:
		return "at capacity"
	case RouteDegenerate:
		return "degenerate"
	case RouteRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// routeRequest describes one corridor between two rooms. startAt forces the
// start anchor onto an existing door of from; force skips the overlap
// rejection; ignoreCap lets either room exceed its door cap.
type routeRequest struct {
	from, to         *layout.Room
	fromSide, toSide world.Direction
	startAt          *world.Point
	force            bool
	ignoreCap        bool
}

type routeResult struct {
	status   RouteStatus
	corridor *layout.Corridor
}

// routeCorridor lays a direct or L-shaped corridor between two rooms, opens
// the doors at both ends and records the link. Rooms the corridor passes
// through get a secondary door where possible.
func (b *builder) routeCorridor(req routeRequest) routeResult {
	from, to := req.from, req.to
	if (req.startAt == nil && from.HasDoor(req.fromSide)) || to.HasDoor(req.toSide) {
		return routeResult{status: RouteSideTaken}
	}
	if !req.ignoreCap && ((req.startAt == nil && !b.l.CanOpen(from)) || !b.l.CanOpen(to)) {
		return routeResult{status: RouteAtCapacity}
	}

	start, end := b.anchors(req)
	segs, thirds, status := b.planSegments(start, end, req)
	if status != RouteOK {
		return routeResult{status: status}
	}

	corr := &layout.Corridor{
		ID:       len(b.l.Corridors),
		From:     from.ID,
		To:       to.ID,
		Segments: mergeSegments(segs, b.cfg.CorridorWidth),
		Start:    start,
		End:      end,
	}
	b.trimSegmentWalls(corr.Segments)
	openJunctions(corr.Segments)
	for _, s := range corr.Segments {
		b.scene.addSegment(s, b.cfg.RoomHeight)
	}
	b.l.Corridors = append(b.l.Corridors, corr)

	if req.startAt == nil {
		b.openDoor(from, req.fromSide, start)
	}
	b.openDoor(to, req.toSide, end)
	b.l.AddLink(&layout.Link{
		Kind:     layout.LinkCorridor,
		A:        layout.LinkEnd{Room: from.ID, Dir: req.fromSide, Point: start, Door: true},
		B:        layout.LinkEnd{Room: to.ID, Dir: req.toSide, Point: end, Door: true},
		Corridor: corr,
	})
	b.addBranchDoors(corr, thirds)

	b.log.Debug("corridor routed", "corridor", corr.ID, "from", from.ID, "to", to.ID,
		"segments", len(corr.Segments), "forced", req.force)
	return routeResult{status: RouteOK, corridor: corr}
}

// anchors picks the door points on both rooms.
func (b *builder) anchors(req routeRequest) (start, end world.Point) {
	from, to := req.from, req.to
	if req.startAt != nil {
		start = *req.startAt
		return start, b.wallAnchor(to, req.toSide, alongOf(start, req.toSide))
	}
	if req.fromSide.Opposite() != req.toSide {
		start = b.wallAnchor(from, req.fromSide, alongOf(to.Center, req.fromSide))
		end = b.wallAnchor(to, req.toSide, alongOf(from.Center, req.toSide))
		return start, end
	}

	ca := alongOf(from.Center, req.fromSide)
	cb := alongOf(to.Center, req.fromSide)
	aLo, aHi := wallSpan(from, req.fromSide)
	bLo, bHi := wallSpan(to, req.toSide)
	ext := math.Max(aHi-aLo, bHi-bLo)
	if math.Abs(ca-cb) < alignFactor*ext {
		mid := (ca + cb) / 2
		if math.Abs(mid-ca) < (aHi-aLo)/2 && math.Abs(mid-cb) < (bHi-bLo)/2 {
			ca, cb = mid, mid
		}
	}
	return b.wallAnchor(from, req.fromSide, ca), b.wallAnchor(to, req.toSide, cb)
}

// planSegments tries a direct route first when the anchors line up, then
// both L orders. It also returns the third rooms the accepted route crosses.
func (b *builder) planSegments(start, end world.Point, req routeRequest) ([]*layout.CorridorSegment, []*layout.Room, RouteStatus) {
	dx, dz := end.X-start.X, end.Z-start.Z
	tol := b.cfg.StraightTolerance
	if math.Abs(dx) <= tol && math.Abs(dz) <= tol {
		return nil, nil, RouteDegenerate
	}

	var tries [][]*layout.CorridorSegment
	if math.Abs(dx) <= tol || math.Abs(dz) <= tol {
		tries = append(tries, b.straightSegments(start, end))
	}
	xFirst := math.Abs(dx) > math.Abs(dz)
	tries = append(tries, b.lSegments(start, end, xFirst), b.lSegments(start, end, !xFirst))

	for _, segs := range tries {
		if thirds, ok := b.testSegments(segs, req); ok {
			return segs, thirds, RouteOK
		}
	}
	return nil, nil, RouteRejected
}

// straightSegments runs one segment along the longer axis from start to end.
func (b *builder) straightSegments(start, end world.Point) []*layout.CorridorSegment {
	cw := b.cfg.CorridorWidth
	if math.Abs(end.X-start.X) >= math.Abs(end.Z-start.Z) {
		return []*layout.CorridorSegment{layout.NewSegment(layout.Horizontal, start.X, end.X, start.Z, cw)}
	}
	return []*layout.CorridorSegment{layout.NewSegment(layout.Vertical, start.Z, end.Z, start.X, cw)}
}

// lSegments builds an L through the corner shared by both anchors. The first
// leg runs half a corridor width past the corner and the second leg starts
// half a width past it, so the two boxes meet edge to edge. The second leg is
// left out only when the end anchor already lies on the first leg's floor.
func (b *builder) lSegments(start, end world.Point, xFirst bool) []*layout.CorridorSegment {
	cw := b.cfg.CorridorWidth
	half := cw / 2
	dx, dz := end.X-start.X, end.Z-start.Z

	if xFirst {
		if math.Abs(dz) <= half {
			return []*layout.CorridorSegment{layout.NewSegment(layout.Horizontal, start.X, end.X, start.Z, cw)}
		}
		return []*layout.CorridorSegment{
			layout.NewSegment(layout.Horizontal, start.X, end.X+sign(dx)*half, start.Z, cw),
			layout.NewSegment(layout.Vertical, start.Z+sign(dz)*half, end.Z, end.X, cw),
		}
	}
	if math.Abs(dx) <= half {
		return []*layout.CorridorSegment{layout.NewSegment(layout.Vertical, start.Z, end.Z, start.X, cw)}
	}
	return []*layout.CorridorSegment{
		layout.NewSegment(layout.Vertical, start.Z, end.Z+sign(dz)*half, start.X, cw),
		layout.NewSegment(layout.Horizontal, start.X+sign(dx)*half, end.X, end.Z, cw),
	}
}

// testSegments records third rooms crossed by segs and, unless forced,
// rejects a route that mostly retraces an existing corridor.
func (b *builder) testSegments(segs []*layout.CorridorSegment, req routeRequest) ([]*layout.Room, bool) {
	existing := b.segments()
	var thirds []*layout.Room
	for _, s := range segs {
		if !req.force {
			limit := b.cfg.SegmentOverlapReject * s.Rect.Area()
			for _, e := range existing {
				if s.Rect.OverlapArea(e.Rect) > limit {
					return nil, false
				}
			}
		}
		for _, r := range b.l.Rooms {
			if r == req.from || r == req.to || !s.Rect.Overlaps(r.Bounds()) {
				continue
			}
			if !slices.Contains(thirds, r) {
				thirds = append(thirds, r)
			}
		}
	}
	return thirds, true
}

// mergeSegments joins consecutive collinear segments that touch.
func mergeSegments(segs []*layout.CorridorSegment, width float64) []*layout.CorridorSegment {
	if len(segs) < 2 {
		return segs
	}
	out := []*layout.CorridorSegment{segs[0]}
	for _, s := range segs[1:] {
		last := out[len(out)-1]
		llo, lhi := last.Span()
		slo, shi := s.Span()
		if last.Collinear(s) && slo <= lhi && shi >= llo {
			out[len(out)-1] = layout.NewSegment(last.Orientation, math.Min(llo, slo), math.Max(lhi, shi), last.Line(), width)
			continue
		}
		out = append(out, s)
	}
	return out
}

// trimSegmentWalls shortens corridor walls that poke into a room or an
// existing corridor at either end. Overlaps in the middle of a wall are left
// for the reconciler.
func (b *builder) trimSegmentWalls(segs []*layout.CorridorSegment) {
	var boxes []world.Rect
	for _, r := range b.l.Rooms {
		boxes = append(boxes, r.Bounds())
	}
	for _, s := range b.segments() {
		boxes = append(boxes, s.Rect)
	}

	minWall := b.cfg.MinWallSize
	for _, s := range segs {
		for _, w := range s.Walls {
			for _, box := range boxes {
				lo, hi, ok := w.Overlap(box)
				if !ok {
					continue
				}
				wlo, whi := w.Span()
				switch {
				case lo <= wlo && hi < whi:
					setSpan(w, math.Min(hi, whi-minWall), whi)
				case hi >= whi && lo > wlo:
					setSpan(w, wlo, math.Max(lo, wlo+minWall))
				}
			}
		}
	}
}

// openJunctions cuts the inner wall of each leg where the next leg joins it.
func openJunctions(segs []*layout.CorridorSegment) {
	for i := 0; i+1 < len(segs); i++ {
		cur, next := segs[i], segs[i+1]
		if cur.Orientation == next.Orientation {
			continue
		}
		inner := innerSide(cur, next)
		var lo, hi float64
		if cur.Orientation == layout.Horizontal {
			lo, hi = next.Rect.MinX, next.Rect.MaxX
		} else {
			lo, hi = next.Rect.MinZ, next.Rect.MaxZ
		}
		for _, w := range cur.Walls {
			if w.Dir.Base != inner {
				continue
			}
			wlo, whi := w.Span()
			var pieces []*layout.WallSegment
			if lo > wlo {
				pieces = append(pieces, w.Piece(wlo, math.Min(lo, whi), world.SideLeft))
			}
			if hi < whi {
				pieces = append(pieces, w.Piece(math.Max(hi, wlo), whi, world.SideRight))
			}
			cur.RemoveWall(w)
			cur.Walls = append(cur.Walls, pieces...)
			break
		}
	}
}

// innerSide is the wall of cur that faces the leg turning off it.
func innerSide(cur, next *layout.CorridorSegment) world.Direction {
	c, n := cur.Rect.Center(), next.Rect.Center()
	if cur.Orientation == layout.Horizontal {
		if n.Z > c.Z {
			return world.South
		}
		return world.North
	}
	if n.X > c.X {
		return world.East
	}
	return world.West
}

// addBranchDoors gives rooms a corridor passes through a door onto it. The
// door only opens where a segment actually runs through one of the room's
// walls, and the corridor records the point where its centerline meets that
// wall.
func (b *builder) addBranchDoors(corr *layout.Corridor, thirds []*layout.Room) {
	spacing := b.cfg.DoorSpacingFactor * b.cfg.CorridorWidth
	for _, r := range thirds {
		if r.DoorCount() >= 2 || !b.l.CanOpen(r) {
			continue
		}
		dir, pos, cross, ok := b.branchDoor(r, corr.Segments)
		if !ok || b.l.Doors.Near(pos, spacing) {
			continue
		}
		door, ok := b.openDoor(r, dir, pos)
		if !ok {
			continue
		}
		corr.Branches = append(corr.Branches, cross)
		b.l.AddLink(&layout.Link{
			Kind:     layout.LinkBranch,
			A:        layout.LinkEnd{Room: r.ID, Dir: dir, Point: door.Pos, Door: true},
			B:        layout.LinkEnd{Room: corr.From, Point: corr.Start},
			Corridor: corr,
		})
		b.log.Debug("branch door added", "room", r.ID, "corridor", corr.ID, "dir", dir)
	}
}

// branchDoor looks for a free side of r that one of segs runs through over at
// least a door width. A segment running along Z can cross the north or south
// wall, one running along X the west or east wall. It returns the side, the
// door position centered on the shared stretch of wall and the point where
// the segment centerline meets the wall.
func (b *builder) branchDoor(r *layout.Room, segs []*layout.CorridorSegment) (world.Direction, world.Point, world.Point, bool) {
	dw := b.cfg.DoorWidth()
	for _, seg := range segs {
		lo, hi := seg.Span()
		sides := []world.Direction{world.West, world.East}
		if seg.Orientation == layout.Vertical {
			sides = []world.Direction{world.North, world.South}
		}
		for _, d := range sides {
			if r.HasDoor(d) {
				continue
			}
			if line := edgeLine(r, d); line <= lo || line >= hi {
				continue
			}
			wlo, whi := wallSpan(r, d)
			slo, shi := seg.Rect.MinZ, seg.Rect.MaxZ
			if d.RunsAlongX() {
				slo, shi = seg.Rect.MinX, seg.Rect.MaxX
			}
			clo, chi := math.Max(wlo, slo), math.Min(whi, shi)
			if chi-clo < dw {
				continue
			}
			return d, edgePoint(r, d, (clo+chi)/2), edgePoint(r, d, clamp(seg.Line(), clo, chi)), true
		}
	}
	return world.North, world.Point{}, world.Point{}, false
}

func setSpan(w *layout.WallSegment, lo, hi float64) {
	if w.AlongX() {
		w.Rect.MinX, w.Rect.MaxX = lo, hi
	} else {
		w.Rect.MinZ, w.Rect.MaxZ = lo, hi
	}
}
