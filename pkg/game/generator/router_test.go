package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// reachesOnFoot walks a lattice of step-sized moves from from, using the
// layout's collision rules, and reports whether any step lands in target.
func reachesOnFoot(l *layout.Layout, from world.Point, target *layout.Room, step float64) bool {
	type node struct{ i, j int }
	at := func(n node) world.Point { return from.Add(float64(n.i)*step, float64(n.j)*step) }

	seen := mapset.New[node]()
	q := queue.New[node]()
	seen.Put(node{})
	q.Enqueue(node{})
	for !q.Empty() {
		cur := q.Dequeue()
		p := at(cur)
		if target.Contains(p) {
			return true
		}
		for _, n := range []node{{cur.i + 1, cur.j}, {cur.i - 1, cur.j}, {cur.i, cur.j + 1}, {cur.i, cur.j - 1}} {
			if seen.Has(n) {
				continue
			}
			np := at(n)
			if !l.Bounds.ContainsPoint(np) || l.Blocked(p, np) {
				continue
			}
			seen.Put(n)
			q.Enqueue(n)
		}
	}
	return false
}

func TestLSegmentsAlwaysReachBothAnchors(t *testing.T) {
	b := newBuilder(quietConfig(1))
	tests := []struct {
		name       string
		start, end world.Point
		xFirst     bool
		wantSegs   int
	}{
		{"offset just past half a width", world.Pt(5, 0), world.Pt(7.3, 20), false, 2},
		{"same along x", world.Pt(0, 5), world.Pt(20, 7.3), true, 2},
		{"end on the first leg", world.Pt(5, 0), world.Pt(6.5, 20), false, 1},
		{"wide turn", world.Pt(4, 0), world.Pt(16, 15), false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := b.lSegments(tt.start, tt.end, tt.xFirst)
			require.Len(t, segs, tt.wantSegs)
			assert.True(t, segs[0].Rect.ContainsPoint(tt.start), "start %s outside %s", tt.start, segs[0].Rect)
			last := segs[len(segs)-1]
			assert.True(t, last.Rect.ContainsPoint(tt.end), "end %s outside %s", tt.end, last.Rect)
			for i := 0; i+1 < len(segs); i++ {
				assert.True(t, segs[i].Rect.Intersects(segs[i+1].Rect), "legs %d and %d do not meet", i, i+1)
			}
		})
	}
}

// TestShortTurnCorridorIsWalkable routes an L whose second leg is shorter than
// the minimum wall and walks from the spawn point to the far room.
func TestShortTurnCorridorIsWalkable(t *testing.T) {
	b := newBuilder(quietConfig(5))
	a := b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
	c := b.addRoom(layout.RoomBoss, world.Pt(12.3, 20), 10, 10)
	b.updateLargest()

	res := b.routeCorridor(routeRequest{from: a, to: c, fromSide: world.East, toSide: world.West})
	require.Equal(t, RouteOK, res.status)
	assert.True(t, res.corridor.Contains(res.corridor.End), "corridor stops short of %s", res.corridor.End)
	assert.True(t, b.l.Linked(a.ID, c.ID))

	b.placePlayer()
	require.Same(t, a, b.l.SpawnRoom)
	assert.True(t, reachesOnFoot(b.l, b.l.Spawn, c, 0.25), "room %d cannot be walked to from %s", c.ID, b.l.Spawn)
}

func TestBranchDoorOnlyWhereCorridorCrossesWall(t *testing.T) {
	tests := []struct {
		name     string
		third    world.Point
		wantDoor bool
		wantPos  world.Point
	}{
		{"corridor runs through the room", world.Pt(1, 20), true, world.Pt(0, 15)},
		{"corridor grazes the room edge", world.Pt(6.5, 20), false, world.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder(quietConfig(1))
			a := b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
			c := b.addRoom(layout.RoomBoss, world.Pt(0, 40), 10, 10)
			r := b.addRoom(layout.RoomNormal, tt.third, 10, 10)
			b.updateLargest()

			res := b.routeCorridor(routeRequest{from: a, to: c, fromSide: world.South, toSide: world.North})
			require.Equal(t, RouteOK, res.status)
			corr := res.corridor

			if !tt.wantDoor {
				assert.Zero(t, r.DoorCount())
				assert.Empty(t, corr.Branches)
				assert.False(t, b.l.Linked(r.ID, a.ID))
				return
			}

			door := r.Doors[world.North]
			require.NotNil(t, door)
			assert.InDelta(t, tt.wantPos.X, door.Pos.X, 1e-9)
			assert.InDelta(t, tt.wantPos.Z, door.Pos.Z, 1e-9)
			assert.True(t, corr.Contains(door.Pos), "door %s is off the corridor floor", door.Pos)
			require.Len(t, corr.Branches, 1)
			assert.InDelta(t, 0.0, corr.Branches[0].Dist(tt.wantPos), 1e-9)

			link := b.l.LinkForDoor(r.ID, world.North)
			require.NotNil(t, link)
			assert.Equal(t, layout.LinkBranch, link.Kind)
			assert.Zero(t, b.removeInvalidDoors(), "branch door sits on a passage point")
		})
	}
}

func TestTestSegmentsRejectsRetracing(t *testing.T) {
	b := newBuilder(quietConfig(1))
	a := b.addRoom(layout.RoomStart, world.Pt(0, 40), 10, 10)
	c := b.addRoom(layout.RoomBoss, world.Pt(40, 40), 10, 10)
	existing := layout.NewSegment(layout.Horizontal, 0, 20, 0, 4)
	b.l.Corridors = append(b.l.Corridors, &layout.Corridor{Segments: []*layout.CorridorSegment{existing}})

	tests := []struct {
		name   string
		seg    *layout.CorridorSegment
		force  bool
		wantOK bool
	}{
		{"identical", layout.NewSegment(layout.Horizontal, 0, 20, 0, 4), false, false},
		{"identical but forced", layout.NewSegment(layout.Horizontal, 0, 20, 0, 4), true, true},
		{"three quarters shared", layout.NewSegment(layout.Horizontal, 5, 25, 0, 4), false, false},
		{"a quarter shared", layout.NewSegment(layout.Horizontal, 15, 35, 0, 4), false, true},
		{"crossing", layout.NewSegment(layout.Vertical, -10, 10, 10, 4), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := b.testSegments([]*layout.CorridorSegment{tt.seg}, routeRequest{from: a, to: c, force: tt.force})
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestMergeSegments(t *testing.T) {
	h := func(lo, hi, line float64) *layout.CorridorSegment {
		return layout.NewSegment(layout.Horizontal, lo, hi, line, 4)
	}
	tests := []struct {
		name string
		in   []*layout.CorridorSegment
		want []world.Rect
	}{
		{"single", []*layout.CorridorSegment{h(0, 10, 0)}, []world.Rect{{MinX: 0, MinZ: -2, MaxX: 10, MaxZ: 2}}},
		{"collinear and touching", []*layout.CorridorSegment{h(0, 10, 0), h(10, 18, 0)}, []world.Rect{{MinX: 0, MinZ: -2, MaxX: 18, MaxZ: 2}}},
		{"collinear with a gap", []*layout.CorridorSegment{h(0, 10, 0), h(12, 18, 0)}, []world.Rect{
			{MinX: 0, MinZ: -2, MaxX: 10, MaxZ: 2}, {MinX: 12, MinZ: -2, MaxX: 18, MaxZ: 2},
		}},
		{"parallel lines", []*layout.CorridorSegment{h(0, 10, 0), h(10, 18, 5)}, []world.Rect{
			{MinX: 0, MinZ: -2, MaxX: 10, MaxZ: 2}, {MinX: 10, MinZ: 3, MaxX: 18, MaxZ: 7},
		}},
		{"turn", []*layout.CorridorSegment{h(0, 12, 0), layout.NewSegment(layout.Vertical, 2, 10, 10, 4)}, []world.Rect{
			{MinX: 0, MinZ: -2, MaxX: 12, MaxZ: 2}, {MinX: 8, MinZ: 2, MaxX: 12, MaxZ: 10},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeSegments(tt.in, 4)
			require.Len(t, got, len(tt.want))
			for i, s := range got {
				assert.Equal(t, tt.want[i], s.Rect)
			}
		})
	}
}

// TestTrimSegmentWallsKeepsMinimumStub pushes a room over the ends of a new
// corridor's walls; the walls are shortened but never below MinWallSize.
func TestTrimSegmentWallsKeepsMinimumStub(t *testing.T) {
	tests := []struct {
		name           string
		center         world.Point
		width          float64
		wantLo, wantHi float64
	}{
		{"covers the start", world.Pt(-0.5, 0), 9, 4, 10},
		{"covers nearly all", world.Pt(2.4, 0), 14.8, 9.5, 10},
		{"covers the end", world.Pt(10.5, 0), 9, 0, 6},
		{"covers all but a sliver", world.Pt(10.15, 0), 19.7, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder(quietConfig(1))
			b.addRoom(layout.RoomNormal, tt.center, tt.width, 10)
			seg := layout.NewSegment(layout.Horizontal, 0, 10, 0, 4)

			b.trimSegmentWalls([]*layout.CorridorSegment{seg})

			require.Len(t, seg.Walls, 2)
			for _, w := range seg.Walls {
				lo, hi := w.Span()
				assert.InDelta(t, tt.wantLo, lo, 1e-9, "wall %s", w.Dir)
				assert.InDelta(t, tt.wantHi, hi, 1e-9, "wall %s", w.Dir)
			}
		})
	}
}

func TestClosingCorridorDoorsRetiresLink(t *testing.T) {
	b := newBuilder(quietConfig(1))
	a := b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
	c := b.addRoom(layout.RoomBoss, world.Pt(30, 0), 10, 10)
	b.updateLargest()
	require.Equal(t, RouteOK, b.routeCorridor(routeRequest{from: a, to: c, fromSide: world.East, toSide: world.West}).status)
	require.True(t, b.l.Reachable(a.ID).Has(c.ID))

	b.closeDoor(a, world.East)
	assert.False(t, b.l.Reachable(a.ID).Has(c.ID), "closed door still counted as a passage")
	link := b.l.LinkForDoor(c.ID, world.West)
	require.NotNil(t, link, "the open end keeps its link")
	assert.False(t, b.l.Passable(link))

	b.closeDoor(c, world.West)
	assert.Empty(t, b.l.Links)
	assert.False(t, b.l.Linked(a.ID, c.ID))
}
