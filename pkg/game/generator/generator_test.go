package generator

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
	"dungeonforge/pkg/game/renderer"
	renderermock "dungeonforge/pkg/game/renderer/mock"
)

func quietConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.Renderer = renderer.Nop{}
	return cfg
}

type recordingBody struct {
	pos   world.Point
	calls int
}

func (r *recordingBody) SetPosition(p world.Point) {
	r.pos = p
	r.calls++
}

func TestPartitionRegionsAreDisjointAndLargeEnough(t *testing.T) {
	bounds := world.Rect{MinX: -50, MinZ: -50, MaxX: 50, MaxZ: 50}
	for seed := int64(1); seed <= 10; seed++ {
		regions := Partition(rand.New(rand.NewSource(seed)), bounds, 8, 8)
		require.NotEmpty(t, regions)
		assert.LessOrEqual(t, len(regions), 9)

		total := 0.0
		for i, a := range regions {
			assert.GreaterOrEqual(t, a.Width, 8.0, "seed %d region %d", seed, i)
			assert.GreaterOrEqual(t, a.Height, 8.0, "seed %d region %d", seed, i)
			assert.True(t, bounds.Contains(a.Rect()))
			total += a.Rect().Area()
			for _, b := range regions[i+1:] {
				assert.False(t, a.Rect().Overlaps(b.Rect()), "seed %d: regions overlap", seed)
			}
		}
		assert.InDelta(t, bounds.Area(), total, 1e-6)
	}
}

func TestPartitionStopsWhenNothingSplits(t *testing.T) {
	bounds := world.Rect{MaxX: 10, MaxZ: 10}
	regions := Partition(rand.New(rand.NewSource(1)), bounds, 8, 8)
	require.Len(t, regions, 1)
	assert.Equal(t, Region{Width: 10, Height: 10}, regions[0])
}

func TestUnionFind(t *testing.T) {
	u := newUnionFind(5)
	assert.True(t, u.union(0, 1))
	assert.True(t, u.union(2, 3))
	assert.False(t, u.union(1, 0))
	assert.True(t, u.same(0, 1))
	assert.False(t, u.same(1, 2))
	assert.True(t, u.union(1, 3))
	assert.True(t, u.same(0, 2))
	assert.False(t, u.same(0, 4))
}

func TestSplitWallCenteredDoor(t *testing.T) {
	w := layout.NewWall(world.BaseWall(world.North), world.Rect{MinX: 0, MaxX: 10})
	stubs, center, gap := splitWall(w, 3.2, 5, 0.5)

	require.Len(t, stubs, 2)
	assert.InDelta(t, 5.0, center, 1e-9)
	assert.InDelta(t, 3.2, gap, 1e-9)
	assert.InDelta(t, 3.4, stubs[0].Length(), 1e-9)
	assert.InDelta(t, 3.4, stubs[1].Length(), 1e-9)
	assert.Equal(t, "north_left", stubs[0].Dir.String())
	assert.Equal(t, "north_right", stubs[1].Dir.String())
}

func TestSplitWallClampsAnchorAndDropsShortStub(t *testing.T) {
	w := layout.NewWall(world.BaseWall(world.East), world.Rect{MinX: 3, MaxX: 3, MinZ: 0, MaxZ: 10})
	stubs, center, gap := splitWall(w, 3.2, 9.5, 0.5)

	assert.InDelta(t, 8.4, center, 1e-9)
	assert.InDelta(t, 3.2, gap, 1e-9)
	require.Len(t, stubs, 1)
	lo, hi := stubs[0].Span()
	assert.InDelta(t, 0.0, lo, 1e-9)
	assert.InDelta(t, 6.8, hi, 1e-9)
}

func TestSplitWallShortWallCapsGap(t *testing.T) {
	w := layout.NewWall(world.BaseWall(world.South), world.Rect{MinX: 0, MaxX: 4})
	_, _, gap := splitWall(w, 3.2, 2, 0.5)
	assert.InDelta(t, 2.4, gap, 1e-9)
}

func TestLCorridorMeetsAtCorner(t *testing.T) {
	b := newBuilder(quietConfig(1))
	a := b.addRoom(layout.RoomStart, world.Pt(0, 0), 8, 8)
	c := b.addRoom(layout.RoomBoss, world.Pt(20, 15), 8, 8)
	b.updateLargest()

	res := b.routeCorridor(routeRequest{from: a, to: c, fromSide: world.East, toSide: world.West})
	require.Equal(t, RouteOK, res.status)

	corr := res.corridor
	assert.Equal(t, world.Pt(4, 0), corr.Start)
	assert.Equal(t, world.Pt(16, 15), corr.End)
	require.Len(t, corr.Segments, 2)

	leg1, leg2 := corr.Segments[0], corr.Segments[1]
	assert.Equal(t, layout.Vertical, leg1.Orientation)
	assert.Equal(t, world.Rect{MinX: 2, MinZ: 0, MaxX: 6, MaxZ: 17}, leg1.Rect)
	assert.Equal(t, layout.Horizontal, leg2.Orientation)
	assert.Equal(t, world.Rect{MinX: 6, MinZ: 13, MaxX: 16, MaxZ: 17}, leg2.Rect)

	assert.Zero(t, leg1.Rect.OverlapArea(leg2.Rect))
	assert.True(t, leg1.Rect.Intersects(leg2.Rect))
	assert.True(t, leg1.Rect.ContainsPoint(world.Pt(4, 15)))

	// inner wall opened where the second leg joins
	var east []*layout.WallSegment
	for _, w := range leg1.Walls {
		if w.Dir.Base == world.East {
			east = append(east, w)
		}
	}
	require.Len(t, east, 1)
	lo, hi := east[0].Span()
	assert.InDelta(t, 0.0, lo, 1e-9)
	assert.InDelta(t, 13.0, hi, 1e-9)

	assert.True(t, a.HasDoor(world.East))
	assert.True(t, c.HasDoor(world.West))
	assert.True(t, b.l.Linked(a.ID, c.ID))
	assert.Equal(t, 2, b.l.Doors.Len())
}

func TestRouteCorridorReportsSideTaken(t *testing.T) {
	b := newBuilder(quietConfig(1))
	a := b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
	c := b.addRoom(layout.RoomBoss, world.Pt(30, 0), 10, 10)
	b.updateLargest()

	require.Equal(t, RouteOK, b.routeCorridor(routeRequest{from: a, to: c, fromSide: world.East, toSide: world.West}).status)
	res := b.routeCorridor(routeRequest{from: a, to: c, fromSide: world.East, toSide: world.West})
	assert.Equal(t, RouteSideTaken, res.status)
	assert.Nil(t, res.corridor)
}

func TestConnectWithDoorAlignsOnSharedSpan(t *testing.T) {
	b := newBuilder(quietConfig(1))
	a := b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
	c := b.addRoom(layout.RoomNormal, world.Pt(10, 4), 10, 10)
	b.updateLargest()

	require.True(t, b.connectWithDoor(a, c, world.East))
	da, dc := a.Doors[world.East], c.Doors[world.West]
	require.NotNil(t, da)
	require.NotNil(t, dc)
	assert.Equal(t, da.Pos, dc.Pos)
	assert.InDelta(t, 2.0, da.Pos.Z, 1e-9)
	assert.True(t, b.l.Linked(a.ID, c.ID))

	assert.False(t, b.connectWithDoor(a, c, world.East), "sides already taken")
}

func TestTrimOverlapsLeavesNoOverlap(t *testing.T) {
	b := newBuilder(quietConfig(1))
	b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
	b.addRoom(layout.RoomNormal, world.Pt(4, 3), 10, 10)
	b.addRoom(layout.RoomNormal, world.Pt(0, 0), 4, 4)
	b.addRoom(layout.RoomBoss, world.Pt(-6, 2), 12, 6)

	b.trimOverlaps()

	for i, p := range b.l.Rooms {
		for _, q := range b.l.Rooms[i+1:] {
			assert.False(t, p.Bounds().Overlaps(q.Bounds()), "rooms %d and %d overlap", p.ID, q.ID)
		}
		require.Len(t, p.Walls, 4)
		for _, d := range world.AllDirections() {
			assert.Equal(t, p.Bounds().Edge(d), p.BaseWall(d).Rect)
		}
	}
	assert.NotNil(t, b.l.Largest)
}

func TestSeparateSplitsPenetration(t *testing.T) {
	p := layout.NewRoom(0, layout.RoomNormal, world.Pt(0, 0), 10, 10, 5)
	q := layout.NewRoom(1, layout.RoomNormal, world.Pt(8, 20), 10, 10, 5)
	separate(p, q)

	assert.InDelta(t, -1.0, p.Center.X, 1e-9)
	assert.InDelta(t, 9.0, q.Width, 1e-9)
	assert.InDelta(t, 8.5, q.Center.X, 1e-9)
	assert.InDelta(t, p.Bounds().MaxX, q.Bounds().MinX, 1e-9)
}

func TestReconcileIsIdempotent(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		b := newBuilder(quietConfig(seed))
		b.run()

		before := wallSnapshot(b.l)
		rep := b.reconcileWalls()
		assert.False(t, rep.Changed(), "seed %d: %+v", seed, rep)
		assert.Equal(t, before, wallSnapshot(b.l), "seed %d", seed)
	}
}

func wallSnapshot(l *layout.Layout) []world.Rect {
	var out []world.Rect
	for _, r := range l.Rooms {
		for _, w := range r.Walls {
			out = append(out, w.Rect)
		}
	}
	for _, c := range l.Corridors {
		for _, s := range c.Segments {
			for _, w := range s.Walls {
				out = append(out, w.Rect)
			}
		}
	}
	return out
}

func TestReconcileRemovesWallsUnderCorridor(t *testing.T) {
	b := newBuilder(quietConfig(1))
	r := b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
	seg := layout.NewSegment(layout.Vertical, -10, 10, 0, 4)
	b.scene.addSegment(seg, 5)
	b.l.Corridors = append(b.l.Corridors, &layout.Corridor{Segments: []*layout.CorridorSegment{seg}})

	rep := b.reconcileWalls()
	// two room walls cut by the corridor, two corridor walls cut by the room
	assert.Equal(t, 4, rep.Trimmed)
	assert.Zero(t, rep.Removed)

	north := r.WallsFacing(world.North)
	require.Len(t, north, 2)
	for _, w := range north {
		assert.InDelta(t, 3.0, w.Length(), 1e-9)
	}
	assert.False(t, b.reconcileWalls().Changed())
}

func TestRepairOrphanDoorRoutesCorridor(t *testing.T) {
	b := newBuilder(quietConfig(1))
	a := b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
	c := b.addRoom(layout.RoomBoss, world.Pt(30, 0), 10, 10)
	b.updateLargest()

	a.Doors[world.East] = &layout.Door{Dir: world.East, Pos: world.Pt(5, 0), Width: 3.2}

	assert.Equal(t, 1, b.repairOrphanDoors())
	assert.True(t, b.l.Doors.Has(world.Pt(5, 0)))
	assert.NotNil(t, b.l.LinkForDoor(a.ID, world.East))
	assert.True(t, b.l.Linked(a.ID, c.ID))
	assert.True(t, c.HasDoor(world.West))
}

func TestRemoveInvalidDoorRestoresWall(t *testing.T) {
	b := newBuilder(quietConfig(1))
	a := b.addRoom(layout.RoomStart, world.Pt(0, 0), 10, 10)
	b.openDoor(a, world.South, world.Pt(0, 5))
	require.True(t, a.HasDoor(world.South))

	assert.Equal(t, 1, b.removeInvalidDoors())
	assert.False(t, a.HasDoor(world.South))
	assert.Zero(t, b.l.Doors.Len())
	require.NotNil(t, a.BaseWall(world.South))
	assert.Len(t, a.WallsFacing(world.South), 1)
}

func TestConnectComponentsJoinsIsolatedRoom(t *testing.T) {
	b := newBuilder(quietConfig(1))
	b.addRoom(layout.RoomStart, world.Pt(-20, 0), 10, 10)
	b.addRoom(layout.RoomBoss, world.Pt(20, 0), 10, 10)
	b.addRoom(layout.RoomNormal, world.Pt(0, 30), 10, 10)
	b.updateLargest()

	assert.Equal(t, 2, b.connectComponents())
	assert.True(t, b.l.Connected())
}

func TestPlacePlayerInsideStartRoom(t *testing.T) {
	cfg := quietConfig(3)
	body := &recordingBody{}
	cfg.Player = body
	b := newBuilder(cfg)
	start := b.addRoom(layout.RoomStart, world.Pt(5, 5), 20, 12)
	b.updateLargest()

	b.placePlayer()

	assert.Same(t, start, b.l.SpawnRoom)
	assert.True(t, start.Visited)
	assert.Equal(t, 1, body.calls)
	assert.Equal(t, b.l.Spawn, body.pos)
	inner := start.Bounds().Expand(-2)
	assert.True(t, inner.ContainsPoint(b.l.Spawn), "spawn %s outside %s", b.l.Spawn, inner)
}

func TestPlacePlayerFallsBackToLargestRoom(t *testing.T) {
	b := newBuilder(quietConfig(3))
	start := b.addRoom(layout.RoomStart, world.Pt(0, 0), 8, 8)
	big := b.addRoom(layout.RoomNormal, world.Pt(30, 0), 16, 16)
	b.updateLargest()

	b.placePlayer()

	assert.Same(t, big, b.l.SpawnRoom)
	assert.Equal(t, layout.RoomStart, start.Type)
	assert.Equal(t, layout.RoomNormal, big.Type)
	assert.True(t, big.Contains(b.l.Spawn))
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := quietConfig(1)
	cfg.MaxRoomSize = 2
	_, err := DefaultGenerator.Generate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max room size")
}

func TestGenerateIsReproducible(t *testing.T) {
	a, err := BSP.Generate(quietConfig(42))
	require.NoError(t, err)
	b, err := BSP.Generate(quietConfig(42))
	require.NoError(t, err)

	require.Len(t, b.Rooms, len(a.Rooms))
	for i := range a.Rooms {
		assert.Equal(t, a.Rooms[i].Bounds(), b.Rooms[i].Bounds())
		assert.Equal(t, a.Rooms[i].Type, b.Rooms[i].Type)
	}
	assert.Equal(t, a.Spawn, b.Spawn)
	assert.Equal(t, int64(42), a.Seed)
}

func TestGenerateScenario(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		var logs bytes.Buffer
		cfg := quietConfig(seed)
		cfg.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

		l, err := DefaultGenerator.Generate(cfg)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, len(l.Rooms), 8, "seed %d", seed)
		starts, bosses := 0, 0
		for _, r := range l.Rooms {
			switch r.Type {
			case layout.RoomStart:
				starts++
			case layout.RoomBoss:
				bosses++
			}
		}
		assert.Equal(t, 1, starts, "seed %d", seed)
		assert.Equal(t, 1, bosses, "seed %d", seed)

		for i, p := range l.Rooms {
			for _, q := range l.Rooms[i+1:] {
				assert.False(t, p.Bounds().Overlaps(q.Bounds()), "seed %d: rooms %d and %d overlap", seed, p.ID, q.ID)
			}
		}
		assert.True(t, l.Connected(), "seed %d", seed)

		for _, r := range l.Rooms {
			for d, door := range r.Doors {
				link := l.LinkForDoor(r.ID, d)
				require.NotNil(t, link, "seed %d room %d door %s", seed, r.ID, d)
				assert.True(t, l.Doors.Has(door.Pos))
				if link.Kind == layout.LinkDoor {
					other := l.Room(link.Other(r.ID))
					assert.True(t, other.HasDoor(d.Opposite()), "seed %d room %d", seed, r.ID)
					continue
				}
				assert.True(t, nearAny(door.Pos, link.Corridor.Endpoints(), cfg.CorridorWidth))
			}
		}

		// caps hold unless the last-resort pass had to break one, which it logs
		if !strings.Contains(logs.String(), "exceeding door cap") {
			for _, r := range l.Rooms {
				assert.LessOrEqual(t, r.DoorCount(), l.DoorCap(r), "seed %d room %d", seed, r.ID)
			}
		}

		require.NotNil(t, l.SpawnRoom)
		assert.True(t, l.SpawnRoom.Contains(l.Spawn))
		assert.True(t, l.SpawnRoom.Visited)
	}
}

func TestGenerateEmitsVisualsToRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := renderermock.NewMockRenderer(ctrl)

	var added int
	m.EXPECT().AddObject(gomock.Any()).Do(func(layout.Visual) { added++ }).MinTimes(1)
	m.EXPECT().RemoveObject(gomock.Any()).AnyTimes()
	m.EXPECT().TriggerRoomLighting(gomock.Any()).Times(0)

	cfg := quietConfig(7)
	cfg.Renderer = m
	l, err := BSP.Generate(cfg)
	require.NoError(t, err)

	// every room emits at least a floor, a ceiling and one wall
	assert.GreaterOrEqual(t, added, 3*len(l.Rooms))
}

func TestGenerateFallsBackToCurrentRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := renderermock.NewMockRenderer(ctrl)
	m.EXPECT().AddObject(gomock.Any()).MinTimes(1)
	m.EXPECT().RemoveObject(gomock.Any()).AnyTimes()

	renderer.SetRenderer(m)
	t.Cleanup(func() { renderer.SetRenderer(nil) })

	cfg := quietConfig(3)
	cfg.Renderer = nil
	_, err := BSP.Generate(cfg)
	require.NoError(t, err)
}

func TestConfigValidateOrderIsStable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SegmentOverlapReject = 2
	cfg.SecretChance = -1
	cfg.ExtraEdgeFraction = 1.5
	cfg.DoorSpacingFactor = -1

	want := []string{
		"secret chance must be in [0,1], got -1",
		"extra edge fraction must be in [0,1], got 1.5",
		"segment overlap reject must be in [0,1], got 2",
		"spacing tolerances must not be negative",
	}
	for i := 0; i < 5; i++ {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, strings.Join(want, "\n"), err.Error())
	}
}
