package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
	renderermock "dungeonforge/pkg/game/renderer/mock"
)

const corridorWidth = 4

// twoRooms builds rooms at x=0 and x=60 joined by one straight corridor.
func twoRooms() *layout.Layout {
	l := layout.New(world.Rect{MinX: -50, MinZ: -50, MaxX: 110, MaxZ: 50}, corridorWidth)
	a := layout.NewRoom(0, layout.RoomStart, world.Pt(0, 0), 10, 10, 5)
	b := layout.NewRoom(1, layout.RoomBoss, world.Pt(60, 0), 10, 10, 5)
	a.Walls, b.Walls = a.FullWalls(), b.FullWalls()
	l.Rooms = []*layout.Room{a, b}
	l.Start, l.Boss = a, b
	l.Corridors = []*layout.Corridor{{
		From: 0, To: 1,
		Segments: []*layout.CorridorSegment{layout.NewSegment(layout.Horizontal, 5, 55, 0, corridorWidth)},
		Start:    world.Pt(5, 0),
		End:      world.Pt(55, 0),
	}}
	return l
}

func wallsVisible(walls []*layout.WallSegment) bool {
	for _, w := range walls {
		if !w.Visible {
			return false
		}
	}
	return len(walls) > 0
}

func TestUpdateLightsRoomOnFirstEntryOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := renderermock.NewMockRenderer(ctrl)
	l := twoRooms()

	m.EXPECT().TriggerRoomLighting(l.Rooms[0]).Times(1)
	m.EXPECT().TriggerRoomLighting(l.Rooms[1]).Times(1)

	tr := New(l, m, corridorWidth)

	entered := tr.Update(world.Pt(0, 0))
	require.Len(t, entered, 1)
	assert.Equal(t, 0, entered[0].ID)
	assert.True(t, l.Rooms[0].Visited)

	assert.Empty(t, tr.Update(world.Pt(1, 1)))

	entered = tr.Update(world.Pt(60, 0))
	require.Len(t, entered, 1)
	assert.Equal(t, 1, entered[0].ID)
}

func TestUpdateHidesEverythingFarAway(t *testing.T) {
	l := twoRooms()
	tr := New(l, nil, corridorWidth)

	assert.Empty(t, tr.Update(world.Pt(30, 40)))
	for _, r := range l.Rooms {
		assert.False(t, wallsVisible(r.Walls), "room %d", r.ID)
		assert.False(t, tr.RoomShown(r.ID))
	}
	assert.False(t, wallsVisible(l.Corridors[0].Segments[0].Walls))
}

func TestUpdateShowsCorridorFromInside(t *testing.T) {
	l := twoRooms()
	tr := New(l, nil, corridorWidth)

	tr.Update(world.Pt(30, 0))
	assert.True(t, wallsVisible(l.Corridors[0].Segments[0].Walls))
	// The corridor's middle is within reach of either room's extent.
	assert.True(t, wallsVisible(l.Rooms[0].Walls))
	assert.False(t, l.Rooms[0].Visited)
}

func TestMinimapReportsVisitedRooms(t *testing.T) {
	l := twoRooms()
	tr := New(l, nil, corridorWidth)
	tr.Update(world.Pt(0, 0))

	m := tr.Minimap(world.Pt(0, 0))
	require.Len(t, m.Rooms, 2)
	assert.True(t, m.Rooms[0].Visited)
	assert.False(t, m.Rooms[1].Visited)
	assert.Equal(t, layout.RoomBoss, m.Rooms[1].Type)
	require.Len(t, m.Corridors, 1)
	assert.Equal(t, 50.0, m.Corridors[0].Width())
	assert.Equal(t, world.Pt(0, 0), m.Player)
}
