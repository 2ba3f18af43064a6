package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestOpposite verifies every direction maps back to itself after two flips.
func TestOpposite(t *testing.T) {
	for _, d := range AllDirections() {
		if got := d.Opposite().Opposite(); got != d {
			t.Errorf("%v.Opposite().Opposite() = %v, want %v", d, got, d)
		}
	}
	if North.Opposite() != South || East.Opposite() != West {
		t.Errorf("unexpected opposite pairs")
	}
}

// TestClosestDirection covers each quadrant and the Z-axis tie-break.
func TestClosestDirection(t *testing.T) {
	cases := []struct {
		dx, dz float64
		want   Direction
	}{
		{10, 2, East},
		{-10, 2, West},
		{1, 8, South},
		{1, -8, North},
		{5, 5, South},
		{5, -5, North},
	}
	for _, c := range cases {
		if got := ClosestDirection(c.dx, c.dz); got != c.want {
			t.Errorf("ClosestDirection(%v, %v) = %v, want %v", c.dx, c.dz, got, c.want)
		}
	}
}

func TestWallDirString(t *testing.T) {
	assert.Equal(t, "north", BaseWall(North).String())
	assert.Equal(t, "east_left", BaseWall(East).WithSide(SideLeft).String())
	assert.True(t, BaseWall(West).IsBase())
	assert.False(t, BaseWall(West).WithSide(SideRight).IsBase())
}

func TestRectOverlapVersusIntersect(t *testing.T) {
	a := RectAround(Pt(0, 0), 10, 10)
	touching := RectAround(Pt(10, 0), 10, 10)
	inside := RectAround(Pt(2, 2), 4, 4)

	assert.True(t, a.Intersects(touching), "touching rects intersect")
	assert.False(t, a.Overlaps(touching), "touching rects do not overlap")
	assert.True(t, a.Contains(inside))
	assert.InDelta(t, 16.0, a.OverlapArea(inside), 1e-9)
	assert.InDelta(t, 0.0, a.OverlapX(touching), 1e-9)
}

func TestRectEdge(t *testing.T) {
	r := RectAround(Pt(0, 0), 10, 6)
	north := r.Edge(North)
	assert.Equal(t, Rect{MinX: -5, MinZ: -3, MaxX: 5, MaxZ: -3}, north)
	east := r.Edge(East)
	assert.InDelta(t, 0.0, east.Width(), 1e-9)
	assert.InDelta(t, 6.0, east.Depth(), 1e-9)
}

// TestGridPaintAndReach paints two floors joined by a corridor and checks the
// flood fill covers all of them but not an isolated floor.
func TestGridPaintAndReach(t *testing.T) {
	g := NewGridOver(Rect{MinX: 0, MinZ: 0, MaxX: 30, MaxZ: 10}, 1)
	g.Paint(Rect{MinX: 0, MinZ: 0, MaxX: 5, MaxZ: 5}, CellFloor, 0)
	g.Paint(Rect{MinX: 5, MinZ: 2, MaxX: 10, MaxZ: 3}, CellCorridor, -1)
	g.Paint(Rect{MinX: 10, MinZ: 0, MaxX: 15, MaxZ: 5}, CellFloor, 1)
	g.Paint(Rect{MinX: 25, MinZ: 0, MaxX: 28, MaxZ: 3}, CellFloor, 2)

	start := g.CellAt(Pt(1, 1))
	if start == nil || start.Kind != CellFloor {
		t.Fatalf("expected floor at (1,1)")
	}
	want := 25 + 5 + 25
	if got := g.CountReachable(start); got != want {
		t.Errorf("CountReachable() = %d, want %d", got, want)
	}
	if got := g.CountWalkable(); got != want+9 {
		t.Errorf("CountWalkable() = %d, want %d", got, want+9)
	}
}

func TestGridPaintWallLine(t *testing.T) {
	g := NewGridOver(Rect{MinX: 0, MinZ: 0, MaxX: 10, MaxZ: 10}, 1)
	g.Paint(Rect{MinX: 2, MinZ: 4, MaxX: 7, MaxZ: 4}, CellWall, -1)
	walls := 0
	g.ForEachCell(func(row, col int, cell *Cell) {
		if cell.Kind == CellWall {
			walls++
			assert.Equal(t, 4, row)
		}
	})
	assert.Equal(t, 5, walls)
}
