package layout

import (
	"dungeonforge/pkg/engine/world"
)

// Rasterize samples the layout onto a grid at scale cells per unit. Corridor
// floors are painted first, then room floors, walls and finally doors, so a
// door always wins over the wall it was cut from.
func Rasterize(l *Layout, scale float64) *world.Grid {
	g := world.NewGridOver(l.Bounds.Union(l.extent()), scale)
	for _, c := range l.Corridors {
		for _, s := range c.Segments {
			g.Paint(s.Rect, world.CellCorridor, NoOwner)
		}
	}
	for _, r := range l.Rooms {
		g.Paint(r.Bounds(), world.CellFloor, r.ID)
	}
	g.ForEachCell(func(_, _ int, cell *world.Cell) {
		if r := l.Room(cell.Tag); r != nil && cell.Kind == world.CellFloor {
			cell.Visited = r.Visited
		}
	})
	for _, c := range l.Corridors {
		for _, s := range c.Segments {
			for _, w := range s.Walls {
				g.Paint(w.Rect, world.CellWall, NoOwner)
			}
		}
	}
	for _, r := range l.Rooms {
		for _, w := range r.Walls {
			g.Paint(w.Rect, world.CellWall, r.ID)
		}
	}
	for _, r := range l.Rooms {
		for _, d := range r.Doors {
			g.Paint(DoorRect(d), world.CellDoor, r.ID)
		}
	}
	return g
}

// DoorRect returns the opening of d as a zero-thickness line on its wall.
func DoorRect(d *Door) world.Rect {
	half := d.Width / 2
	if d.Dir.RunsAlongX() {
		return world.Rect{MinX: d.Pos.X - half, MaxX: d.Pos.X + half, MinZ: d.Pos.Z, MaxZ: d.Pos.Z}
	}
	return world.Rect{MinX: d.Pos.X, MaxX: d.Pos.X, MinZ: d.Pos.Z - half, MaxZ: d.Pos.Z + half}
}

// extent is the union of every room and corridor footprint. Connector rooms
// may sit outside the nominal bounds.
func (l *Layout) extent() world.Rect {
	out := l.Bounds
	for _, r := range l.Rooms {
		out = out.Union(r.Bounds())
	}
	for _, c := range l.Corridors {
		out = out.Union(c.Bounds())
	}
	return out
}
