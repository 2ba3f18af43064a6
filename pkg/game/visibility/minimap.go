package visibility

import (
	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// MinimapRoom is one room as the minimap shows it.
type MinimapRoom struct {
	ID      int
	Bounds  world.Rect
	Type    layout.RoomType
	Visited bool
}

// Minimap is a drawing-free snapshot of the layout for an overview map.
type Minimap struct {
	Bounds    world.Rect
	Rooms     []MinimapRoom
	Corridors []world.Rect
	Player    world.Point
}

// Minimap returns the overview data for a player at p. Unvisited rooms are
// included; it is up to the consumer to dim them.
func (t *Tracker) Minimap(p world.Point) Minimap {
	m := Minimap{Bounds: t.l.Bounds, Player: p}
	for _, r := range t.l.Rooms {
		m.Rooms = append(m.Rooms, MinimapRoom{ID: r.ID, Bounds: r.Bounds(), Type: r.Type, Visited: r.Visited})
		m.Bounds = m.Bounds.Union(r.Bounds())
	}
	for _, c := range t.l.Corridors {
		for _, s := range c.Segments {
			m.Corridors = append(m.Corridors, s.Rect)
		}
	}
	return m
}
