// Package visibility follows the player through a generated layout: it marks
// rooms visited, asks the renderer to light a room the first time it is
// entered and decides which walls are worth drawing.
package visibility

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
	"dungeonforge/pkg/game/renderer"
)

// corridorSlack widens a corridor segment when testing whether the player is
// standing in it.
const corridorSlack = 1.0

// Tracker holds the per-frame visibility state of one layout.
type Tracker struct {
	l        *layout.Layout
	r        renderer.Renderer
	corridor float64

	shown mapset.Set[int]
}

// New creates a tracker for l. Lighting requests go to r, or to the current
// renderer when r is nil. corridorWidth is the proximity radius used by the
// near-room and near-corridor rules.
func New(l *layout.Layout, r renderer.Renderer, corridorWidth float64) *Tracker {
	if r == nil {
		r = renderer.Current
	}
	return &Tracker{l: l, r: r, corridor: corridorWidth, shown: mapset.New[int]()}
}

// Update applies the visibility rules for a player at p and returns the rooms
// entered for the first time.
func (t *Tracker) Update(p world.Point) []*layout.Room {
	var entered []*layout.Room
	t.shown = mapset.New[int]()

	for _, room := range t.l.Rooms {
		in := inRoom(p, room)
		visible := in || t.nearOtherRoom(p, room) || t.nearCorridor(p, room)
		for _, w := range room.Walls {
			w.Visible = visible
		}
		if visible {
			t.shown.Put(room.ID)
		}
		if in && !room.Visited {
			room.Visited = true
			t.r.TriggerRoomLighting(room)
			entered = append(entered, room)
		}
	}

	for _, c := range t.l.Corridors {
		for _, s := range c.Segments {
			visible := inSegment(p, s) || t.segmentNearRoom(p, s)
			for _, w := range s.Walls {
				w.Visible = visible
			}
		}
	}
	return entered
}

// RoomShown reports whether room id was visible at the last Update.
func (t *Tracker) RoomShown(id int) bool {
	return t.shown.Has(id)
}

func inRoom(p world.Point, r *layout.Room) bool {
	return math.Abs(p.X-r.Center.X) < r.Width/2 && math.Abs(p.Z-r.Center.Z) < r.Depth/2
}

// nearOtherRoom is true when p lies within a corridor width of any room other
// than r.
func (t *Tracker) nearOtherRoom(p world.Point, r *layout.Room) bool {
	for _, o := range t.l.Rooms {
		if o == r {
			continue
		}
		if math.Abs(p.X-o.Center.X) < o.Width/2+t.corridor && math.Abs(p.Z-o.Center.Z) < o.Depth/2+t.corridor {
			return true
		}
	}
	return false
}

// nearCorridor is true when some corridor segment's middle lies within the
// extent of r, grown by a corridor width, measured from p.
func (t *Tracker) nearCorridor(p world.Point, r *layout.Room) bool {
	for _, c := range t.l.Corridors {
		for _, s := range c.Segments {
			mid := s.Rect.Center()
			if math.Abs(p.X-mid.X) < r.Width/2+t.corridor && math.Abs(p.Z-mid.Z) < r.Depth/2+t.corridor {
				return true
			}
		}
	}
	return false
}

func inSegment(p world.Point, s *layout.CorridorSegment) bool {
	return s.Rect.Expand(corridorSlack).ContainsPoint(p)
}

func (t *Tracker) segmentNearRoom(p world.Point, s *layout.CorridorSegment) bool {
	mid := s.Rect.Center()
	for _, r := range t.l.Rooms {
		if math.Abs(p.X-mid.X) < r.Width/2+t.corridor && math.Abs(p.Z-mid.Z) < r.Depth/2+t.corridor {
			return true
		}
	}
	return false
}
