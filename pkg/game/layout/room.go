// Package layout holds the value model of a generated dungeon: rooms, walls,
// doors, corridors and the link graph between rooms. It carries no rendering
// state beyond the visual handles the generator hands out.
package layout

import (
	"github.com/leonelquinteros/gotext"

	"dungeonforge/pkg/engine/world"
)

// RoomType is the gameplay role of a room.
type RoomType int

const (
	RoomNormal RoomType = iota
	RoomStart
	RoomBoss
	RoomShop
	RoomSecret
)

// AllRoomTypes lists every role in display order.
func AllRoomTypes() []RoomType {
	return []RoomType{RoomStart, RoomBoss, RoomShop, RoomSecret, RoomNormal}
}

// String returns the stable identifier used in logs and dumps.
func (t RoomType) String() string {
	switch t {
	case RoomStart:
		return "start"
	case RoomBoss:
		return "boss"
	case RoomShop:
		return "shop"
	case RoomSecret:
		return "secret"
	default:
		return "normal"
	}
}

// DisplayName returns the translated, human-facing name of the role.
func (t RoomType) DisplayName() string {
	switch t {
	case RoomStart:
		return gotext.Get("Start Room")
	case RoomBoss:
		return gotext.Get("Boss Room")
	case RoomShop:
		return gotext.Get("Shop")
	case RoomSecret:
		return gotext.Get("Secret Room")
	default:
		return gotext.Get("Room")
	}
}

// Door is an opening carved into one side of a room.
type Door struct {
	Dir   world.Direction
	Pos   world.Point
	Width float64

	Frame     VisualID
	Indicator VisualID
}

// Room is a rectangular chamber. Center, Width and Depth are the source of
// truth; walls are derived from them and then split, trimmed or removed as
// doors and corridors are carved.
type Room struct {
	ID     int
	Type   RoomType
	Center world.Point
	Width  float64
	Depth  float64
	Height float64

	Walls []*WallSegment
	Doors map[world.Direction]*Door

	Visited bool

	Floor   VisualID
	Ceiling VisualID
}

// NewRoom creates a room without walls. Callers add walls with FullWalls.
func NewRoom(id int, t RoomType, center world.Point, width, depth, height float64) *Room {
	return &Room{
		ID:     id,
		Type:   t,
		Center: center,
		Width:  width,
		Depth:  depth,
		Height: height,
		Doors:  make(map[world.Direction]*Door),
	}
}

// Bounds returns the room footprint.
func (r *Room) Bounds() world.Rect {
	return world.RectAround(r.Center, r.Width, r.Depth)
}

// Area returns the footprint area.
func (r *Room) Area() float64 {
	return r.Width * r.Depth
}

// Contains reports whether p lies on the room floor.
func (r *Room) Contains(p world.Point) bool {
	return r.Bounds().ContainsPoint(p)
}

// HasDoor reports whether a door is open on side d.
func (r *Room) HasDoor(d world.Direction) bool {
	_, ok := r.Doors[d]
	return ok
}

// DoorCount returns the number of open doors.
func (r *Room) DoorCount() int {
	return len(r.Doors)
}

// FreeSides returns the sides without a door, in North, East, South, West order.
func (r *Room) FreeSides() []world.Direction {
	var out []world.Direction
	for _, d := range world.AllDirections() {
		if !r.HasDoor(d) {
			out = append(out, d)
		}
	}
	return out
}

// EdgeWall builds, without attaching, a full wall along side d.
func (r *Room) EdgeWall(d world.Direction) *WallSegment {
	return NewWall(world.BaseWall(d), r.Bounds().Edge(d))
}

// FullWalls builds the four full edge walls.
func (r *Room) FullWalls() []*WallSegment {
	walls := make([]*WallSegment, 0, 4)
	for _, d := range world.AllDirections() {
		walls = append(walls, r.EdgeWall(d))
	}
	return walls
}

// WallsFacing returns every wall segment, full or stub, on side d.
func (r *Room) WallsFacing(d world.Direction) []*WallSegment {
	var out []*WallSegment
	for _, w := range r.Walls {
		if w.Dir.Base == d {
			out = append(out, w)
		}
	}
	return out
}

// BaseWall returns the unsplit wall on side d, or nil.
func (r *Room) BaseWall(d world.Direction) *WallSegment {
	for _, w := range r.Walls {
		if w.Dir == world.BaseWall(d) {
			return w
		}
	}
	return nil
}

// RemoveWall detaches w. It reports whether w belonged to the room.
func (r *Room) RemoveWall(w *WallSegment) bool {
	var ok bool
	r.Walls, ok = removeWall(r.Walls, w)
	return ok
}

// removeWall copies rather than shifting in place so callers may keep
// iterating over a slice they read before the removal.
func removeWall(walls []*WallSegment, w *WallSegment) ([]*WallSegment, bool) {
	for i, cur := range walls {
		if cur == w {
			out := make([]*WallSegment, 0, len(walls)-1)
			out = append(out, walls[:i]...)
			return append(out, walls[i+1:]...), true
		}
	}
	return walls, false
}
