package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"dungeonforge/pkg/engine/world"
)

// LinkKind says how two rooms are joined.
type LinkKind int

const (
	// LinkDoor is a shared door between touching rooms.
	LinkDoor LinkKind = iota
	// LinkCorridor is a corridor with a door at each end.
	LinkCorridor
	// LinkBranch is a secondary door from a third room onto a corridor.
	LinkBranch
)

func (k LinkKind) String() string {
	switch k {
	case LinkDoor:
		return "door"
	case LinkCorridor:
		return "corridor"
	case LinkBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// LinkEnd is one side of a link. Door is false for the corridor side of a
// branch, which has no door of its own.
type LinkEnd struct {
	Room  int
	Dir   world.Direction
	Point world.Point
	Door  bool
}

// Link is an edge of the layout graph.
type Link struct {
	Kind     LinkKind
	A        LinkEnd
	B        LinkEnd
	Corridor *Corridor
}

// Other returns the room on the far side of the link from id.
func (l *Link) Other(id int) int {
	if l.A.Room == id {
		return l.B.Room
	}
	return l.A.Room
}

// DoorCaps are the per-role limits on open doors. Largest applies to the
// largest room when it is a normal room.
type DoorCaps struct {
	Start   int
	Boss    int
	Shop    int
	Secret  int
	Normal  int
	Largest int
}

// DefaultDoorCaps returns the standard limits.
func DefaultDoorCaps() DoorCaps {
	return DoorCaps{Start: 4, Boss: 2, Shop: 2, Secret: 1, Normal: 3, Largest: 5}
}

// Layout is the complete output of one generation run.
type Layout struct {
	Seed   int64
	Bounds world.Rect

	Rooms     []*Room
	Corridors []*Corridor
	Links     []*Link
	Doors     *DoorRecord
	Caps      DoorCaps

	Start   *Room
	Boss    *Room
	Largest *Room

	Spawn     world.Point
	SpawnRoom *Room
}

// New creates an empty layout over bounds.
func New(bounds world.Rect, doorCell float64) *Layout {
	return &Layout{
		Bounds: bounds,
		Doors:  NewDoorRecord(doorCell),
		Caps:   DefaultDoorCaps(),
	}
}

// Room returns the room with the given id, or nil.
func (l *Layout) Room(id int) *Room {
	if id < 0 || id >= len(l.Rooms) {
		return nil
	}
	return l.Rooms[id]
}

// RoomAt returns the first room whose floor contains p, or nil.
func (l *Layout) RoomAt(p world.Point) *Room {
	for _, r := range l.Rooms {
		if r.Contains(p) {
			return r
		}
	}
	return nil
}

// CorridorAt returns the first corridor whose floor contains p, or nil.
func (l *Layout) CorridorAt(p world.Point) *Corridor {
	for _, c := range l.Corridors {
		if c.Contains(p) {
			return c
		}
	}
	return nil
}

// DoorCap returns the effective door limit for r. A room has four sides, so
// the limit never exceeds four.
func (l *Layout) DoorCap(r *Room) int {
	c := l.Caps.Normal
	switch r.Type {
	case RoomStart:
		c = l.Caps.Start
	case RoomBoss:
		c = l.Caps.Boss
	case RoomShop:
		c = l.Caps.Shop
	case RoomSecret:
		c = l.Caps.Secret
	default:
		if r == l.Largest {
			c = l.Caps.Largest
		}
	}
	return min(c, 4)
}

// CanOpen reports whether r may open one more door.
func (l *Layout) CanOpen(r *Room) bool {
	return r.DoorCount() < l.DoorCap(r)
}

// AddLink appends a link to the graph.
func (l *Layout) AddLink(link *Link) {
	l.Links = append(l.Links, link)
}

// RemoveLink drops link from the graph.
func (l *Layout) RemoveLink(link *Link) {
	for i, cur := range l.Links {
		if cur == link {
			l.Links = append(l.Links[:i], l.Links[i+1:]...)
			return
		}
	}
}

// Passable reports whether every door the link relies on is still open.
func (l *Layout) Passable(link *Link) bool {
	for _, e := range []LinkEnd{link.A, link.B} {
		if !e.Door {
			continue
		}
		if r := l.Room(e.Room); r == nil || !r.HasDoor(e.Dir) {
			return false
		}
	}
	return true
}

// LinksOf returns every link touching room id.
func (l *Layout) LinksOf(id int) []*Link {
	var out []*Link
	for _, link := range l.Links {
		if link.A.Room == id || link.B.Room == id {
			out = append(out, link)
		}
	}
	return out
}

// Linked reports whether a and b share a link.
func (l *Layout) Linked(a, b int) bool {
	for _, link := range l.Links {
		if (link.A.Room == a && link.B.Room == b) || (link.A.Room == b && link.B.Room == a) {
			return true
		}
	}
	return false
}

// Neighbors returns the ids of rooms joined to id by a passable link.
func (l *Layout) Neighbors(id int) []int {
	seen := mapset.New[int]()
	var out []int
	for _, link := range l.LinksOf(id) {
		if !l.Passable(link) {
			continue
		}
		o := link.Other(id)
		if o != id && !seen.Has(o) {
			seen.Put(o)
			out = append(out, o)
		}
	}
	sort.Ints(out)
	return out
}

// Reachable returns the ids of every room reachable from id over links.
func (l *Layout) Reachable(id int) mapset.Set[int] {
	visited := mapset.New[int]()
	if l.Room(id) == nil {
		return visited
	}
	visited.Put(id)
	q := queue.New[int]()
	q.Enqueue(id)
	for !q.Empty() {
		cur := q.Dequeue()
		for _, n := range l.Neighbors(cur) {
			if !visited.Has(n) {
				visited.Put(n)
				q.Enqueue(n)
			}
		}
	}
	return visited
}

// Connected reports whether every room is reachable from the start room.
func (l *Layout) Connected() bool {
	if l.Start == nil {
		return len(l.Rooms) == 0
	}
	return l.Reachable(l.Start.ID).Size() == len(l.Rooms)
}

// PassagePoints returns every position where a door may legitimately open:
// corridor anchors, corridor branch points and shared-door points.
func (l *Layout) PassagePoints() []world.Point {
	var out []world.Point
	for _, c := range l.Corridors {
		out = append(out, c.Endpoints()...)
	}
	for _, link := range l.Links {
		if link.Kind == LinkDoor {
			out = append(out, link.A.Point, link.B.Point)
		}
	}
	return out
}

// LinkForDoor returns the link that owns the door on side d of room id.
func (l *Layout) LinkForDoor(id int, d world.Direction) *Link {
	for _, link := range l.Links {
		if (link.A.Room == id && link.A.Door && link.A.Dir == d) ||
			(link.B.Room == id && link.B.Door && link.B.Dir == d) {
			return link
		}
	}
	return nil
}

// Validate checks the structural invariants of a finished layout and returns
// every violation joined into one error.
func (l *Layout) Validate() error {
	var errs []error

	starts, bosses := 0, 0
	for _, r := range l.Rooms {
		switch r.Type {
		case RoomStart:
			starts++
		case RoomBoss:
			bosses++
		}
	}
	if starts != 1 {
		errs = append(errs, fmt.Errorf("want exactly one start room, got %d", starts))
	}
	if bosses != 1 && len(l.Rooms) > 1 {
		errs = append(errs, fmt.Errorf("want exactly one boss room, got %d", bosses))
	}

	for i, a := range l.Rooms {
		for _, b := range l.Rooms[i+1:] {
			if a.Bounds().Overlaps(b.Bounds()) {
				errs = append(errs, fmt.Errorf("rooms %d and %d overlap", a.ID, b.ID))
			}
		}
	}

	for _, r := range l.Rooms {
		if n, c := r.DoorCount(), l.DoorCap(r); n > c {
			errs = append(errs, fmt.Errorf("room %d (%s) has %d doors, cap %d", r.ID, r.Type, n, c))
		}
		for d, door := range r.Doors {
			if l.LinkForDoor(r.ID, d) == nil {
				errs = append(errs, fmt.Errorf("room %d door %s belongs to no link", r.ID, d))
			}
			if !l.Doors.Has(door.Pos) {
				errs = append(errs, fmt.Errorf("room %d door %s at %s is not recorded", r.ID, d, door.Pos))
			}
		}
	}

	for _, link := range l.Links {
		if link.Kind != LinkDoor {
			continue
		}
		a, b := l.Room(link.A.Room), l.Room(link.B.Room)
		if a == nil || b == nil || !a.HasDoor(link.A.Dir) || !b.HasDoor(link.B.Dir) {
			errs = append(errs, fmt.Errorf("door link %d-%d is missing a door", link.A.Room, link.B.Room))
		} else if link.A.Dir.Opposite() != link.B.Dir {
			errs = append(errs, fmt.Errorf("door link %d-%d doors do not face each other", link.A.Room, link.B.Room))
		}
	}

	if !l.Connected() {
		errs = append(errs, errors.New("not every room is reachable from the start room"))
	}
	return errors.Join(errs...)
}
