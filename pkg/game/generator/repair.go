package generator

import (
	"math"
	"slices"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// Repair scoring
const (
	scoreBase       = 100
	scoreFacing     = 30
	scoreAreaDiv    = 200
	scoreDoorWeight = 5
)

var roleBonus = map[layout.RoomType]float64{
	layout.RoomStart: 25,
	layout.RoomBoss:  15,
	layout.RoomShop:  10,
}

// repairPass is one escalation level of component joining.
type repairPass struct {
	force     bool
	ignoreCap bool
}

var repairPasses = []repairPass{
	{},
	{force: true},
	{force: true, ignoreCap: true},
}

// repairConnectivity fixes whatever the planner left broken: doors nobody
// recorded, doors that open onto nothing and rooms unreachable from the
// start. Walls are reconciled again at the end.
func (b *builder) repairConnectivity() {
	orphans := b.repairOrphanDoors()
	invalid := b.removeInvalidDoors()
	joined := b.connectComponents()
	rep := b.reconcileWalls()
	b.log.Debug("connectivity repaired", "orphans", orphans, "invalid", invalid,
		"joined", joined, "walls_changed", rep.Changed())
}

// repairOrphanDoors routes a corridor from every door missing from the door
// record. When no room will take it, a small connector room is placed in
// front of the door.
func (b *builder) repairOrphanDoors() int {
	fixed := 0
	for _, r := range slices.Clone(b.l.Rooms) {
		for _, d := range world.AllDirections() {
			door, ok := r.Doors[d]
			if !ok || b.l.Doors.Has(door.Pos) {
				continue
			}
			b.log.Warn("orphan door", "room", r.ID, "dir", d, "pos", door.Pos)
			if b.repairOrphan(r, door) {
				b.l.Doors.Add(door.Pos)
				fixed++
			}
		}
	}
	return fixed
}

func (b *builder) repairOrphan(r *layout.Room, door *layout.Door) bool {
	type cand struct {
		room  *layout.Room
		score float64
	}
	var cands []cand
	for _, o := range b.l.Rooms {
		if o == r || r.Center.Dist(o.Center) > b.cfg.MapWidth/2 || b.servedNear(r, o, door.Pos) {
			continue
		}
		cands = append(cands, cand{room: o, score: b.repairScore(r, o)})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })

	start := door.Pos
	for _, c := range cands {
		for _, side := range orphanSides(door.Dir, c.room, r) {
			res := b.routeCorridor(routeRequest{from: r, to: c.room, fromSide: door.Dir, toSide: side, startAt: &start})
			if res.status == RouteOK {
				return true
			}
		}
	}

	conn := b.connectorRoom(door)
	if conn == nil {
		b.log.Warn("orphan door left unconnected", "room", r.ID, "dir", door.Dir)
		return false
	}
	res := b.routeCorridor(routeRequest{from: r, to: conn, fromSide: door.Dir, toSide: door.Dir.Opposite(), startAt: &start})
	return res.status == RouteOK
}

// orphanSides lists the sides of o to try, the one facing the door first.
func orphanSides(doorDir world.Direction, o, from *layout.Room) []world.Direction {
	facing := world.ClosestDirection(from.Center.X-o.Center.X, from.Center.Z-o.Center.Z)
	out := []world.Direction{doorDir.Opposite()}
	if facing != doorDir.Opposite() {
		out = append(out, facing)
	}
	for _, d := range o.FreeSides() {
		if d != out[0] && d != facing {
			out = append(out, d)
		}
	}
	return out
}

// servedNear reports whether a corridor between r and o already ends near p.
func (b *builder) servedNear(r, o *layout.Room, p world.Point) bool {
	for _, c := range b.l.Corridors {
		if !(c.From == r.ID && c.To == o.ID) && !(c.From == o.ID && c.To == r.ID) {
			continue
		}
		for _, e := range c.Endpoints() {
			if e.Dist(p) <= b.cfg.CorridorWidth {
				return true
			}
		}
	}
	return false
}

// connectorRoom places a minimum-size room one corridor width beyond the
// door, provided it collides with nothing.
func (b *builder) connectorRoom(door *layout.Door) *layout.Room {
	size := b.cfg.MinRoomSize
	c := door.Pos.Step(door.Dir, size/2+b.cfg.CorridorWidth)
	rect := world.RectAround(c, size, size)
	if !b.l.Bounds.Contains(rect) || !b.fits(rect) {
		return nil
	}
	b.log.Warn("connector room created", "center", c)
	return b.addRoom(layout.RoomNormal, c, size, size)
}

// repairScore ranks o as a partner for r: close, welcoming, large, not
// crowded and important rooms come first.
func (b *builder) repairScore(r, o *layout.Room) float64 {
	score := scoreBase - r.Center.Dist(o.Center)
	back := world.ClosestDirection(r.Center.X-o.Center.X, r.Center.Z-o.Center.Z)
	if o.HasDoor(back) {
		score += scoreFacing
	}
	score += o.Area() / scoreAreaDiv
	score -= scoreDoorWeight * float64(o.DoorCount())
	return score + roleBonus[o.Type]
}

// removeInvalidDoors closes every door that is not within a corridor width
// of a corridor end, a branch point or a shared-door point.
func (b *builder) removeInvalidDoors() int {
	pts := b.l.PassagePoints()
	removed := 0
	for _, r := range b.l.Rooms {
		for _, d := range world.AllDirections() {
			door, ok := r.Doors[d]
			if !ok || nearAny(door.Pos, pts, b.cfg.CorridorWidth) {
				continue
			}
			b.log.Warn("removing door with no passage", "room", r.ID, "dir", d, "pos", door.Pos)
			b.closeDoor(r, d)
			removed++
		}
	}
	return removed
}

func nearAny(p world.Point, pts []world.Point, radius float64) bool {
	for _, q := range pts {
		if p.Dist(q) <= radius {
			return true
		}
	}
	return false
}

// connectComponents joins every component unreachable from the start room to
// the reached set, escalating from validated routes to forced ones and, as a
// last resort, over the door cap.
func (b *builder) connectComponents() int {
	if b.l.Start == nil {
		return 0
	}
	joined := 0
	failed := mapset.New[int]()
	for iter := 0; iter < len(b.l.Rooms); iter++ {
		reached := b.l.Reachable(b.l.Start.ID)
		if reached.Size() == len(b.l.Rooms) {
			break
		}
		var seed *layout.Room
		for _, r := range b.l.Rooms {
			if !reached.Has(r.ID) && !failed.Has(r.ID) {
				seed = r
				break
			}
		}
		if seed == nil {
			break
		}
		comp := b.l.Reachable(seed.ID)
		if b.joinComponent(reached, comp) {
			joined++
			continue
		}
		comp.Each(func(id int) { failed.Put(id) })
		b.log.Warn("component could not be connected", "room", seed.ID, "size", comp.Size())
	}
	return joined
}

func (b *builder) joinComponent(reached, comp mapset.Set[int]) bool {
	type pair struct {
		a, c  *layout.Room
		score float64
	}
	var pairs []pair
	for _, a := range b.l.Rooms {
		if !reached.Has(a.ID) {
			continue
		}
		for _, c := range b.l.Rooms {
			if comp.Has(c.ID) {
				pairs = append(pairs, pair{a: a, c: c, score: b.repairScore(a, c)})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].score > pairs[j].score })

	for _, pass := range repairPasses {
		if pass.ignoreCap {
			b.log.Warn("exceeding door cap to connect component", "rooms", comp.Size())
		}
		for _, p := range pairs {
			if !pass.ignoreCap && (!b.l.CanOpen(p.a) || !b.l.CanOpen(p.c)) {
				continue
			}
			if b.adjacent(p.a, p.c) && b.connectWithDoor(p.a, p.c, contactDirection(p.a, p.c)) {
				return true
			}
			for _, s := range sideOptions(p.a, p.c) {
				res := b.routeCorridor(routeRequest{
					from: p.a, to: p.c,
					fromSide: s[0], toSide: s[1],
					force: pass.force, ignoreCap: pass.ignoreCap,
				})
				if res.status == RouteOK {
					return true
				}
			}
		}
	}
	return false
}

func (b *builder) adjacent(p, q *layout.Room) bool {
	return math.Abs(q.Center.X-p.Center.X) < (p.Width+q.Width)/2+b.cfg.AdjacencyBuffer &&
		math.Abs(q.Center.Z-p.Center.Z) < (p.Depth+q.Depth)/2+b.cfg.AdjacencyBuffer
}

// sideOptions lists (from side, to side) pairs to try: the closest direction
// and its opposite first, then every other combination of free sides.
func sideOptions(a, c *layout.Room) [][2]world.Direction {
	primary := world.ClosestDirection(c.Center.X-a.Center.X, c.Center.Z-a.Center.Z)
	out := [][2]world.Direction{{primary, primary.Opposite()}}
	for _, fs := range a.FreeSides() {
		for _, ts := range c.FreeSides() {
			if fs == primary && ts == primary.Opposite() {
				continue
			}
			out = append(out, [2]world.Direction{fs, ts})
		}
	}
	return out
}
