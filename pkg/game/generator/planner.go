package generator

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// Connection planning tuning
const (
	manhattanWeight    = 0.7
	euclideanWeight    = 0.3
	indirectHops       = 3
	minorPriority      = 2 // cycle edges at or below this priority are skipped
	startDoorTarget    = 2
	startDoorTopUp     = 1
	largestDoorTarget  = 3
	largestDoorTopUp   = 2
	extraEdgeReachMult = 1.5
)

// edge is a candidate connection between two rooms.
type edge struct {
	a, b        *layout.Room
	distance    float64
	dir         world.Direction // side of a facing b
	adjacent    bool
	lineOfSight bool
	priority    int
}

// planConnections selects edges Kruskal-style: highest priority first,
// preferring line of sight and short distances. Edges that would only close
// a cycle are kept when they are important enough. Bonus edges and
// minimum-door top-ups follow.
func (b *builder) planConnections() {
	edges := b.candidateEdges()
	sortEdges(edges)

	uf := newUnionFind(len(b.l.Rooms))
	for _, e := range edges {
		if !b.l.CanOpen(e.a) && !b.l.CanOpen(e.b) {
			continue
		}
		if b.l.Linked(e.a.ID, e.b.ID) {
			continue
		}
		if uf.same(e.a.ID, e.b.ID) && e.priority <= minorPriority {
			continue
		}
		if !e.adjacent && b.pathWithin(e.a.ID, e.b.ID, indirectHops) {
			continue
		}
		if b.connect(e) {
			uf.union(e.a.ID, e.b.ID)
		}
	}

	b.addExtraEdges(edges)
	b.topUpDoors(b.l.Start, startDoorTarget, startDoorTopUp)
	b.topUpDoors(b.l.Largest, largestDoorTarget, largestDoorTopUp)

	b.log.Debug("connections planned", "candidates", len(edges), "links", len(b.l.Links))
}

// sortEdges orders edges by priority, then line of sight, then distance.
func sortEdges(edges []edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		ei, ej := edges[i], edges[j]
		if ei.priority != ej.priority {
			return ei.priority > ej.priority
		}
		if ei.lineOfSight != ej.lineOfSight {
			return ei.lineOfSight
		}
		return ei.distance < ej.distance
	})
}

// candidateEdges builds an edge for every pair of rooms within a third of the
// map width, Manhattan.
func (b *builder) candidateEdges() []edge {
	limit := b.cfg.MapWidth / 3
	var edges []edge
	for i, p := range b.l.Rooms {
		for _, q := range b.l.Rooms[i+1:] {
			if p.Center.Manhattan(q.Center) > limit {
				continue
			}
			edges = append(edges, b.newEdge(p, q))
		}
	}
	return edges
}

func (b *builder) newEdge(p, q *layout.Room) edge {
	dx := q.Center.X - p.Center.X
	dz := q.Center.Z - p.Center.Z
	e := edge{
		a:           p,
		b:           q,
		distance:    manhattanWeight*p.Center.Manhattan(q.Center) + euclideanWeight*p.Center.Dist(q.Center),
		dir:         world.ClosestDirection(dx, dz),
		adjacent:    b.adjacent(p, q),
		lineOfSight: b.lineOfSight(p, q),
		priority:    edgePriority(p, q, b.l.Largest),
	}
	if e.adjacent {
		e.dir = contactDirection(p, q)
	}
	return e
}

// contactDirection returns the side of p that touches q: the axis with the
// larger gap between the rooms is the one they face each other across.
func contactDirection(p, q *layout.Room) world.Direction {
	dx := q.Center.X - p.Center.X
	dz := q.Center.Z - p.Center.Z
	gapX := math.Abs(dx) - (p.Width+q.Width)/2
	gapZ := math.Abs(dz) - (p.Depth+q.Depth)/2
	if gapX >= gapZ {
		if dx > 0 {
			return world.East
		}
		return world.West
	}
	if dz > 0 {
		return world.South
	}
	return world.North
}

func edgePriority(p, q, largest *layout.Room) int {
	either := func(t layout.RoomType) bool { return p.Type == t || q.Type == t }
	prio := 0
	switch {
	case either(layout.RoomStart):
		prio = 5
	case either(layout.RoomBoss):
		prio = 4
	case either(layout.RoomShop):
		prio = 3
	case p.Type == layout.RoomNormal && q.Type == layout.RoomNormal:
		prio = 2
	case either(layout.RoomSecret):
		prio = 1
	}
	if largest != nil && (p == largest || q == largest) {
		prio += 2
	}
	if either(layout.RoomStart) || either(layout.RoomBoss) {
		prio++
	}
	return prio
}

// lineOfSight is false when the midpoint between p and q falls inside the
// bounding circle of any third room.
func (b *builder) lineOfSight(p, q *layout.Room) bool {
	mid := world.Pt((p.Center.X+q.Center.X)/2, (p.Center.Z+q.Center.Z)/2)
	for _, r := range b.l.Rooms {
		if r == p || r == q {
			continue
		}
		if r.Center.Dist(mid) < math.Hypot(r.Width, r.Depth)/2 {
			return false
		}
	}
	return true
}

// connect joins the rooms of e with a shared door when they touch and with a
// corridor otherwise. It reports whether a link was made.
func (b *builder) connect(e edge) bool {
	if !b.l.CanOpen(e.a) || !b.l.CanOpen(e.b) {
		return false
	}
	if e.adjacent && b.connectWithDoor(e.a, e.b, e.dir) {
		return true
	}
	res := b.routeCorridor(routeRequest{from: e.a, to: e.b, fromSide: e.dir, toSide: e.dir.Opposite()})
	if res.status != RouteOK {
		b.log.Debug("connection failed", "a", e.a.ID, "b", e.b.ID, "status", res.status)
		return false
	}
	return true
}

// addExtraEdges adds a few short loop-closing connections.
func (b *builder) addExtraEdges(edges []edge) {
	want := int(math.Floor(float64(len(b.l.Rooms)) * b.cfg.ExtraEdgeFraction))
	if want == 0 {
		return
	}
	byDistance := append([]edge(nil), edges...)
	sort.SliceStable(byDistance, func(i, j int) bool {
		return byDistance[i].distance < byDistance[j].distance
	})

	added := 0
	reach := b.cfg.MaxRoomSize * extraEdgeReachMult
	for _, e := range byDistance {
		if added >= want {
			break
		}
		if b.l.Linked(e.a.ID, e.b.ID) || !b.l.CanOpen(e.a) || !b.l.CanOpen(e.b) {
			continue
		}
		if b.oneHop(e.a.ID, e.b.ID) {
			continue
		}
		if e.adjacent {
			if b.connectWithDoor(e.a, e.b, e.dir) {
				added++
			}
			continue
		}
		if e.distance < reach && e.lineOfSight && b.connect(e) {
			added++
		}
	}
	b.log.Debug("extra edges added", "added", added, "wanted", want)
}

// topUpDoors gives r up to maxAdd more connections while it has fewer than
// target doors.
func (b *builder) topUpDoors(r *layout.Room, target, maxAdd int) {
	if r == nil || r.DoorCount() >= target {
		return
	}
	var cands []edge
	for _, o := range b.l.Rooms {
		if o == r || !b.l.CanOpen(o) || b.l.Linked(r.ID, o.ID) || b.oneHop(r.ID, o.ID) {
			continue
		}
		cands = append(cands, b.newEdge(r, o))
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].priority != cands[j].priority {
			return cands[i].priority > cands[j].priority
		}
		return cands[i].distance < cands[j].distance
	})

	added := 0
	for _, e := range cands {
		if added >= maxAdd || r.DoorCount() >= target || !b.l.CanOpen(r) {
			break
		}
		if b.connect(e) {
			added++
		}
	}
	if added > 0 {
		b.log.Debug("door top-up", "room", r.ID, "type", r.Type, "added", added)
	}
}

// oneHop reports whether a and c share a linked neighbour.
func (b *builder) oneHop(a, c int) bool {
	for _, m := range b.l.Neighbors(a) {
		if m != c && b.l.Linked(m, c) {
			return true
		}
	}
	return false
}

// pathWithin reports whether c can be reached from a in at most hops links.
func (b *builder) pathWithin(a, c, hops int) bool {
	type step struct{ id, depth int }
	visited := mapset.New[int]()
	visited.Put(a)
	q := queue.New[step]()
	q.Enqueue(step{id: a})
	for !q.Empty() {
		cur := q.Dequeue()
		if cur.id == c {
			return true
		}
		if cur.depth == hops {
			continue
		}
		for _, n := range b.l.Neighbors(cur.id) {
			if !visited.Has(n) {
				visited.Put(n)
				q.Enqueue(step{id: n, depth: cur.depth + 1})
			}
		}
	}
	return false
}
