package layout

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"dungeonforge/pkg/engine/world"
)

// DefaultDoorTolerance is the distance under which two door coordinates are
// considered the same door.
const DefaultDoorTolerance = 0.01

type cellKey struct {
	x, z int
}

// DoorRecord is the global set of door coordinates, bucketed on a square
// grid so proximity queries only visit nearby buckets.
type DoorRecord struct {
	cell    float64
	buckets map[cellKey]mapset.Set[world.Point]
	size    int
}

// NewDoorRecord creates an empty record with buckets cellSize units wide.
func NewDoorRecord(cellSize float64) *DoorRecord {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &DoorRecord{
		cell:    cellSize,
		buckets: make(map[cellKey]mapset.Set[world.Point]),
	}
}

func (r *DoorRecord) key(p world.Point) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / r.cell)),
		z: int(math.Floor(p.Z / r.cell)),
	}
}

// Add records p. Adding a point already present is a no-op.
func (r *DoorRecord) Add(p world.Point) {
	k := r.key(p)
	b, ok := r.buckets[k]
	if !ok {
		b = mapset.New[world.Point]()
		r.buckets[k] = b
	}
	if !b.Has(p) {
		b.Put(p)
		r.size++
	}
}

// Remove deletes every recorded point within tol of p and returns how many
// were removed.
func (r *DoorRecord) Remove(p world.Point, tol float64) int {
	removed := 0
	for _, q := range r.Within(p, tol) {
		k := r.key(q)
		r.buckets[k].Remove(q)
		if r.buckets[k].Size() == 0 {
			delete(r.buckets, k)
		}
		removed++
	}
	r.size -= removed
	return removed
}

// Has reports whether a point within DefaultDoorTolerance of p is recorded.
func (r *DoorRecord) Has(p world.Point) bool {
	return r.Near(p, DefaultDoorTolerance)
}

// Near reports whether any recorded point lies within radius of p.
func (r *DoorRecord) Near(p world.Point, radius float64) bool {
	found := false
	r.visit(p, radius, func(q world.Point) bool {
		found = true
		return false
	})
	return found
}

// Within returns the recorded points within radius of p, nearest first.
func (r *DoorRecord) Within(p world.Point, radius float64) []world.Point {
	var out []world.Point
	r.visit(p, radius, func(q world.Point) bool {
		out = append(out, q)
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Dist(p) < out[j].Dist(p)
	})
	return out
}

// visit calls fn for every point within radius of p until fn returns false.
func (r *DoorRecord) visit(p world.Point, radius float64, fn func(world.Point) bool) {
	lo := r.key(world.Point{X: p.X - radius, Z: p.Z - radius})
	hi := r.key(world.Point{X: p.X + radius, Z: p.Z + radius})
	for x := lo.x; x <= hi.x; x++ {
		for z := lo.z; z <= hi.z; z++ {
			b, ok := r.buckets[cellKey{x: x, z: z}]
			if !ok {
				continue
			}
			stop := false
			b.Each(func(q world.Point) {
				if stop || q.Dist(p) > radius {
					return
				}
				if !fn(q) {
					stop = true
				}
			})
			if stop {
				return
			}
		}
	}
}

// Len returns the number of recorded points.
func (r *DoorRecord) Len() int {
	return r.size
}

// Points returns every recorded point ordered by X then Z.
func (r *DoorRecord) Points() []world.Point {
	out := make([]world.Point, 0, r.size)
	for _, b := range r.buckets {
		b.Each(func(q world.Point) {
			out = append(out, q)
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Z < out[j].Z
	})
	return out
}
