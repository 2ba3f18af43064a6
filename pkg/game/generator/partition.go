package generator

import (
	"math/rand"
	"slices"

	"dungeonforge/pkg/engine/world"
)

// splitBudgetFactor bounds partition attempts to splits*factor.
const splitBudgetFactor = 20

// Region is a rectangular slice of the map reserved for at most one room.
// X and Z are the minimum corner.
type Region struct {
	X, Z          float64
	Width, Height float64
}

// Rect returns the region as a world rect.
func (r Region) Rect() world.Rect {
	return world.Rect{MinX: r.X, MinZ: r.Z, MaxX: r.X + r.Width, MaxZ: r.Z + r.Height}
}

// Center returns the middle of the region.
func (r Region) Center() world.Point {
	return world.Pt(r.X+r.Width/2, r.Z+r.Height/2)
}

func (r Region) splittable(minSize float64) bool {
	return r.Width > 2*minSize || r.Height > 2*minSize
}

// Partition splits bounds into disjoint regions, each at least minSize on
// both axes. It performs up to splits splits and always terminates: it stops
// early when nothing is splittable or the attempt budget runs out. Children
// replace their parent in place, so the first and last regions sit at
// opposite ends of the split history.
func Partition(rng *rand.Rand, bounds world.Rect, splits int, minSize float64) []Region {
	regions := []Region{{X: bounds.MinX, Z: bounds.MinZ, Width: bounds.Width(), Height: bounds.Depth()}}
	budget := max(splits*splitBudgetFactor, 1)

	done := 0
	for attempt := 0; done < splits && attempt < budget; attempt++ {
		if !slices.ContainsFunc(regions, func(r Region) bool { return r.splittable(minSize) }) {
			break
		}
		i := rng.Intn(len(regions))
		a, b, ok := splitRegion(rng, regions[i], minSize)
		if !ok {
			continue
		}
		regions = slices.Replace(regions, i, i+1, a, b)
		done++
	}
	return regions
}

// splitRegion cuts r across a random axis. The cut lands in
// [minSize, size-minSize] so both halves stay usable.
func splitRegion(rng *rand.Rand, r Region, minSize float64) (Region, Region, bool) {
	canX := r.Width > 2*minSize
	canZ := r.Height > 2*minSize
	if !canX && !canZ {
		return Region{}, Region{}, false
	}

	acrossZ := rng.Intn(2) == 0
	if acrossZ && !canZ {
		acrossZ = false
	} else if !acrossZ && !canX {
		acrossZ = true
	}

	if acrossZ {
		cut := minSize + rng.Float64()*(r.Height-2*minSize)
		return Region{X: r.X, Z: r.Z, Width: r.Width, Height: cut},
			Region{X: r.X, Z: r.Z + cut, Width: r.Width, Height: r.Height - cut},
			true
	}
	cut := minSize + rng.Float64()*(r.Width-2*minSize)
	return Region{X: r.X, Z: r.Z, Width: cut, Height: r.Height},
		Region{X: r.X + cut, Z: r.Z, Width: r.Width - cut, Height: r.Height},
		true
}
