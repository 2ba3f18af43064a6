// Package generator builds dungeon layouts: it partitions the map, places and
// trims rooms, plans connections, routes corridors, carves doors, reconciles
// walls and repairs connectivity, in that order.
package generator

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
	"dungeonforge/pkg/game/renderer"
)

// LayoutGenerator is an interface for dungeon generation algorithms
type LayoutGenerator interface {
	Generate(cfg Config) (*layout.Layout, error)
	Name() string
}

// Available generators
var (
	BSP = &BSPGenerator{}
)

// DefaultGenerator is the default layout generator
var DefaultGenerator LayoutGenerator = BSP

// BSPGenerator partitions the map with a binary space split and grows one
// room per region.
type BSPGenerator struct{}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Rooms"
}

// Generate runs the whole pipeline. It only fails on an invalid config;
// every later problem is repaired or skipped and logged.
func (g *BSPGenerator) Generate(cfg Config) (*layout.Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	b := newBuilder(cfg)
	b.run()
	return b.l, nil
}

// builder carries the state of one generation run.
type builder struct {
	cfg   Config
	rng   *rand.Rand
	log   *slog.Logger
	l     *layout.Layout
	scene *scene
}

func newBuilder(cfg Config) *builder {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := cfg.Renderer
	if out == nil {
		out = renderer.Current
	}

	bounds := world.Rect{
		MinX: -cfg.MapWidth / 2,
		MinZ: -cfg.MapHeight / 2,
		MaxX: cfg.MapWidth / 2,
		MaxZ: cfg.MapHeight / 2,
	}
	l := layout.New(bounds, cfg.CorridorWidth)
	l.Seed = seed
	l.Caps = cfg.Caps

	return &builder{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		log:   logger.With("seed", seed),
		l:     l,
		scene: &scene{out: out},
	}
}

func (b *builder) run() {
	regions := Partition(b.rng, b.l.Bounds, b.cfg.RoomCount, b.cfg.MinRoomSize)
	b.log.Debug("map partitioned", "regions", len(regions))

	b.placeRooms(regions)
	b.trimOverlaps()
	b.planConnections()

	rep := b.reconcileWalls()
	b.log.Debug("walls reconciled", "removed", rep.Removed, "trimmed", rep.Trimmed,
		"cleaned", rep.Cleaned, "regenerated", rep.Regenerated)

	b.repairConnectivity()
	b.placePlayer()

	b.log.Info("dungeon generated",
		"rooms", len(b.l.Rooms),
		"corridors", len(b.l.Corridors),
		"doors", b.l.Doors.Len(),
		"links", len(b.l.Links))
}

// addRoom creates a room with full walls and announces it to the renderer.
func (b *builder) addRoom(t layout.RoomType, center world.Point, width, depth float64) *layout.Room {
	r := layout.NewRoom(len(b.l.Rooms), t, center, width, depth, b.cfg.RoomHeight)
	r.Walls = r.FullWalls()
	b.scene.addRoom(r)
	b.l.Rooms = append(b.l.Rooms, r)
	switch t {
	case layout.RoomStart:
		if b.l.Start == nil {
			b.l.Start = r
		}
	case layout.RoomBoss:
		if b.l.Boss == nil {
			b.l.Boss = r
		}
	}
	return r
}

// attachRoomWall adds w to r and announces it.
func (b *builder) attachRoomWall(r *layout.Room, w *layout.WallSegment) {
	r.Walls = append(r.Walls, w)
	b.scene.addWall(w, r.ID, r.Height)
}

// detachRoomWall removes w from r and withdraws its visual.
func (b *builder) detachRoomWall(r *layout.Room, w *layout.WallSegment) {
	if r.RemoveWall(w) {
		b.scene.removeWall(w)
	}
}

func (b *builder) attachSegmentWall(s *layout.CorridorSegment, w *layout.WallSegment) {
	s.Walls = append(s.Walls, w)
	b.scene.addWall(w, layout.NoOwner, b.cfg.RoomHeight)
}

func (b *builder) detachSegmentWall(s *layout.CorridorSegment, w *layout.WallSegment) {
	if s.RemoveWall(w) {
		b.scene.removeWall(w)
	}
}

// segments returns every corridor segment in creation order.
func (b *builder) segments() []*layout.CorridorSegment {
	var out []*layout.CorridorSegment
	for _, c := range b.l.Corridors {
		out = append(out, c.Segments...)
	}
	return out
}

// updateLargest recomputes the room with the greatest floor area.
func (b *builder) updateLargest() {
	b.l.Largest = nil
	for _, r := range b.l.Rooms {
		if b.l.Largest == nil || r.Area() > b.l.Largest.Area() {
			b.l.Largest = r
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return max(lo, min(v, hi))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
