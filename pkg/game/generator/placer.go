package generator

import (
	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// Placement tuning
const (
	anchorRoomBonus = 4   // start and boss rooms are at least min+4 on each side
	sizeFactorMin   = 0.8 // region-sized rooms use 0.8..1.2 of their region
	sizeFactorSpan  = 0.4
	jitter          = 1.0
	gravityLow      = 0.3 // rooms this close to start drift toward boss
	gravityHigh     = 0.7 // rooms this close to boss drift toward start
	gravityPull     = 0.2
	emergencySize   = 10
)

// placeRooms grows one room per region: start in the first, boss in the
// last, role-rolled rooms in between. It then tops up with random rooms until
// the minimum count is met or the attempt budget is spent.
func (b *builder) placeRooms(regions []Region) {
	if len(regions) > 0 {
		b.placeAnchorRoom(regions[0], layout.RoomStart)
		b.placeAnchorRoom(regions[len(regions)-1], layout.RoomBoss)
		for i := 1; i < len(regions)-1; i++ {
			b.placeRegionRoom(regions[i])
		}
	}

	target := max(b.cfg.MinRooms, b.cfg.RoomCount)
	for attempt := 0; len(b.l.Rooms) < target && attempt < b.cfg.FillAttempts; attempt++ {
		b.addRandomRoom()
	}
	if len(b.l.Rooms) < target {
		b.log.Warn("room target not met", "rooms", len(b.l.Rooms), "target", target)
	}

	b.ensureStartRoom()
	b.updateLargest()
	b.log.Debug("rooms placed", "rooms", len(b.l.Rooms))
}

// placeAnchorRoom centers a start or boss room in its region. These rooms skip
// the rejection tests; OverlapTrimmer resolves any overlap they cause.
func (b *builder) placeAnchorRoom(reg Region, t layout.RoomType) {
	lo := b.cfg.MinRoomSize + anchorRoomBonus
	hi := b.cfg.MaxRoomSize
	w := clamp(reg.Width-b.cfg.RoomPadding, lo, hi)
	d := clamp(reg.Height-b.cfg.RoomPadding, lo, hi)
	b.addRoom(t, b.insideMap(reg.Center(), w, d), w, d)
}

func (b *builder) placeRegionRoom(reg Region) {
	f := sizeFactorMin + b.rng.Float64()*sizeFactorSpan
	w := clamp(reg.Width*f-b.cfg.RoomPadding, b.cfg.MinRoomSize, b.cfg.MaxRoomSize)
	d := clamp(reg.Height*f-b.cfg.RoomPadding, b.cfg.MinRoomSize, b.cfg.MaxRoomSize)

	c := reg.Center().Add((b.rng.Float64()*2-1)*jitter, (b.rng.Float64()*2-1)*jitter)
	c = b.applyGravity(c)
	c = b.insideMap(c, w, d)

	t := b.rollRole()
	if !b.fits(world.RectAround(c, w, d)) {
		b.log.Debug("region room rejected", "center", c, "type", t)
		return
	}
	b.addRoom(t, c, w, d)
}

// applyGravity pulls rooms at either end of the start-boss axis toward the
// middle so the critical path does not bunch up.
func (b *builder) applyGravity(c world.Point) world.Point {
	if b.l.Start == nil || b.l.Boss == nil {
		return c
	}
	ds := c.Dist(b.l.Start.Center)
	db := c.Dist(b.l.Boss.Center)
	if ds+db == 0 {
		return c
	}
	var toward world.Point
	switch ratio := ds / (ds + db); {
	case ratio < gravityLow:
		toward = b.l.Boss.Center
	case ratio > gravityHigh:
		toward = b.l.Start.Center
	default:
		return c
	}
	return c.Add((toward.X-c.X)*gravityPull, (toward.Z-c.Z)*gravityPull)
}

func (b *builder) rollRole() layout.RoomType {
	switch r := b.rng.Float64(); {
	case r < b.cfg.SecretChance:
		return layout.RoomSecret
	case r < b.cfg.SecretChance+b.cfg.ShopChance:
		return layout.RoomShop
	default:
		return layout.RoomNormal
	}
}

// addRandomRoom tries a handful of random sizes and positions and keeps the
// first that passes the rejection tests.
func (b *builder) addRandomRoom() bool {
	span := b.cfg.MaxRoomSize - b.cfg.MinRoomSize
	bounds := b.l.Bounds
	for try := 0; try < b.cfg.FillTries; try++ {
		w := b.cfg.MinRoomSize + b.rng.Float64()*span
		d := b.cfg.MinRoomSize + b.rng.Float64()*span
		c := world.Pt(
			bounds.MinX+w/2+b.rng.Float64()*(bounds.Width()-w),
			bounds.MinZ+d/2+b.rng.Float64()*(bounds.Depth()-d),
		)
		if !b.fits(world.RectAround(c, w, d)) {
			continue
		}
		t := layout.RoomNormal
		if b.rng.Float64() < b.cfg.FillSecretChance {
			t = layout.RoomSecret
		}
		b.addRoom(t, c, w, d)
		return true
	}
	return false
}

// fits applies the placement rejection tests: no corridor may touch the
// candidate and every existing room must be at least half a corridor width
// away on one axis.
func (b *builder) fits(rect world.Rect) bool {
	for _, s := range b.segments() {
		if rect.Intersects(s.Rect) {
			return false
		}
	}
	c := rect.Center()
	buffer := b.cfg.CorridorWidth / 2
	for _, r := range b.l.Rooms {
		dx := abs(c.X - r.Center.X)
		dz := abs(c.Z - r.Center.Z)
		if dx < (rect.Width()+r.Width)/2+buffer && dz < (rect.Depth()+r.Depth)/2+buffer {
			return false
		}
	}
	return true
}

// insideMap moves c so a w x d room centered on it stays within the map.
func (b *builder) insideMap(c world.Point, w, d float64) world.Point {
	bounds := b.l.Bounds
	return world.Pt(
		clamp(c.X, bounds.MinX+w/2, bounds.MaxX-w/2),
		clamp(c.Z, bounds.MinZ+d/2, bounds.MaxZ-d/2),
	)
}

// ensureStartRoom guarantees a start room exists. When placement produced
// nothing at all a small start room is created at the origin.
func (b *builder) ensureStartRoom() {
	if b.l.Start != nil {
		return
	}
	if len(b.l.Rooms) > 0 {
		r := b.l.Rooms[0]
		b.scene.removeRoom(r)
		r.Type = layout.RoomStart
		b.scene.addRoom(r)
		b.l.Start = r
		b.log.Warn("no start room placed, promoted room", "room", r.ID)
		return
	}
	b.addRoom(layout.RoomStart, world.Pt(0, 0), emergencySize, emergencySize)
	b.log.Warn("no rooms placed, created emergency start room")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
