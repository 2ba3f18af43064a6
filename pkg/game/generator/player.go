package generator

import (
	"math"

	"dungeonforge/pkg/engine/world"
)

// PlayerBody is the physics collaborator that receives the spawn position.
type PlayerBody interface {
	SetPosition(p world.Point)
}

const (
	spawnMargin      = 2.0
	spawnMarginShare = 0.2
)

// placePlayer picks a random point safely inside the start room, or inside
// the largest room when the start room is too cramped. Room roles never
// change.
func (b *builder) placePlayer() {
	r := b.l.Start
	if r == nil {
		return
	}
	if r.Area() < b.cfg.MinSpawnArea {
		if big := b.l.Largest; big != nil && big.Area() >= b.cfg.MinSpawnArea {
			b.log.Debug("start room too small for spawn, using largest room", "start", r.ID, "room", big.ID)
			r = big
		}
	}

	margin := math.Min(spawnMargin, spawnMarginShare*math.Min(r.Width, r.Depth))
	safeW := math.Max(1, r.Width-2*margin)
	safeD := math.Max(1, r.Depth-2*margin)
	p := world.Pt(
		r.Center.X+(b.rng.Float64()-0.5)*safeW,
		r.Center.Z+(b.rng.Float64()-0.5)*safeD,
	)

	b.l.Spawn = p
	b.l.SpawnRoom = r
	r.Visited = true
	if b.cfg.Player != nil {
		b.cfg.Player.SetPosition(p)
	}
}

