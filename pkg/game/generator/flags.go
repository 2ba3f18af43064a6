package generator

import (
	"github.com/spf13/pflag"
)

// BindFlags exposes every tunable on fs, with c's current values as
// defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one from the clock)")

	fs.Float64Var(&c.MapWidth, "width", c.MapWidth, "map width in world units")
	fs.Float64Var(&c.MapHeight, "height", c.MapHeight, "map depth in world units")
	fs.IntVar(&c.RoomCount, "rooms", c.RoomCount, "region splits to attempt")
	fs.IntVar(&c.MinRooms, "min-rooms", c.MinRooms, "fill with extra rooms up to this count")
	fs.Float64Var(&c.MinRoomSize, "min-room-size", c.MinRoomSize, "smallest room side")
	fs.Float64Var(&c.MaxRoomSize, "max-room-size", c.MaxRoomSize, "largest room side")
	fs.Float64Var(&c.RoomPadding, "room-padding", c.RoomPadding, "space kept between a room and its region edge")
	fs.Float64Var(&c.RoomHeight, "room-height", c.RoomHeight, "wall height")

	fs.Float64Var(&c.CorridorWidth, "corridor-width", c.CorridorWidth, "corridor width")
	fs.Float64Var(&c.DoorWidthRatio, "door-ratio", c.DoorWidthRatio, "door width as a share of corridor width")

	fs.Float64Var(&c.SecretChance, "secret-chance", c.SecretChance, "chance a region room is secret")
	fs.Float64Var(&c.ShopChance, "shop-chance", c.ShopChance, "chance a region room is a shop")
	fs.Float64Var(&c.FillSecretChance, "fill-secret-chance", c.FillSecretChance, "chance a fill room is secret")
	fs.Float64Var(&c.ExtraEdgeFraction, "extra-edges", c.ExtraEdgeFraction, "share of extra loop connections")
	fs.IntVar(&c.FillAttempts, "fill-attempts", c.FillAttempts, "random room attempts when topping up the room count")
	fs.IntVar(&c.FillTries, "fill-tries", c.FillTries, "positions tried per random room attempt")
	fs.Float64Var(&c.AdjacencyBuffer, "adjacency-buffer", c.AdjacencyBuffer, "gap up to which two rooms count as touching")

	fs.IntVar(&c.Caps.Start, "cap-start", c.Caps.Start, "door cap for the start room")
	fs.IntVar(&c.Caps.Boss, "cap-boss", c.Caps.Boss, "door cap for the boss room")
	fs.IntVar(&c.Caps.Shop, "cap-shop", c.Caps.Shop, "door cap for shops")
	fs.IntVar(&c.Caps.Secret, "cap-secret", c.Caps.Secret, "door cap for secret rooms")
	fs.IntVar(&c.Caps.Normal, "cap-normal", c.Caps.Normal, "door cap for normal rooms")
	fs.IntVar(&c.Caps.Largest, "cap-largest", c.Caps.Largest, "door cap for the largest normal room")

	fs.Float64Var(&c.MinWallSize, "min-wall", c.MinWallSize, "shortest wall piece kept")
	fs.Float64Var(&c.StraightTolerance, "straight-tolerance", c.StraightTolerance, "anchor offset below which a corridor runs straight")
	fs.Float64Var(&c.SegmentOverlapReject, "segment-overlap-reject", c.SegmentOverlapReject, "share of a new segment that may overlap an existing corridor")
	fs.Float64Var(&c.DoorSpacingFactor, "door-spacing", c.DoorSpacingFactor, "minimum gap between branch doors, in corridor widths")
	fs.Float64Var(&c.WallTrimRemoveRatio, "wall-remove-ratio", c.WallTrimRemoveRatio, "covered share at which a wall is removed instead of trimmed")
	fs.Float64Var(&c.MinSpawnArea, "min-spawn-area", c.MinSpawnArea, "smallest floor area the player may spawn in")
}
