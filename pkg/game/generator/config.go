package generator

import (
	"errors"
	"fmt"
	"log/slog"

	"dungeonforge/pkg/game/layout"
	"dungeonforge/pkg/game/renderer"
)

// Config holds every tunable of a generation run. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	MapWidth  float64
	MapHeight float64

	// RoomCount is the number of region splits to attempt. The layout always
	// ends up with at least max(MinRooms, RoomCount) rooms when space allows.
	RoomCount int
	MinRooms  int

	MinRoomSize float64
	MaxRoomSize float64
	RoomPadding float64
	RoomHeight  float64

	CorridorWidth  float64
	DoorWidthRatio float64

	SecretChance     float64
	ShopChance       float64
	FillSecretChance float64
	FillAttempts     int
	FillTries        int

	Caps              layout.DoorCaps
	ExtraEdgeFraction float64
	AdjacencyBuffer   float64

	MinWallSize          float64
	StraightTolerance    float64
	SegmentOverlapReject float64
	DoorSpacingFactor    float64
	WallTrimRemoveRatio  float64
	MinSpawnArea         float64

	// Seed drives every random decision. Zero picks a time-based seed; the
	// seed actually used is recorded in Layout.Seed.
	Seed int64

	Logger   *slog.Logger
	Renderer renderer.Renderer
	Player   PlayerBody
}

// DefaultConfig returns the standard 100x100 eight-room setup.
func DefaultConfig() Config {
	return Config{
		MapWidth:  100,
		MapHeight: 100,
		RoomCount: 8,
		MinRooms:  8,

		MinRoomSize: 8,
		MaxRoomSize: 24,
		RoomPadding: 4,
		RoomHeight:  5,

		CorridorWidth:  4,
		DoorWidthRatio: 0.8,

		SecretChance:     0.15,
		ShopChance:       0.10,
		FillSecretChance: 0.20,
		FillAttempts:     50,
		FillTries:        10,

		Caps:              layout.DefaultDoorCaps(),
		ExtraEdgeFraction: 0.05,
		AdjacencyBuffer:   0.5,

		MinWallSize:          0.5,
		StraightTolerance:    0.5,
		SegmentOverlapReject: 0.5,
		DoorSpacingFactor:    1.5,
		WallTrimRemoveRatio:  0.9,
		MinSpawnArea:         100,
	}
}

// DoorWidth returns the nominal opening width.
func (c Config) DoorWidth() float64 {
	return c.CorridorWidth * c.DoorWidthRatio
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.MapWidth <= 0 || c.MapHeight <= 0 {
		errs = append(errs, fmt.Errorf("map size must be positive, got %vx%v", c.MapWidth, c.MapHeight))
	}
	if c.RoomCount < 0 || c.MinRooms < 0 {
		errs = append(errs, errors.New("room counts must not be negative"))
	}
	if c.MinRoomSize <= 0 {
		errs = append(errs, fmt.Errorf("min room size must be positive, got %v", c.MinRoomSize))
	}
	if c.MaxRoomSize < c.MinRoomSize {
		errs = append(errs, fmt.Errorf("max room size %v is below min room size %v", c.MaxRoomSize, c.MinRoomSize))
	}
	if c.MaxRoomSize > c.MapWidth || c.MaxRoomSize > c.MapHeight {
		errs = append(errs, fmt.Errorf("max room size %v does not fit a %vx%v map", c.MaxRoomSize, c.MapWidth, c.MapHeight))
	}
	if c.CorridorWidth <= 0 {
		errs = append(errs, fmt.Errorf("corridor width must be positive, got %v", c.CorridorWidth))
	}
	if c.DoorWidthRatio <= 0 || c.DoorWidthRatio > 1 {
		errs = append(errs, fmt.Errorf("door width ratio must be in (0,1], got %v", c.DoorWidthRatio))
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"secret chance", c.SecretChance},
		{"shop chance", c.ShopChance},
		{"fill secret chance", c.FillSecretChance},
		{"extra edge fraction", c.ExtraEdgeFraction},
		{"segment overlap reject", c.SegmentOverlapReject},
	} {
		if p.v < 0 || p.v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1], got %v", p.name, p.v))
		}
	}
	if c.AdjacencyBuffer < 0 || c.StraightTolerance < 0 || c.DoorSpacingFactor < 0 {
		errs = append(errs, errors.New("spacing tolerances must not be negative"))
	}
	if c.MinWallSize < 0 || c.WallTrimRemoveRatio <= 0 || c.WallTrimRemoveRatio > 1 {
		errs = append(errs, errors.New("wall thresholds out of range"))
	}
	return errors.Join(errs...)
}
