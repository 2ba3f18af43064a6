package layout

import (
	"image/color"

	"dungeonforge/pkg/engine/world"
)

// VisualID is the handle a renderer uses to match RemoveObject to AddObject.
// Zero means no visual has been emitted.
type VisualID uint64

// VisualKind tells a renderer what a visual stands for.
type VisualKind int

const (
	VisualFloor VisualKind = iota
	VisualCeiling
	VisualWall
	VisualDoorFrame
	VisualIndicator
)

func (k VisualKind) String() string {
	switch k {
	case VisualFloor:
		return "floor"
	case VisualCeiling:
		return "ceiling"
	case VisualWall:
		return "wall"
	case VisualDoorFrame:
		return "door_frame"
	case VisualIndicator:
		return "indicator"
	default:
		return "unknown"
	}
}

// NoOwner marks visuals that belong to a corridor rather than a room.
const NoOwner = -1

// Visual is the renderable description of one layout element.
type Visual struct {
	ID        VisualID
	Kind      VisualKind
	Rect      world.Rect
	Elevation float64
	Height    float64
	Tint      color.RGBA
	Owner     int
}

// Palette
var (
	TintCorridor  = color.RGBA{R: 0x55, G: 0x55, B: 0x66, A: 0xff}
	TintWall      = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	TintDoorFrame = color.RGBA{R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff}
	TintCeiling   = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// FloorTint returns the floor colour for a room role.
func FloorTint(t RoomType) color.RGBA {
	switch t {
	case RoomStart:
		return color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	case RoomBoss:
		return color.RGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	case RoomShop:
		return color.RGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	case RoomSecret:
		return color.RGBA{R: 0x9c, G: 0x27, B: 0xb0, A: 0xff}
	default:
		return color.RGBA{R: 0x6d, G: 0x6d, B: 0x6d, A: 0xff}
	}
}

// HasIndicator reports whether doors into rooms of this role carry a marker.
func (t RoomType) HasIndicator() bool {
	return t == RoomBoss || t == RoomShop || t == RoomSecret
}
