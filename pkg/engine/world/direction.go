package world

// Direction represents a cardinal direction on the ground plane.
// North points toward -Z, East toward +X.
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the lower-case name of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the unit step along X and Z for this direction
func (d Direction) Delta() (dx, dz float64) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// RunsAlongX reports whether a wall facing this direction runs along the X axis.
// North and south walls do; east and west walls run along Z.
func (d Direction) RunsAlongX() bool {
	return d == North || d == South
}

// ClosestDirection returns the cardinal direction that best describes the offset
// (dx, dz). Ties go to the Z axis.
func ClosestDirection(dx, dz float64) Direction {
	if abs(dx) > abs(dz) {
		if dx > 0 {
			return East
		}
		return West
	}
	if dz > 0 {
		return South
	}
	return North
}

// Side tags a wall stub relative to the gap it flanks.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return ""
	}
}

// WallDir identifies which edge a wall segment belongs to and, for stubs,
// which side of an opening it sits on.
type WallDir struct {
	Base Direction
	Side Side
}

// BaseWall returns the untrimmed wall direction for d.
func BaseWall(d Direction) WallDir {
	return WallDir{Base: d}
}

// IsBase reports whether w is a full, unsplit wall.
func (w WallDir) IsBase() bool {
	return w.Side == SideNone
}

// WithSide returns a copy of w tagged with s.
func (w WallDir) WithSide(s Side) WallDir {
	return WallDir{Base: w.Base, Side: s}
}

func (w WallDir) String() string {
	if w.Side == SideNone {
		return w.Base.String()
	}
	return w.Base.String() + "_" + w.Side.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
