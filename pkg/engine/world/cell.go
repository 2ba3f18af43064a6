// Package world provides engine-level spatial primitives: cardinal directions,
// ground-plane geometry, and a raster grid used to sample continuous layouts
// into cells for text output and reachability checks.
package world

// CellKind describes what occupies a raster cell.
type CellKind int

const (
	CellVoid CellKind = iota
	CellFloor
	CellCorridor
	CellWall
	CellDoor
)

// Cell represents a single sample of the raster grid.
type Cell struct {
	// Grid position
	Row int
	Col int

	Kind CellKind

	// Tag is the id of the room that owns this cell, or -1.
	Tag int

	// Visibility state
	Visited bool
	Lit     bool

	// Navigation - links to adjacent cells
	North *Cell
	East  *Cell
	South *Cell
	West  *Cell
}

// NewCell creates an empty cell at the given position
func NewCell(row, col int) *Cell {
	return &Cell{Row: row, Col: col, Tag: -1}
}

// Walkable reports whether a player could stand in the cell.
func (c *Cell) Walkable() bool {
	if c == nil {
		return false
	}
	return c.Kind == CellFloor || c.Kind == CellCorridor || c.Kind == CellDoor
}

// GetNeighbor returns the neighboring cell in the given direction
func (c *Cell) GetNeighbor(dir Direction) *Cell {
	if c == nil {
		return nil
	}
	switch dir {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return nil
	}
}

// SetNeighbor sets the neighboring cell in the given direction
func (c *Cell) SetNeighbor(dir Direction, neighbor *Cell) {
	if c == nil {
		return
	}
	switch dir {
	case North:
		c.North = neighbor
	case East:
		c.East = neighbor
	case South:
		c.South = neighbor
	case West:
		c.West = neighbor
	}
}

// GetNeighbors returns all non-nil adjacent cells
func (c *Cell) GetNeighbors() []*Cell {
	var neighbors []*Cell
	for _, dir := range AllDirections() {
		if n := c.GetNeighbor(dir); n != nil {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}
