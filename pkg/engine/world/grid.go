package world

import (
	"math"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Grid is a raster sampling of a rectangular area of the ground plane.
// Row grows with Z and column grows with X.
type Grid struct {
	cells [][]*Cell
	rows  int
	cols  int

	origin Point
	scale  float64 // cells per world unit
}

// NewGrid creates a new grid with the given dimensions and a unit scale
// anchored at the origin.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{scale: 1}
	g.Build(rows, cols)
	return g
}

// NewGridOver creates a grid covering bounds at scale cells per unit.
func NewGridOver(bounds Rect, scale float64) *Grid {
	if scale <= 0 {
		scale = 1
	}
	rows := int(math.Ceil(bounds.Depth()*scale)) + 1
	cols := int(math.Ceil(bounds.Width()*scale)) + 1
	g := &Grid{origin: Point{X: bounds.MinX, Z: bounds.MinZ}, scale: scale}
	g.Build(rows, cols)
	return g
}

// Build (re)allocates every cell and links neighbours.
func (g *Grid) Build(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g.rows = rows
	g.cols = cols
	g.cells = make([][]*Cell, rows)
	for row := 0; row < rows; row++ {
		g.cells[row] = make([]*Cell, cols)
		for col := 0; col < cols; col++ {
			g.cells[row][col] = NewCell(row, col)
		}
	}
	g.BuildAllCellConnections()
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Scale returns the number of cells per world unit.
func (g *Grid) Scale() float64 {
	return g.scale
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(row, col int) *Cell {
	if !g.IsValidPosition(row, col) {
		return nil
	}
	return g.cells[row][col]
}

// GetCellRelative returns the cell adjacent to the given cell in the specified direction
func (g *Grid) GetCellRelative(c *Cell, dir Direction) *Cell {
	if c == nil || !dir.IsValid() {
		return nil
	}
	dx, dz := dir.Delta()
	return g.GetCell(c.Row+int(dz), c.Col+int(dx))
}

// ForEachCell calls fn for every cell in row-major order.
func (g *Grid) ForEachCell(fn func(row, col int, cell *Cell)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			fn(row, col, g.cells[row][col])
		}
	}
}

// BuildAllCellConnections links every cell to its four neighbours.
func (g *Grid) BuildAllCellConnections() {
	g.ForEachCell(func(row, col int, cell *Cell) {
		for _, dir := range AllDirections() {
			cell.SetNeighbor(dir, g.GetCellRelative(cell, dir))
		}
	})
}

// Project maps a world point to the row and column containing it. The result
// may lie outside the grid.
func (g *Grid) Project(p Point) (row, col int) {
	row = int(math.Floor((p.Z - g.origin.Z) * g.scale))
	col = int(math.Floor((p.X - g.origin.X) * g.scale))
	return row, col
}

// CellAt returns the cell containing p, or nil.
func (g *Grid) CellAt(p Point) *Cell {
	row, col := g.Project(p)
	return g.GetCell(row, col)
}

// Paint stamps kind and tag onto every cell covered by r. Degenerate rects
// (walls) paint the single row or column they lie on.
func (g *Grid) Paint(r Rect, kind CellKind, tag int) {
	r0, r1 := g.span(r.MinZ, r.MaxZ, g.origin.Z)
	c0, c1 := g.span(r.MinX, r.MaxX, g.origin.X)
	for row := max(r0, 0); row <= min(r1, g.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, g.cols-1); col++ {
			cell := g.cells[row][col]
			cell.Kind = kind
			cell.Tag = tag
		}
	}
}

func (g *Grid) span(lo, hi, origin float64) (int, int) {
	a := int(math.Floor((lo - origin) * g.scale))
	if hi-lo <= 0 {
		return a, a
	}
	b := int(math.Ceil((hi-origin)*g.scale)) - 1
	if b < a {
		b = a
	}
	return a, b
}

// CountReachable returns how many walkable cells can be reached from start
// moving north, east, south and west.
func (g *Grid) CountReachable(start *Cell) int {
	if !start.Walkable() {
		return 0
	}
	visited := mapset.New[*Cell]()
	visited.Put(start)
	q := queue.New[*Cell]()
	q.Enqueue(start)
	for !q.Empty() {
		c := q.Dequeue()
		for _, n := range c.GetNeighbors() {
			if n.Walkable() && !visited.Has(n) {
				visited.Put(n)
				q.Enqueue(n)
			}
		}
	}
	return visited.Size()
}

// CountWalkable returns the total number of walkable cells.
func (g *Grid) CountWalkable() int {
	n := 0
	g.ForEachCell(func(_, _ int, cell *Cell) {
		if cell.Walkable() {
			n++
		}
	})
	return n
}
