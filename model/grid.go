package model

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// Cell is the state of a single grid position. Only Dead and Alive are valid.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Grid is a fixed-shape rows x columns board. Row index grows downward,
// column index grows rightward.
type Grid struct {
	rows    int
	columns int
	cells   [][]Cell

	activeBounds struct {
		minRow, maxRow, minCol, maxCol int
		valid                          bool
	}
}

// NewGrid creates an all-Dead grid with the specified dimensions
func NewGrid(rows, columns int) *Grid {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, columns)
	}
	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   cells,
	}
}

// FromRows builds a grid from a literal layout where '*' or 'o' is alive
// and anything else is dead. All rows must be the same length.
func FromRows(layout ...string) *Grid {
	columns := 0
	if len(layout) > 0 {
		columns = len(layout[0])
	}
	g := NewGrid(len(layout), columns)
	for r, line := range layout {
		for c, ch := range line {
			if ch == '*' || ch == 'o' {
				g.Set(r, c, Alive)
			}
		}
	}
	return g
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns
func (g *Grid) Columns() int {
	return g.columns
}

// SameShape reports whether both grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.rows == o.rows && g.columns == o.columns
}

// Reset reshapes the grid and clears every cell. Only pooled grids are reset.
func (g *Grid) Reset(rows, columns int) {
	g.rows = rows
	g.columns = columns
	g.activeBounds.valid = false

	if len(g.cells) != rows {
		g.cells = make([][]Cell, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != columns {
			g.cells[i] = make([]Cell, columns)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear sets all cells to Dead
func (g *Grid) Clear() {
	for r := range g.rows {
		clear(g.cells[r])
	}
	g.activeBounds.valid = false
}

// Set writes a cell; writes outside the grid are ignored
func (g *Grid) Set(row, col int, c Cell) {
	if row >= 0 && row < g.rows && col >= 0 && col < g.columns {
		g.cells[row][col] = c
		g.activeBounds.valid = false
	}
}

// Get returns the state of a cell, Dead outside the grid
func (g *Grid) Get(row, col int) Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.columns {
		return Dead
	}
	return g.cells[row][col]
}

// Row exposes a single row for fast sequential access. Callers must not resize
// it, and must call Invalidate once they are done writing through it.
func (g *Grid) Row(row int) []Cell {
	return g.cells[row]
}

// Invalidate drops the cached active bounds after writes made through Row.
func (g *Grid) Invalidate() {
	g.activeBounds.valid = false
}

// CopyFrom overwrites g with the cells of src. Shapes must match.
func (g *Grid) CopyFrom(src *Grid) {
	for r := range g.rows {
		copy(g.cells[r], src.cells[r])
	}
	g.activeBounds.valid = false
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.rows, g.columns)
	c.CopyFrom(g)
	return c
}

// Equal reports whether both grids have the same shape and cells
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameShape(o) {
		return false
	}
	for r := range g.rows {
		for c := range g.columns {
			if g.cells[r][c] != o.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// CountNeighbors sums the Moore neighbourhood of (row, col). Positions
// outside the grid count as Dead.
func (g *Grid) CountNeighbors(row, col int) int {
	count := 0

	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.columns-1, col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue
			}
			count += int(g.cells[r][c])
		}
	}

	return count
}

// calculateActiveBounds calculates the bounding box of living cells
func (g *Grid) calculateActiveBounds() {
	g.activeBounds.valid = false

	for r := range g.rows {
		for c := range g.columns {
			if g.cells[r][c] != Alive {
				continue
			}
			if !g.activeBounds.valid {
				g.activeBounds.minRow, g.activeBounds.maxRow = r, r
				g.activeBounds.minCol, g.activeBounds.maxCol = c, c
				g.activeBounds.valid = true
				continue
			}
			g.activeBounds.minRow = min(g.activeBounds.minRow, r)
			g.activeBounds.maxRow = max(g.activeBounds.maxRow, r)
			g.activeBounds.minCol = min(g.activeBounds.minCol, c)
			g.activeBounds.maxCol = max(g.activeBounds.maxCol, c)
		}
	}
}

// ActiveBounds returns the inclusive bounding box of living cells.
// ok is false when the grid has no living cells.
func (g *Grid) ActiveBounds() (minRow, maxRow, minCol, maxCol int, ok bool) {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}
	b := g.activeBounds
	return b.minRow, b.maxRow, b.minCol, b.maxCol, b.valid
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	minRow, maxRow, minCol, maxCol, ok := g.ActiveBounds()
	if !ok {
		return 0
	}
	return (maxRow - minRow + 1) * (maxCol - minCol + 1)
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for r := range g.rows {
		for c := range g.columns {
			count += int(g.cells[r][c])
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for r := range g.rows {
		row := make([]byte, g.columns)
		for c, cell := range g.cells[r] {
			row[c] = byte(cell)
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders the grid with 'o' for alive and '.' for dead, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.columns + 1))
	for r := range g.rows {
		for c := range g.columns {
			if g.cells[r][c] == Alive {
				b.WriteByte('o')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
