package physics

import (
	"math"

	"github.com/tomz197/spiritwatch/internal/vector"
)

// SpatialGrid is a uniform grid for broad-phase proximity queries in a bounded world.
// Items are inserted by position and index, then nearby items can be queried
// via a 3x3 neighborhood lookup. Positions outside the world clamp to the border cells.
//
// Cell size must be >= the maximum query distance so that all candidates are
// found within the 3x3 neighborhood.
type SpatialGrid struct {
	origin      vector.Vector
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering the rectangle starting at origin with size w x h.
func NewSpatialGrid(origin vector.Vector, w, h, cellSize float64) *SpatialGrid {
	cols := max(int(math.Ceil(w/cellSize)), 1)
	rows := max(int(math.Ceil(h/cellSize)), 1)

	return &SpatialGrid{
		origin:      origin,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialGrid) Insert(p vector.Vector, index int) {
	col, row := g.posToCell(p)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood around p.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(p vector.Vector, fn func(index int) bool) {
	col, row := g.posToCell(p)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts world coordinates to grid cell coordinates, clamped to the grid.
func (g *SpatialGrid) posToCell(p vector.Vector) (col, row int) {
	col = int(math.Floor((p.X - g.origin.X) * g.invCellSize))
	row = int(math.Floor((p.Y - g.origin.Y) * g.invCellSize))
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return col, row
}
