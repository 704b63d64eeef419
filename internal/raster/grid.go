package raster

import (
	"errors"
	"fmt"
)

// ErrBadShape is returned when a grid is created with non-positive dimensions.
var ErrBadShape = errors.New("raster: non-positive grid dimensions")

// Grid is a dense row-major raster of float64 cells.
// NoData marks cells carrying no value (unseen, outside coverage).
type Grid struct {
	rows, cols int
	cells      []float64

	NoData float64
}

// New creates a zero-filled grid of the given shape.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("creating %dx%d grid: %w", rows, cols, ErrBadShape)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]float64, rows*cols),
	}, nil
}

// NewLike creates a grid with the same shape and NoData value as g,
// filled with g's NoData.
func NewLike(g *Grid) *Grid {
	out := &Grid{
		rows:   g.rows,
		cols:   g.cols,
		cells:  make([]float64, len(g.cells)),
		NoData: g.NoData,
	}
	out.Fill(g.NoData)
	return out
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the value at (row, col). Panics on out-of-range indices.
func (g *Grid) At(row, col int) float64 {
	return g.cells[row*g.cols+col]
}

// Set writes the value at (row, col). Panics on out-of-range indices.
func (g *Grid) Set(row, col int, v float64) {
	g.cells[row*g.cols+col] = v
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Fill sets every cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]float64, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells, NoData: g.NoData}
}

// Equal reports whether two grids have identical shape and cell values.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
