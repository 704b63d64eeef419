package viewshed

import (
	"fmt"
	"math"
)

// Cell describes one grid cell as seen from the viewpoint: the angular
// interval its unit-square footprint subtends, its Euclidean distance in
// cell units, and the two opaque scalars the elevation transform fills in
// before the sweep (see PopulateOffsets).
type Cell struct {
	Row, Col int

	// Distance from the viewpoint in cell units.
	Distance float64

	// Angles in [0, 2π), counter-clockwise from due east. For cells due
	// east of the viewpoint the interval wraps: MinAngle is just below 2π
	// and MaxAngle just above 0.
	MinAngle, CenterAngle, MaxAngle float64

	// Offset is the horizon value presented by the cell; Visibility is the
	// horizon it casts over cells behind it.
	Offset, Visibility float64
}

// Octants counter-clockwise from due east. Even octants are the four
// axis-aligned directions, which must classify exactly (not fall into a
// neighboring diagonal octant) so that wrap handling stays deterministic.
const (
	octEast = iota
	octNorthEast
	octNorth
	octNorthWest
	octWest
	octSouthWest
	octSouth
	octSouthEast
)

// cornerTable gives, per octant, the two corners of the unit cell square
// extremal in angle from the viewpoint, as row/col offsets from the cell
// center: {minRowOff, minColOff, maxRowOff, maxColOff}.
var cornerTable = [8][4]float64{
	octEast:      {+0.5, -0.5, -0.5, -0.5},
	octNorthEast: {+0.5, +0.5, -0.5, -0.5},
	octNorth:     {+0.5, +0.5, +0.5, -0.5},
	octNorthWest: {-0.5, +0.5, +0.5, -0.5},
	octWest:      {-0.5, +0.5, +0.5, +0.5},
	octSouthWest: {-0.5, -0.5, +0.5, +0.5},
	octSouth:     {-0.5, -0.5, -0.5, +0.5},
	octSouthEast: {+0.5, -0.5, -0.5, +0.5},
}

// octant buckets the viewpoint-to-cell offset. Rows grow downward, so
// dRow < 0 means north of the viewpoint.
func octant(dRow, dCol int) int {
	switch {
	case dRow == 0 && dCol > 0:
		return octEast
	case dRow < 0 && dCol > 0:
		return octNorthEast
	case dRow < 0 && dCol == 0:
		return octNorth
	case dRow < 0:
		return octNorthWest
	case dRow == 0:
		return octWest
	case dCol < 0:
		return octSouthWest
	case dCol == 0:
		return octSouth
	default:
		return octSouthEast
	}
}

// normalizeAngle brings an angle within one turn of [0, 2π) into the
// interval, folding negatives up and 2π (and above) down.
func normalizeAngle(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// cellAngle is the angle of a point offset (dRow, dCol) from the viewpoint,
// in [0, 2π). The row axis is negated: rows grow downward while angles grow
// counter-clockwise.
func cellAngle(dRow, dCol float64) float64 {
	return normalizeAngle(math.Atan2(-dRow, dCol))
}

// ClassifyCells computes a Cell record for every grid cell within radius of
// the viewpoint (vr, vc), excluding the viewpoint cell itself. A negative
// radius means unbounded. Cells are emitted in row-major order.
func ClassifyCells(rows, cols, vr, vc int, radius float64) ([]Cell, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("classifying %dx%d grid: %w", rows, cols, ErrEmptyGrid)
	}
	if vr < 0 || vr >= rows || vc < 0 || vc >= cols {
		return nil, fmt.Errorf("viewpoint (%d,%d) in %dx%d grid: %w", vr, vc, rows, cols, ErrOutOfBounds)
	}

	maxSq := math.Inf(1)
	if radius >= 0 {
		maxSq = radius * radius
	}

	cells := make([]Cell, 0, rows*cols-1)
	for r := range rows {
		for c := range cols {
			dRow := r - vr
			dCol := c - vc
			if dRow == 0 && dCol == 0 {
				continue
			}
			distSq := float64(dRow*dRow + dCol*dCol)
			if distSq > maxSq {
				continue
			}

			k := cornerTable[octant(dRow, dCol)]
			cells = append(cells, Cell{
				Row:         r,
				Col:         c,
				Distance:    math.Sqrt(distSq),
				MinAngle:    cellAngle(float64(dRow)+k[0], float64(dCol)+k[1]),
				CenterAngle: cellAngle(float64(dRow), float64(dCol)),
				MaxAngle:    cellAngle(float64(dRow)+k[2], float64(dCol)+k[3]),
			})
		}
	}
	return cells, nil
}
