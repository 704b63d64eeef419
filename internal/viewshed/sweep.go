package viewshed

import (
	"fmt"
	"math"

	"github.com/terrascope/terrascope/internal/raster"
)

// Params configure a single-viewpoint sweep.
type Params struct {
	// Row, Col locate the viewpoint on the grid.
	Row, Col int

	// Radius bounds the analysis in cell units; negative means unbounded.
	Radius float64

	// ObserverElev is added to the terrain height at the viewpoint,
	// TargetElev to the height of every target cell.
	ObserverElev float64
	TargetElev   float64

	// CellSize is the ground size of one cell; zero defaults to 1.
	CellSize float64
}

// Compute runs one full radial sweep around the viewpoint and writes a
// visibility value into out for every cell reached. out must have the same
// shape as dem; it is filled with out.NoData first, and cells the sweep
// never reaches keep that value. A stamped value above zero means the cell
// is visible from the viewpoint; at or below zero, occluded.
func Compute(dem, out *raster.Grid, p Params) error {
	if dem.Rows() != out.Rows() || dem.Cols() != out.Cols() {
		return fmt.Errorf("input %dx%d, output %dx%d: %w",
			dem.Rows(), dem.Cols(), out.Rows(), out.Cols(), ErrShapeMismatch)
	}

	cells, err := ClassifyCells(dem.Rows(), dem.Cols(), p.Row, p.Col, p.Radius)
	if err != nil {
		return err
	}

	cellSize := p.CellSize
	if cellSize <= 0 {
		cellSize = 1
	}
	PopulateOffsets(cells, dem, p.Row, p.Col, p.ObserverElev, p.TargetElev, cellSize)

	out.Fill(out.NoData)
	return sweep(cells, out, p.Row, p.Col, p.Radius)
}

// sweep rotates the ray through [0, 2π). Cells enter the active line at
// their min angle, leave at their max angle, and the line is evaluated after
// every discretized step. Cells due east of the viewpoint subtend a wrapping
// interval, so they are primed from their center events before the loop;
// their enter events sit just below 2π and fire again on the final steps,
// which re-activates them harmlessly (stamps are first-write-wins).
func sweep(cells []Cell, out *raster.Grid, vr, vc int, radius float64) error {
	points, angles := buildPerimeter(out.Rows(), out.Cols(), vr, vc, radius)
	n := len(points)
	if n == 0 || len(cells) == 0 {
		return nil
	}
	ev := buildEvents(cells)

	maxLine := n / 2
	ext := 0
	for _, p := range points {
		ext = max(ext, abs(p.row-vr), abs(p.col-vc))
	}
	// Edge-hugging rays can address slot 2·ext+1.
	maxLine = max(maxLine, ext+1)
	line := make([]lineSlot, 2*maxLine)

	// Priming: activate everything already crossed by the first ray.
	firstStep := 2 * math.Pi
	if n > 1 {
		firstStep = angles[1]
	}
	g := newRayGeometry(vr, vc, points[0])
	active := 0
	for _, ci := range ev.center {
		// Cells with center angle 0 subtend a wrapping interval and are
		// always part of the first ray, even when the first steps share
		// angle 0 (viewpoint on the bounding rectangle).
		if cells[ci].CenterAngle >= firstStep && cells[ci].CenterAngle != 0 {
			break
		}
		if err := addCell(line, cells, ci, g, vr, vc); err != nil {
			return fmt.Errorf("priming: %w", err)
		}
		active++
	}
	evaluateLine(line, cells, out)
	if got := countActive(line); got != active {
		return fmt.Errorf("priming left %d slots active, want %d: %w", got, active, ErrIndexFault)
	}

	iAdd, iRemove := 0, 0
	for i := range n {
		next := 2 * math.Pi
		if i+1 < n {
			next = angles[i+1]
		}

		removed := 0
		gDepart := newRayGeometry(vr, vc, points[i])
		for iRemove < len(ev.exit) && cells[ev.exit[iRemove]].MaxAngle <= next {
			if err := removeCell(line, cells, ev.exit[iRemove], gDepart, vr, vc); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			iRemove++
			removed++
		}

		added := 0
		gArrive := newRayGeometry(vr, vc, points[(i+1)%n])
		for iAdd < len(ev.enter) && cells[ev.enter[iAdd]].MinAngle < next {
			if err := addCell(line, cells, ev.enter[iAdd], gArrive, vr, vc); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			iAdd++
			added++
		}

		evaluateLine(line, cells, out)

		want := active + added - removed
		if got := countActive(line); got != want {
			return fmt.Errorf("step %d: %d slots active, want %d: %w", i, got, want, ErrIndexFault)
		}
		active = want
	}
	return nil
}

// addCell activates a cell's slot on the current ray. If the slot is taken,
// the sitting occupant moves to the paired slot first.
func addCell(line []lineSlot, cells []Cell, ci int, g rayGeometry, vr, vc int) error {
	c := &cells[ci]
	s := g.slotIndex(c.Row-vr, c.Col-vc)
	if s < 0 || s >= len(line) {
		return fmt.Errorf("cell (%d,%d) maps to slot %d of %d: %w", c.Row, c.Col, s, len(line), ErrIndexFault)
	}
	if line[s].active {
		line[pairedSlot(s)] = line[s]
	}
	line[s] = lineSlot{
		active:     true,
		cell:       ci,
		distance:   c.Distance,
		visibility: c.Visibility,
		offset:     c.Offset,
	}
	return nil
}

// removeCell deactivates a cell's slot. The slot is recomputed against the
// departing ray geometry, which can differ from the one the cell was added
// under; a distance mismatch means the cell sits in the paired slot.
func removeCell(line []lineSlot, cells []Cell, ci int, g rayGeometry, vr, vc int) error {
	c := &cells[ci]
	s := g.slotIndex(c.Row-vr, c.Col-vc)
	if s < 0 || s >= len(line) {
		return fmt.Errorf("cell (%d,%d) maps to slot %d of %d: %w", c.Row, c.Col, s, len(line), ErrIndexFault)
	}
	if !line[s].active || line[s].distance != c.Distance {
		s = pairedSlot(s)
	}
	line[s].active = false
	return nil
}
