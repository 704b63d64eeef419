package viewshed

import "github.com/terrascope/terrascope/internal/raster"

// maxSlotGap is the number of consecutive inactive slots the evaluator
// tolerates before treating the rest of the array as stale remnants beyond
// the physical end of the ray.
const maxSlotGap = 2

// evaluateLine walks the active line outward from the viewpoint, maintaining
// the running horizon maximum, and stamps each cell's visibility delta into
// out the first time the cell is reached. Cells keep their first stamp for
// the whole sweep; a value at or below zero means the cell is occluded.
func evaluateLine(line []lineSlot, cells []Cell, out *raster.Grid) {
	horizon := 0.0
	seeded := false
	gap := 0
	for i := range line {
		s := &line[i]
		if !s.active {
			// A gap only ends the segment once the segment has begun;
			// leading empty slots are normal (slot 0 is the viewpoint,
			// and the nearest cell can sit a few slots out).
			if seeded {
				gap++
				if gap > maxSlotGap {
					break
				}
			}
			continue
		}
		gap = 0

		// The nearest cell on the ray sets the initial horizon; nothing
		// stands between it and the observer.
		if !seeded {
			horizon = s.visibility
			seeded = true
		}

		c := &cells[s.cell]
		if out.At(c.Row, c.Col) == out.NoData {
			out.Set(c.Row, c.Col, s.offset-horizon)
		}
		// The horizon a cell casts over cells behind it is its own
		// visibility value, not the stamped delta.
		if s.visibility > horizon {
			horizon = s.visibility
		}
	}
}

// countActive counts active slots over the whole array. The sweep uses it to
// verify slot accounting after every step.
func countActive(line []lineSlot) int {
	n := 0
	for i := range line {
		if line[i].active {
			n++
		}
	}
	return n
}
