package viewshed

import "sort"

// sweepEvents holds the three angle-sorted index permutations over a cell
// list: enter by MinAngle, center by CenterAngle, exit by MaxAngle.
type sweepEvents struct {
	enter  []int
	center []int
	exit   []int
}

// buildEvents sorts cell indices ascending by the given angle field.
// Ties are broken by distance (closer cells first) and then by original
// index, keeping activation order deterministic.
func buildEvents(cells []Cell) sweepEvents {
	return sweepEvents{
		enter:  argsort(cells, func(c *Cell) float64 { return c.MinAngle }),
		center: argsort(cells, func(c *Cell) float64 { return c.CenterAngle }),
		exit:   argsort(cells, func(c *Cell) float64 { return c.MaxAngle }),
	}
}

func argsort(cells []Cell, key func(*Cell) float64) []int {
	idx := make([]int, len(cells))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := key(&cells[idx[a]]), key(&cells[idx[b]])
		if ka != kb {
			return ka < kb
		}
		return cells[idx[a]].Distance < cells[idx[b]].Distance
	})
	return idx
}
