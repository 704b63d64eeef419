package viewshed

import "github.com/terrascope/terrascope/internal/raster"

// PopulateOffsets fills each cell's Offset and Visibility fields from the
// elevation grid. The observer stands observerElev above the terrain at the
// viewpoint; targetElev is added to every target cell (e.g. to test sight of
// objects standing on the ground rather than the ground itself). Both fields
// are slopes, so comparisons along a ray are distance-independent: a cell is
// in view when its Offset clears the steepest Visibility slope of the cells
// in front of it.
func PopulateOffsets(cells []Cell, dem *raster.Grid, vr, vc int, observerElev, targetElev, cellSize float64) {
	base := dem.At(vr, vc) + observerElev
	for i := range cells {
		c := &cells[i]
		d := c.Distance * cellSize
		z := dem.At(c.Row, c.Col)
		c.Offset = (z + targetElev - base) / d
		c.Visibility = (z - base) / d
	}
}
