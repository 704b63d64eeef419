package viewshed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope/terrascope/internal/raster"
)

// lineFor lays the given cells out on consecutive slots starting at slot 2,
// the position of the cell nearest the viewpoint on an axis ray.
func lineFor(cells []Cell) []lineSlot {
	line := make([]lineSlot, len(cells)+8)
	for i, c := range cells {
		line[i+2] = lineSlot{
			active:     true,
			cell:       i,
			distance:   c.Distance,
			visibility: c.Visibility,
			offset:     c.Offset,
		}
	}
	return line
}

func TestEvaluateLineHorizonIsRunningMaximum(t *testing.T) {
	cells := []Cell{
		{Row: 0, Col: 0, Distance: 1, Offset: 1, Visibility: 1},
		{Row: 0, Col: 1, Distance: 2, Offset: 3, Visibility: 3},
		{Row: 0, Col: 2, Distance: 3, Offset: 2, Visibility: 2},
		{Row: 0, Col: 3, Distance: 4, Offset: 5, Visibility: 5},
	}
	out, err := raster.New(1, 4)
	require.NoError(t, err)
	out.NoData = -9999
	out.Fill(out.NoData)

	evaluateLine(lineFor(cells), cells, out)

	// The nearest cell seeds the horizon with its own visibility; each
	// later cell is judged against the steepest slope in front of it.
	assert.Equal(t, 0.0, out.At(0, 0))
	assert.Equal(t, 2.0, out.At(0, 1))
	assert.Equal(t, -1.0, out.At(0, 2))
	assert.Equal(t, 2.0, out.At(0, 3))
}

func TestEvaluateLineFirstWriteWins(t *testing.T) {
	cells := []Cell{
		{Row: 0, Col: 0, Distance: 1, Offset: 1, Visibility: 1},
	}
	out, err := raster.New(1, 1)
	require.NoError(t, err)
	out.NoData = -9999
	out.Set(0, 0, 7)

	evaluateLine(lineFor(cells), cells, out)

	assert.Equal(t, 7.0, out.At(0, 0), "already stamped cells keep their value")
}

func TestEvaluateLineStopsAfterGap(t *testing.T) {
	cells := []Cell{
		{Row: 0, Col: 0, Distance: 1, Offset: 1, Visibility: 1},
		{Row: 0, Col: 1, Distance: 4, Offset: 9, Visibility: 9},
	}
	line := make([]lineSlot, 16)
	line[2] = lineSlot{active: true, cell: 0, distance: 1, visibility: 1, offset: 1}
	// More than two empty slots separate the second cell from the first.
	line[7] = lineSlot{active: true, cell: 1, distance: 4, visibility: 9, offset: 9}

	out, err := raster.New(1, 2)
	require.NoError(t, err)
	out.NoData = -9999
	out.Fill(out.NoData)

	evaluateLine(line, cells, out)

	assert.Equal(t, 0.0, out.At(0, 0))
	assert.Equal(t, out.NoData, out.At(0, 1), "cell beyond the gap is not evaluated")
}

func TestEvaluateLineToleratesLeadingGap(t *testing.T) {
	// After a geometry change the nearest active cell can sit several
	// slots out with everything below it empty; the scan must reach it
	// rather than treat the leading emptiness as the end of the ray.
	cells := []Cell{
		{Row: 0, Col: 0, Distance: 2.83, Offset: 1, Visibility: 1},
		{Row: 0, Col: 1, Distance: 4.24, Offset: 1, Visibility: 1},
	}
	line := make([]lineSlot, 16)
	line[4] = lineSlot{active: true, cell: 0, distance: 2.83, visibility: 1, offset: 1}
	line[6] = lineSlot{active: true, cell: 1, distance: 4.24, visibility: 1, offset: 1}

	out, err := raster.New(1, 2)
	require.NoError(t, err)
	out.NoData = -9999
	out.Fill(out.NoData)

	evaluateLine(line, cells, out)

	assert.Equal(t, 0.0, out.At(0, 0))
	assert.Equal(t, 0.0, out.At(0, 1))
}

func TestCountActive(t *testing.T) {
	line := make([]lineSlot, 8)
	assert.Zero(t, countActive(line))
	line[1].active = true
	line[6].active = true
	assert.Equal(t, 2, countActive(line))
}
