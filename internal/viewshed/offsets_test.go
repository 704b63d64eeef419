package viewshed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope/terrascope/internal/raster"
)

func TestPopulateOffsets(t *testing.T) {
	dem, err := raster.New(3, 3)
	require.NoError(t, err)
	dem.Set(1, 1, 10) // viewpoint terrain
	dem.Set(1, 2, 14)
	dem.Set(0, 1, 6)

	cells := []Cell{
		{Row: 1, Col: 2, Distance: 1},
		{Row: 0, Col: 1, Distance: 1},
	}
	PopulateOffsets(cells, dem, 1, 1, 2, 0, 1)

	// base = 10 + 2
	assert.InDelta(t, 2.0, cells[0].Offset, 1e-12)
	assert.InDelta(t, 2.0, cells[0].Visibility, 1e-12)
	assert.InDelta(t, -6.0, cells[1].Offset, 1e-12)
	assert.InDelta(t, -6.0, cells[1].Visibility, 1e-12)
}

func TestPopulateOffsetsTargetElevation(t *testing.T) {
	dem, err := raster.New(1, 3)
	require.NoError(t, err)

	cells := []Cell{{Row: 0, Col: 2, Distance: 2}}
	PopulateOffsets(cells, dem, 0, 0, 0, 3, 1)

	assert.InDelta(t, 1.5, cells[0].Offset, 1e-12)
	assert.Zero(t, cells[0].Visibility)
}

func TestPopulateOffsetsCellSizeScalesSlope(t *testing.T) {
	dem, err := raster.New(1, 3)
	require.NoError(t, err)
	dem.Set(0, 2, 30)

	cells := []Cell{{Row: 0, Col: 2, Distance: 2}}
	PopulateOffsets(cells, dem, 0, 0, 0, 0, 15)

	// 30 units of elevation over 2 cells of 15 ground units each.
	assert.InDelta(t, 1.0, cells[0].Offset, 1e-12)
	assert.InDelta(t, 1.0, cells[0].Visibility, 1e-12)
}
