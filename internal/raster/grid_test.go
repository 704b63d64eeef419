package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesShape(t *testing.T) {
	_, err := New(0, 5)
	assert.ErrorIs(t, err, ErrBadShape)
	_, err = New(5, -1)
	assert.ErrorIs(t, err, ErrBadShape)

	g, err := New(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Zero(t, g.At(2, 3))
}

func TestGridSetAt(t *testing.T) {
	g, err := New(2, 3)
	require.NoError(t, err)

	g.Set(1, 2, 42.5)
	assert.Equal(t, 42.5, g.At(1, 2))
	assert.Zero(t, g.At(0, 0))
}

func TestGridInBounds(t *testing.T) {
	g, err := New(2, 3)
	require.NoError(t, err)

	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(1, 2))
	assert.False(t, g.InBounds(2, 0))
	assert.False(t, g.InBounds(0, 3))
	assert.False(t, g.InBounds(-1, 0))
}

func TestNewLike(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)
	g.NoData = -9999
	g.Set(0, 0, 5)

	like := NewLike(g)
	assert.Equal(t, g.Rows(), like.Rows())
	assert.Equal(t, g.Cols(), like.Cols())
	assert.Equal(t, g.NoData, like.NoData)
	for r := range 2 {
		for c := range 2 {
			assert.Equal(t, -9999.0, like.At(r, c))
		}
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)
	g.NoData = -1
	g.Set(0, 1, 7)

	cp := g.Clone()
	require.True(t, g.Equal(cp))
	assert.Equal(t, g.NoData, cp.NoData)

	cp.Set(0, 1, 8)
	assert.Equal(t, 7.0, g.At(0, 1))
	assert.False(t, g.Equal(cp))
}

func TestGridEqualShapeMismatch(t *testing.T) {
	a, err := New(2, 3)
	require.NoError(t, err)
	b, err := New(3, 2)
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
}
