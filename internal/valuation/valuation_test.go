package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolynomialCurve(t *testing.T) {
	f, err := Polynomial(10, 2, 0, 0, 8000)
	require.NoError(t, err)

	assert.InDelta(t, 10+2*2000, f(2000), 1e-9)
	assert.InDelta(t, 10+2*8000, f(8000), 1e-9)
	assert.Zero(t, f(8000.01), "beyond the max radius the value is 0")
}

func TestPolynomialNearFieldRamp(t *testing.T) {
	// Pure cubic: the ramp must match value and gradient at 1000 m.
	f, err := Polynomial(0, 0, 0, 1e-9, 8000)
	require.NoError(t, err)

	atLimit := 1e-9 * 1000 * 1000 * 1000
	gradient := 3 * 1e-9 * 1000 * 1000

	assert.InDelta(t, atLimit, f(1000), 1e-9)
	assert.InDelta(t, atLimit-gradient*1000, f(0), 1e-9)
	assert.InDelta(t, atLimit-gradient*400, f(600), 1e-9)
	// Continuity approaching the knee from below.
	assert.InDelta(t, f(1000), f(999.9999), 1e-3)
}

func TestPolynomialNegativeEdge(t *testing.T) {
	_, err := Polynomial(0, -1, 0, 0, 8000)
	assert.ErrorIs(t, err, ErrNegativeEdge)
}

func TestLogarithmicCurve(t *testing.T) {
	f, err := Logarithmic(1, 2, 8000)
	require.NoError(t, err)

	assert.InDelta(t, 1+2*math.Log(5000), f(5000), 1e-9)
	assert.Zero(t, f(8001))

	// Near-field ramp: value ln-curve would give at 1000 m, pulled down
	// linearly by the gradient there.
	assert.InDelta(t, 1+2*math.Log(1000)-(2.0/1000)*1000, f(0), 1e-9)
	assert.InDelta(t, 1+2*math.Log(1000)-(2.0/1000)*500, f(500), 1e-9)
	assert.InDelta(t, f(1000), f(999.9999), 1e-3)
}

func TestLogarithmicNegativeEdge(t *testing.T) {
	_, err := Logarithmic(0, -1, 8000)
	assert.ErrorIs(t, err, ErrNegativeEdge)
}
