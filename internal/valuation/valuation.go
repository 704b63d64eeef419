// Package valuation provides the distance-decay curves applied to visible
// cells when turning a raw visibility grid into a scenic value grid.
package valuation

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeEdge is returned when a curve evaluates below zero at the max
// valuation radius, which would flip the sign of far visible cells.
var ErrNegativeEdge = errors.New("valuation: function negative at max valuation radius")

// Func values a visible cell by its ground distance from the viewpoint, in
// meters. Beyond the max valuation radius every curve returns 0.
type Func func(dist float64) float64

// nearLimit is the distance below which curves are replaced by a linear ramp
// matching the curve's value and gradient at the limit, keeping near-field
// values from blowing up.
const nearLimit = 1000.0

// Polynomial builds the cubic curve a + b·x + c·x² + d·x³ with the
// near-field ramp and maxRadius cutoff.
func Polynomial(a, b, c, d, maxRadius float64) (Func, error) {
	f := func(x float64) float64 {
		switch {
		case x < nearLimit:
			atLimit := a + b*nearLimit + c*nearLimit*nearLimit + d*nearLimit*nearLimit*nearLimit
			gradient := b + 2*c*nearLimit + 3*d*nearLimit*nearLimit
			return atLimit - gradient*(nearLimit-x)
		case x <= maxRadius:
			return a + b*x + c*x*x + d*x*x*x
		default:
			return 0
		}
	}
	return f, checkEdge(f, maxRadius)
}

// Logarithmic builds the curve a + b·ln(x) with the near-field ramp and
// maxRadius cutoff.
func Logarithmic(a, b, maxRadius float64) (Func, error) {
	f := func(x float64) float64 {
		switch {
		case x < nearLimit:
			return a + b*math.Log(nearLimit) - (b/nearLimit)*(nearLimit-x)
		case x <= maxRadius:
			return a + b*math.Log(x)
		default:
			return 0
		}
	}
	return f, checkEdge(f, maxRadius)
}

func checkEdge(f Func, maxRadius float64) error {
	if edge := f(maxRadius); edge < 0 {
		return fmt.Errorf("value %g at radius %g: %w", edge, maxRadius, ErrNegativeEdge)
	}
	return nil
}
