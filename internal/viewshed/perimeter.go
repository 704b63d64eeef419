package viewshed

import "math"

// perimeterPoint is one far-endpoint position of the sweep ray on the
// bounding rectangle of the analysis region.
type perimeterPoint struct {
	row, col int
}

// buildPerimeter traces the bounding rectangle of the analysis radius
// (clamped to the grid) counter-clockwise, one point per discretized sweep
// step, paired with the angle at which the ray reaches it. The trace is
// rotated so angles are non-decreasing, starting at the point due east of
// the viewpoint (angle 0) when the viewpoint is interior. A viewpoint lying
// on the rectangle itself is skipped: it cannot serve as a ray endpoint.
func buildPerimeter(rows, cols, vr, vc int, radius float64) ([]perimeterPoint, []float64) {
	rMin, rMax := 0, rows-1
	cMin, cMax := 0, cols-1
	if radius >= 0 {
		r := int(math.Ceil(radius))
		rMin = max(rMin, vr-r)
		rMax = min(rMax, vr+r)
		cMin = max(cMin, vc-r)
		cMax = min(cMax, vc+r)
	}

	// Full rectangle boundary counter-clockwise from the south-east corner:
	// east edge up, north edge left, west edge down, south edge right.
	var pts []perimeterPoint
	push := func(r, c int) {
		if r == vr && c == vc {
			return
		}
		pts = append(pts, perimeterPoint{r, c})
	}
	for r := rMax; r >= rMin; r-- {
		push(r, cMax)
	}
	for c := cMax - 1; c >= cMin; c-- {
		push(rMin, c)
	}
	for r := rMin + 1; r <= rMax; r++ {
		push(r, cMin)
	}
	for c := cMin + 1; c <= cMax-1; c++ {
		push(rMax, c)
	}
	if len(pts) == 0 {
		return nil, nil
	}

	raw := make([]float64, len(pts))
	for i, p := range pts {
		raw[i] = cellAngle(float64(p.row-vr), float64(p.col-vc))
	}

	// The boundary is one full turn, so the cyclic angle sequence has exactly
	// one descent: the 0/2π seam. Rotating to it makes angles non-decreasing.
	start := 0
	for i := 1; i < len(raw); i++ {
		if raw[i] < raw[i-1] {
			start = i
		}
	}

	ordered := make([]perimeterPoint, 0, len(pts))
	ordered = append(ordered, pts[start:]...)
	ordered = append(ordered, pts[:start]...)
	angles := make([]float64, 0, len(raw))
	angles = append(angles, raw[start:]...)
	angles = append(angles, raw[:start]...)
	return ordered, angles
}
