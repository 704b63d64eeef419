package viewshed

import "math"

// lineSlot is one position along the conceptual sweep ray. The slot array is
// a discretized rasterization of the ray: slot index grows outward from the
// viewpoint, two slots per unit step along the long axis so that laterally
// adjacent cells straddling the ideal ray line get distinct positions.
type lineSlot struct {
	active     bool
	cell       int
	distance   float64
	visibility float64
	offset     float64
}

// pairedSlot returns the even/odd partner of a slot. When two cells contend
// for the same slot, the displaced one lives in the partner slot.
func pairedSlot(s int) int {
	return s ^ 1
}

// rayGeometry captures the long/short axis split for one ray far endpoint.
// The long axis is the coordinate axis along which the endpoint is farther
// from the viewpoint; slope is the short-axis drift per long-axis step.
type rayGeometry struct {
	longIsRow bool
	signLong  int
	signShort int
	slope     float64
}

func newRayGeometry(vr, vc int, p perimeterPoint) rayGeometry {
	dRow := p.row - vr
	dCol := p.col - vc
	g := rayGeometry{longIsRow: abs(dRow) >= abs(dCol)}
	dl, ds := dCol, dRow
	if g.longIsRow {
		dl, ds = dRow, dCol
	}
	g.signLong = sign(dl)
	g.signShort = sign(ds)
	if dl != 0 {
		g.slope = float64(ds) / float64(dl)
	}
	return g
}

// slotIndex maps a cell's offset from the viewpoint to its slot on the
// current ray. The doubled long-axis step reserves a pair of slots per unit
// of distance; the short-axis term picks the pair member by how far a cell
// deviates from the ideal ray line at that distance. The cell coinciding
// with the viewpoint maps to slot 0.
func (g rayGeometry) slotIndex(dRow, dCol int) int {
	if dRow == 0 && dCol == 0 {
		return 0
	}
	dl, ds := dCol, dRow
	if g.longIsRow {
		dl, ds = dRow, dCol
	}
	sl, ss := g.signLong, g.signShort
	drift := float64(ss) * g.slope * (float64(dl) - float64(sl)*0.5)
	return sl*2*dl + ss*ds - int(math.Round(drift))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign treats zero as positive so a degenerate axis still gets a direction.
func sign(x int) int {
	if x < 0 {
		return -1
	}
	return 1
}
