package photometry

import (
	gomath "math"
	"sort"
)

// Coordinates is a query angle pair resolved onto the stored grid: the
// bracketing indices on each axis and the fractions between them.
type Coordinates struct {
	C, G   float64 // folded C and clamped G, degrees
	C0, C1 int
	G0, G1 int
	TC, TG float64
}

// bracket locates x on a strictly increasing axis. Values outside the axis
// are clamped to the nearest end. An exact hit or a single-entry axis gives
// a zero fraction.
func bracket(axis []float64, x float64) (i0, i1 int, t float64) {
	n := len(axis)
	if n == 1 || x <= axis[0] {
		return 0, 0, 0
	}
	if x >= axis[n-1] {
		return n - 1, n - 1, 0
	}
	i := sort.SearchFloat64s(axis, x)
	if axis[i] == x {
		return i, i, 0
	}
	return i - 1, i, (x - axis[i-1]) / (axis[i] - axis[i-1])
}

// bracketWrapped is bracket on a periodic C axis: a query in the gap between
// the last plane and the first plane + 360 interpolates across the seam.
func bracketWrapped(axis []float64, x float64) (i0, i1 int, t float64) {
	n := len(axis)
	first, last := axis[0], axis[n-1]
	if n == 1 || (x >= first && x <= last) {
		return bracket(axis, x)
	}
	d := x - last
	if d < 0 {
		d += 360
	}
	return n - 1, 0, d / (first + 360 - last)
}

// clampG limits a gamma query to the stored G range. NaN maps to the first angle.
func clampG(axis []float64, g float64) float64 {
	lo, hi := axis[0], axis[len(axis)-1]
	if gomath.IsNaN(g) {
		return lo
	}
	return gomath.Max(lo, gomath.Min(hi, g))
}

// bilinear interpolates along G for both bracketing planes, then along C.
func (g *AngleGrid) bilinear(co Coordinates) float64 {
	v0 := lerp(g.intensities[co.C0][co.G0], g.intensities[co.C0][co.G1], co.TG)
	v1 := lerp(g.intensities[co.C1][co.G0], g.intensities[co.C1][co.G1], co.TG)
	return lerp(v0, v1, co.TC)
}

// lerp keeps both weights non-negative so non-negative inputs stay non-negative.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
