// Package photometry models the 3D luminous intensity distribution of a
// luminaire and derives lighting metrics from it.
//
// Intensities are stored in cd/klm on a grid of C-angles (azimuth, 0-360)
// and G-angles (gamma, 0 at nadir to 180 at zenith). A Field combines a grid
// with its declared symmetry and can be sampled at any angle pair.
package photometry

import (
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/floats"
)

// AngleGrid holds the measured C/G axes and the intensity matrix.
// An AngleGrid is immutable; edits return a new grid.
type AngleGrid struct {
	c           []float64
	g           []float64
	intensities [][]float64 // [c index][g index], cd/klm
}

// NewAngleGrid validates and copies the given axes and intensity matrix.
func NewAngleGrid(c, g []float64, intensities [][]float64) (*AngleGrid, error) {
	if len(c) == 0 || len(g) == 0 {
		return nil, ErrEmptyDomain
	}
	if err := checkAxis("C", c, 0, 360, false); err != nil {
		return nil, err
	}
	if err := checkAxis("G", g, 0, 180, true); err != nil {
		return nil, err
	}
	if len(intensities) != len(c) {
		return nil, fmt.Errorf("%w: %d intensity rows for %d C-angles", ErrInvalidGrid, len(intensities), len(c))
	}

	grid := &AngleGrid{
		c:           append([]float64(nil), c...),
		g:           append([]float64(nil), g...),
		intensities: make([][]float64, len(c)),
	}
	for i, row := range intensities {
		if len(row) != len(g) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d G-angles", ErrInvalidGrid, i, len(row), len(g))
		}
		for j, v := range row {
			if gomath.IsNaN(v) || gomath.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("%w: intensity [%d][%d] = %v", ErrInvalidGrid, i, j, v)
			}
		}
		grid.intensities[i] = append([]float64(nil), row...)
	}
	return grid, nil
}

// checkAxis verifies that angles are finite, strictly increasing and inside
// [lo, hi) (or [lo, hi] when closed is set).
func checkAxis(name string, angles []float64, lo, hi float64, closed bool) error {
	for i, a := range angles {
		if gomath.IsNaN(a) || gomath.IsInf(a, 0) {
			return fmt.Errorf("%w: %s-angle %d is not finite", ErrInvalidGrid, name, i)
		}
		if a < lo || a > hi || (!closed && a == hi) {
			return fmt.Errorf("%w: %s-angle %v out of range", ErrInvalidGrid, name, a)
		}
		if i > 0 && a <= angles[i-1] {
			return fmt.Errorf("%w: %s-angles not strictly increasing at index %d (%v after %v)",
				ErrInvalidGrid, name, i, a, angles[i-1])
		}
	}
	return nil
}

// CAngles returns a copy of the C-angles in degrees.
func (g *AngleGrid) CAngles() []float64 {
	return append([]float64(nil), g.c...)
}

// GAngles returns a copy of the G-angles in degrees.
func (g *AngleGrid) GAngles() []float64 {
	return append([]float64(nil), g.g...)
}

// Size returns the number of C and G angles.
func (g *AngleGrid) Size() (nc, ng int) {
	return len(g.c), len(g.g)
}

// Intensity returns the stored value at (ci, gi).
// Out of range indices return 0.
func (g *AngleGrid) Intensity(ci, gi int) float64 {
	if ci < 0 || ci >= len(g.c) || gi < 0 || gi >= len(g.g) {
		return 0
	}
	return g.intensities[ci][gi]
}

// GammaRange returns the first and last stored G-angle.
func (g *AngleGrid) GammaRange() (lo, hi float64) {
	return g.g[0], g.g[len(g.g)-1]
}

// WithIntensity returns a copy of the grid with one value replaced.
func (g *AngleGrid) WithIntensity(ci, gi int, v float64) (*AngleGrid, error) {
	if ci < 0 || ci >= len(g.c) || gi < 0 || gi >= len(g.g) {
		return nil, fmt.Errorf("%w: index (%d, %d) outside %dx%d grid", ErrInvalidGrid, ci, gi, len(g.c), len(g.g))
	}
	rows := g.rows()
	rows[ci][gi] = v
	return NewAngleGrid(g.c, g.g, rows)
}

// Scaled returns a copy of the grid with every intensity multiplied by factor.
func (g *AngleGrid) Scaled(factor float64) (*AngleGrid, error) {
	rows := g.rows()
	for _, row := range rows {
		floats.Scale(factor, row)
	}
	return NewAngleGrid(g.c, g.g, rows)
}

// rows returns a deep copy of the intensity matrix.
func (g *AngleGrid) rows() [][]float64 {
	rows := make([][]float64, len(g.intensities))
	for i, row := range g.intensities {
		rows[i] = append([]float64(nil), row...)
	}
	return rows
}

// extremes returns the largest and smallest stored intensity and the
// indices of the first maximum.
func (g *AngleGrid) extremes() (maxV, minV float64, maxC, maxG int) {
	maxV = gomath.Inf(-1)
	minV = gomath.Inf(1)
	for i, row := range g.intensities {
		if j := floats.MaxIdx(row); row[j] > maxV {
			maxV, maxC, maxG = row[j], i, j
		}
		minV = gomath.Min(minV, floats.Min(row))
	}
	return maxV, minV, maxC, maxG
}
