package photometry_test

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/photoweb/pkg/photometry"
)

// mustField builds a field or fails the test.
func mustField(t testing.TB, c, g []float64, rows [][]float64, sym photometry.Symmetry) *photometry.Field {
	t.Helper()
	grid, err := photometry.NewAngleGrid(c, g, rows)
	require.NoError(t, err)
	field, err := photometry.NewField(grid, sym)
	require.NoError(t, err)
	return field
}

// axis returns lo, lo+step, ... up to and including hi.
func axis(lo, hi, step float64) []float64 {
	var out []float64
	for k := 0; ; k++ {
		v := lo + float64(k)*step
		if v > hi+1e-9 {
			break
		}
		out = append(out, v)
	}
	return out
}

// generated fills a grid from an analytic distribution.
func generated(t testing.TB, c, g []float64, sym photometry.Symmetry, fn func(c, g float64) float64) *photometry.Field {
	t.Helper()
	rows := make([][]float64, len(c))
	for i, cv := range c {
		rows[i] = make([]float64, len(g))
		for j, gv := range g {
			rows[i][j] = fn(cv, gv)
		}
	}
	return mustField(t, c, g, rows, sym)
}

// uniform is a field with the same intensity everywhere on G 0-180.
func uniform(t testing.TB, intensity float64) *photometry.Field {
	t.Helper()
	return generated(t, []float64{0}, axis(0, 180, 10), photometry.SymmetryVerticalAxis,
		func(float64, float64) float64 { return intensity })
}

// lambertian is I0*cos(g) below the horizontal and dark above.
func lambertian(t testing.TB, i0 float64) *photometry.Field {
	t.Helper()
	return generated(t, []float64{0}, axis(0, 180, 1), photometry.SymmetryVerticalAxis,
		func(_, g float64) float64 {
			if g >= 90 {
				return 0
			}
			return i0 * gomath.Cos(g*gomath.Pi/180)
		})
}

// asymmetric is a street-light-like distribution that depends on both C and G.
func asymmetric(c, g float64) float64 {
	cr := c * gomath.Pi / 180
	gr := g * gomath.Pi / 180
	v := 200*gomath.Cos(gr/2) + 80*gomath.Cos(cr)*gomath.Sin(gr) + 30*gomath.Cos(2*cr)
	if g > 100 {
		v *= 0.2
	}
	return gomath.Max(0, v)
}

// mirrored evaluates asymmetric after applying a symmetry, so the analytic
// distribution has that symmetry.
func mirrored(sym photometry.Symmetry) func(c, g float64) float64 {
	return func(c, g float64) float64 {
		return asymmetric(sym.Fold(c), g)
	}
}

func nan() float64 { return gomath.NaN() }
