package photometry

import (
	gomath "math"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracket(t *testing.T) {
	axis := []float64{0, 30, 60, 90}

	tests := []struct {
		x      float64
		i0, i1 int
		t      float64
	}{
		{-5, 0, 0, 0},
		{0, 0, 0, 0},
		{15, 0, 1, 0.5},
		{30, 1, 1, 0},
		{45, 1, 2, 0.5},
		{80, 2, 3, 20.0 / 30},
		{90, 3, 3, 0},
		{120, 3, 3, 0},
	}
	for _, tt := range tests {
		i0, i1, frac := bracket(axis, tt.x)
		assert.Equal(t, tt.i0, i0, "x=%v", tt.x)
		assert.Equal(t, tt.i1, i1, "x=%v", tt.x)
		assert.InDelta(t, tt.t, frac, 1e-12, "x=%v", tt.x)
	}

	i0, i1, frac := bracket([]float64{42}, 7)
	assert.Equal(t, []any{0, 0, 0.0}, []any{i0, i1, frac})
}

func TestBracketWrapped(t *testing.T) {
	axis := []float64{0, 90, 180, 270}

	i0, i1, frac := bracketWrapped(axis, 315)
	assert.Equal(t, 3, i0)
	assert.Equal(t, 0, i1)
	assert.InDelta(t, 0.5, frac, 1e-12)

	i0, i1, frac = bracketWrapped(axis, 100)
	assert.Equal(t, 1, i0)
	assert.Equal(t, 2, i1)
	assert.InDelta(t, 10.0/90, frac, 1e-12)

	i0, i1, frac = bracketWrapped([]float64{20, 200}, 10)
	assert.Equal(t, 1, i0)
	assert.Equal(t, 0, i1)
	assert.InDelta(t, 170.0/180, frac, 1e-12)
}

func TestClampG(t *testing.T) {
	axis := []float64{10, 20, 90}
	assert.Equal(t, 10.0, clampG(axis, 0))
	assert.Equal(t, 15.0, clampG(axis, 15))
	assert.Equal(t, 90.0, clampG(axis, 100))
	assert.Equal(t, 10.0, clampG(axis, gomath.NaN()))
}

func TestZoneEdges(t *testing.T) {
	tests := []struct {
		lo, hi, step float64
		want         []float64
	}{
		{0, 30, 10, []float64{0, 10, 20, 30}},
		{0, 30, 7, []float64{0, 7, 14, 21, 28, 30}},
		{2.5, 10, 5, []float64{2.5, 5, 10}},
		{88, 90, 5, []float64{88, 90}},
	}
	for _, tt := range tests {
		got := zoneEdges(tt.lo, tt.hi, tt.step)
		assert.InDeltaSlice(t, tt.want, got, 1e-12, "%v-%v/%v", tt.lo, tt.hi, tt.step)
	}

	got := zoneEdges(60, 80, 1)
	require.Len(t, got, 21)
	assert.Equal(t, 60.0, got[0])
	assert.Equal(t, 80.0, got[20])
}

func TestZoneEdges_SharedAcrossWindows(t *testing.T) {
	whole := zoneEdges(0, 90, 1)
	var split []float64
	for _, w := range [][2]float64{{0, 30}, {30, 60}, {60, 80}, {80, 90}} {
		edges := zoneEdges(w[0], w[1], 1)
		if len(split) > 0 {
			edges = edges[1:]
		}
		split = append(split, edges...)
	}
	assert.InDeltaSlice(t, whole, split, 1e-12)
}

func TestSpread(t *testing.T) {
	samples := spread(0, 360, 5, 1)
	require.Len(t, samples, 72)
	assert.InDelta(t, 2.5, samples[0].c, 1e-12)
	assert.InDelta(t, 357.5, samples[71].c, 1e-12)

	var w float64
	for _, s := range samples {
		w += s.w
	}
	assert.InDelta(t, 1.0, w, 1e-12)

	// Steps that do not divide the range are shrunk to fit.
	samples = spread(-90, 90, 50, 0.5)
	require.Len(t, samples, 4)
	assert.InDelta(t, -67.5, samples[0].c, 1e-12)
	assert.InDelta(t, 0.125, samples[0].w, 1e-12)

	samples = spread(0, 0.01, 5, 1)
	require.Len(t, samples, 1)
}

func TestZonalSolidAngle(t *testing.T) {
	assert.InDelta(t, 4*gomath.Pi, zonalSolidAngle(0, 180), 1e-12)
	assert.InDelta(t, 2*gomath.Pi, zonalSolidAngle(0, 90), 1e-12)
	assert.InDelta(t, 0, zonalSolidAngle(45, 45), 1e-12)
}

func TestCrossing(t *testing.T) {
	angles := []float64{0, 10, 20, 30}
	values := []float64{100, 60, 40, 5}

	assert.Equal(t, s1.Angle(20)*s1.Degree, crossing(angles, values, 0, 50))
	assert.Equal(t, s1.Angle(30)*s1.Degree, crossing(angles, values, 0, 10))
	assert.Equal(t, s1.Angle(30)*s1.Degree, crossing(angles, values, 0, 1), "never crossed")
	assert.Equal(t, s1.Angle(0)*s1.Degree, crossing(angles, values, 0, 100), "at threshold")
}

func TestResolutionSanitized(t *testing.T) {
	assert.Equal(t, DefaultResolution(), Resolution{}.sanitized())
	assert.Equal(t, Resolution{GammaStep: minGammaStep, AzimuthStep: minAzimuthStep},
		Resolution{GammaStep: 1e-9, AzimuthStep: 1e-9}.sanitized())
	assert.Equal(t, Resolution{GammaStep: 2, AzimuthStep: 10},
		Resolution{GammaStep: 2, AzimuthStep: 10}.sanitized())
}

func TestBeamOptionsSanitized(t *testing.T) {
	got := BeamOptions{ReferencePlane: gomath.NaN(), Step: -1, BatwingTolerance: -3, CenterDipRatio: 2}.sanitized()
	assert.Equal(t, DefaultBeamOptions(), got)

	got = BeamOptions{ReferencePlane: 90, Step: 0.5, BatwingTolerance: 0, CenterDipRatio: 0.5}.sanitized()
	assert.Equal(t, BeamOptions{ReferencePlane: 90, Step: 0.5, BatwingTolerance: 0, CenterDipRatio: 0.5}, got)
}

func TestZoneLimitsLevel(t *testing.T) {
	l := zoneLimits{10, 20, 30, 40, 50}
	assert.Equal(t, uint8(0), l.level(0))
	assert.Equal(t, uint8(0), l.level(10))
	assert.Equal(t, uint8(1), l.level(10.5))
	assert.Equal(t, uint8(4), l.level(50))
	assert.Equal(t, uint8(5), l.level(51))
}
