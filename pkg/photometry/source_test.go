package photometry_test

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/photoweb/pkg/photometry"
)

func ptr(v float64) *float64 { return &v }

func TestLuminaire_DerivedAccessors(t *testing.T) {
	i0 := 1000 / gomath.Pi
	src := photometry.StaticSource{
		Photometry: lambertian(t, i0),
		LampInfo: photometry.Lamp{
			Count:               1,
			RatedFlux:           2000,
			ColorAppearance:     "LED 3000K",
			ColorRenderingGroup: "1B",
		},
		Declared: photometry.Hints{LuminaireFlux: ptr(1900)},
		Size:     photometry.Dimensions{Width: 0, Length: 150, Height: 40},
	}
	lum := photometry.NewLuminaire(src)

	assert.InDelta(t, i0, lum.MaxIntensity(), tolerance)
	assert.InDelta(t, i0, lum.Sample(77, 0), tolerance)
	assert.Equal(t, 2000.0, lum.LampFlux())
	assert.InEpsilon(t, 2000.0, lum.TotalFlux(), 1e-3)
	assert.InEpsilon(t, 1.0, lum.LightOutputRatio(), 1e-3)
	assert.Equal(t, 1.0, lum.DownwardFraction())
	assert.Equal(t, 0.0, lum.UpwardFraction())
	assert.True(t, lum.IsCylindrical())

	cct, ok := lum.ColorTemperature()
	require.True(t, ok)
	assert.Equal(t, 3000.0, cct)

	cri, ok := lum.CRI()
	require.True(t, ok)
	assert.Equal(t, 85.0, cri)

	check := lum.FluxCheck()
	assert.True(t, check.HasDeclared)
	assert.Equal(t, 1900.0, check.Declared)
	diff, ok := check.RelativeDifference()
	require.True(t, ok)
	assert.InDelta(t, 100.0/1900.0, diff, 2e-3)
}

func TestLuminaire_Defaults(t *testing.T) {
	lum := photometry.NewLuminaire(photometry.StaticSource{
		Photometry: uniform(t, 10),
		Size:       photometry.Dimensions{Width: 300, Length: 600},
	})

	assert.Equal(t, 1000.0, lum.LampFlux(), "unknown lamp flux")
	assert.False(t, lum.IsCylindrical())
	assert.False(t, lum.FluxCheck().HasDeclared)

	_, ok := lum.ColorTemperature()
	assert.False(t, ok)
	_, ok = lum.CRI()
	assert.False(t, ok)
}

func TestLuminaire_FractionsComplement(t *testing.T) {
	field := generated(t, axis(0, 345, 15), axis(0, 180, 5), photometry.SymmetryNone, asymmetric)
	lum := photometry.NewLuminaire(photometry.StaticSource{Photometry: field})

	assert.Equal(t, 1.0, lum.DownwardFraction()+lum.UpwardFraction())
	assert.Greater(t, lum.UpwardFraction(), 0.0)
}

func TestLuminaire_Options(t *testing.T) {
	src := photometry.StaticSource{Photometry: mustField(t,
		[]float64{0}, []float64{0, 30, 60, 90}, [][]float64{{100, 80, 50, 10}}, photometry.SymmetryVerticalAxis)}

	coarse := photometry.NewLuminaire(src,
		photometry.WithBeamOptions(photometry.BeamOptions{Step: 25}),
		photometry.WithResolution(photometry.Resolution{GammaStep: 10, AzimuthStep: 30}),
	)
	assert.InDelta(t, 75.0, coarse.BeamAngle().Degrees(), tolerance)

	fine := photometry.NewLuminaire(src)
	assert.InEpsilon(t, fine.TotalFlux(), coarse.TotalFlux(), 0.05)
	assert.Equal(t, src, fine.Source())
}

func TestLuminaire_Bug(t *testing.T) {
	field := lambertian(t, 300)
	low := photometry.NewLuminaire(photometry.StaticSource{Photometry: field, LampInfo: photometry.Lamp{RatedFlux: 1000}})
	high := photometry.NewLuminaire(photometry.StaticSource{Photometry: field, LampInfo: photometry.Lamp{RatedFlux: 20000}})

	lowBug, highBug := low.Bug(), high.Bug()
	assert.InEpsilon(t, 20*lowBug.TotalLumens, highBug.TotalLumens, 1e-9)
	assert.GreaterOrEqual(t, highBug.Rating.B, lowBug.Rating.B)
	assert.Equal(t, uint8(0), lowBug.Rating.U)
}

func TestLamp_ColorTemperature(t *testing.T) {
	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{"3000K", 3000, true},
		{"LED 4000 Kelvin", 4000, true},
		{"ww 2700", 2700, true},
		{"CCT=6500K", 6500, true},
		{"LED 5000K CRI90", 5000, true},
		{"123", 0, false},
		{"warm white", 0, false},
		{"900K", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := photometry.Lamp{ColorAppearance: tt.text}.ColorTemperature()
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestLamp_CRI(t *testing.T) {
	tests := []struct {
		group string
		want  float64
		ok    bool
	}{
		{"1A", 95, true},
		{"1b", 85, true},
		{"2A", 75, true},
		{"2B", 65, true},
		{"3", 50, true},
		{"4", 30, true},
		{" 92 ", 92, true},
		{"", 0, false},
		{"150", 0, false},
		{"excellent", 0, false},
	}
	for _, tt := range tests {
		got, ok := photometry.Lamp{ColorRenderingGroup: tt.group}.CRI()
		assert.Equal(t, tt.ok, ok, tt.group)
		assert.Equal(t, tt.want, got, tt.group)
	}
}
