package photometry_test

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/photoweb/pkg/photometry"
)

func TestNewAngleGrid_Valid(t *testing.T) {
	c := []float64{0, 90, 180, 270}
	g := []float64{0, 45, 90}
	rows := [][]float64{
		{100, 80, 50},
		{90, 70, 40},
		{80, 60, 30},
		{85, 65, 35},
	}

	grid, err := photometry.NewAngleGrid(c, g, rows)
	require.NoError(t, err)

	nc, ng := grid.Size()
	assert.Equal(t, 4, nc)
	assert.Equal(t, 3, ng)
	assert.Equal(t, 70.0, grid.Intensity(1, 1))
	assert.Equal(t, 0.0, grid.Intensity(9, 0), "out of range index reads as zero")

	lo, hi := grid.GammaRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 90.0, hi)
}

func TestNewAngleGrid_CopiesInput(t *testing.T) {
	c := []float64{0, 90}
	g := []float64{0, 90}
	rows := [][]float64{{100, 50}, {80, 40}}

	grid, err := photometry.NewAngleGrid(c, g, rows)
	require.NoError(t, err)

	c[1] = 45
	rows[0][0] = 1
	assert.Equal(t, []float64{0, 90}, grid.CAngles())
	assert.Equal(t, 100.0, grid.Intensity(0, 0))

	// Accessors hand out copies too.
	got := grid.GAngles()
	got[0] = 42
	assert.Equal(t, []float64{0, 90}, grid.GAngles())
}

func TestNewAngleGrid_Errors(t *testing.T) {
	tests := []struct {
		name  string
		c, g  []float64
		rows  [][]float64
		empty bool
	}{
		{name: "no C angles", c: nil, g: []float64{0}, rows: nil, empty: true},
		{name: "no G angles", c: []float64{0}, g: []float64{}, rows: [][]float64{{}}, empty: true},
		{name: "unsorted C", c: []float64{90, 0}, g: []float64{0}, rows: [][]float64{{1}, {1}}},
		{name: "duplicate C", c: []float64{0, 0}, g: []float64{0}, rows: [][]float64{{1}, {1}}},
		{name: "duplicate G", c: []float64{0}, g: []float64{0, 10, 10}, rows: [][]float64{{1, 1, 1}}},
		{name: "C at 360", c: []float64{0, 360}, g: []float64{0}, rows: [][]float64{{1}, {1}}},
		{name: "negative C", c: []float64{-10, 0}, g: []float64{0}, rows: [][]float64{{1}, {1}}},
		{name: "G above 180", c: []float64{0}, g: []float64{0, 190}, rows: [][]float64{{1, 1}}},
		{name: "NaN G", c: []float64{0}, g: []float64{gomath.NaN()}, rows: [][]float64{{1}}},
		{name: "row count", c: []float64{0, 90}, g: []float64{0}, rows: [][]float64{{1}}},
		{name: "row length", c: []float64{0}, g: []float64{0, 90}, rows: [][]float64{{1}}},
		{name: "negative intensity", c: []float64{0}, g: []float64{0}, rows: [][]float64{{-1}}},
		{name: "infinite intensity", c: []float64{0}, g: []float64{0}, rows: [][]float64{{gomath.Inf(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := photometry.NewAngleGrid(tt.c, tt.g, tt.rows)
			require.Error(t, err)
			assert.ErrorIs(t, err, photometry.ErrInvalidGrid)
			if tt.empty {
				assert.ErrorIs(t, err, photometry.ErrEmptyDomain)
			}
		})
	}
}

func TestAngleGrid_WithIntensity(t *testing.T) {
	grid, err := photometry.NewAngleGrid([]float64{0}, []float64{0, 90}, [][]float64{{100, 50}})
	require.NoError(t, err)

	edited, err := grid.WithIntensity(0, 1, 75)
	require.NoError(t, err)
	assert.Equal(t, 75.0, edited.Intensity(0, 1))
	assert.Equal(t, 50.0, grid.Intensity(0, 1), "original grid must not change")

	_, err = grid.WithIntensity(0, 2, 1)
	assert.ErrorIs(t, err, photometry.ErrInvalidGrid)

	_, err = grid.WithIntensity(0, 0, -5)
	assert.ErrorIs(t, err, photometry.ErrInvalidGrid)
}

func TestAngleGrid_Scaled(t *testing.T) {
	grid, err := photometry.NewAngleGrid([]float64{0}, []float64{0, 90}, [][]float64{{100, 50}})
	require.NoError(t, err)

	doubled, err := grid.Scaled(2)
	require.NoError(t, err)
	assert.Equal(t, 200.0, doubled.Intensity(0, 0))
	assert.Equal(t, 100.0, doubled.Intensity(0, 1))
	assert.Equal(t, 100.0, grid.Intensity(0, 0))

	_, err = grid.Scaled(-1)
	assert.ErrorIs(t, err, photometry.ErrInvalidGrid)
}
