package photometry

// Field is a luminous intensity distribution that can be sampled at any
// C/G angle pair. It is immutable after construction and safe for
// concurrent use.
type Field struct {
	grid     *AngleGrid
	symmetry Symmetry

	max, min     float64
	peakC, peakG float64
}

// NewField builds a field from a validated grid and its declared symmetry.
func NewField(grid *AngleGrid, symmetry Symmetry) (*Field, error) {
	if grid == nil {
		return nil, ErrEmptyDomain
	}
	if err := symmetry.checkGrid(grid); err != nil {
		return nil, err
	}

	maxV, minV, ci, gi := grid.extremes()
	return &Field{
		grid:     grid,
		symmetry: symmetry,
		max:      maxV,
		min:      minV,
		peakC:    grid.c[ci],
		peakG:    grid.g[gi],
	}, nil
}

// Sample returns the intensity in cd/klm at the given angles. C wraps
// around the circle and G is clamped to the stored range.
func (f *Field) Sample(c, g float64) float64 {
	return f.grid.bilinear(f.Resolve(c, g))
}

// SampleNormalized returns Sample divided by the maximum intensity, or 0
// when the field is dark.
func (f *Field) SampleNormalized(c, g float64) float64 {
	if f.max <= 0 {
		return 0
	}
	return f.Sample(c, g) / f.max
}

// Resolve folds c by the field symmetry, clamps g and brackets both on the grid.
func (f *Field) Resolve(c, g float64) Coordinates {
	var co Coordinates

	co.C = f.foldC(c)
	if f.symmetry == SymmetryNone {
		co.C0, co.C1, co.TC = bracketWrapped(f.grid.c, co.C)
	} else {
		co.C0, co.C1, co.TC = bracket(f.grid.c, co.C)
	}

	co.G = clampG(f.grid.g, g)
	co.G0, co.G1, co.TG = bracket(f.grid.g, co.G)
	return co
}

// foldC folds c onto the stored C-angles. A rotationally symmetric field
// stores one plane, which need not be C0.
func (f *Field) foldC(c float64) float64 {
	if f.symmetry == SymmetryVerticalAxis {
		return f.grid.c[0]
	}
	return f.symmetry.Fold(c)
}

// MaxIntensity returns the largest stored intensity. Every mirrored copy of
// the stored grid repeats stored values and interpolation never exceeds
// its corners, so this is also the maximum over the whole sphere.
func (f *Field) MaxIntensity() float64 { return f.max }

// MinIntensity returns the smallest stored intensity.
func (f *Field) MinIntensity() float64 { return f.min }

// Peak returns the stored C/G angles of the first maximum.
func (f *Field) Peak() (c, g float64) { return f.peakC, f.peakG }

// Symmetry returns the declared symmetry.
func (f *Field) Symmetry() Symmetry { return f.symmetry }

// Grid returns the underlying grid.
func (f *Field) Grid() *AngleGrid { return f.grid }

// WithGrid returns a new field with the same symmetry over another grid.
func (f *Field) WithGrid(grid *AngleGrid) (*Field, error) {
	return NewField(grid, f.symmetry)
}
