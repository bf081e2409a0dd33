package photometry

import (
	"fmt"
	gomath "math"
	"strings"
)

// Symmetry is the declared symmetry of a measured distribution.
type Symmetry int

// Symmetry classes. Values match the Eulumdat Isym field.
const (
	SymmetryNone         Symmetry = 0 // full 0-360 measurement
	SymmetryVerticalAxis Symmetry = 1 // rotationally symmetric, one stored plane
	SymmetryPlaneC0C180  Symmetry = 2 // mirror about the C0-C180 plane, stores 0-180
	SymmetryPlaneC90C270 Symmetry = 3 // mirror about the C90-C270 plane, stores 90-270
	SymmetryQuadrant     Symmetry = 4 // mirror about both planes, stores 0-90
)

// String returns the symmetry name.
func (s Symmetry) String() string {
	switch s {
	case SymmetryNone:
		return "None"
	case SymmetryVerticalAxis:
		return "VerticalAxis"
	case SymmetryPlaneC0C180:
		return "C0C180Plane"
	case SymmetryPlaneC90C270:
		return "C90C270Plane"
	case SymmetryQuadrant:
		return "Quadrant"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseSymmetry accepts a symmetry name (case-insensitive) or its Isym number.
func ParseSymmetry(s string) (Symmetry, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "none":
		return SymmetryNone, nil
	case "1", "verticalaxis", "vertical_axis", "vertical-axis":
		return SymmetryVerticalAxis, nil
	case "2", "c0c180plane", "c0-c180", "c0c180":
		return SymmetryPlaneC0C180, nil
	case "3", "c90c270plane", "c90-c270", "c90c270":
		return SymmetryPlaneC90C270, nil
	case "4", "quadrant", "bothplanes", "both_planes":
		return SymmetryQuadrant, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedSymmetry, s)
	}
}

// StoredRange returns the C range a grid declared with this symmetry may cover.
// For VerticalAxis the range is irrelevant; a single plane is required.
func (s Symmetry) StoredRange() (lo, hi float64) {
	switch s {
	case SymmetryPlaneC0C180:
		return 0, 180
	case SymmetryPlaneC90C270:
		return 90, 270
	case SymmetryQuadrant:
		return 0, 90
	default:
		return 0, 360
	}
}

// Fold maps any C-angle onto the canonical stored sub-domain. The mapping is
// continuous at every fold line. Fold knows nothing of the grid: VerticalAxis
// always maps to C0, whichever plane was measured. Field.Resolve substitutes
// the stored plane.
func (s Symmetry) Fold(c float64) float64 {
	a := normalizeC(c)
	switch s {
	case SymmetryVerticalAxis:
		return 0
	case SymmetryPlaneC0C180:
		return foldC0C180(a)
	case SymmetryPlaneC90C270:
		return foldC90C270(a)
	case SymmetryQuadrant:
		return foldQuadrant(a)
	default:
		return a
	}
}

// checkGrid verifies that the grid shape is legal for this symmetry.
func (s Symmetry) checkGrid(grid *AngleGrid) error {
	const eps = 1e-9

	switch s {
	case SymmetryNone:
		return nil
	case SymmetryVerticalAxis:
		if len(grid.c) != 1 {
			return fmt.Errorf("%w: %s needs exactly one C-plane, got %d", ErrUnsupportedSymmetry, s, len(grid.c))
		}
		return nil
	case SymmetryPlaneC0C180, SymmetryPlaneC90C270, SymmetryQuadrant:
		lo, hi := s.StoredRange()
		first, last := grid.c[0], grid.c[len(grid.c)-1]
		if first < lo-eps || last > hi+eps {
			return fmt.Errorf("%w: %s stores C %v-%v, grid covers %v-%v", ErrUnsupportedSymmetry, s, lo, hi, first, last)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedSymmetry, s)
	}
}

// normalizeC wraps an angle into [0, 360). Non-finite input maps to 0.
func normalizeC(c float64) float64 {
	if gomath.IsNaN(c) || gomath.IsInf(c, 0) {
		return 0
	}
	a := gomath.Mod(c, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

func foldC0C180(a float64) float64 {
	if a <= 180 {
		return a
	}
	return 360 - a
}

// foldC90C270 mirrors about the 90-270 axis: the distance from C270 is
// 180 - |((a+90) mod 360) - 180|, and the stored plane is 270 minus it.
func foldC90C270(a float64) float64 {
	shifted := gomath.Mod(a+90, 360)
	return 90 + gomath.Abs(shifted-180)
}

func foldQuadrant(a float64) float64 {
	q := gomath.Mod(a, 180)
	return gomath.Min(q, 180-q)
}
