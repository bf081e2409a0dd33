// Package math provides vector helpers for photometric directions.
package math

import "math"

// Vec3 is a 3D vector. Photometric directions use X towards C0, Y towards
// C90 and Z up, so nadir is (0, 0, -1).
type Vec3 struct {
	X, Y, Z float64
}

// FromAngles converts a C/G angle pair in degrees to a unit direction.
// C is the azimuth around the vertical axis, G the angle from nadir.
func FromAngles(c, g float64) Vec3 {
	cRad := c * math.Pi / 180.0
	gRad := g * math.Pi / 180.0

	sinG := math.Sin(gRad)
	return Vec3{
		X: sinG * math.Cos(cRad),
		Y: sinG * math.Sin(cRad),
		Z: -math.Cos(gRad),
	}
}

// Angles converts a direction back to C/G degrees. C is in [0, 360) and is
// 0 for vertical directions. Components within rounding of zero are treated
// as zero.
func (v Vec3) Angles() (c, g float64) {
	l := v.Length()
	if l == 0 {
		return 0, 0
	}
	g = math.Acos(math.Max(-1, math.Min(1, -v.Z/l))) * 180.0 / math.Pi
	if math.Hypot(v.X, v.Y) <= 1e-9*l {
		return 0, g
	}
	x, y := v.X, v.Y
	if math.Abs(y) <= 1e-9*l {
		y = 0
	}
	if math.Abs(x) <= 1e-9*l {
		x = 0
	}
	c = math.Atan2(y, x) * 180.0 / math.Pi
	if c < 0 {
		c += 360
	}
	return c, g
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector, or the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}
