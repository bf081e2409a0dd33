package photometry

import (
	gomath "math"

	"github.com/golang/geo/s1"
	"gonum.org/v1/gonum/floats"
)

// Beam and field thresholds as fractions of the reference intensity.
const (
	beamThreshold  = 0.5
	fieldThreshold = 0.1
)

// DefaultBeamAngle is reported for every angle when the reference plane is dark.
const DefaultBeamAngle = 45 * s1.Degree

// BeamOptions configures beam and field angle analysis.
type BeamOptions struct {
	ReferencePlane   float64 // C-plane scanned, degrees
	Step             float64 // scan step, degrees
	BatwingTolerance float64 // max IES/CIE beam difference, degrees
	CenterDipRatio   float64 // centre/peak ratio below which the profile dips
}

// DefaultBeamOptions returns the default analysis options.
func DefaultBeamOptions() BeamOptions {
	return BeamOptions{
		ReferencePlane:   0,
		Step:             1,
		BatwingTolerance: 1,
		CenterDipRatio:   0.9,
	}
}

func (o BeamOptions) sanitized() BeamOptions {
	def := DefaultBeamOptions()
	if gomath.IsNaN(o.ReferencePlane) || gomath.IsInf(o.ReferencePlane, 0) {
		o.ReferencePlane = def.ReferencePlane
	}
	if !(o.Step > 0) {
		o.Step = def.Step
	}
	o.Step = gomath.Max(o.Step, 0.01)
	if !(o.BatwingTolerance >= 0) {
		o.BatwingTolerance = def.BatwingTolerance
	}
	if !(o.CenterDipRatio > 0 && o.CenterDipRatio <= 1) {
		o.CenterDipRatio = def.CenterDipRatio
	}
	return o
}

// BeamFieldMetrics holds beam and field half-angles measured from nadir.
//
// Both definitions use the peak of the reference plane as the reference
// intensity. IES angles are the first scan angles from nadir at or below
// 50% / 10% of the peak. CIE angles start the scan at the peak and move
// outward, so they differ from the IES ones when the peak is off-axis.
type BeamFieldMetrics struct {
	ReferencePlane  float64
	PeakIntensity   float64
	PeakAngle       s1.Angle
	CenterIntensity float64

	IESBeam  s1.Angle
	IESField s1.Angle
	CIEBeam  s1.Angle
	CIEField s1.Angle

	IsBatwing bool
}

// BeamFieldAnalyzer computes beam and field angles on one C-plane.
type BeamFieldAnalyzer struct {
	field *Field
	opts  BeamOptions
}

// NewBeamFieldAnalyzer returns an analyzer over field.
func NewBeamFieldAnalyzer(field *Field, opts BeamOptions) *BeamFieldAnalyzer {
	return &BeamFieldAnalyzer{field: field, opts: opts.sanitized()}
}

// Analyze scans the reference plane and derives both definitions. When a
// threshold is never crossed the last stored gamma angle is returned.
func (a *BeamFieldAnalyzer) Analyze() BeamFieldMetrics {
	angles, values := a.profile()
	peakIdx := floats.MaxIdx(values)

	m := BeamFieldMetrics{
		ReferencePlane:  a.opts.ReferencePlane,
		PeakIntensity:   values[peakIdx],
		PeakAngle:       s1.Angle(angles[peakIdx]) * s1.Degree,
		CenterIntensity: values[0],
	}
	if m.PeakIntensity <= 0 {
		m.IESBeam, m.IESField = DefaultBeamAngle, DefaultBeamAngle
		m.CIEBeam, m.CIEField = DefaultBeamAngle, DefaultBeamAngle
		return m
	}

	beam, field := beamThreshold*m.PeakIntensity, fieldThreshold*m.PeakIntensity
	m.IESBeam = crossing(angles, values, 0, beam)
	m.IESField = crossing(angles, values, 0, field)
	m.CIEBeam = crossing(angles, values, peakIdx, beam)
	m.CIEField = crossing(angles, values, peakIdx, field)

	diverges := gomath.Abs((m.IESBeam - m.CIEBeam).Degrees()) > a.opts.BatwingTolerance
	dipped := m.CenterIntensity < a.opts.CenterDipRatio*m.PeakIntensity
	m.IsBatwing = diverges || dipped
	return m
}

// profile samples the reference plane from the first to the last stored
// gamma angle in fixed steps. The last stored angle is always included.
func (a *BeamFieldAnalyzer) profile() (angles, values []float64) {
	const eps = 1e-9

	lo, hi := a.field.grid.GammaRange()
	for k := 0; ; k++ {
		g := lo + float64(k)*a.opts.Step
		if g >= hi-eps {
			break
		}
		angles = append(angles, g)
	}
	angles = append(angles, hi)

	values = make([]float64, len(angles))
	for i, g := range angles {
		values[i] = a.field.Sample(a.opts.ReferencePlane, g)
	}
	return angles, values
}

// crossing returns the first angle at or after index from whose value is
// at or below threshold, or the last angle if none is.
func crossing(angles, values []float64, from int, threshold float64) s1.Angle {
	for k := from; k < len(values); k++ {
		if values[k] <= threshold {
			return s1.Angle(angles[k]) * s1.Degree
		}
	}
	return s1.Angle(angles[len(angles)-1]) * s1.Degree
}
