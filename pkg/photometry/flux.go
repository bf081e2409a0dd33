package photometry

import (
	gomath "math"

	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/photoweb/pkg/math"
)

// Default integration resolution in degrees.
const (
	DefaultGammaStep   = 1.0
	DefaultAzimuthStep = 5.0
)

// Smallest accepted steps; finer values are raised to these.
const (
	minGammaStep   = 0.05
	minAzimuthStep = 0.1
)

// Resolution controls the zonal integration density.
type Resolution struct {
	GammaStep   float64 // zone width in degrees
	AzimuthStep float64 // spacing of azimuthal samples in degrees
}

// DefaultResolution returns the default integration resolution.
func DefaultResolution() Resolution {
	return Resolution{
		GammaStep:   DefaultGammaStep,
		AzimuthStep: DefaultAzimuthStep,
	}
}

// sanitized replaces non-positive or NaN steps with defaults and raises
// tiny steps to the minimum.
func (r Resolution) sanitized() Resolution {
	if !(r.GammaStep > 0) {
		r.GammaStep = DefaultGammaStep
	}
	if !(r.AzimuthStep > 0) {
		r.AzimuthStep = DefaultAzimuthStep
	}
	r.GammaStep = gomath.Max(r.GammaStep, minGammaStep)
	r.AzimuthStep = gomath.Max(r.AzimuthStep, minAzimuthStep)
	return r
}

// FluxMetrics is the result of integrating a field over the sphere.
// Flux values are in lumens per 1000 lm of lamp flux.
type FluxMetrics struct {
	Downward float64 // G 0-90
	Upward   float64 // G 90-180
	Total    float64

	LightOutputRatio float64 // Total / 1000, clamped to [0, 1]
	DownwardFraction float64
	UpwardFraction   float64 // 1 - DownwardFraction

	// Centroid is the unit flux-weighted mean emission direction, zero for
	// a dark field.
	Centroid math.Vec3
}

// FluxIntegrator computes luminous flux by zonal integration.
type FluxIntegrator struct {
	field *Field
	res   Resolution
}

// NewFluxIntegrator returns an integrator over field at the given resolution.
func NewFluxIntegrator(field *Field, res Resolution) *FluxIntegrator {
	return &FluxIntegrator{field: field, res: res.sanitized()}
}

// azimuthSample is one azimuthal sample and its share of the full circle.
type azimuthSample struct {
	c, w float64
}

// Compute integrates the whole measured gamma range. Zones outside the
// stored G range are unmeasured and contribute nothing.
func (fi *FluxIntegrator) Compute() FluxMetrics {
	lo, hi := fi.field.grid.GammaRange()
	samples := fi.symmetrySamples()

	var m FluxMetrics
	m.Downward = fi.integrate(samples, lo, gomath.Min(hi, 90))
	m.Upward = fi.integrate(samples, gomath.Max(lo, 90), hi)
	m.Total = m.Downward + m.Upward
	m.LightOutputRatio = gomath.Max(0, gomath.Min(1, m.Total/1000))

	if m.Total > 0 {
		m.DownwardFraction = m.Downward / m.Total
	} else {
		m.DownwardFraction = 1
	}
	m.UpwardFraction = 1 - m.DownwardFraction

	m.Centroid = fi.centroid(lo, hi)
	return m
}

// Window integrates the flux inside C in [cLo, cHi] and G in [gLo, gHi],
// sampling the full circle rather than the symmetry-reduced range. C bounds
// may extend past 0 or 360; cHi-cLo should not exceed 360.
func (fi *FluxIntegrator) Window(cLo, cHi, gLo, gHi float64) float64 {
	if cHi <= cLo {
		return 0
	}
	lo, hi := fi.field.grid.GammaRange()
	gLo = gomath.Max(gLo, lo)
	gHi = gomath.Min(gHi, hi)
	return fi.integrate(spread(cLo, cHi, fi.res.AzimuthStep, (cHi-cLo)/360), gLo, gHi)
}

// symmetrySamples returns azimuths covering only the stored sub-domain.
// Mirrored copies carry identical values, so the mean over the sub-domain
// equals the mean over the full circle.
func (fi *FluxIntegrator) symmetrySamples() []azimuthSample {
	if fi.field.symmetry == SymmetryVerticalAxis {
		return []azimuthSample{{c: fi.field.grid.c[0], w: 1}}
	}
	lo, hi := fi.field.symmetry.StoredRange()
	return spread(lo, hi, fi.res.AzimuthStep, 1)
}

// integrate sums sample x weight x zonal solid angle over the gamma zones
// between gLo and gHi.
func (fi *FluxIntegrator) integrate(samples []azimuthSample, gLo, gHi float64) float64 {
	if gHi <= gLo {
		return 0
	}
	edges := zoneEdges(gLo, gHi, fi.res.GammaStep)
	perZone := make([]float64, 0, len(edges)-1)
	for i := 0; i+1 < len(edges); i++ {
		mid := (edges[i] + edges[i+1]) / 2
		omega := zonalSolidAngle(edges[i], edges[i+1])
		var ring float64
		for _, s := range samples {
			ring += fi.field.Sample(s.c, mid) * s.w
		}
		perZone = append(perZone, ring*omega)
	}
	return floats.Sum(perZone)
}

// centroid accumulates the flux-weighted direction over the full circle.
func (fi *FluxIntegrator) centroid(gLo, gHi float64) math.Vec3 {
	if gHi <= gLo {
		return math.Vec3{}
	}
	samples := spread(0, 360, fi.res.AzimuthStep, 1)
	edges := zoneEdges(gLo, gHi, fi.res.GammaStep)

	var sum math.Vec3
	for i := 0; i+1 < len(edges); i++ {
		mid := (edges[i] + edges[i+1]) / 2
		omega := zonalSolidAngle(edges[i], edges[i+1])
		for _, s := range samples {
			flux := fi.field.Sample(s.c, mid) * s.w * omega
			sum = sum.Add(math.FromAngles(s.c, mid).Scale(flux))
		}
	}
	return sum.Normalize()
}

// spread places midpoint samples across [lo, hi] no further apart than step.
// The weights sum to total.
func spread(lo, hi, step, total float64) []azimuthSample {
	n := int(gomath.Ceil((hi-lo)/step - 1e-9))
	if n < 1 {
		n = 1
	}
	width := (hi - lo) / float64(n)
	samples := make([]azimuthSample, n)
	for k := range samples {
		samples[k] = azimuthSample{
			c: lo + (float64(k)+0.5)*width,
			w: total / float64(n),
		}
	}
	return samples
}

// zoneEdges partitions [lo, hi] at every multiple of step. Aligning edges to
// multiples keeps zones identical whichever sub-window is integrated.
func zoneEdges(lo, hi, step float64) []float64 {
	const eps = 1e-9

	edges := []float64{lo}
	for k := gomath.Floor(lo/step) + 1; k*step < hi-eps; k++ {
		if e := k * step; e > lo+eps {
			edges = append(edges, e)
		}
	}
	return append(edges, hi)
}

// zonalSolidAngle is the solid angle in steradians of the band between two
// gamma angles in degrees.
func zonalSolidAngle(gLo, gHi float64) float64 {
	return 2 * gomath.Pi * (gomath.Cos(gLo*gomath.Pi/180) - gomath.Cos(gHi*gomath.Pi/180))
}

// FluxPair keeps a declared flux value and the integrated one side by side.
type FluxPair struct {
	Declared    float64
	HasDeclared bool
	Computed    float64
}

// RelativeDifference returns |computed - declared| / declared. It reports
// false when no positive declared value exists.
func (p FluxPair) RelativeDifference() (float64, bool) {
	if !p.HasDeclared || p.Declared <= 0 {
		return 0, false
	}
	return gomath.Abs(p.Computed-p.Declared) / p.Declared, true
}
