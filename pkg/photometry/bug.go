package photometry

import "fmt"

// ZoneLumens holds the flux in lumens of each TM-15 secondary solid angle.
// Forward zones face C0 (C 270-90), back zones face C180 (C 90-270).
type ZoneLumens struct {
	BL, BM, BH, BVH float64 // back: 0-30, 30-60, 60-80, 80-90
	FL, FM, FH, FVH float64 // forward: 0-30, 30-60, 60-80, 80-90
	UL, UH          float64 // uplight: 90-100, 100-180
}

// Total returns the sum of all zones.
func (z ZoneLumens) Total() float64 {
	return z.Back() + z.Forward() + z.Uplight()
}

// Back returns the flux of the four back zones.
func (z ZoneLumens) Back() float64 { return z.BL + z.BM + z.BH + z.BVH }

// Forward returns the flux of the four forward zones.
func (z ZoneLumens) Forward() float64 { return z.FL + z.FM + z.FH + z.FVH }

// Uplight returns the flux above the horizontal.
func (z ZoneLumens) Uplight() float64 { return z.UL + z.UH }

// BugRating is the TM-15 Backlight, Uplight and Glare rating, each 0-5.
type BugRating struct {
	B, U, G uint8
}

// String formats the rating as "B1 U0 G1".
func (r BugRating) String() string {
	return fmt.Sprintf("B%d U%d G%d", r.B, r.U, r.G)
}

// Max returns the worst of the three ratings.
func (r BugRating) Max() uint8 {
	return max(r.B, r.U, r.G)
}

// BugResult is a BUG classification with its zone breakdown.
type BugResult struct {
	Zones       ZoneLumens
	Rating      BugRating
	TotalLumens float64
}

// zoneLimits are the maximum lumens allowed for ratings 0 through 4;
// anything above the last limit rates 5.
type zoneLimits [5]float64

var (
	limitsBacklightHigh = zoneLimits{110, 500, 1000, 2500, 5000}
	limitsBacklightMid  = zoneLimits{220, 1000, 2500, 5000, 8500}
	limitsBacklightLow  = zoneLimits{110, 500, 1000, 2500, 5000}

	limitsUplight = zoneLimits{0, 10, 50, 500, 1000}

	limitsGlareVeryHigh    = zoneLimits{10, 100, 225, 500, 750}
	limitsGlareForwardHigh = zoneLimits{660, 1800, 5000, 7500, 12000}
	limitsGlareBackHigh    = zoneLimits{110, 500, 1000, 2500, 5000}
)

// level returns the lowest rating whose limit covers lumens.
func (l zoneLimits) level(lumens float64) uint8 {
	for i, limit := range l {
		if lumens <= limit {
			return uint8(i)
		}
	}
	return uint8(len(l))
}

// BugClassifier rates a field per IES TM-15.
type BugClassifier struct {
	integrator *FluxIntegrator
	lampFlux   float64
}

// NewBugClassifier returns a classifier for a field whose intensities are
// relative to lampFlux lumens. A non-positive lampFlux means 1000 lm.
func NewBugClassifier(field *Field, res Resolution, lampFlux float64) *BugClassifier {
	if !(lampFlux > 0) {
		lampFlux = 1000
	}
	return &BugClassifier{
		integrator: NewFluxIntegrator(field, res),
		lampFlux:   lampFlux,
	}
}

// Zones integrates the zone lumens.
func (b *BugClassifier) Zones() ZoneLumens {
	scale := b.lampFlux / 1000
	front := func(gLo, gHi float64) float64 {
		return b.integrator.Window(-90, 90, gLo, gHi) * scale
	}
	back := func(gLo, gHi float64) float64 {
		return b.integrator.Window(90, 270, gLo, gHi) * scale
	}
	all := func(gLo, gHi float64) float64 {
		return b.integrator.Window(0, 360, gLo, gHi) * scale
	}

	return ZoneLumens{
		BL:  back(0, 30),
		BM:  back(30, 60),
		BH:  back(60, 80),
		BVH: back(80, 90),
		FL:  front(0, 30),
		FM:  front(30, 60),
		FH:  front(60, 80),
		FVH: front(80, 90),
		UL:  all(90, 100),
		UH:  all(100, 180),
	}
}

// Classify computes the zone lumens and the rating.
func (b *BugClassifier) Classify() BugResult {
	z := b.Zones()
	return BugResult{
		Zones:       z,
		Rating:      RateZones(z),
		TotalLumens: z.Total(),
	}
}

// RateZones assigns B, U and G ratings; each is the worst level over the
// zones that category limits.
func RateZones(z ZoneLumens) BugRating {
	return BugRating{
		B: max(
			limitsBacklightHigh.level(z.BH),
			limitsBacklightMid.level(z.BM),
			limitsBacklightLow.level(z.BL),
		),
		U: max(
			limitsUplight.level(z.UH),
			limitsUplight.level(z.UL),
		),
		G: max(
			limitsGlareVeryHigh.level(z.FVH),
			limitsGlareVeryHigh.level(z.BVH),
			limitsGlareForwardHigh.level(z.FH),
			limitsGlareBackHigh.level(z.BH),
		),
	}
}
