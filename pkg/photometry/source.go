package photometry

import "github.com/golang/geo/s1"

// Source is the minimal capability set of a photometric data source. Each
// concrete source (an ingested document, an in-memory fixture) implements
// it once; everything else is derived by Luminaire.
type Source interface {
	Field() *Field
	Lamp() Lamp
	Hints() Hints
	Dimensions() Dimensions
}

// Hints are authoritative values declared by the data source. They are
// reported next to computed values, never substituted for them.
type Hints struct {
	LuminaireFlux    *float64 // lumens
	LightOutputRatio *float64 // fraction
	DownwardFraction *float64 // fraction
}

// Dimensions of the luminous area in millimetres.
type Dimensions struct {
	Width  float64
	Length float64
	Height float64
}

// IsCylindrical reports whether the luminous area is round: a width under
// 10 mm means Length holds the diameter.
func (d Dimensions) IsCylindrical() bool {
	return d.Width < 10
}

// StaticSource is an in-memory Source.
type StaticSource struct {
	Photometry *Field
	LampInfo   Lamp
	Declared   Hints
	Size       Dimensions
}

func (s StaticSource) Field() *Field          { return s.Photometry }
func (s StaticSource) Lamp() Lamp             { return s.LampInfo }
func (s StaticSource) Hints() Hints           { return s.Declared }
func (s StaticSource) Dimensions() Dimensions { return s.Size }

// Luminaire layers derived accessors over a Source. Every metric is
// computed from the source's current field on each call.
type Luminaire struct {
	src  Source
	res  Resolution
	beam BeamOptions
}

// Option configures a Luminaire.
type Option func(*Luminaire)

// WithResolution sets the integration resolution.
func WithResolution(res Resolution) Option {
	return func(l *Luminaire) { l.res = res }
}

// WithBeamOptions sets the beam analysis options.
func WithBeamOptions(opts BeamOptions) Option {
	return func(l *Luminaire) { l.beam = opts }
}

// NewLuminaire wraps src.
func NewLuminaire(src Source, opts ...Option) *Luminaire {
	l := &Luminaire{
		src:  src,
		res:  DefaultResolution(),
		beam: DefaultBeamOptions(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the wrapped source.
func (l *Luminaire) Source() Source { return l.src }

// Sample returns the intensity in cd/klm at the given angles.
func (l *Luminaire) Sample(c, g float64) float64 { return l.src.Field().Sample(c, g) }

// MaxIntensity returns the peak intensity in cd/klm.
func (l *Luminaire) MaxIntensity() float64 { return l.src.Field().MaxIntensity() }

// LampFlux returns the rated lamp flux, or 1000 lm when it is unknown.
func (l *Luminaire) LampFlux() float64 {
	if f := l.src.Lamp().RatedFlux; f > 0 {
		return f
	}
	return 1000
}

// Flux integrates the field.
func (l *Luminaire) Flux() FluxMetrics {
	return NewFluxIntegrator(l.src.Field(), l.res).Compute()
}

// TotalFlux returns the integrated luminaire flux in lumens.
func (l *Luminaire) TotalFlux() float64 {
	return l.Flux().Total * l.LampFlux() / 1000
}

// LightOutputRatio returns the integrated light output ratio in [0, 1].
func (l *Luminaire) LightOutputRatio() float64 { return l.Flux().LightOutputRatio }

// DownwardFraction returns the fraction of flux emitted below the horizontal.
func (l *Luminaire) DownwardFraction() float64 { return l.Flux().DownwardFraction }

// UpwardFraction is 1 - DownwardFraction.
func (l *Luminaire) UpwardFraction() float64 { return 1 - l.DownwardFraction() }

// BeamField analyzes beam and field angles on the configured plane.
func (l *Luminaire) BeamField() BeamFieldMetrics {
	return NewBeamFieldAnalyzer(l.src.Field(), l.beam).Analyze()
}

// BeamAngle returns the IES beam half-angle, scanned from nadir, or
// DefaultBeamAngle for a dark reference plane.
func (l *Luminaire) BeamAngle() s1.Angle { return l.BeamField().IESBeam }

// Bug classifies the luminaire per TM-15 using the lamp flux.
func (l *Luminaire) Bug() BugResult {
	return NewBugClassifier(l.src.Field(), l.res, l.LampFlux()).Classify()
}

// ColorTemperature returns the lamp colour temperature in Kelvin, if known.
func (l *Luminaire) ColorTemperature() (float64, bool) { return l.src.Lamp().ColorTemperature() }

// CRI returns the lamp colour rendering index, if known.
func (l *Luminaire) CRI() (float64, bool) { return l.src.Lamp().CRI() }

// IsCylindrical infers a round luminous area from the dimensions.
func (l *Luminaire) IsCylindrical() bool { return l.src.Dimensions().IsCylindrical() }

// FluxCheck pairs the declared luminaire flux with the integrated one.
func (l *Luminaire) FluxCheck() FluxPair {
	p := FluxPair{Computed: l.TotalFlux()}
	if declared := l.src.Hints().LuminaireFlux; declared != nil {
		p.Declared, p.HasDeclared = *declared, true
	}
	return p
}
