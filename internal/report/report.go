// Package report collects every derived metric of a luminaire into a single
// value that the CLI prints as YAML.
package report

import (
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/photoweb/internal/config"
	"github.com/Faultbox/photoweb/internal/logger"
	"github.com/Faultbox/photoweb/pkg/photometry"
)

// Report is the full metric set of one luminaire.
type Report struct {
	Name        string    `yaml:"name,omitempty"`
	Revision    string    `yaml:"revision,omitempty"`
	Symmetry    string    `yaml:"symmetry"`
	Intensity   Intensity `yaml:"intensity"`
	Flux        Flux      `yaml:"flux"`
	Beam        Beam      `yaml:"beam"`
	Bug         Bug       `yaml:"bug"`
	Lamp        Lamp      `yaml:"lamp"`
	Cylindrical bool      `yaml:"cylindrical"`
}

// Intensity summarizes the stored grid in cd/klm.
type Intensity struct {
	Max   float64 `yaml:"max"`
	Min   float64 `yaml:"min"`
	PeakC float64 `yaml:"peak_c"`
	PeakG float64 `yaml:"peak_g"`
}

// Flux is the integrated flux scaled to the lamp.
type Flux struct {
	LampFlux         float64    `yaml:"lamp_flux"`
	Total            float64    `yaml:"total"`
	Downward         float64    `yaml:"downward"`
	Upward           float64    `yaml:"upward"`
	LightOutputRatio float64    `yaml:"light_output_ratio"`
	DownwardFraction float64    `yaml:"downward_fraction"`
	UpwardFraction   float64    `yaml:"upward_fraction"`
	Centroid         [3]float64 `yaml:"centroid,flow"`
	CentroidC        float64    `yaml:"centroid_c"`
	CentroidG        float64    `yaml:"centroid_g"`

	Declared   *float64 `yaml:"declared,omitempty"`
	Difference *float64 `yaml:"difference,omitempty"` // relative to Declared
	Mismatch   bool     `yaml:"mismatch,omitempty"`
}

// Beam holds the beam and field half-angles in degrees.
type Beam struct {
	ReferencePlane float64 `yaml:"reference_plane"`
	IESBeam        float64 `yaml:"ies_beam"`
	IESField       float64 `yaml:"ies_field"`
	CIEBeam        float64 `yaml:"cie_beam"`
	CIEField       float64 `yaml:"cie_field"`
	Batwing        bool    `yaml:"batwing"`
}

// Bug is the TM-15 classification with its zone lumens.
type Bug struct {
	Rating string `yaml:"rating"`
	B      uint8  `yaml:"b"`
	U      uint8  `yaml:"u"`
	G      uint8  `yaml:"g"`
	Zones  Zones  `yaml:"zones"`
}

// Zones are the lumens of the ten TM-15 secondary solid angles.
type Zones struct {
	BL  float64 `yaml:"bl"`
	BM  float64 `yaml:"bm"`
	BH  float64 `yaml:"bh"`
	BVH float64 `yaml:"bvh"`
	FL  float64 `yaml:"fl"`
	FM  float64 `yaml:"fm"`
	FH  float64 `yaml:"fh"`
	FVH float64 `yaml:"fvh"`
	UL  float64 `yaml:"ul"`
	UH  float64 `yaml:"uh"`
}

// Lamp echoes the lamp metadata with the parsed values.
type Lamp struct {
	Count            int      `yaml:"count,omitempty"`
	ColorAppearance  string   `yaml:"color_appearance,omitempty"`
	ColorTemperature *float64 `yaml:"color_temperature,omitempty"`
	ColorRendering   string   `yaml:"color_rendering,omitempty"`
	CRI              *float64 `yaml:"cri,omitempty"`
}

type named interface {
	Name() string
}

type snapshotter interface {
	Snapshot() *photometry.Snapshot
}

// Build computes the report of src. Every metric is taken from the same
// field, even if src is edited concurrently. A declared luminaire flux
// further than cfg.FluxTolerance from the computed one is logged as a
// warning and flagged in the report.
func Build(src photometry.Source, cfg config.AnalysisConfig) *Report {
	r := &Report{}
	if n, ok := src.(named); ok {
		r.Name = n.Name()
	}

	field := src.Field()
	if s, ok := src.(snapshotter); ok {
		snap := s.Snapshot()
		field = snap.Field
		r.Revision = snap.Revision.String()
	}

	lum := photometry.NewLuminaire(photometry.StaticSource{
		Photometry: field,
		LampInfo:   src.Lamp(),
		Declared:   src.Hints(),
		Size:       src.Dimensions(),
	}, photometry.WithResolution(cfg.Resolution()), photometry.WithBeamOptions(cfg.BeamOptions()))

	r.Symmetry = field.Symmetry().String()
	peakC, peakG := field.Peak()
	r.Intensity = Intensity{
		Max:   field.MaxIntensity(),
		Min:   field.MinIntensity(),
		PeakC: peakC,
		PeakG: peakG,
	}

	r.Flux = buildFlux(lum, cfg.FluxTolerance)
	if r.Flux.Mismatch {
		logger.Named("report").Warn("declared flux differs from computed",
			zap.String("luminaire", r.Name),
			zap.Float64("declared", *r.Flux.Declared),
			zap.Float64("computed", r.Flux.Total),
			zap.Float64("difference", *r.Flux.Difference),
			zap.Float64("tolerance", cfg.FluxTolerance),
		)
	}

	bf := lum.BeamField()
	r.Beam = Beam{
		ReferencePlane: bf.ReferencePlane,
		IESBeam:        bf.IESBeam.Degrees(),
		IESField:       bf.IESField.Degrees(),
		CIEBeam:        bf.CIEBeam.Degrees(),
		CIEField:       bf.CIEField.Degrees(),
		Batwing:        bf.IsBatwing,
	}

	bug := lum.Bug()
	z := bug.Zones
	r.Bug = Bug{
		Rating: bug.Rating.String(),
		B:      bug.Rating.B,
		U:      bug.Rating.U,
		G:      bug.Rating.G,
		Zones: Zones{
			BL: z.BL, BM: z.BM, BH: z.BH, BVH: z.BVH,
			FL: z.FL, FM: z.FM, FH: z.FH, FVH: z.FVH,
			UL: z.UL, UH: z.UH,
		},
	}

	lamp := src.Lamp()
	r.Lamp = Lamp{
		Count:           lamp.Count,
		ColorAppearance: lamp.ColorAppearance,
		ColorRendering:  lamp.ColorRenderingGroup,
	}
	if cct, ok := lum.ColorTemperature(); ok {
		r.Lamp.ColorTemperature = &cct
	}
	if cri, ok := lum.CRI(); ok {
		r.Lamp.CRI = &cri
	}
	r.Cylindrical = lum.IsCylindrical()

	logger.Named("report").Debug("built report",
		zap.String("luminaire", r.Name),
		zap.String("bug", r.Bug.Rating),
		zap.Float64("total_flux", r.Flux.Total),
	)
	return r
}

func buildFlux(lum *photometry.Luminaire, tolerance float64) Flux {
	m := lum.Flux()
	scale := lum.LampFlux() / 1000

	f := Flux{
		LampFlux:         lum.LampFlux(),
		Total:            m.Total * scale,
		Downward:         m.Downward * scale,
		Upward:           m.Upward * scale,
		LightOutputRatio: m.LightOutputRatio,
		DownwardFraction: m.DownwardFraction,
		UpwardFraction:   m.UpwardFraction,
		Centroid:         [3]float64{m.Centroid.X, m.Centroid.Y, m.Centroid.Z},
	}
	f.CentroidC, f.CentroidG = m.Centroid.Angles()

	check := photometry.FluxPair{Computed: f.Total}
	if declared := lum.Source().Hints().LuminaireFlux; declared != nil {
		check.Declared, check.HasDeclared = *declared, true
		f.Declared = &check.Declared
	}
	if diff, ok := check.RelativeDifference(); ok {
		f.Difference = &diff
		f.Mismatch = diff > tolerance
	}
	return f
}

// Write encodes the report as YAML.
func (r *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
