// Package config handles photoweb configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Faultbox/photoweb/pkg/photometry"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalysisConfig holds the metric computation settings. Angles are in degrees.
type AnalysisConfig struct {
	GammaStep        float64 `yaml:"gamma_step"`        // flux zone width
	AzimuthStep      float64 `yaml:"azimuth_step"`      // flux azimuth sample spacing
	BeamStep         float64 `yaml:"beam_step"`         // beam profile scan step
	ReferencePlane   float64 `yaml:"reference_plane"`   // C-plane for beam analysis
	BatwingTolerance float64 `yaml:"batwing_tolerance"` // IES/CIE beam difference
	CenterDipRatio   float64 `yaml:"center_dip_ratio"`
	FluxTolerance    float64 `yaml:"flux_tolerance"` // declared vs computed, relative
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // console or json
}

// Default returns a Config with sensible default values.
func Default() *Config {
	res := photometry.DefaultResolution()
	beam := photometry.DefaultBeamOptions()
	return &Config{
		Analysis: AnalysisConfig{
			GammaStep:        res.GammaStep,
			AzimuthStep:      res.AzimuthStep,
			BeamStep:         beam.Step,
			ReferencePlane:   beam.ReferencePlane,
			BatwingTolerance: beam.BatwingTolerance,
			CenterDipRatio:   beam.CenterDipRatio,
			FluxTolerance:    0.05,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}

// Resolution returns the flux integration resolution.
func (a AnalysisConfig) Resolution() photometry.Resolution {
	return photometry.Resolution{
		GammaStep:   a.GammaStep,
		AzimuthStep: a.AzimuthStep,
	}
}

// BeamOptions returns the beam analysis options.
func (a AnalysisConfig) BeamOptions() photometry.BeamOptions {
	return photometry.BeamOptions{
		ReferencePlane:   a.ReferencePlane,
		Step:             a.BeamStep,
		BatwingTolerance: a.BatwingTolerance,
		CenterDipRatio:   a.CenterDipRatio,
	}
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	a := c.Analysis
	steps := []struct {
		name string
		v    float64
	}{
		{"gamma_step", a.GammaStep},
		{"azimuth_step", a.AzimuthStep},
		{"beam_step", a.BeamStep},
	}
	for _, s := range steps {
		if !(s.v > 0) || math.IsInf(s.v, 0) {
			return fmt.Errorf("%w: analysis.%s must be positive, got %v", ErrInvalidConfig, s.name, s.v)
		}
	}
	if math.IsNaN(a.ReferencePlane) || math.IsInf(a.ReferencePlane, 0) {
		return fmt.Errorf("%w: analysis.reference_plane must be finite", ErrInvalidConfig)
	}
	if !(a.BatwingTolerance >= 0) {
		return fmt.Errorf("%w: analysis.batwing_tolerance must not be negative, got %v", ErrInvalidConfig, a.BatwingTolerance)
	}
	if !(a.CenterDipRatio > 0 && a.CenterDipRatio <= 1) {
		return fmt.Errorf("%w: analysis.center_dip_ratio must be in (0, 1], got %v", ErrInvalidConfig, a.CenterDipRatio)
	}
	if !(a.FluxTolerance >= 0) {
		return fmt.Errorf("%w: analysis.flux_tolerance must not be negative, got %v", ErrInvalidConfig, a.FluxTolerance)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: unknown logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
