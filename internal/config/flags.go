package config

import "flag"

// Flags are the command-line overrides shared by every subcommand.
type Flags struct {
	fs *flag.FlagSet

	Config      *string
	Debug       *bool
	GammaStep   *float64
	AzimuthStep *float64
	Plane       *float64
}

// RegisterFlags adds the config flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:          fs,
		Config:      fs.String("config", "", "Path to config file"),
		Debug:       fs.Bool("debug", false, "Enable debug logging"),
		GammaStep:   fs.Float64("gamma-step", 0, "Flux zone width in degrees"),
		AzimuthStep: fs.Float64("azimuth-step", 0, "Flux azimuth sample spacing in degrees"),
		Plane:       fs.Float64("plane", 0, "Reference C-plane for beam analysis"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.Config
}

// isSet reports whether the named flag was given on the command line.
func (f *Flags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if *f.GammaStep > 0 {
		cfg.Analysis.GammaStep = *f.GammaStep
	}
	if *f.AzimuthStep > 0 {
		cfg.Analysis.AzimuthStep = *f.AzimuthStep
	}
	// 0 is a valid plane, so only an explicit flag overrides.
	if f.isSet("plane") {
		cfg.Analysis.ReferencePlane = *f.Plane
	}
}
