// photoweb is a CLI utility for inspecting photometric grid documents.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/photoweb/internal/config"
	"github.com/Faultbox/photoweb/internal/document"
	"github.com/Faultbox/photoweb/internal/logger"
	"github.com/Faultbox/photoweb/internal/report"
	"github.com/Faultbox/photoweb/pkg/photometry"
)

var errUsage = errors.New("invalid usage")

func main() {
	err := run(os.Args[1:], os.Stdout)
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: no command", errUsage)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		return cmdInfo(args, out)
	case "sample":
		return cmdSample(args, out)
	case "flux":
		return cmdFlux(args, out)
	case "beam":
		return cmdBeam(args, out)
	case "bug":
		return cmdBug(args, out)
	case "report":
		return cmdReport(args, out)
	case "scale":
		return cmdScale(args, out)
	case "config":
		return cmdConfig(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `photoweb - photometric grid document utility

Usage:
  photoweb <command> [options]

Commands:
  info <doc.yaml>                  Show grid and lamp information
  sample <doc.yaml> <c> <g>        Sample the intensity at C/G angles
  flux <doc.yaml>                  Integrate luminous flux
  beam <doc.yaml>                  Beam and field angles (IES and CIE)
  bug <doc.yaml>                   TM-15 BUG rating with zone lumens
  report <doc.yaml>                Full metric report as YAML
  scale <doc.yaml> <factor>        Write a copy with scaled intensities
  config                           Show the effective configuration

Common options:
  -config <path>    Config file (default ./photoweb.yaml)
  -debug            Enable debug logging
  -gamma-step <d>   Flux zone width in degrees
  -azimuth-step <d> Flux azimuth sample spacing in degrees
  -plane <c>        Reference C-plane for beam analysis

Examples:
  photoweb info street.yaml
  photoweb sample street.yaml 90 45
  photoweb beam -plane 90 street.yaml
  photoweb report -o street-report.yaml street.yaml`)
}

// setup registers the shared flags, parses args and initializes logging
// from the resulting config.
func setup(fs *flag.FlagSet, args []string) (*config.Config, error) {
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}

	opts := logger.Options{
		Level:   cfg.Logging.Level,
		JSON:    cfg.Logging.Format == "json",
		Console: os.Stderr,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open loads the document named by the first positional argument.
func open(fs *flag.FlagSet, usage string) (*document.Source, error) {
	if fs.NArg() < 1 {
		return nil, fmt.Errorf("%w: photoweb %s", errUsage, usage)
	}
	src, err := document.Open(fs.Arg(0))
	if err != nil {
		return nil, err
	}

	nc, ng := src.Field().Grid().Size()
	logger.Debug("loaded document",
		zap.String("path", fs.Arg(0)),
		zap.String("symmetry", src.Field().Symmetry().String()),
		zap.Int("c_planes", nc),
		zap.Int("g_angles", ng),
	)
	return src, nil
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func cmdInfo(args []string, out io.Writer) error {
	fs := newFlagSet("info")
	if _, err := setup(fs, args); err != nil {
		return err
	}
	src, err := open(fs, "info <doc.yaml>")
	if err != nil {
		return err
	}

	snap := src.Snapshot()
	field := snap.Field
	grid := field.Grid()
	nc, ng := grid.Size()
	c := grid.CAngles()
	gLo, gHi := grid.GammaRange()
	peakC, peakG := field.Peak()
	lamp := src.Lamp()

	fmt.Fprintf(out, "Document: %s\n", src.Name())
	fmt.Fprintf(out, "Revision: %s\n", snap.Revision)
	fmt.Fprintf(out, "Symmetry: %s\n", field.Symmetry())
	fmt.Fprintf(out, "Grid:     %d C-planes x %d G-angles\n", nc, ng)
	fmt.Fprintf(out, "C range:  %g - %g\n", c[0], c[len(c)-1])
	fmt.Fprintf(out, "G range:  %g - %g\n", gLo, gHi)
	fmt.Fprintf(out, "Max:      %.2f cd/klm at C%g G%g\n", field.MaxIntensity(), peakC, peakG)
	fmt.Fprintf(out, "Min:      %.2f cd/klm\n", field.MinIntensity())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Lamp:")
	fmt.Fprintf(out, "  Count:            %d\n", lamp.Count)
	fmt.Fprintf(out, "  Flux:             %g lm\n", lamp.RatedFlux)
	fmt.Fprintf(out, "  Color appearance: %s\n", lamp.ColorAppearance)
	fmt.Fprintf(out, "  Color rendering:  %s\n", lamp.ColorRenderingGroup)
	return nil
}

func cmdSample(args []string, out io.Writer) error {
	fs := newFlagSet("sample")
	normalized := fs.Bool("normalized", false, "Print intensity relative to the peak")
	verbose := fs.Bool("v", false, "Show the folded grid coordinates")
	if _, err := setup(fs, args); err != nil {
		return err
	}

	const usage = "sample <doc.yaml> <c> <g>"
	if fs.NArg() < 3 {
		return fmt.Errorf("%w: photoweb %s", errUsage, usage)
	}
	c, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		return fmt.Errorf("%w: bad C-angle %q", errUsage, fs.Arg(1))
	}
	g, err := strconv.ParseFloat(fs.Arg(2), 64)
	if err != nil {
		return fmt.Errorf("%w: bad G-angle %q", errUsage, fs.Arg(2))
	}

	src, err := open(fs, usage)
	if err != nil {
		return err
	}
	field := src.Field()

	if *normalized {
		fmt.Fprintf(out, "%.4f\n", field.SampleNormalized(c, g))
	} else {
		fmt.Fprintf(out, "%.4f\n", field.Sample(c, g))
	}

	if *verbose {
		co := field.Resolve(c, g)
		fmt.Fprintf(out, "folded:  C%g G%g\n", co.C, co.G)
		fmt.Fprintf(out, "C cells: %d-%d (t=%.4f)\n", co.C0, co.C1, co.TC)
		fmt.Fprintf(out, "G cells: %d-%d (t=%.4f)\n", co.G0, co.G1, co.TG)
	}
	return nil
}

// build opens the document and computes its full report.
func build(name string, args []string) (*report.Report, error) {
	fs := newFlagSet(name)
	cfg, err := setup(fs, args)
	if err != nil {
		return nil, err
	}
	src, err := open(fs, name+" <doc.yaml>")
	if err != nil {
		return nil, err
	}
	return report.Build(src, cfg.Analysis), nil
}

func cmdFlux(args []string, out io.Writer) error {
	r, err := build("flux", args)
	if err != nil {
		return err
	}
	f := r.Flux

	fmt.Fprintf(out, "Lamp flux:         %.1f lm\n", f.LampFlux)
	fmt.Fprintf(out, "Luminaire flux:    %.1f lm\n", f.Total)
	fmt.Fprintf(out, "  Downward:        %.1f lm\n", f.Downward)
	fmt.Fprintf(out, "  Upward:          %.1f lm\n", f.Upward)
	fmt.Fprintf(out, "LOR:               %.1f%%\n", f.LightOutputRatio*100)
	fmt.Fprintf(out, "Downward fraction: %.1f%%\n", f.DownwardFraction*100)
	fmt.Fprintf(out, "Upward fraction:   %.1f%%\n", f.UpwardFraction*100)
	fmt.Fprintf(out, "Centroid:          (%.3f, %.3f, %.3f) C%.1f G%.1f\n",
		f.Centroid[0], f.Centroid[1], f.Centroid[2], f.CentroidC, f.CentroidG)
	if f.Declared != nil && f.Difference != nil {
		fmt.Fprintf(out, "Declared:          %.1f lm (%.1f%% off)\n", *f.Declared, *f.Difference*100)
	}
	return nil
}

func cmdBeam(args []string, out io.Writer) error {
	r, err := build("beam", args)
	if err != nil {
		return err
	}
	b := r.Beam

	fmt.Fprintf(out, "Plane:     C%g\n", b.ReferencePlane)
	fmt.Fprintf(out, "IES beam:  %.1f deg (field %.1f deg)\n", b.IESBeam, b.IESField)
	fmt.Fprintf(out, "CIE beam:  %.1f deg (field %.1f deg)\n", b.CIEBeam, b.CIEField)
	fmt.Fprintf(out, "Batwing:   %t\n", b.Batwing)
	return nil
}

func cmdBug(args []string, out io.Writer) error {
	r, err := build("bug", args)
	if err != nil {
		return err
	}
	z := r.Bug.Zones

	fmt.Fprintf(out, "Rating: %s\n", r.Bug.Rating)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Zone lumens:")
	rows := []struct {
		name string
		lm   float64
	}{
		{"BL", z.BL}, {"BM", z.BM}, {"BH", z.BH}, {"BVH", z.BVH},
		{"FL", z.FL}, {"FM", z.FM}, {"FH", z.FH}, {"FVH", z.FVH},
		{"UL", z.UL}, {"UH", z.UH},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "  %-4s %10.1f\n", row.name, row.lm)
	}
	return nil
}

func cmdReport(args []string, out io.Writer) error {
	fs := newFlagSet("report")
	output := fs.String("o", "", "Write the report to a file instead of stdout")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	src, err := open(fs, "report [-o file] <doc.yaml>")
	if err != nil {
		return err
	}
	r := report.Build(src, cfg.Analysis)

	if *output == "" {
		return r.Write(out)
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("report written", zap.String("path", *output), zap.String("bug", r.Bug.Rating))
	return nil
}

func cmdScale(args []string, out io.Writer) error {
	fs := newFlagSet("scale")
	output := fs.String("o", "", "Write the scaled document to a file instead of stdout")
	if _, err := setup(fs, args); err != nil {
		return err
	}

	const usage = "scale [-o file] <doc.yaml> <factor>"
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: photoweb %s", errUsage, usage)
	}
	factor, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		return fmt.Errorf("%w: bad factor %q", errUsage, fs.Arg(1))
	}

	src, err := open(fs, usage)
	if err != nil {
		return err
	}
	snap, err := src.Edit(func(f *photometry.Field) (*photometry.Field, error) {
		grid, err := f.Grid().Scaled(factor)
		if err != nil {
			return nil, err
		}
		return f.WithGrid(grid)
	})
	if err != nil {
		return err
	}
	logger.Debug("scaled field", zap.Float64("factor", factor), zap.Stringer("revision", snap.Revision))

	doc := src.Document()
	if *output == "" {
		return doc.Encode(out)
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := doc.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdConfig(args []string, out io.Writer) error {
	fs := newFlagSet("config")
	save := fs.Bool("save", false, "Save the effective config to the user config directory")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	if *save {
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", path)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
