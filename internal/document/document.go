// Package document reads and writes photometric grid documents.
//
// A grid document is a YAML file carrying the measured angle axes, the
// intensity matrix, the declared symmetry and the lamp metadata:
//
//	name: Street light
//	symmetry: C0C180Plane
//	units: cd/klm
//	c_angles: [0, 90, 180]
//	g_angles: [0, 30, 60, 90]
//	intensities:
//	  - [100, 80, 50, 10]
//	  - [100, 85, 55, 12]
//	  - [100, 70, 30, 5]
//	lamp: {count: 1, flux: 12000, color_appearance: 4000K, color_rendering: 1B}
//	declared: {luminaire_flux: 11000}
//	dimensions: {width: 300, length: 600, height: 80}
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/photoweb/pkg/encoding"
	"github.com/Faultbox/photoweb/pkg/photometry"
)

// ErrDocument is wrapped by every decoding and conversion error.
var ErrDocument = errors.New("invalid grid document")

// Intensity units accepted in documents.
const (
	UnitsRelative = "cd/klm" // candela per 1000 lm of lamp flux
	UnitsAbsolute = "cd"     // candela; converted using the lamp flux
)

// Document is the on-disk form of a measurement.
type Document struct {
	Name        string      `yaml:"name,omitempty"`
	Symmetry    string      `yaml:"symmetry"`
	Units       string      `yaml:"units,omitempty"`
	CAngles     []float64   `yaml:"c_angles"`
	GAngles     []float64   `yaml:"g_angles"`
	Intensities [][]float64 `yaml:"intensities"`
	Lamp        Lamp        `yaml:"lamp,omitempty"`
	Declared    Declared    `yaml:"declared,omitempty"`
	Dimensions  Dimensions  `yaml:"dimensions,omitempty"`
}

// Lamp is the lamp metadata block.
type Lamp struct {
	Count           int     `yaml:"count,omitempty"`
	Flux            float64 `yaml:"flux,omitempty"`
	ColorAppearance string  `yaml:"color_appearance,omitempty"`
	ColorRendering  string  `yaml:"color_rendering,omitempty"`
}

// Declared holds values stated by the data source.
type Declared struct {
	LuminaireFlux    *float64 `yaml:"luminaire_flux,omitempty"`
	LightOutputRatio *float64 `yaml:"light_output_ratio,omitempty"`
	DownwardFraction *float64 `yaml:"downward_fraction,omitempty"`
}

// Dimensions of the luminous area in millimetres.
type Dimensions struct {
	Width  float64 `yaml:"width,omitempty"`
	Length float64 `yaml:"length,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Decode reads one document from r. Windows-1252 and UTF-16 input is
// converted to UTF-8 first. Unknown keys are rejected.
func Decode(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := encoding.ToUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocument, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrDocument)
		}
		return nil, fmt.Errorf("%w: %w", ErrDocument, err)
	}
	return &doc, nil
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = path
	}
	return doc, nil
}

// Encode writes the document as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// Field builds the photometric field described by the document.
func (d *Document) Field() (*photometry.Field, error) {
	sym, err := photometry.ParseSymmetry(d.Symmetry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocument, err)
	}

	rows := d.Intensities
	switch strings.ToLower(strings.TrimSpace(d.Units)) {
	case "", UnitsRelative:
	case UnitsAbsolute:
		if !(d.Lamp.Flux > 0) {
			return nil, fmt.Errorf("%w: units %q need a positive lamp flux", ErrDocument, d.Units)
		}
		rows = scaleRows(rows, 1000/d.Lamp.Flux)
	default:
		return nil, fmt.Errorf("%w: unknown units %q", ErrDocument, d.Units)
	}

	grid, err := photometry.NewAngleGrid(d.CAngles, d.GAngles, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocument, err)
	}
	field, err := photometry.NewField(grid, sym)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocument, err)
	}
	return field, nil
}

func scaleRows(rows [][]float64, factor float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = floats.ScaleTo(make([]float64, len(row)), factor, row)
	}
	return out
}

// FromField builds a document in cd/klm from a field.
func FromField(name string, field *photometry.Field) *Document {
	grid := field.Grid()
	nc, ng := grid.Size()

	rows := make([][]float64, nc)
	for i := range rows {
		rows[i] = make([]float64, ng)
		for j := range rows[i] {
			rows[i][j] = grid.Intensity(i, j)
		}
	}
	return &Document{
		Name:        name,
		Symmetry:    field.Symmetry().String(),
		Units:       UnitsRelative,
		CAngles:     grid.CAngles(),
		GAngles:     grid.GAngles(),
		Intensities: rows,
	}
}
