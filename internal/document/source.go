package document

import "github.com/Faultbox/photoweb/pkg/photometry"

// Source is a loaded document. It satisfies photometry.Source and
// publishes its field through a Handle, so edits made with Edit are seen
// whole by concurrent readers.
type Source struct {
	name   string
	handle *photometry.Handle
	lamp   photometry.Lamp
	hints  photometry.Hints
	dims   photometry.Dimensions
}

// Source builds the field and metadata of the document.
func (d *Document) Source() (*Source, error) {
	field, err := d.Field()
	if err != nil {
		return nil, err
	}
	return &Source{
		name:   d.Name,
		handle: photometry.NewHandle(field),
		lamp: photometry.Lamp{
			Count:               d.Lamp.Count,
			RatedFlux:           d.Lamp.Flux,
			ColorAppearance:     d.Lamp.ColorAppearance,
			ColorRenderingGroup: d.Lamp.ColorRendering,
		},
		hints: photometry.Hints{
			LuminaireFlux:    d.Declared.LuminaireFlux,
			LightOutputRatio: d.Declared.LightOutputRatio,
			DownwardFraction: d.Declared.DownwardFraction,
		},
		dims: photometry.Dimensions{
			Width:  d.Dimensions.Width,
			Length: d.Dimensions.Length,
			Height: d.Dimensions.Height,
		},
	}, nil
}

// Open loads the document at path and builds its source.
func Open(path string) (*Source, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Source()
}

// Name returns the document name.
func (s *Source) Name() string { return s.name }

func (s *Source) Field() *photometry.Field          { return s.handle.Load().Field }
func (s *Source) Lamp() photometry.Lamp             { return s.lamp }
func (s *Source) Hints() photometry.Hints           { return s.hints }
func (s *Source) Dimensions() photometry.Dimensions { return s.dims }

// Snapshot returns the currently published field with its revision.
func (s *Source) Snapshot() *photometry.Snapshot { return s.handle.Load() }

// Edit applies a copy-on-write edit to the field.
func (s *Source) Edit(edit func(*photometry.Field) (*photometry.Field, error)) (*photometry.Snapshot, error) {
	return s.handle.Apply(edit)
}

// Document converts the current state back to a document.
func (s *Source) Document() *Document {
	doc := FromField(s.name, s.Field())
	doc.Lamp = Lamp{
		Count:           s.lamp.Count,
		Flux:            s.lamp.RatedFlux,
		ColorAppearance: s.lamp.ColorAppearance,
		ColorRendering:  s.lamp.ColorRenderingGroup,
	}
	doc.Declared = Declared{
		LuminaireFlux:    s.hints.LuminaireFlux,
		LightOutputRatio: s.hints.LightOutputRatio,
		DownwardFraction: s.hints.DownwardFraction,
	}
	doc.Dimensions = Dimensions{
		Width:  s.dims.Width,
		Length: s.dims.Length,
		Height: s.dims.Height,
	}
	return doc
}
