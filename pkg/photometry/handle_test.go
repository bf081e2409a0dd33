package photometry_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/photoweb/pkg/photometry"
)

func TestHandle_ReplaceAndLoad(t *testing.T) {
	first := uniform(t, 10)
	h := photometry.NewHandle(first)

	s1 := h.Load()
	require.NotNil(t, s1)
	assert.Same(t, first, s1.Field)

	second := uniform(t, 20)
	s2 := h.Replace(second)
	assert.Same(t, second, h.Load().Field)
	assert.NotEqual(t, s1.Revision, s2.Revision)

	// The old snapshot is untouched.
	assert.InDelta(t, 10.0, s1.Field.Sample(0, 0), tolerance)
}

func TestHandle_Apply(t *testing.T) {
	h := photometry.NewHandle(uniform(t, 10))
	before := h.Load()

	after, err := h.Apply(func(f *photometry.Field) (*photometry.Field, error) {
		grid, err := f.Grid().Scaled(3)
		if err != nil {
			return nil, err
		}
		return f.WithGrid(grid)
	})
	require.NoError(t, err)
	assert.InDelta(t, 30.0, h.Load().Field.Sample(0, 90), tolerance)
	assert.Equal(t, after.Revision, h.Load().Revision)
	assert.NotEqual(t, before.Revision, after.Revision)
}

func TestHandle_ApplyErrorKeepsSnapshot(t *testing.T) {
	h := photometry.NewHandle(uniform(t, 10))
	before := h.Load()

	errEdit := errors.New("edit failed")
	_, err := h.Apply(func(*photometry.Field) (*photometry.Field, error) { return nil, errEdit })
	assert.ErrorIs(t, err, errEdit)
	assert.Same(t, before, h.Load())

	_, err = h.Apply(func(f *photometry.Field) (*photometry.Field, error) {
		_, err := f.Grid().WithIntensity(0, 0, -1)
		return nil, err
	})
	assert.ErrorIs(t, err, photometry.ErrInvalidGrid)

	_, err = h.Apply(func(*photometry.Field) (*photometry.Field, error) { return nil, nil })
	assert.ErrorIs(t, err, photometry.ErrEmptyDomain)
	assert.Same(t, before, h.Load())
}

// Readers only ever see whole grids: every stored intensity of a published
// field is the same value.
func TestHandle_ConcurrentEdits(t *testing.T) {
	h := photometry.NewHandle(uniform(t, 1))

	const writers, edits, readers = 4, 50, 4

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range edits {
				_, err := h.Apply(func(f *photometry.Field) (*photometry.Field, error) {
					grid, err := f.Grid().Scaled(1.01)
					if err != nil {
						return nil, err
					}
					return f.WithGrid(grid)
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	torn := make(chan float64, readers)
	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				f := h.Load().Field
				first := f.Sample(0, 0)
				for g := 0.0; g <= 180; g += 10 {
					if v := f.Sample(0, g); v != first {
						torn <- v
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(torn)
	for v := range torn {
		t.Errorf("observed a partially updated field (value %v)", v)
	}

	// Every edit landed exactly once.
	want := 1.0
	for range writers * edits {
		want *= 1.01
	}
	assert.InEpsilon(t, want, h.Load().Field.Sample(0, 0), 1e-9)
}
