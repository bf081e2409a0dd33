package photometry

import (
	"errors"
	"fmt"
)

// Construction errors. Sampling and metric computation never fail.
var (
	ErrInvalidGrid         = errors.New("invalid angle grid")
	ErrUnsupportedSymmetry = errors.New("unsupported symmetry")

	// ErrEmptyDomain is returned when a grid has no C or no G angles.
	// It wraps ErrInvalidGrid.
	ErrEmptyDomain = fmt.Errorf("%w: empty angle domain", ErrInvalidGrid)
)
