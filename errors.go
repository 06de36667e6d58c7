package rsf

import "github.com/pkg/errors"

// Error kinds, checked with errors.Is. The configuration kinds are returned
// from ConfigBuilder.Build (ErrDegenerateBoundingBox also from
// BoundingBox.GenSplits, and ErrEmptyPointSource from FromPoints); per-point
// errors inside a running pipeline (dimension mismatch) are programmer
// errors and panic with a value wrapping ErrDimensionMismatch instead, since
// no caller is expected to recover from them at runtime.
var (
	ErrNoBoundingBox         = errors.New("no bounding box provided")
	ErrZeroSketchSize        = errors.New("sketch_size must be at least 1")
	ErrZeroMachines          = errors.New("n_machines must be at least 1")
	ErrZeroTrees             = errors.New("n_trees must be at least 1")
	ErrZeroPoints            = errors.New("n_points must be at least 1")
	ErrDegenerateBoundingBox = errors.New("bounding box has zero range in every dimension")
	ErrDimensionMismatch     = errors.New("point dimension does not match bounding box dimension")
	ErrEmptyPointSource      = errors.New("cannot derive a bounding box from an empty point source")
)

// dimensionMismatch panics with the expected/actual dimensions. Dimension
// mismatches are programmer errors: the caller fed a vector of the wrong
// length into a pipeline that was configured for a fixed d.
func dimensionMismatch(expected, actual int) {
	if expected != actual {
		panic(errors.Wrapf(ErrDimensionMismatch, "rsf: expected %d, got %d", expected, actual))
	}
}
