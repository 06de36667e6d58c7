package rsf

import (
	"math"
	"math/rand"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Config holds every parameter a Forest is built from.
type Config struct {
	BoundingBox BoundingBox
	NTrees      int
	NPoints     int
	Granularity int
	Window      int
	Shingle     int
	Seed        *uint64
	SketchSize  int
	NMachines   int
}

// MaxDepth is the deepest level the split schedule reaches: ceil(log2(n_points)).
func (c *Config) MaxDepth() int {
	return int(math.Ceil(math.Log2(float64(c.NPoints))))
}

// MaxPoints is the per-tree leaf capacity at treeIndex, staggered across the
// forest's trees by granularity so not every tree uses the same resolution.
func (c *Config) MaxPoints(treeIndex int) float64 {
	return float64(treeIndex*c.Granularity/c.NTrees) + 1
}

// Rng returns a *rand.Rand seeded from c.Seed if set, otherwise seeded from
// the current time.
func (c *Config) Rng() *rand.Rand {
	if c.Seed != nil {
		return rand.New(rand.NewSource(int64(*c.Seed)))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ConfigBuilder accumulates optional settings and validates them together
// on Build. Each setter returns the builder for chaining.
type ConfigBuilder struct {
	boundingBox *BoundingBox
	nTrees      *int
	nPoints     *int
	granularity *int
	shingle     *int
	window      *int
	seed        *uint64
	sketchSize  *int
	nMachines   *int
}

// NewConfigBuilder returns an empty builder; every field falls back to its
// default at Build time unless set here.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) BoundingBox(bb BoundingBox) *ConfigBuilder {
	b.boundingBox = &bb
	return b
}

func (b *ConfigBuilder) NTrees(n int) *ConfigBuilder {
	b.nTrees = &n
	return b
}

func (b *ConfigBuilder) NPoints(n int) *ConfigBuilder {
	b.nPoints = &n
	return b
}

func (b *ConfigBuilder) Granularity(g int) *ConfigBuilder {
	b.granularity = &g
	return b
}

func (b *ConfigBuilder) Shingle(s int) *ConfigBuilder {
	b.shingle = &s
	return b
}

func (b *ConfigBuilder) Window(w int) *ConfigBuilder {
	b.window = &w
	return b
}

func (b *ConfigBuilder) Seed(seed uint64) *ConfigBuilder {
	b.seed = &seed
	return b
}

func (b *ConfigBuilder) SketchSize(s int) *ConfigBuilder {
	b.sketchSize = &s
	return b
}

func (b *ConfigBuilder) NMachines(n int) *ConfigBuilder {
	b.nMachines = &n
	return b
}

// Build validates and finalizes the config, applying defaults
// (n_trees=64, n_points=128, granularity=1, shingle=1, window=n_points,
// sketch_size=2, n_machines=2) for every field left unset. Every validation
// failure is accumulated via go-multierror rather than stopping at the
// first, so a caller sees every problem with one Build call.
func (b *ConfigBuilder) Build() (*Config, error) {
	var errs *multierror.Error

	if b.boundingBox == nil {
		errs = multierror.Append(errs, ErrNoBoundingBox)
	}
	nTrees := intOr(b.nTrees, 64)
	if nTrees <= 0 {
		errs = multierror.Append(errs, ErrZeroTrees)
	}
	nPoints := intOr(b.nPoints, 128)
	if nPoints <= 0 {
		errs = multierror.Append(errs, ErrZeroPoints)
	}
	sketchSize := intOr(b.sketchSize, 2)
	if sketchSize <= 0 {
		errs = multierror.Append(errs, ErrZeroSketchSize)
	}
	nMachines := intOr(b.nMachines, 2)
	if nMachines <= 0 {
		errs = multierror.Append(errs, ErrZeroMachines)
	}
	shingle := intOr(b.shingle, 1)
	window := intOr(b.window, nPoints)
	granularity := intOr(b.granularity, 1)

	var bb BoundingBox
	if b.boundingBox != nil {
		bb = *b.boundingBox
		bb.Shingle(shingle)
		if bb.isDegenerate() {
			errs = multierror.Append(errs, ErrDegenerateBoundingBox)
		}
	}

	if errs.ErrorOrNil() != nil {
		return nil, errors.Wrap(errs, "build forest config")
	}

	return &Config{
		BoundingBox: bb,
		NTrees:      nTrees,
		NPoints:     nPoints,
		Granularity: granularity,
		Window:      window,
		Shingle:     shingle,
		Seed:        b.seed,
		SketchSize:  sketchSize,
		NMachines:   nMachines,
	}, nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
