package rsf

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScenarioTree builds a single d=1 tree with a fixed (zero) shift and a
// fixed split schedule, bypassing newTree's randomness, so behavior is
// pinned exactly for the worked scenarios below.
func newScenarioTree(maxDepth int, maxPoints float64) *Tree {
	bb := UnitBoundingBox(1)
	return &Tree{
		dim:       1,
		maxDepth:  maxDepth,
		maxPoints: maxPoints,
		shift:     []float32{0},
		splits:    make([]int, maxDepth+1), // all dim 0, plenty of levels
		root:      newLeaf(0, bb.WithDoubleRange()),
	}
}

// TestScenarioA_SingleTreeSingleSplit: d=1, box=[0,1], n_points=2,
// granularity=0 (max_points=1). After inserting
// [0.1] then [0.9], the root must have exactly two leaf children with
// total weight 2, and scoring [0.5] must return 2.
func TestScenarioA_SingleTreeSingleSplit(t *testing.T) {
	tree := newScenarioTree(1, 1)

	tree.Insert([]float32{0.1})
	tree.Insert([]float32{0.9})

	require.False(t, tree.root.isLeaf())
	require.Len(t, tree.root.children, 2)
	assert.Equal(t, float64(2), tree.Weight())
	for _, c := range tree.root.children {
		assert.True(t, c.isLeaf())
	}

	score := tree.Score([]float32{0.5})
	assert.Equal(t, float32(2), score)
}

// TestScenarioB_ContractOnDelete continues scenario (A): deleting [0.1]
// collapses the root back into a single leaf holding [0.9], and scoring
// [0.5] now returns 1.
func TestScenarioB_ContractOnDelete(t *testing.T) {
	tree := newScenarioTree(1, 1)
	tree.Insert([]float32{0.1})
	tree.Insert([]float32{0.9})

	tree.Remove([]float32{0.1})

	require.True(t, tree.root.isLeaf())
	assert.Equal(t, float64(1), tree.Weight())
	assert.Equal(t, float32(1), tree.Score([]float32{0.5}))
}

func TestTreeInsertThenRemoveIsIdentity(t *testing.T) {
	tree := newScenarioTree(4, 2)
	pts := [][]float32{{0.1}, {0.2}, {0.3}, {0.4}}
	for _, p := range pts {
		tree.Insert(p)
	}
	before := tree.Weight()
	for _, p := range pts {
		tree.Remove(p)
	}
	assert.Equal(t, float64(len(pts)), before)
	assert.Equal(t, float64(0), tree.Weight())
}

func TestTreeScoreIsNeverNegative(t *testing.T) {
	tree := newScenarioTree(6, 3)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		tree.Insert([]float32{rng.Float32()})
	}
	for i := 0; i < 50; i++ {
		s := tree.Score([]float32{rng.Float32()})
		assert.GreaterOrEqual(t, s, float32(0))
	}
}

func TestTreeExtendReinsertsWeighted(t *testing.T) {
	src := newScenarioTree(4, 10)
	src.Insert([]float32{0.3})
	src.Insert([]float32{0.3})
	src.Sketch(1) // the duplicate insert already merged into one weight-2 entry; nothing left to fold

	dst := newScenarioTree(4, 10)
	dst.Extend(src)

	assert.Equal(t, float64(2), dst.Weight())
}

func TestNewTreeUsesConfigSchedule(t *testing.T) {
	cfg, err := NewConfigBuilder().
		BoundingBox(UnitBoundingBox(2)).
		NPoints(4).
		Granularity(2).
		NTrees(2).
		Seed(7).
		Build()
	require.NoError(t, err)

	rng := cfg.Rng()
	tree, err := newTree(cfg, 1, rng)
	require.NoError(t, err)

	assert.Equal(t, cfg.MaxDepth(), tree.maxDepth)
	assert.Equal(t, cfg.MaxPoints(1), tree.maxPoints)
	assert.Len(t, tree.splits, cfg.MaxDepth())
	assert.Len(t, tree.shift, 2)
}

func TestTreeInsert_PanicsOnDimensionMismatch(t *testing.T) {
	tree := newScenarioTree(4, 2)
	assert.Panics(t, func() {
		tree.Insert([]float32{0.1, 0.2})
	})
}

func BenchmarkTreeInsert(b *testing.B) {
	tree := newScenarioTree(10, 8)
	rng := rand.New(rand.NewSource(1))
	pts := make([][]float32, b.N)
	for i := range pts {
		pts[i] = []float32{rng.Float32()}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(pts[i])
	}
}

func BenchmarkTreeScore(b *testing.B) {
	tree := newScenarioTree(10, 8)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		tree.Insert([]float32{rng.Float32()})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Score([]float32{rng.Float32()})
	}
}
