package rsf

import "math/rand"

// Tree is one member of a Forest: a binary, randomly-shifted, randomly-split
// space partition over a doubled bounding box, plus the split schedule and
// shift vector that make every insert/score deterministic given (seed,
// treeIndex).
//
// Every coordinate the tree sees (insert, remove, score) is first shifted by
// shift; root's box is the configured box with its upper bound pushed out by
// one full range (BoundingBox.WithDoubleRange), so a shifted point can never
// fall outside it.
type Tree struct {
	dim       int
	maxDepth  int
	maxPoints float64
	shift     []float32
	splits    []int
	root      *node
}

// newTree builds the treeIndex'th tree of cfg's forest, drawing its shift
// and split schedule from rng.
func newTree(cfg *Config, treeIndex int, rng *rand.Rand) (*Tree, error) {
	maxDepth := cfg.MaxDepth()
	rootBB := cfg.BoundingBox.WithDoubleRange()
	shift := cfg.BoundingBox.GenShift(rng)
	splits, err := cfg.BoundingBox.GenSplits(maxDepth, rng)
	if err != nil {
		return nil, err
	}
	return &Tree{
		dim:       cfg.BoundingBox.Dim(),
		maxDepth:  maxDepth,
		maxPoints: cfg.MaxPoints(treeIndex),
		shift:     shift,
		splits:    splits,
		root:      newLeaf(0, rootBB),
	}, nil
}

func (t *Tree) shiftPoint(p []float32) []float32 {
	dimensionMismatch(t.dim, len(p))
	out := make([]float32, len(p))
	for i := range p {
		out[i] = p[i] + t.shift[i]
	}
	return out
}

func (t *Tree) unshiftPoint(p []float32) []float32 {
	out := make([]float32, len(p))
	for i := range p {
		out[i] = p[i] - t.shift[i]
	}
	return out
}

// Insert adds p to the tree, splitting leaves along the way whenever a
// leaf's weight has reached maxPoints and it hasn't yet reached maxDepth.
func (t *Tree) Insert(p []float32) {
	ps := t.shiftPoint(p)
	n := t.root
	for {
		if n.level < t.maxDepth && n.weight() == t.maxPoints {
			n.split(t.splits[n.level])
			n = n.child(ps, t.splits[n.level])
			continue
		}
		n.insert(ps)
		return
	}
}

// BatchInsert inserts every point in ps in order.
func (t *Tree) BatchInsert(ps [][]float32) {
	for _, p := range ps {
		t.Insert(p)
	}
}

// Remove deletes p from the tree and contracts any ancestor whose children
// have become collapsible (all leaves, combined weight <= maxPoints).
func (t *Tree) Remove(p []float32) {
	ps := t.shiftPoint(p)
	t.root.contractAt(ps, t.splits, t.maxPoints)
}

// score reports the path length ℓ (one more than the level of the leaf
// reached) that isolates p, with a tail-length correction added whenever
// ℓ == maxDepth (a leaf at level maxDepth-1) and that leaf holds more weight
// than maxPoints. Leaves at level maxDepth (ℓ == maxDepth+1) are scored as
// ℓ without correction, whatever weight they hold.
func (t *Tree) score(ps []float32) float32 {
	leaf := t.root.find(ps, t.splits)
	l := leaf.level + 1
	if l == t.maxDepth {
		w := leaf.weight()
		if w > t.maxPoints {
			return float32(l) + pathLengthCorrection(int(w))
		}
	}
	return float32(l)
}

// Score shifts p and reports its path length through the tree.
func (t *Tree) Score(p []float32) float32 {
	return t.score(t.shiftPoint(p))
}

// BatchScore scores every point in ps.
func (t *Tree) BatchScore(ps [][]float32) []float32 {
	out := make([]float32, len(ps))
	for i, p := range ps {
		out[i] = t.Score(p)
	}
	return out
}

// Weight is the total point weight currently held anywhere in the tree.
func (t *Tree) Weight() float64 { return t.root.weight() }

// NPoints is the number of distinct coordinate vectors currently held.
func (t *Tree) NPoints() int { return t.root.nPoints() }

// Sketch folds every leaf's point list down to at most sketchSize entries.
func (t *Tree) Sketch(sketchSize int) {
	t.root.sketch(sketchSize)
}

// Nodes returns every node in the tree, breadth-first from the root.
func (t *Tree) Nodes() []*node {
	return t.root.nodes(nil)
}

// Extend merges other's points into t: every point other ever saw is
// re-inserted into t, once per unit of weight it carries, after undoing
// other's shift (so the coordinate re-enters t's own shift space).
func (t *Tree) Extend(other *Tree) {
	for _, n := range other.Nodes() {
		if !n.isLeaf() {
			continue
		}
		n.points.Each(func(p Point) {
			original := other.unshiftPoint(p.Coords)
			for i := 0; i < int(p.Weight); i++ {
				t.Insert(original)
			}
		})
	}
}
