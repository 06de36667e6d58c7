package rsf

// Forest is an ensemble of randomly-shifted, randomly-split trees (RSF).
// Every operation fans out to each tree and aggregates by mean.
type Forest struct {
	cfg   *Config
	trees []*Tree
}

// NewForest builds an n_trees-tree forest from cfg.
func NewForest(cfg *Config) (*Forest, error) {
	rng := cfg.Rng()
	trees := make([]*Tree, cfg.NTrees)
	for i := range trees {
		t, err := newTree(cfg, i, rng)
		if err != nil {
			return nil, err
		}
		trees[i] = t
	}
	return &Forest{cfg: cfg, trees: trees}, nil
}

// Config returns the configuration the forest was built from.
func (f *Forest) Config() *Config { return f.cfg }

// NTrees returns the number of trees in the forest.
func (f *Forest) NTrees() int { return len(f.trees) }

// Tree returns the i'th tree, for callers (distributed.go, the streaming
// adaptors) that need to target individual trees rather than the whole
// ensemble.
func (f *Forest) Tree(i int) *Tree { return f.trees[i] }

// Insert adds p to every tree in the forest.
func (f *Forest) Insert(p []float32) {
	for _, t := range f.trees {
		t.Insert(p)
	}
}

// BatchInsert inserts every point in ps into every tree.
func (f *Forest) BatchInsert(ps [][]float32) {
	for _, p := range ps {
		f.Insert(p)
	}
}

// Remove deletes p from every tree in the forest.
func (f *Forest) Remove(p []float32) {
	for _, t := range f.trees {
		t.Remove(p)
	}
}

// Score is the mean of every tree's path length for p, the forest's raw
// anomaly signal (lower means more anomalous).
func (f *Forest) Score(p []float32) float32 {
	scores := make([]float64, len(f.trees))
	for i, t := range f.trees {
		scores[i] = float64(t.Score(p))
	}
	return float32(sumWeights(scores) / float64(len(scores)))
}

// BatchScore scores every point in ps.
func (f *Forest) BatchScore(ps [][]float32) []float32 {
	out := make([]float32, len(ps))
	for i, p := range ps {
		out[i] = f.Score(p)
	}
	return out
}

// NPoints is the mean, across trees, of the total point weight held. Uses
// Tree.Weight rather than Tree.NPoints so it still reflects true forest size
// after a Sketch has folded weight into fewer distinct entries.
func (f *Forest) NPoints() float64 {
	ws := make([]float64, len(f.trees))
	for i, t := range f.trees {
		ws[i] = t.Weight()
	}
	return sumWeights(ws) / float64(len(ws))
}

// Sketch folds every tree's leaves down to at most cfg.SketchSize entries.
func (f *Forest) Sketch() {
	for _, t := range f.trees {
		t.Sketch(f.cfg.SketchSize)
	}
}

// Extend merges another forest's points into f, tree for tree. Both forests
// must have the same tree count (built from configs with the same n_trees).
func (f *Forest) Extend(other *Forest) {
	for i, t := range f.trees {
		t.Extend(other.trees[i])
	}
}

// Transform maps a raw score into a (0, 1] anomaly signal using the
// forest's configured n_points as the path-length-correction scale.
func (f *Forest) Transform(score float32) float32 {
	return transform(score, pathLengthCorrection(f.cfg.NPoints))
}
