package rsf

// RSFWindow drives a Forest from a fixed-size sliding Window: as points
// slide out of and into the window, each tree (or the whole forest, in
// "joint" mode) independently decides via a HashPicker whether to apply the
// update, so that on average each tree applies an n_points/window fraction
// of the updates rather than every tree updating on every step.
//
// Split (M=true) gives each tree its own picker; joint (M=false) gives the
// whole forest a single shared picker, so either all trees update together
// or none do.
type RSFWindow struct {
	forest  *Forest
	win     *Window
	pickers []*HashPicker
	split   bool
}

// NewRSFWindow builds a window adaptor over a freshly constructed forest.
// split selects per-tree (true) vs whole-forest (false) update gating.
func NewRSFWindow(cfg *Config, split bool) (*RSFWindow, error) {
	f, err := NewForest(cfg)
	if err != nil {
		return nil, err
	}
	n := 1
	if split {
		n = cfg.NTrees
	}
	pickers := make([]*HashPicker, n)
	for i := range pickers {
		pickers[i] = NewHashPicker(cfg.NPoints, cfg.Window, newPickerSeed(cfg, i))
	}
	return &RSFWindow{
		forest:  f,
		win:     NewWindow(cfg.Window),
		pickers: pickers,
		split:   split,
	}, nil
}

// handleOld retires an evicted point using its own arrival index, so the
// same index that gated its insert also gates its removal.
func (w *RSFWindow) handleOld(p []float32, index int) {
	if w.split {
		for i, t := range w.forest.trees {
			if w.pickers[i].Picks(index) {
				t.Remove(p)
			}
		}
		return
	}
	if w.pickers[0].Picks(index) {
		w.forest.Remove(p)
	}
}

// handleNew applies an incoming point gated by its own arrival index.
func (w *RSFWindow) handleNew(p []float32, index int) {
	if w.split {
		for i, t := range w.forest.trees {
			if w.pickers[i].Picks(index) {
				t.Insert(p)
			}
		}
		return
	}
	if w.pickers[0].Picks(index) {
		w.forest.Insert(p)
	}
}

// Push feeds one point through the window. While the window is still
// filling, it applies the insert and returns (0, false). Once full, it
// scores the incoming point against the forest BEFORE evicting the old
// point and applying the new insert (so the score reflects the forest's
// state just prior to this step's churn), then returns (score, true).
func (w *RSFWindow) Push(p []float32) (float32, bool) {
	upd := w.win.Push(p)
	if !upd.IsFull {
		w.handleNew(upd.Insert, upd.NewIndex)
		return 0, false
	}
	s := w.forest.Score(upd.Insert)
	w.handleOld(upd.Evicted, upd.EvictedIndex)
	w.handleNew(upd.Insert, upd.NewIndex)
	return s, true
}

// Forest exposes the underlying forest.
func (w *RSFWindow) Forest() *Forest { return w.forest }
