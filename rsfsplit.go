package rsf

// RSFSplit is the simplest streaming adaptor: it bulk-loads the first
// cfg.NPoints points it sees into a fresh forest, then scores every point
// after that against the now-frozen forest. It never mutates the forest
// once loaded.
type RSFSplit struct {
	forest  *Forest
	cfg     *Config
	seen    int
	loading bool
}

// NewRSFSplit builds an adaptor whose forest is filled from cfg.
func NewRSFSplit(cfg *Config) (*RSFSplit, error) {
	f, err := NewForest(cfg)
	if err != nil {
		return nil, err
	}
	return &RSFSplit{forest: f, cfg: cfg, loading: true}, nil
}

// Push feeds one point through the adaptor. While the forest is still
// loading (the first cfg.NPoints points), it returns (0, false): no score
// is produced. Once loaded, every point is scored against the frozen
// forest and returned as (score, true).
func (s *RSFSplit) Push(p []float32) (float32, bool) {
	if s.loading {
		s.forest.Insert(p)
		s.seen++
		if s.seen >= s.cfg.NPoints {
			s.loading = false
		}
		return 0, false
	}
	return s.forest.Score(p), true
}

// Forest exposes the underlying (frozen, once loaded) forest.
func (s *RSFSplit) Forest() *Forest { return s.forest }
