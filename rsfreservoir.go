package rsf

import "math/rand"

// RSFReservoir drives a Forest from one or more reservoir samplers (Algorithm
// R) instead of a fixed sliding window: each tree (split mode) or the whole
// forest (joint mode) keeps its own reservoir of size cfg.NPoints, and a
// point entering the stream scores against the forest before the reservoir
// update is applied. The first NPoints pushes fill the reservoir(s) and
// produce no score, so the first scored output is the (NPoints+1)'th point
// pushed.
type RSFReservoir struct {
	forest     *Forest
	reservoirs []*Reservoir
	split      bool
	primed     int
	r          int
}

// NewRSFReservoir builds a reservoir adaptor over a freshly constructed
// forest.
func NewRSFReservoir(cfg *Config, split bool) (*RSFReservoir, error) {
	f, err := NewForest(cfg)
	if err != nil {
		return nil, err
	}
	n := 1
	if split {
		n = cfg.NTrees
	}
	rng := cfg.Rng()
	reservoirs := make([]*Reservoir, n)
	for i := range reservoirs {
		reservoirs[i] = NewReservoir(cfg.NPoints, rand.New(rand.NewSource(rng.Int63())))
	}
	return &RSFReservoir{forest: f, reservoirs: reservoirs, split: split, r: cfg.NPoints}, nil
}

func (s *RSFReservoir) applyUpdate(treeIdx int, upd ReservoirUpdate) {
	switch {
	case s.split:
		t := s.forest.Tree(treeIdx)
		switch upd.Kind {
		case ReservoirInsert:
			t.Insert(upd.Item)
		case ReservoirReplace:
			t.Remove(upd.Evicted)
			t.Insert(upd.Item)
		}
	default:
		switch upd.Kind {
		case ReservoirInsert:
			s.forest.Insert(upd.Item)
		case ReservoirReplace:
			s.forest.Remove(upd.Evicted)
			s.forest.Insert(upd.Item)
		}
	}
}

// Push feeds one point through the adaptor, returning (score, true) once
// every reservoir has been through its initial fill, or (0, false) while
// still priming.
func (s *RSFReservoir) Push(p []float32) (float32, bool) {
	if s.primed < s.r {
		s.primed++
		for i, res := range s.reservoirs {
			s.applyUpdate(i, res.Push(p))
		}
		return 0, false
	}
	score := s.forest.Score(p)
	for i, res := range s.reservoirs {
		s.applyUpdate(i, res.Push(p))
	}
	return score, true
}

// Forest exposes the underlying forest.
func (s *RSFReservoir) Forest() *Forest { return s.forest }
