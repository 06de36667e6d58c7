package rsf

import (
	"math/rand"
	"sort"
)

// parSample is one entry in a ParStreamSampler's retained sample, a point
// paired with the uniform draw that won it its slot.
type parSample struct {
	point []float32
	key   float64
}

// ParStreamSampler is a weighted reservoir sampler shared across n_machines
// concurrent streams (the "pass 1" step of the two-way distributed
// protocol): every machine m keeps its own acceptance threshold us[m], and a
// point is only considered for the shared sample if its draw beats that
// machine's threshold, keeping the overall sample an unbiased uniform
// sample of the union of all machines' streams regardless of how many
// points each machine contributes.
type ParStreamSampler struct {
	us     []float64
	u      float64
	sample []parSample
	rng    *rand.Rand
	n      int
}

// NewParStreamSampler builds a sampler retaining up to cfg.NPoints points
// across cfg.NMachines shards.
func NewParStreamSampler(cfg *Config) *ParStreamSampler {
	us := make([]float64, cfg.NMachines)
	for i := range us {
		us[i] = 1
	}
	return &ParStreamSampler{
		us:  us,
		u:   1,
		rng: cfg.Rng(),
		n:   cfg.NPoints,
	}
}

// Insert offers point from machine m. Every call draws a fresh uniform
// weight; the point is only considered if that weight beats machine m's
// current acceptance threshold.
func (s *ParStreamSampler) Insert(m int, point []float32) {
	w := s.rng.Float64()
	if w < s.us[m] {
		s.us[m] = s.update(point, w)
	}
}

// update inserts (point, w) into the sample in sorted-by-key order if w
// beats the current global cutoff u, evicting the worst entry once the
// sample exceeds capacity, and returns the new cutoff for the calling
// machine.
func (s *ParStreamSampler) update(point []float32, w float64) float64 {
	if w < s.u {
		i := sort.Search(len(s.sample), func(i int) bool { return s.sample[i].key >= w })
		s.sample = append(s.sample, parSample{})
		copy(s.sample[i+1:], s.sample[i:])
		s.sample[i] = parSample{point: append([]float32(nil), point...), key: w}
		if len(s.sample) > s.n {
			s.sample = s.sample[:len(s.sample)-1]
			s.u = s.sample[len(s.sample)-1].key
		}
	}
	return s.u
}

// Query returns the retained sample's points, in ascending key order.
func (s *ParStreamSampler) Query() [][]float32 {
	out := make([][]float32, len(s.sample))
	for i, p := range s.sample {
		out[i] = p.point
	}
	return out
}
