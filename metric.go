package rsf

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// eulerMascheroni is gamma, used in the average path-length correction.
const eulerMascheroni = 0.5772156649

// pathLengthCorrection is c(n), the expected remaining path length to
// isolate one of n points in an unbounded binary search tree:
// 2(ln(n-1)+gamma) - 2(n-1)/n. Only meaningful for n >= 2; a tree never
// calls it for n < 2 since that would mean a leaf overflowed with a single
// point.
func pathLengthCorrection(n int) float32 {
	nf := float64(n)
	h := math.Log(nf-1) + eulerMascheroni
	return float32(2*h - 2*(nf-1)/nf)
}

// transform turns a raw path-length score into a probability-like anomaly
// signal in (0, 1], using cn = pathLengthCorrection(nPoints) as the scale:
// 2^(-score/cn).
func transform(score, cn float32) float32 {
	return float32(math.Exp2(float64(-score / cn)))
}

// sumWeights is a small gonum-backed helper used by Forest aggregation to
// total a slice of per-tree scores before dividing by len(scores).
func sumWeights(xs []float64) float64 {
	return floats.Sum(xs)
}

// kSmallest returns the indices of the k smallest values in arr (ties
// broken by index), via quickselect partial sort.
func kSmallest(arr []float32, k int) []int {
	return kExtreme(arr, k, false)
}

// kLargest returns the indices of the k largest values in arr.
func kLargest(arr []float32, k int) []int {
	return kExtreme(arr, k, true)
}

func kExtreme(arr []float32, k int, largest bool) []int {
	if k > len(arr) {
		k = len(arr)
	}
	if k <= 0 {
		return nil
	}
	idx := make([]int, len(arr))
	for i := range idx {
		idx[i] = i
	}
	s := &indexByValue{idx: idx, arr: arr, largest: largest}
	quickselect(s, k-1)
	sort.Sort(&indexByValue{idx: idx[:k], arr: arr, largest: largest})
	return idx[:k]
}

// indexByValue orders a permutation of indices by arr's values, breaking
// ties by the index itself so results are stable and reproducible.
type indexByValue struct {
	idx     []int
	arr     []float32
	largest bool
}

func (s *indexByValue) Len() int      { return len(s.idx) }
func (s *indexByValue) Swap(i, j int) { s.idx[i], s.idx[j] = s.idx[j], s.idx[i] }
func (s *indexByValue) Less(i, j int) bool {
	a, b := s.arr[s.idx[i]], s.arr[s.idx[j]]
	if a != b {
		if s.largest {
			return a > b
		}
		return a < b
	}
	return s.idx[i] < s.idx[j]
}
