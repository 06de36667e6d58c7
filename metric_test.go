package rsf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathLengthCorrectionKnownValues(t *testing.T) {
	// c(2) = 2*(ln(1)+gamma) - 2*(1)/2 = 2*gamma - 1
	assert.InDelta(t, 2*eulerMascheroni-1, pathLengthCorrection(2), 1e-6)
}

func TestTransformIsMonotonicDecreasing(t *testing.T) {
	cn := pathLengthCorrection(10)
	lo := transform(1, cn)
	hi := transform(5, cn)
	assert.Greater(t, lo, hi)
	assert.LessOrEqual(t, lo, float32(1))
}

func TestTransformAtZeroScoreIsOne(t *testing.T) {
	cn := pathLengthCorrection(10)
	assert.InDelta(t, 1.0, float64(transform(0, cn)), 1e-6)
}

func TestKSmallest(t *testing.T) {
	arr := []float32{5, 1, 4, 2, 3}
	idx := kSmallest(arr, 2)
	assert.ElementsMatch(t, []int{1, 3}, idx)
}

func TestKLargest(t *testing.T) {
	arr := []float32{5, 1, 4, 2, 3}
	idx := kLargest(arr, 2)
	assert.ElementsMatch(t, []int{0, 2}, idx)
}

func TestKExtremeClampsToLength(t *testing.T) {
	arr := []float32{1, 2}
	idx := kSmallest(arr, 10)
	assert.Len(t, idx, 2)
}

func TestKExtremeTieBrokenByIndex(t *testing.T) {
	arr := []float32{1, 1, 1}
	idx := kSmallest(arr, 2)
	assert.Equal(t, []int{0, 1}, idx)
}

func TestSumWeights(t *testing.T) {
	got := sumWeights([]float64{1, 2, 3})
	assert.Equal(t, float64(6), got)
	assert.False(t, math.IsNaN(got))
}
