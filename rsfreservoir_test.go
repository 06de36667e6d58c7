package rsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSFReservoir_PrimesBeforeScoring(t *testing.T) {
	cfg, err := NewConfigBuilder().
		BoundingBox(UnitBoundingBox(1)).
		NPoints(20).
		NTrees(2).
		Seed(3).
		Build()
	require.NoError(t, err)

	adaptor, err := NewRSFReservoir(cfg, false)
	require.NoError(t, err)

	scored := 0
	for i := 0; i < 100; i++ {
		_, ok := adaptor.Push([]float32{float32(i%20) / 20})
		if ok {
			scored++
		}
	}
	assert.Equal(t, 80, scored)
}
