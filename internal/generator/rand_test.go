package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRand_SameSeedSameSequence(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)

	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRand_UniformBounds(t *testing.T) {
	r := NewRand(1)
	for i := 0; i < 1000; i++ {
		v := r.Uniform(1.10, 1.20)
		assert.GreaterOrEqual(t, v, 1.10)
		assert.Less(t, v, 1.20)
	}
}

func TestRand_IntBetweenInclusive(t *testing.T) {
	r := NewRand(1)
	seenLo, seenHi := false, false
	for i := 0; i < 10000; i++ {
		v := r.IntBetween(1, 12)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 12)
		if v == 1 {
			seenLo = true
		}
		if v == 12 {
			seenHi = true
		}
	}
	assert.True(t, seenLo, "lower bound should be reachable")
	assert.True(t, seenHi, "upper bound should be reachable")
}

func TestRand_ExponentialMean(t *testing.T) {
	r := NewRand(7)
	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := r.Exponential(30)
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 30.0, sum/n, 1.0, "sample mean should be near 30 days")
}

func TestRand_BetaRange(t *testing.T) {
	r := NewRand(7)
	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := r.Beta(2, 5)
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
		sum += v
	}
	// Beta(2,5) has mean 2/7: the payout pattern is front-loaded.
	assert.InDelta(t, 2.0/7.0, sum/n, 0.01)
}

func TestRand_GammaMoments(t *testing.T) {
	r := NewRand(11)
	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := r.Gamma(2, 20)
		assert.Greater(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 40.0, sum/n, 1.5, "Gamma(2,20) mean should be near 40")
}

func TestRand_WeightedIndexDistribution(t *testing.T) {
	r := NewRand(3)
	weights := []float64{0.3, 0.2, 0.2, 0.2, 0.1}

	counts := make([]int, len(weights))
	const n = 50000
	for i := 0; i < n; i++ {
		idx := r.WeightedIndex(weights)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(weights))
		counts[idx]++
	}
	for i, w := range weights {
		assert.InDelta(t, w, float64(counts[i])/n, 0.02, "weight %d off target", i)
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 12.35, roundTo(12.345678, 2))
	assert.Equal(t, 12.345678, roundTo(12.3456781, 6))
	assert.Equal(t, 0.0, roundTo(0.0001, 2))
	assert.Equal(t, -2.5, roundTo(-2.499, 2))
}
