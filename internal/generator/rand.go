package generator

import (
	"math"
	"math/rand/v2"
)

// Rand is the explicit random state a generator owns. Every draw in the
// pipeline goes through one of these, so two generators built from the same
// seed produce identical tables regardless of what else runs in the process.
type Rand struct {
	src *rand.Rand
}

// NewRand builds a deterministic source from a seed.
func NewRand(seed uint64) *Rand {
	return &Rand{src: rand.New(rand.NewPCG(seed, seed))}
}

func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// Uniform draws from [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.src.Float64()
}

// IntBetween draws a uniform integer in [lo, hi] inclusive.
func (r *Rand) IntBetween(lo, hi int) int {
	return lo + r.src.IntN(hi-lo+1)
}

// Bool is true with probability p.
func (r *Rand) Bool(p float64) bool {
	return r.src.Float64() < p
}

// Normal draws from N(mean, sd).
func (r *Rand) Normal(mean, sd float64) float64 {
	return mean + sd*r.src.NormFloat64()
}

// LogNormal draws exp(N(mu, sigma)).
func (r *Rand) LogNormal(mu, sigma float64) float64 {
	return math.Exp(r.Normal(mu, sigma))
}

// Exponential draws from an exponential distribution with the given mean.
func (r *Rand) Exponential(mean float64) float64 {
	return r.src.ExpFloat64() * mean
}

// Gamma draws from a gamma distribution (Marsaglia-Tsang squeeze method).
func (r *Rand) Gamma(shape, scale float64) float64 {
	if shape < 1 {
		// Boost: Gamma(a) = Gamma(a+1) * U^(1/a)
		return r.Gamma(shape+1, scale) * math.Pow(r.src.Float64(), 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / (3.0 * math.Sqrt(d))
	for {
		x := r.src.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := r.src.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// Beta draws from Beta(a, b) via two gamma variates.
func (r *Rand) Beta(a, b float64) float64 {
	x := r.Gamma(a, 1)
	y := r.Gamma(b, 1)
	return x / (x + y)
}

// WeightedIndex picks an index with probability proportional to weights.
// Weights are assumed to sum to 1; any rounding remainder falls on the last
// entry.
func (r *Rand) WeightedIndex(weights []float64) int {
	u := r.src.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return i
		}
	}
	return len(weights) - 1
}

// roundTo rounds half away from zero at the given number of fraction digits.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
