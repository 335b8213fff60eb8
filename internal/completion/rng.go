package completion

import (
	"math/rand/v2"

	"lukechampine.com/frand"
)

// RandomSource yields uniform floats in [0, 1).
type RandomSource interface {
	Float64() float64
}

type frandRNG struct{}

func (frandRNG) Float64() float64 { return frand.Float64() }

// DefaultRNG is a fast CSPRNG-backed source, not reproducible across runs.
func DefaultRNG() RandomSource { return frandRNG{} }

// replicable source for tests and reproducible simulations
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a PCG source; equal seeds give equal streams.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// intn maps a uniform float onto [0, k).
func intn(rng RandomSource, k int) int {
	i := int(rng.Float64() * float64(k))
	if i >= k {
		i = k - 1
	}
	return i
}
