package completion

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestSimulateReproducible(t *testing.T) {
	is := is.New(t)
	p := SimParams{Draw: 2, Deck: 12}
	a, err := Simulate(p, 500, NewSeededRNG(7))
	is.NoErr(err)
	b, err := Simulate(p, 500, NewSeededRNG(7))
	is.NoErr(err)
	is.Equal(a.Samples, b.Samples)
	is.Equal(a.Mean, b.Mean)
	is.Equal(a.Censored, 0)
}

func TestSimulateAgreesWithDP(t *testing.T) {
	d, err := Series(2, 10)
	assert.NoError(t, err)

	st, err := Simulate(SimParams{Draw: 2, Deck: 10}, 20000, NewSeededRNG(42))
	assert.NoError(t, err)
	assert.InDelta(t, d.MeanWithinHorizon(), st.Mean, 0.3)

	median, ok := d.Quantile(0.5)
	assert.True(t, ok)
	assert.InDelta(t, float64(median), st.P50, 1.0)
	assert.LessOrEqual(t, st.P50, st.P90)
	assert.LessOrEqual(t, st.P90, st.P99)
}

func TestSimulateEdges(t *testing.T) {
	is := is.New(t)

	_, err := Simulate(SimParams{Draw: 0, Deck: 3}, 10, NewSeededRNG(1))
	is.Equal(err, ErrNeverCompletes)

	st, err := Simulate(SimParams{Draw: 0, Deck: 0}, 10, NewSeededRNG(1))
	is.NoErr(err)
	is.Equal(st.Mean, 0.0)

	st, err = Simulate(SimParams{Draw: 5, Deck: 5}, 10, nil)
	is.NoErr(err)
	is.Equal(st.Mean, 1.0)
	is.Equal(st.StdDev, 0.0)

	st, err = Simulate(SimParams{Draw: 1, Deck: 50, MaxPacks: 3}, 4, NewSeededRNG(3))
	is.NoErr(err)
	is.Equal(st.Censored, 4)
	is.Equal(st.Samples, []int{3, 3, 3, 3})

	st, err = Simulate(SimParams{Draw: 1, Deck: 3}, 0, nil)
	is.NoErr(err)
	is.Equal(st, Stats{})
}
