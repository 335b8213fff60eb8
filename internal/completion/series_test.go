package completion

import (
	"context"
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestHorizonTMax(t *testing.T) {
	is := is.New(t)
	is.Equal(DefaultHorizon.TMax(0), 50)
	is.Equal(DefaultHorizon.TMax(8), 50)
	is.Equal(DefaultHorizon.TMax(9), 54)
	is.Equal(DefaultHorizon.TMax(100), 600)
	is.Equal(DefaultHorizon.TMax(1000), 1500)
	is.Equal(Horizon{Min: 10, PerCard: 2}.TMax(100), 200) // no cap
}

func TestSeriesSingleCard(t *testing.T) {
	is := is.New(t)
	d, err := Series(1, 1)
	is.NoErr(err)
	is.Equal(d.Cumulative[0], 0.0)
	for ti := 1; ti <= d.TMax; ti++ {
		is.Equal(d.Cumulative[ti], 1.0)
	}
	is.Equal(d.Mass[1], 1.0)
	is.Equal(d.Mass[2], 0.0)
}

func TestSeriesEmptyDeck(t *testing.T) {
	is := is.New(t)
	for _, n := range []int{0, 4} {
		d, err := Series(n, 0)
		is.NoErr(err)
		is.Equal(d.Draw, 0)
		is.Equal(len(d.Cumulative), d.TMax+1)
		for _, f := range d.Cumulative {
			is.Equal(f, 1.0)
		}
		is.Equal(d.Mass[0], 1.0)
		is.Equal(floats.Sum(d.Mass[1:]), 0.0)
	}
}

func TestSeriesTwoCards(t *testing.T) {
	// one card per pack out of two: F_t = 1 - 2^(1-t) for t >= 1
	d, err := SeriesWithHorizon(1, 2, 10)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, d.Cumulative[0])
	assert.Equal(t, 0.0, d.Cumulative[1])
	for ti := 2; ti <= 10; ti++ {
		assert.InDelta(t, 1-math.Pow(2, float64(1-ti)), d.Cumulative[ti], 1e-12)
	}
	q, ok := d.Quantile(0.5)
	assert.True(t, ok)
	assert.Equal(t, 2, q)
	_, ok = d.Quantile(1.0)
	assert.False(t, ok)
}

func TestSeriesFullDraw(t *testing.T) {
	d, err := Series(7, 7)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, d.Cumulative[0])
	assert.Equal(t, 1.0, d.Cumulative[1])
	assert.InDelta(t, 1.0, d.MeanWithinHorizon(), 1e-12)
}

func TestSeriesZeroDrawNeverCompletes(t *testing.T) {
	d, err := SeriesWithHorizon(0, 5, 20)
	assert.NoError(t, err)
	for _, f := range d.Cumulative {
		assert.Equal(t, 0.0, f)
	}
	for _, e := range d.Expected {
		assert.Equal(t, 0.0, e)
	}
}

func TestSeriesMonotoneAndBounded(t *testing.T) {
	for _, tc := range []struct{ n, deck int }{
		{1, 5}, {2, 10}, {5, 81}, {14, 100}, {1, 65}, {1, 22}, {3, 250},
	} {
		d, err := Series(tc.n, tc.deck)
		assert.NoError(t, err)
		assert.Len(t, d.Cumulative, d.TMax+1)
		assert.Len(t, d.Mass, d.TMax+1)
		assert.Equal(t, 0.0, d.Cumulative[0], "F_0 must be 0 for N>0")
		for ti, f := range d.Cumulative {
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 1.0)
			if ti > 0 {
				assert.GreaterOrEqual(t, f, d.Cumulative[ti-1], "n=%d N=%d t=%d", tc.n, tc.deck, ti)
			}
		}
		assert.LessOrEqual(t, floats.Sum(d.Mass), 1.0+1e-9)
		assert.InDelta(t, d.Cumulative[d.TMax], floats.Sum(d.Mass), 1e-9)
	}
}

func TestSeriesLongHorizonApproachesOne(t *testing.T) {
	d, err := Series(5, 81)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, d.Cumulative[d.TMax], 1e-9)
}

func TestSeriesIdempotent(t *testing.T) {
	is := is.New(t)
	a, err := Series(4, 60)
	is.NoErr(err)
	b, err := Series(4, 60)
	is.NoErr(err)
	is.Equal(a, b)
}

func TestSeriesRejects(t *testing.T) {
	_, err := Series(-2, 10)
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = Series(2, -10)
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = SeriesWithHorizon(2, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestMassFromCumulative(t *testing.T) {
	is := is.New(t)
	is.Equal(MassFromCumulative(nil), []float64{})
	// a slight dip from round-off must not produce negative mass
	got := MassFromCumulative([]float64{0, 0.5, 0.4999999999, 1})
	is.Equal(got[0], 0.0)
	is.Equal(got[2], 0.0)
	assert.InDelta(t, 0.5, got[1], 1e-15)
}

func TestSetSeriesKeepsOrder(t *testing.T) {
	decks := []Deck{
		{Name: "common", Draw: 5, Size: 81},
		{Name: "uncommon", Draw: 2, Size: 100},
		{Name: "rare", Draw: 1, Size: 65},
		{Name: "mythic", Draw: 1, Size: 0},
	}
	out, err := SetSeries(context.Background(), decks, DefaultHorizon)
	assert.NoError(t, err)
	assert.Len(t, out, 4)
	for i, d := range decks {
		want, err := Series(d.Draw, d.Size)
		assert.NoError(t, err)
		assert.Equal(t, want, out[i], d.Name)
	}
}

func TestSetSeriesNamesFailingDeck(t *testing.T) {
	_, err := SetSeries(context.Background(), []Deck{
		{Name: "common", Draw: 5, Size: 81},
		{Name: "rare", Draw: -1, Size: 65},
	}, DefaultHorizon)
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Contains(t, err.Error(), "rare")
}
