package completion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xtding233/setcollect/internal/completion"
	"github.com/xtding233/setcollect/internal/strategy"
)

// The closed form used by the cost model is the exact mean of the chain for
// integer draw sizes: each missing card escapes a pack with probability
// (N-n)/N independently of the others. The models differ only in that the
// cost model works with means and fractional yields, never the full law.
func TestClosedFormMatchesChainMean(t *testing.T) {
	for deck := 1; deck <= 12; deck++ {
		for n := 1; n <= deck; n++ {
			d, err := completion.SeriesWithHorizon(n, deck, 40)
			assert.NoError(t, err)
			for ti := 0; ti <= 40; ti++ {
				want := strategy.AverageCollected(ti, float64(n), float64(deck), 0)
				assert.InDelta(t, want, d.Expected[ti], 1e-9, "n=%d N=%d t=%d", n, deck, ti)
			}
		}
	}
}

// Completing in expectation is not completing: the chain's completion
// probability at the pack count where the mean shortfall first drops below
// one card is far from certain. This bounds how optimistic the cost model's
// "expected collected" is for small decks.
func TestMeanShortfallVersusCompletion(t *testing.T) {
	const deck, n = 10, 1
	d, err := completion.Series(n, deck)
	assert.NoError(t, err)

	ti := 0
	for float64(deck)-strategy.AverageCollected(ti, n, deck, 0) >= 1 {
		ti++
	}
	// 10*(0.9)^t < 1 first at t = 22
	assert.Equal(t, 22, ti)
	assert.Greater(t, d.Cumulative[ti], 0.25)
	assert.Less(t, d.Cumulative[ti], 0.4)
}
