package completion

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Horizon bounds how many packs a series covers. T_max scales with the deck
// size but stays within [Min, Cap].
type Horizon struct {
	Min     int
	PerCard float64
	Cap     int
}

// DefaultHorizon keeps plots readable and the O(N*T) sweep cheap.
var DefaultHorizon = Horizon{Min: 50, PerCard: 6, Cap: 1500}

// TMax returns the number of packs covered for a deck of the given size.
func (h Horizon) TMax(deck int) int {
	t := int(math.Ceil(h.PerCard * float64(deck)))
	if t < h.Min {
		t = h.Min
	}
	if h.Cap > 0 && t > h.Cap {
		t = h.Cap
	}
	if t < 0 {
		t = 0
	}
	return t
}

// Distribution is the completion law of one rarity, indexed by packs opened.
//
//	Cumulative[t] = P(all Deck cards collected after t packs)
//	Mass[t]       = P(completion happens exactly at pack t)
//	Expected[t]   = E[distinct cards collected after t packs]
type Distribution struct {
	Draw       int
	Deck       int
	TMax       int
	Cumulative []float64
	Mass       []float64
	Expected   []float64
}

// Series runs the forward DP with the default horizon.
func Series(n, deck int) (Distribution, error) {
	return SeriesWithHorizon(n, deck, DefaultHorizon.TMax(deck))
}

// SeriesWithHorizon runs the forward DP for t = 0..tMax, starting from an
// empty collection.
func SeriesWithHorizon(n, deck, tMax int) (Distribution, error) {
	clamped, err := validateDeck(n, deck)
	if err != nil {
		return Distribution{}, err
	}
	if tMax < 0 {
		return Distribution{}, &ParamError{Field: "t_max", Value: tMax, Msg: "horizon must be >= 0"}
	}
	if clamped != n {
		log.Debug().Int("n", n).Int("N", deck).Msg("draw size clamped to deck size")
	}
	n = clamped

	tr := buildTransitions(n, deck, LogFactorials(deck))

	cum := make([]float64, tMax+1)
	mean := make([]float64, tMax+1)

	p := make([]float64, deck+1)
	next := make([]float64, deck+1)
	p[0] = 1

	cum[0] = clamp01(p[deck])
	mean[0] = expectation(p)

	for t := 1; t <= tMax; t++ {
		clear(next)
		for s, ps := range p {
			if ps == 0 {
				continue
			}
			row := tr[s]
			for i, q := range row.Probs {
				next[s+row.MinX+i] += ps * q
			}
		}
		p, next = next, p

		cum[t] = clamp01(p[deck])
		mean[t] = expectation(p)
	}

	return Distribution{
		Draw:       n,
		Deck:       deck,
		TMax:       tMax,
		Cumulative: cum,
		Mass:       MassFromCumulative(cum),
		Expected:   mean,
	}, nil
}

// MassFromCumulative returns the first difference of a cumulative series,
// with negative round-off flushed to zero.
func MassFromCumulative(cum []float64) []float64 {
	mass := make([]float64, len(cum))
	if len(cum) == 0 {
		return mass
	}
	mass[0] = clamp01(cum[0])
	for t := 1; t < len(cum); t++ {
		mass[t] = math.Max(0, cum[t]-cum[t-1])
	}
	return mass
}

// Quantile returns the smallest t with Cumulative[t] >= q.
// The second result is false when the horizon ends before q is reached.
func (d Distribution) Quantile(q float64) (int, bool) {
	for t, f := range d.Cumulative {
		if f >= q {
			return t, true
		}
	}
	return d.TMax, false
}

// MeanWithinHorizon is sum(t * Mass[t]) over the computed horizon. It
// underestimates the true mean by the mass beyond TMax.
func (d Distribution) MeanWithinHorizon() float64 {
	var m float64
	for t, p := range d.Mass {
		m += float64(t) * p
	}
	return m
}

func expectation(p []float64) float64 {
	var e float64
	for s, ps := range p {
		e += float64(s) * ps
	}
	return e
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
