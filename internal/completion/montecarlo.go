package completion

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// ErrNeverCompletes is returned when a pack cannot add new cards to a
// non-empty deck.
var ErrNeverCompletes = errors.New("draw size 0 never completes a non-empty deck")

// DefaultMaxPacks caps a single simulated trial.
const DefaultMaxPacks = 100_000

// SimParams describes one simulated collector.
type SimParams struct {
	Draw     int
	Deck     int
	MaxPacks int // <=0 means DefaultMaxPacks
}

// Stats summarizes packs-to-complete over all trials.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Censored counts trials that hit MaxPacks without completing.
	Censored int
	Samples  []int `json:"-"`
}

// calcStats computes population mean/variance and interpolated percentiles.
func calcStats(xs []int) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	fs := make([]float64, len(xs))
	for i, v := range xs {
		fs[i] = float64(v)
	}
	mean, variance := stat.PopMeanVariance(fs, nil)
	slices.Sort(fs)
	q := func(p float64) float64 {
		return stat.Quantile(p, stat.LinInterp, fs, nil)
	}
	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     q(0.50),
		P90:     q(0.90),
		P99:     q(0.99),
		Samples: xs,
	}
}

// collector tracks one trial. perm is a running permutation of card ids;
// a partial Fisher-Yates shuffle of its first Draw slots picks a pack.
type collector struct {
	owned []bool
	perm  []int
	have  int
}

func newCollector(deck int) *collector {
	c := &collector{owned: make([]bool, deck), perm: make([]int, deck)}
	for i := range c.perm {
		c.perm[i] = i
	}
	return c
}

func (c *collector) openPack(draw int, rng RandomSource) {
	deck := len(c.perm)
	for i := 0; i < draw; i++ {
		j := i + intn(rng, deck-i)
		c.perm[i], c.perm[j] = c.perm[j], c.perm[i]
		if card := c.perm[i]; !c.owned[card] {
			c.owned[card] = true
			c.have++
		}
	}
}

// simulateOne returns packs opened until every card is owned, and whether
// the trial finished before the cap.
func simulateOne(p SimParams, rng RandomSource) (int, bool) {
	c := newCollector(p.Deck)
	packs := 0
	for c.have < p.Deck {
		if packs >= p.MaxPacks {
			return packs, false
		}
		c.openPack(p.Draw, rng)
		packs++
	}
	return packs, true
}

// Simulate repeats trials and returns summary stats. A nil rng uses
// DefaultRNG.
func Simulate(p SimParams, trials int, rng RandomSource) (Stats, error) {
	draw, err := validateDeck(p.Draw, p.Deck)
	if err != nil {
		return Stats{}, err
	}
	p.Draw = draw
	if p.Draw == 0 && p.Deck > 0 {
		return Stats{}, ErrNeverCompletes
	}
	if trials <= 0 {
		return Stats{}, nil
	}
	if p.MaxPacks <= 0 {
		p.MaxPacks = DefaultMaxPacks
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	samples := make([]int, trials)
	censored := 0
	for i := range samples {
		v, done := simulateOne(p, rng)
		if !done {
			censored++
		}
		samples[i] = v
	}
	st := calcStats(samples)
	st.Censored = censored
	return st, nil
}
