package strategy

import "github.com/samber/lo"

// Point is the cost model evaluated at one pack count.
type Point struct {
	T        int     `json:"t"`
	Cost     float64 `json:"cost"`
	Expected Rates   `json:"expected_collected"`
	Missing  Rates   `json:"missing"`
}

// Result is the recommendation for one (set, owned) query.
type Result struct {
	ChosenT           int       `json:"chosen_t"`
	MinCost           float64   `json:"min_cost"`
	ExpectedCollected Rates     `json:"expected_collected"`
	WildcardValues    Rates     `json:"wildcard_values"`
	Yield             Yield     `json:"yield"`
	Owned             Counts    `json:"owned"`
	HorizonCap        int       `json:"horizon_cap"`
	Warnings          []Warning `json:"-"`
}

// Compute finds the pack count t in [0, HorizonCap] minimizing
//
//	cost(t) = t + sum_X missing_X(t) * v_X
//
// by exhaustive scan; cost is not convex once rarities with different decay
// rates are summed. Ties keep the smallest t.
func Compute(set SetParams, owned Counts, opts Options) (Result, error) {
	q, err := prepare(set, owned, opts)
	if err != nil {
		return Result{}, err
	}

	bestT := 0
	best := q.evaluate(0)
	for t := 1; t <= q.opts.HorizonCap; t++ {
		if p := q.evaluate(t); p.Cost < best.Cost {
			best, bestT = p, t
		}
	}

	return Result{
		ChosenT:           bestT,
		MinCost:           best.Cost,
		ExpectedCollected: best.Expected,
		WildcardValues:    q.yield.Value,
		Yield:             q.yield,
		Owned:             q.owned,
		HorizonCap:        q.opts.HorizonCap,
		Warnings:          q.warnings,
	}, nil
}

// Trace evaluates the cost model at every t in [0, HorizonCap].
func Trace(set SetParams, owned Counts, opts Options) ([]Point, error) {
	q, err := prepare(set, owned, opts)
	if err != nil {
		return nil, err
	}
	return lo.Times(q.opts.HorizonCap+1, q.evaluate), nil
}

// CostAt evaluates the cost model at a single pack count.
func CostAt(t int, set SetParams, owned Counts, opts Options) (Point, error) {
	q, err := prepare(set, owned, opts)
	if err != nil {
		return Point{}, err
	}
	return q.evaluate(t), nil
}

type query struct {
	totals   Counts
	owned    Counts
	yield    Yield
	opts     Options
	warnings []Warning
}

func prepare(set SetParams, owned Counts, opts Options) (*query, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	owned, warnings, err := validate(set, owned, opts)
	if err != nil {
		return nil, err
	}
	y, err := resolveYield(set, opts.Precedence)
	if err != nil {
		return nil, err
	}
	return &query{totals: set.Totals, owned: owned, yield: y, opts: opts, warnings: warnings}, nil
}

func (q *query) evaluate(t int) Point {
	p := Point{T: t}
	for _, r := range Rarities {
		n, total, c := q.yield.PerPack.Of(r), float64(q.totals.Of(r)), float64(q.owned.Of(r))
		p.Expected.Set(r, AverageCollected(t, n, total, c))
		p.Missing.Set(r, missing(t, n, total, c))
	}
	p.Cost = lo.Reduce(Rarities, func(acc float64, r Rarity, _ int) float64 {
		return acc + p.Missing.Of(r)*q.yield.Value.Of(r)
	}, float64(t))
	return p
}
