package strategy

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

// a set shaped like a recent premier set
var sampleSet = SetParams{
	Totals: Counts{Common: 81, Uncommon: 100, Rare: 65, Mythic: 22},
	Alpha:  7,
}

func TestComputeCompleteCollection(t *testing.T) {
	is := is.New(t)
	res, err := Compute(sampleSet, sampleSet.Totals, DefaultOptions())
	is.NoErr(err)
	is.Equal(res.ChosenT, 0)
	is.Equal(res.MinCost, 0.0)
	for _, r := range Rarities {
		is.Equal(res.ExpectedCollected.Of(r), float64(sampleSet.Totals.Of(r)))
	}
	is.Equal(res.WildcardValues, PackParameters(7).Value)
}

func TestComputeEmptySet(t *testing.T) {
	is := is.New(t)
	res, err := Compute(SetParams{Alpha: 7}, Counts{}, Options{})
	is.NoErr(err)
	is.Equal(res.ChosenT, 0)
	is.Equal(res.MinCost, 0.0)
	is.Equal(res.ExpectedCollected, Rates{})
}

func TestComputeTieKeepsSmallestT(t *testing.T) {
	// cost(0) = 0 + 1*2 = 2, cost(1) = 1 + 0.5*2 = 2, cost(2) = 2.5
	set := SetParams{
		Totals: Counts{Common: 1},
		Alpha:  7,
		Overrides: Overrides{
			PerPack: RateOverrides{Common: ptr(0.5)},
			Melt:    RateOverrides{Common: ptr(0.5)},
		},
	}
	is := is.New(t)
	p0, err := CostAt(0, set, Counts{}, Options{})
	is.NoErr(err)
	p1, err := CostAt(1, set, Counts{}, Options{})
	is.NoErr(err)
	is.Equal(p0.Cost, p1.Cost)

	res, err := Compute(set, Counts{}, Options{})
	is.NoErr(err)
	is.Equal(res.ChosenT, 0)
	is.Equal(res.MinCost, 2.0)
}

func TestComputeFindsLeftmostMinimum(t *testing.T) {
	owned := Counts{Common: 77, Uncommon: 55, Rare: 37, Mythic: 13}
	res, err := Compute(sampleSet, owned, DefaultOptions())
	assert.NoError(t, err)

	trace, err := Trace(sampleSet, owned, DefaultOptions())
	assert.NoError(t, err)
	assert.Len(t, trace, DefaultHorizonCap+1)

	first := 0
	for i, p := range trace {
		assert.Equal(t, i, p.T)
		if p.Cost < trace[first].Cost {
			first = i
		}
	}
	assert.Equal(t, first, res.ChosenT)
	assert.Equal(t, trace[first].Cost, res.MinCost)
	assert.Equal(t, trace[first].Expected, res.ExpectedCollected)
	assert.Greater(t, res.ChosenT, 0, "a partial collection should open some packs")
	assert.Less(t, res.ChosenT, DefaultHorizonCap)
}

func TestComputeIdempotent(t *testing.T) {
	is := is.New(t)
	owned := Counts{Common: 12, Uncommon: 40, Rare: 9, Mythic: 1}
	a, err := Compute(sampleSet, owned, DefaultOptions())
	is.NoErr(err)
	b, err := Compute(sampleSet, owned, DefaultOptions())
	is.NoErr(err)
	is.Equal(a, b)
}

func TestCostNonIncreasingInOwned(t *testing.T) {
	for _, r := range Rarities {
		for _, ti := range []int{0, 1, 10, 60, 250} {
			owned := Counts{Common: 30, Uncommon: 30, Rare: 30, Mythic: 10}
			owned.Set(r, 0)
			prev, err := CostAt(ti, sampleSet, owned, Options{})
			assert.NoError(t, err)
			for c := 1; c <= sampleSet.Totals.Of(r); c++ {
				owned.Set(r, c)
				cur, err := CostAt(ti, sampleSet, owned, Options{})
				assert.NoError(t, err)
				assert.LessOrEqual(t, cur.Cost, prev.Cost, "%s c=%d t=%d", r, c, ti)
				prev = cur
			}
		}
	}
}

func TestComputeHorizonCap(t *testing.T) {
	is := is.New(t)
	res, err := Compute(sampleSet, Counts{}, Options{HorizonCap: 3})
	is.NoErr(err)
	is.True(res.ChosenT <= 3)
	is.Equal(res.HorizonCap, 3)

	trace, err := Trace(sampleSet, Counts{}, Options{HorizonCap: 3})
	is.NoErr(err)
	is.Equal(len(trace), 4)
}

func TestComputeRejectsOwnedAboveTotal(t *testing.T) {
	is := is.New(t)
	_, err := Compute(sampleSet, Counts{Rare: 66}, DefaultOptions())
	is.True(errors.Is(err, ErrUsage))
	var fe *FieldError
	is.True(errors.As(err, &fe))
	is.Equal(fe.Field, "owned.rare")

	_, err = Compute(sampleSet, Counts{Mythic: -1}, Options{Validation: ClampOwned})
	is.True(errors.Is(err, ErrUsage)) // negative counts are never clamped
}

func TestComputeClampPolicy(t *testing.T) {
	is := is.New(t)
	opts := Options{Validation: ClampOwned}
	res, err := Compute(sampleSet, Counts{Common: 81, Uncommon: 100, Rare: 70, Mythic: 22}, opts)
	is.NoErr(err)
	is.Equal(res.Owned.Rare, 65)
	is.Equal(len(res.Warnings), 1)
	is.Equal(res.Warnings[0], Warning{Rarity: Rare, Owned: 70, Total: 65})
	is.Equal(res.ChosenT, 0)
}

func TestComputeConfigErrors(t *testing.T) {
	for _, set := range []SetParams{
		{Totals: sampleSet.Totals, Alpha: -1},
		{Totals: Counts{Rare: -5}, Alpha: 7},
		{Totals: sampleSet.Totals, Alpha: 7, Overrides: Overrides{Melt: RateOverrides{Uncommon: ptr(0)}}},
	} {
		_, err := Compute(set, Counts{}, Options{})
		assert.ErrorIs(t, err, ErrConfig)
		assert.NotErrorIs(t, err, ErrUsage)
	}
}

func TestValidateReportsClampedCounts(t *testing.T) {
	is := is.New(t)
	got, warns, err := Validate(sampleSet, Counts{Common: 90, Mythic: 30}, Options{Validation: ClampOwned})
	is.NoErr(err)
	is.Equal(got, Counts{Common: 81, Mythic: 22})
	is.Equal(len(warns), 2)
	is.Equal(warns[0].Rarity, Common)
	is.Equal(warns[1].Rarity, Mythic)
}

func TestComputeReferenceCollection(t *testing.T) {
	owned := Counts{Common: 77, Uncommon: 55, Rare: 37, Mythic: 13}
	res, err := Compute(sampleSet, owned, DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, 155, res.ChosenT)
	assert.InDelta(t, 275.0469786619565, res.MinCost, 1e-6)
}
