package strategy

import "math"

// Yield is the per-rarity pack economy used by the cost model.
//
//	PerPack[X] expected new-card-eligible cards of rarity X per pack (n_X)
//	Melt[X]    expected wildcards of rarity X per pack (w_X)
//	Value[X]   packs-equivalent value of one wildcard, 1/w_X (v_X)
type Yield struct {
	PerPack Rates `json:"per_pack"`
	Melt    Rates `json:"melt"`
	Value   Rates `json:"wildcard_value"`
}

// PackParameters derives the yield from the rare/mythic shape parameter.
// Commons and uncommons do not depend on alpha; rares and mythics share one
// slot, so a larger alpha means scarcer mythics.
func PackParameters(alpha float64) Yield {
	var y Yield
	y.PerPack = Rates{
		Common:   14.0 / 3.0,
		Uncommon: 9.0 / 5.0,
		Rare:     (1 - 1/alpha) * (1 - 1.0/30.0),
		Mythic:   (1 / alpha) * (1 - 1.0/30.0),
	}
	y.Melt = Rates{
		Common:   1.0 / 3.0,
		Uncommon: 11.0 / 30.0,
		Rare:     (1.0 / 6.0) * (1 - 1/(5*alpha)),
		Mythic:   (1.0 / 30.0) * (1 + 1/alpha),
	}
	for _, r := range Rarities {
		y.Value.Set(r, 1/y.Melt.Of(r))
	}
	return y
}

// RateOverrides replaces individual rarities; nil leaves a rarity alone.
type RateOverrides struct {
	Common   *float64
	Uncommon *float64
	Rare     *float64
	Mythic   *float64
}

func (o RateOverrides) Of(r Rarity) *float64 {
	switch r {
	case Common:
		return o.Common
	case Uncommon:
		return o.Uncommon
	case Rare:
		return o.Rare
	case Mythic:
		return o.Mythic
	}
	return nil
}

func (o *RateOverrides) Set(r Rarity, v *float64) {
	switch r {
	case Common:
		o.Common = v
	case Uncommon:
		o.Uncommon = v
	case Rare:
		o.Rare = v
	case Mythic:
		o.Mythic = v
	}
}

// Overrides carries explicit yield values from set configuration
// (PerPack, Melt) or from the collector (WildcardValue).
type Overrides struct {
	PerPack       RateOverrides
	Melt          RateOverrides
	WildcardValue RateOverrides
}

// SetParams describes one set for the cost model.
type SetParams struct {
	Totals    Counts
	Alpha     float64
	Overrides Overrides
}

// Source is one layer of yield configuration.
type Source string

const (
	SourceWildcardValue Source = "wildcard_value"
	SourceSetOverride   Source = "set_override"
	SourceAlpha         Source = "alpha"
)

// DefaultPrecedence: direct wildcard value, then per-set n/w, then alpha.
var DefaultPrecedence = []Source{SourceWildcardValue, SourceSetOverride, SourceAlpha}

// ResolveYield applies overrides over the alpha-derived defaults following
// opts.Precedence. Every supplied override is validated, used or not, and
// the resolved values must satisfy n >= 0 and w > 0.
func ResolveYield(set SetParams, opts Options) (Yield, error) {
	if err := opts.normalize(); err != nil {
		return Yield{}, err
	}
	if err := validateAlpha(set.Alpha); err != nil {
		return Yield{}, err
	}
	if err := validateOverrides(set.Overrides); err != nil {
		return Yield{}, err
	}
	return resolveYield(set, opts.Precedence)
}

// resolveYield expects validated alpha, overrides and precedence.
func resolveYield(set SetParams, precedence []Source) (Yield, error) {
	base := PackParameters(set.Alpha)
	var y Yield
	for _, r := range Rarities {
		n, nFrom := base.PerPack.Of(r), SourceAlpha
		w, wFrom := base.Melt.Of(r), SourceAlpha
		nSet, wSet := false, false

		for _, src := range precedence {
			switch src {
			case SourceWildcardValue:
				if v := set.Overrides.WildcardValue.Of(r); v != nil && !wSet {
					w, wFrom, wSet = 1 / *v, src, true
				}
			case SourceSetOverride:
				if v := set.Overrides.PerPack.Of(r); v != nil && !nSet {
					n, nFrom, nSet = *v, src, true
				}
				if v := set.Overrides.Melt.Of(r); v != nil && !wSet {
					w, wFrom, wSet = *v, src, true
				}
			case SourceAlpha:
				nSet, wSet = true, true
			}
		}

		if nFrom == SourceAlpha && !(n >= 0) {
			return Yield{}, configErr("alpha", "derived per_pack.%s = %g is negative; override it or raise alpha", r, n)
		}
		if wFrom == SourceAlpha && !(w > 0) {
			return Yield{}, configErr("alpha", "derived melt.%s = %g is not positive; override it or raise alpha", r, w)
		}

		y.PerPack.Set(r, n)
		y.Melt.Set(r, w)
		if wFrom == SourceWildcardValue {
			y.Value.Set(r, *set.Overrides.WildcardValue.Of(r))
		} else {
			y.Value.Set(r, 1/w)
		}
	}
	return y, nil
}

func validateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= 0 {
		return configErr("alpha", "must be a finite number > 0, got %g", alpha)
	}
	return nil
}

func validateOverrides(o Overrides) error {
	for _, r := range Rarities {
		if v := o.PerPack.Of(r); v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0) {
			return configErr("per_pack."+r.String(), "must be a finite number >= 0, got %g", *v)
		}
		if v := o.Melt.Of(r); v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0) {
			return configErr("melt."+r.String(), "must be a finite number > 0, got %g", *v)
		}
		if v := o.WildcardValue.Of(r); v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0) {
			return configErr("wildcard_value."+r.String(), "must be a finite number > 0, got %g", *v)
		}
	}
	return nil
}
