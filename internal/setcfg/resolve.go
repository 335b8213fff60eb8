// resolve.go
package setcfg

import (
	"fmt"

	"github.com/xtding233/setcollect/internal/store"
	"github.com/xtding233/setcollect/internal/strategy"
)

// Overrides carries explicit collector input applied after the profile
// layer, e.g. CLI flags.
type Overrides struct {
	Alpha          *float64
	WildcardValues RawRates
	HorizonCap     *int
	Validation     *string
}

// Resolved is a validated set ready for the cost model.
type Resolved struct {
	Code    string
	Name    string
	Version string
	Notes   string
	Set     strategy.SetParams
	Options strategy.Options
	Store   store.Catalog
}

type Resolver interface {
	// Returns merged RawConfig and the typed, validated parameters
	Resolve(code, profile string, o Overrides) (RawConfig, Resolved, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default → set → profile → overrides, validates the result
// and converts it into model parameters.
func (l *Loader) Resolve(code, profile string, o Overrides) (RawConfig, Resolved, error) {
	merged, err := l.LoadMerged(code, profile)
	if err != nil {
		return RawConfig{}, Resolved{}, err
	}
	merged = mergeRaw(merged, o.asRaw())
	if err := ValidateRaw(merged); err != nil {
		return merged, Resolved{}, fmt.Errorf("set %s: %w", code, err)
	}
	return merged, ToResolved(merged), nil
}

func (o Overrides) asRaw() RawConfig {
	cfg := RawConfig{Alpha: o.Alpha, WildcardValues: o.WildcardValues}
	if o.HorizonCap != nil || o.Validation != nil {
		cfg.Model = &ModelConfig{HorizonCap: o.HorizonCap}
		if o.Validation != nil {
			cfg.Model.Validation = *o.Validation
		}
	}
	return cfg
}

// ToResolved converts a validated RawConfig. Missing totals count as zero.
func ToResolved(cfg RawConfig) Resolved {
	res := Resolved{
		Code:    cfg.Code,
		Name:    cfg.Name,
		Version: cfg.Version,
		Notes:   cfg.Notes,
		Options: strategy.DefaultOptions(),
	}
	if cfg.Alpha != nil {
		res.Set.Alpha = *cfg.Alpha
	}
	res.Set.Totals = strategy.Counts{
		Common:   deref(cfg.Totals.Common),
		Uncommon: deref(cfg.Totals.Uncommon),
		Rare:     deref(cfg.Totals.Rare),
		Mythic:   deref(cfg.Totals.Mythic),
	}
	res.Set.Overrides = strategy.Overrides{
		PerPack:       rateOverrides(cfg.PerPack),
		Melt:          rateOverrides(cfg.Melt),
		WildcardValue: rateOverrides(cfg.WildcardValues),
	}

	if m := cfg.Model; m != nil {
		if m.HorizonCap != nil {
			res.Options.HorizonCap = *m.HorizonCap
		}
		if m.Validation != "" {
			res.Options.Validation = strategy.Policy(m.Validation)
		}
		if len(m.Precedence) > 0 {
			res.Options.Precedence = make([]strategy.Source, len(m.Precedence))
			for i, s := range m.Precedence {
				res.Options.Precedence[i] = strategy.Source(s)
			}
		}
	}

	if s := cfg.Store; s != nil {
		res.Store.Currency = s.Currency
		for _, b := range s.Bundles {
			res.Store.Bundles = append(res.Store.Bundles, store.Bundle{
				ID:    b.ID,
				Name:  b.Name,
				Packs: b.Packs,
				Price: b.Price,
			})
		}
	}
	return res
}

func rateOverrides(r RawRates) strategy.RateOverrides {
	return strategy.RateOverrides{
		Common:   r.Common,
		Uncommon: r.Uncommon,
		Rare:     r.Rare,
		Mythic:   r.Mythic,
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
