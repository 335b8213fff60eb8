package setcfg

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

var (
	// ErrUnknownSet is returned when no file exists for a set code.
	ErrUnknownSet = errors.New("unknown set")
	// ErrInvalidConfig wraps every ValidateRaw failure.
	ErrInvalidConfig = errors.New("config validation failed")
)

var (
	knownPolicies = []string{"reject", "clamp"}
	knownSources  = []string{"wildcard_value", "set_override", "alpha"}
)

// ValidateRaw checks semantic constraints of a RawConfig and reports every
// violation at once.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// alpha
	if cfg.Alpha == nil {
		errs = append(errs, "alpha is required")
	} else if a := *cfg.Alpha; math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 {
		errs = append(errs, "alpha must be a finite number > 0")
	}

	// total_distinct
	for name, v := range countFields(cfg.Totals) {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Sprintf("total_distinct.%s must be >= 0", name))
		}
	}

	// overrides
	for name, v := range rateFields(cfg.PerPack) {
		if v != nil && !(*v >= 0 && !math.IsInf(*v, 0)) {
			errs = append(errs, fmt.Sprintf("per_pack.%s must be a finite number >= 0", name))
		}
	}
	for name, v := range rateFields(cfg.Melt) {
		if v != nil && !(*v > 0 && !math.IsInf(*v, 0)) {
			errs = append(errs, fmt.Sprintf("melt.%s must be a finite number > 0", name))
		}
	}
	for name, v := range rateFields(cfg.WildcardValues) {
		if v != nil && !(*v > 0 && !math.IsInf(*v, 0)) {
			errs = append(errs, fmt.Sprintf("wildcard_values.%s must be a finite number > 0", name))
		}
	}

	// model
	if cfg.Model != nil {
		if cfg.Model.HorizonCap != nil && *cfg.Model.HorizonCap <= 0 {
			errs = append(errs, "model.horizon_cap must be >= 1")
		}
		if v := cfg.Model.Validation; v != "" && !slices.Contains(knownPolicies, v) {
			errs = append(errs, "model.validation must be one of: reject, clamp")
		}
		for i, s := range cfg.Model.Precedence {
			if !slices.Contains(knownSources, s) {
				errs = append(errs, fmt.Sprintf("model.precedence[%d] must be one of: wildcard_value, set_override, alpha", i))
			} else if slices.Index(cfg.Model.Precedence, s) != i {
				errs = append(errs, fmt.Sprintf("model.precedence[%d] repeats %q", i, s))
			}
		}
	}

	// store (optional)
	if cfg.Store != nil {
		for i, b := range cfg.Store.Bundles {
			if b.Packs <= 0 {
				errs = append(errs, fmt.Sprintf("store.bundles[%d].packs must be >= 1", i))
			}
			if b.Price < 0 {
				errs = append(errs, fmt.Sprintf("store.bundles[%d].price must be >= 0", i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

// countFields yields rarity fields in a fixed order.
func countFields(c RawCounts) func(func(string, *int) bool) {
	return func(yield func(string, *int) bool) {
		_ = yield("common", c.Common) &&
			yield("uncommon", c.Uncommon) &&
			yield("rare", c.Rare) &&
			yield("mythic", c.Mythic)
	}
}

func rateFields(r RawRates) func(func(string, *float64) bool) {
	return func(yield func(string, *float64) bool) {
		_ = yield("common", r.Common) &&
			yield("uncommon", r.Uncommon) &&
			yield("rare", r.Rare) &&
			yield("mythic", r.Mythic)
	}
}
