package strategy

// Validate checks a query before any computation and returns the owned
// counts to use. Under ClampOwned, counts above the set total are lowered
// and reported as warnings; under RejectOwned they fail with ErrUsage.
func Validate(set SetParams, owned Counts, opts Options) (Counts, []Warning, error) {
	if err := opts.normalize(); err != nil {
		return Counts{}, nil, err
	}
	return validate(set, owned, opts)
}

// validate expects normalized options.
func validate(set SetParams, owned Counts, opts Options) (Counts, []Warning, error) {
	if err := validateAlpha(set.Alpha); err != nil {
		return Counts{}, nil, err
	}
	for _, r := range Rarities {
		if set.Totals.Of(r) < 0 {
			return Counts{}, nil, configErr("totals."+r.String(), "must be >= 0, got %d", set.Totals.Of(r))
		}
	}
	if err := validateOverrides(set.Overrides); err != nil {
		return Counts{}, nil, err
	}

	var warnings []Warning
	out := owned
	for _, r := range Rarities {
		c, total := owned.Of(r), set.Totals.Of(r)
		if c < 0 {
			return Counts{}, nil, usageErr("owned."+r.String(), "must be >= 0, got %d", c)
		}
		if c <= total {
			continue
		}
		if opts.Validation == ClampOwned {
			warnings = append(warnings, Warning{Rarity: r, Owned: c, Total: total})
			out.Set(r, total)
			continue
		}
		return Counts{}, nil, usageErr("owned."+r.String(),
			"owned %d exceeds the %d distinct %s cards in the set", c, total, r)
	}
	return out, warnings, nil
}
