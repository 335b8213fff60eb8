package strategy

import "slices"

// Policy decides what happens when an owned count exceeds the set total.
type Policy string

const (
	// RejectOwned fails with ErrUsage naming the rarity.
	RejectOwned Policy = "reject"
	// ClampOwned lowers the count to the total and reports a Warning.
	ClampOwned Policy = "clamp"
)

// DefaultHorizonCap is the largest pack count the search considers.
const DefaultHorizonCap = 500

// Options is the configuration surface of the cost model.
type Options struct {
	HorizonCap int      // search covers t = 0..HorizonCap; 0 means DefaultHorizonCap
	Validation Policy   // "" means RejectOwned
	Precedence []Source // empty means DefaultPrecedence; alpha is always the last resort
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		HorizonCap: DefaultHorizonCap,
		Validation: RejectOwned,
		Precedence: slices.Clone(DefaultPrecedence),
	}
}

// normalize fills defaults and rejects unknown or repeated values.
func (o *Options) normalize() error {
	if o.HorizonCap < 0 {
		return configErr("horizon_cap", "must be >= 0, got %d", o.HorizonCap)
	}
	if o.HorizonCap == 0 {
		o.HorizonCap = DefaultHorizonCap
	}

	switch o.Validation {
	case "":
		o.Validation = RejectOwned
	case RejectOwned, ClampOwned:
	default:
		return configErr("validation", "must be one of: reject, clamp; got %q", o.Validation)
	}

	if len(o.Precedence) == 0 {
		o.Precedence = slices.Clone(DefaultPrecedence)
		return nil
	}
	seen := make(map[Source]bool, len(o.Precedence))
	for _, s := range o.Precedence {
		switch s {
		case SourceWildcardValue, SourceSetOverride, SourceAlpha:
		default:
			return configErr("precedence", "unknown source %q", s)
		}
		if seen[s] {
			return configErr("precedence", "source %q listed twice", s)
		}
		seen[s] = true
	}
	if !seen[SourceAlpha] {
		o.Precedence = append(slices.Clone(o.Precedence), SourceAlpha)
	}
	return nil
}
