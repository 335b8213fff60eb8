// types.go
package setcfg

// RawConfig is one layer of set configuration as written on disk. Pointer
// fields distinguish "unset" from zero so layers can be merged.
type RawConfig struct {
	Version        string       `yaml:"version" toml:"version"`
	Code           string       `yaml:"code,omitempty" toml:"code,omitempty"`
	Name           string       `yaml:"name,omitempty" toml:"name,omitempty"`
	Alpha          *float64     `yaml:"alpha,omitempty" toml:"alpha,omitempty"`
	Totals         RawCounts    `yaml:"total_distinct,omitempty" toml:"total_distinct,omitempty"`
	PerPack        RawRates     `yaml:"per_pack,omitempty" toml:"per_pack,omitempty"`
	Melt           RawRates     `yaml:"melt,omitempty" toml:"melt,omitempty"`
	WildcardValues RawRates     `yaml:"wildcard_values,omitempty" toml:"wildcard_values,omitempty"`
	Model          *ModelConfig `yaml:"model,omitempty" toml:"model,omitempty"`
	Store          *StoreConfig `yaml:"store,omitempty" toml:"store,omitempty"`
	Notes          string       `yaml:"notes,omitempty" toml:"notes,omitempty"`
}

type RawCounts struct {
	Common   *int `yaml:"common,omitempty" toml:"common,omitempty"`
	Uncommon *int `yaml:"uncommon,omitempty" toml:"uncommon,omitempty"`
	Rare     *int `yaml:"rare,omitempty" toml:"rare,omitempty"`
	Mythic   *int `yaml:"mythic,omitempty" toml:"mythic,omitempty"`
}

type RawRates struct {
	Common   *float64 `yaml:"common,omitempty" toml:"common,omitempty"`
	Uncommon *float64 `yaml:"uncommon,omitempty" toml:"uncommon,omitempty"`
	Rare     *float64 `yaml:"rare,omitempty" toml:"rare,omitempty"`
	Mythic   *float64 `yaml:"mythic,omitempty" toml:"mythic,omitempty"`
}

// ModelConfig tunes the cost model.
type ModelConfig struct {
	HorizonCap *int     `yaml:"horizon_cap,omitempty" toml:"horizon_cap,omitempty"`
	Validation string   `yaml:"validation,omitempty" toml:"validation,omitempty"` // "reject" | "clamp"
	Precedence []string `yaml:"precedence,omitempty" toml:"precedence,omitempty"`
}

// StoreConfig lists pack bundles for purchase planning.
type StoreConfig struct {
	Currency string         `yaml:"currency" toml:"currency"`
	Bundles  []BundleConfig `yaml:"bundles" toml:"bundles"`
}

type BundleConfig struct {
	ID    string `yaml:"id" toml:"id"`
	Name  string `yaml:"name" toml:"name"`
	Packs int    `yaml:"packs" toml:"packs"`
	Price int    `yaml:"price" toml:"price"`
}
