package strategy

// Rarity is one of the four rarity classes of a set.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Mythic
)

// Rarities lists every rarity in display and summation order.
var Rarities = []Rarity{Common, Uncommon, Rare, Mythic}

func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Uncommon:
		return "uncommon"
	case Rare:
		return "rare"
	case Mythic:
		return "mythic"
	}
	return "unknown"
}

// Counts holds an integer per rarity: distinct totals or owned counts.
type Counts struct {
	Common   int `json:"common"`
	Uncommon int `json:"uncommon"`
	Rare     int `json:"rare"`
	Mythic   int `json:"mythic"`
}

func (c Counts) Of(r Rarity) int {
	switch r {
	case Common:
		return c.Common
	case Uncommon:
		return c.Uncommon
	case Rare:
		return c.Rare
	case Mythic:
		return c.Mythic
	}
	return 0
}

func (c *Counts) Set(r Rarity, v int) {
	switch r {
	case Common:
		c.Common = v
	case Uncommon:
		c.Uncommon = v
	case Rare:
		c.Rare = v
	case Mythic:
		c.Mythic = v
	}
}

// Rates holds a real value per rarity.
type Rates struct {
	Common   float64 `json:"common"`
	Uncommon float64 `json:"uncommon"`
	Rare     float64 `json:"rare"`
	Mythic   float64 `json:"mythic"`
}

func (v Rates) Of(r Rarity) float64 {
	switch r {
	case Common:
		return v.Common
	case Uncommon:
		return v.Uncommon
	case Rare:
		return v.Rare
	case Mythic:
		return v.Mythic
	}
	return 0
}

func (v *Rates) Set(r Rarity, x float64) {
	switch r {
	case Common:
		v.Common = x
	case Uncommon:
		v.Uncommon = x
	case Rare:
		v.Rare = x
	case Mythic:
		v.Mythic = x
	}
}
