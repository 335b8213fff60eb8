package store

// Bundle is one purchasable offer of booster packs.
type Bundle struct {
	ID    string // e.g., "packs-15"
	Name  string // display name, e.g., "15 Packs"
	Packs int    // packs granted
	Price int    // price in the catalog currency (gems, gold)
}

// Catalog is a store front for one set.
type Catalog struct {
	Currency string // e.g., "gems"
	Bundles  []Bundle
}

// Plan summarizes a purchase plan.
type Plan struct {
	Purchases  []Purchase
	TotalPrice int
	TotalPacks int
	Currency   string
}

// Purchase is one line item in the plan.
type Purchase struct {
	BundleID  string
	Name      string
	Qty       int
	UnitPrice int
	UnitPacks int
	Subtotal  int
}

// usable drops bundles that cannot take part in a plan.
func (c Catalog) usable() []Bundle {
	var out []Bundle
	for _, b := range c.Bundles {
		if b.Packs > 0 && b.Price >= 0 {
			out = append(out, b)
		}
	}
	return out
}

// buildPlan turns per-bundle quantities into line items, in catalog order.
func buildPlan(currency string, bundles []Bundle, qty []int) Plan {
	plan := Plan{Currency: currency}
	for i, b := range bundles {
		if qty[i] == 0 {
			continue
		}
		sub := b.Price * qty[i]
		plan.Purchases = append(plan.Purchases, Purchase{
			BundleID:  b.ID,
			Name:      b.Name,
			Qty:       qty[i],
			UnitPrice: b.Price,
			UnitPacks: b.Packs,
			Subtotal:  sub,
		})
		plan.TotalPrice += sub
		plan.TotalPacks += b.Packs * qty[i]
	}
	return plan
}
