package store

import (
	"testing"

	"github.com/matryer/is"
)

var gems = Catalog{
	Currency: "gems",
	Bundles: []Bundle{
		{ID: "p1", Name: "1 Pack", Packs: 1, Price: 200},
		{ID: "p3", Name: "3 Packs", Packs: 3, Price: 600},
		{ID: "p15", Name: "15 Packs", Packs: 15, Price: 2500},
	},
}

func TestMinCostAtLeastPacksOvershoot(t *testing.T) {
	is := is.New(t)
	plan := MinCostAtLeastPacks(gems, 14)
	is.Equal(plan.TotalPrice, 2500)
	is.Equal(plan.TotalPacks, 15)
	is.Equal(plan.Currency, "gems")
	is.Equal(len(plan.Purchases), 1)
	is.Equal(plan.Purchases[0].BundleID, "p15")
}

func TestMinCostAtLeastPacksExact(t *testing.T) {
	is := is.New(t)
	plan := MinCostAtLeastPacks(gems, 4)
	is.Equal(plan.TotalPrice, 800)
	is.Equal(plan.TotalPacks, 4)

	plan = MinCostAtLeastPacks(gems, 32)
	is.Equal(plan.TotalPrice, 2*2500+400)
	is.Equal(plan.TotalPacks, 32)
	is.Equal(plan.Purchases[0].BundleID, "p1") // catalog order
	is.Equal(plan.Purchases[len(plan.Purchases)-1].BundleID, "p15")
}

func TestMinCostAtLeastPacksEmpty(t *testing.T) {
	is := is.New(t)
	is.Equal(MinCostAtLeastPacks(gems, 0), Plan{Currency: "gems"})
	is.Equal(MinCostAtLeastPacks(Catalog{Currency: "gold"}, 5), Plan{Currency: "gold"})
	bad := Catalog{Currency: "gold", Bundles: []Bundle{{ID: "x", Packs: 0, Price: 10}}}
	is.Equal(MinCostAtLeastPacks(bad, 5), Plan{Currency: "gold"})
}

func TestMaxPacksUnderBudget(t *testing.T) {
	is := is.New(t)
	plan := MaxPacksUnderBudget(gems, 2700)
	is.Equal(plan.TotalPacks, 16)
	is.Equal(plan.TotalPrice, 2700)

	plan = MaxPacksUnderBudget(gems, 150)
	is.Equal(plan.TotalPacks, 0)
	is.Equal(len(plan.Purchases), 0)

	// leftover gems are not spent when nothing else fits
	plan = MaxPacksUnderBudget(gems, 2650)
	is.Equal(plan.TotalPacks, 15)
	is.Equal(plan.TotalPrice, 2500)
}
