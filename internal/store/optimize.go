package store

// MinCostAtLeastPacks finds the cheapest combination of bundles granting at
// least packs packs. Quantities are unbounded. Among equally cheap plans the
// one with fewer packs wins.
func MinCostAtLeastPacks(cat Catalog, packs int) Plan {
	bundles := cat.usable()
	if packs <= 0 || len(bundles) == 0 {
		return Plan{Currency: cat.Currency}
	}

	// DP over pack counts up to target + largest bundle, so a slight
	// overshoot can be cheaper than an exact fit.
	maxPacks := 0
	for _, b := range bundles {
		maxPacks = max(maxPacks, b.Packs)
	}
	limit := packs + maxPacks

	const inf = int(^uint(0) >> 1)
	dp := make([]int, limit+1)   // min cost to get exactly p packs
	pick := make([]int, limit+1) // chosen bundle index
	for p := range dp {
		dp[p] = inf
		pick[p] = -1
	}
	dp[0] = 0

	for p := 0; p <= limit; p++ {
		if dp[p] == inf {
			continue
		}
		for i, b := range bundles {
			np := p + b.Packs
			if np > limit {
				continue
			}
			if cost := dp[p] + b.Price; cost < dp[np] {
				dp[np] = cost
				pick[np] = i
			}
		}
	}

	best := -1
	for p := packs; p <= limit; p++ {
		if dp[p] == inf {
			continue
		}
		if best == -1 || dp[p] < dp[best] {
			best = p
		}
	}
	if best == -1 {
		return Plan{Currency: cat.Currency}
	}

	qty := make([]int, len(bundles))
	for p := best; p > 0 && pick[p] != -1; p -= bundles[pick[p]].Packs {
		qty[pick[p]]++
	}
	return buildPlan(cat.Currency, bundles, qty)
}

// MaxPacksUnderBudget computes the most packs purchasable with budget.
// Among plans granting equally many packs the cheapest wins.
func MaxPacksUnderBudget(cat Catalog, budget int) Plan {
	bundles := cat.usable()
	if budget <= 0 || len(bundles) == 0 {
		return Plan{Currency: cat.Currency}
	}

	// dp[c] = max packs with cost exactly c
	dp := make([]int, budget+1)
	pick := make([]int, budget+1)
	reach := make([]bool, budget+1)
	for c := range pick {
		pick[c] = -1
	}
	reach[0] = true
	for c := 0; c <= budget; c++ {
		if !reach[c] {
			continue
		}
		for i, b := range bundles {
			nc := c + b.Price
			if nc > budget || nc == c {
				continue
			}
			if v := dp[c] + b.Packs; !reach[nc] || v > dp[nc] {
				dp[nc] = v
				pick[nc] = i
				reach[nc] = true
			}
		}
	}

	bestC := 0
	for c := 0; c <= budget; c++ {
		if reach[c] && dp[c] > dp[bestC] {
			bestC = c
		}
	}

	qty := make([]int, len(bundles))
	for c := bestC; c > 0 && pick[c] != -1; c -= bundles[pick[c]].Price {
		qty[pick[c]]++
	}
	return buildPlan(cat.Currency, bundles, qty)
}
