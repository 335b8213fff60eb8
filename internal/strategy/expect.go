package strategy

import "math"

// AverageCollected is the expected number of distinct cards of one rarity
// owned after t more packs:
//
//	E = N - (N - c) * ((N - n) / N)^t
//
// where n is the per-pack yield, N the distinct total and c the owned count.
// Each missing card independently survives a pack with probability
// (N-n)/N. A yield above N saturates at a per-pack decay of zero.
func AverageCollected(t int, n, total, c float64) float64 {
	if total <= 0 {
		return 0
	}
	if c >= total {
		return total
	}
	base := (total - n) / total
	if base < 0 {
		base = 0
	}
	return total - (total-c)*math.Pow(base, float64(t))
}

// missing is the expected shortfall left for wildcards.
func missing(t int, n, total, c float64) float64 {
	if total <= 0 {
		return 0
	}
	return total - AverageCollected(t, n, total, c)
}
