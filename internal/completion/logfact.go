package completion

import "math"

// LogFactorials returns lf with lf[i] = log(i!) for i in [0, maxN].
func LogFactorials(maxN int) []float64 {
	if maxN < 0 {
		maxN = 0
	}
	lf := make([]float64, maxN+1)
	for i := 1; i <= maxN; i++ {
		lf[i] = lf[i-1] + math.Log(float64(i))
	}
	return lf
}

// LogChoose returns log C(n, k) from a log-factorial table.
// Out of range k yields -Inf, i.e. a zero probability after exp.
func LogChoose(lf []float64, n, k int) float64 {
	if k < 0 || k > n || n < 0 || n >= len(lf) {
		return math.Inf(-1)
	}
	return lf[n] - lf[k] - lf[n-k]
}
