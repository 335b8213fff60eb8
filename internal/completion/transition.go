package completion

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Transition holds the distribution of new distinct cards x in one pack
// when s cards are already collected. Probs[i] is P(x = MinX + i).
type Transition struct {
	MinX  int
	Probs []float64
}

// Transitions builds the per-state hypergeometric transition table for a
// pack of n distinct cards drawn without replacement from deck cards:
//
//	P(x | s) = C(deck-s, x) * C(s, n-x) / C(deck, n)
//
// with x in [max(0, n-s), min(n, deck-s)]. Every row is renormalised to sum
// to one so drift does not accumulate across DP steps.
func Transitions(n, deck int) ([]Transition, error) {
	n, err := validateDeck(n, deck)
	if err != nil {
		return nil, err
	}
	return buildTransitions(n, deck, LogFactorials(deck)), nil
}

func buildTransitions(n, deck int, lf []float64) []Transition {
	out := make([]Transition, deck+1)
	logDen := LogChoose(lf, deck, n)

	for s := 0; s <= deck; s++ {
		missing := deck - s
		minX := max(0, n-s)
		maxX := min(n, missing)

		probs := make([]float64, maxX-minX+1)
		for x := minX; x <= maxX; x++ {
			logP := LogChoose(lf, missing, x) + LogChoose(lf, s, n-x) - logDen
			probs[x-minX] = math.Exp(logP)
		}
		if sum := floats.Sum(probs); sum > 0 {
			floats.Scale(1/sum, probs)
		}
		out[s] = Transition{MinX: minX, Probs: probs}
	}
	return out
}
