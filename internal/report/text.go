package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xtding233/setcollect/internal/completion"
	"github.com/xtding233/setcollect/internal/store"
	"github.com/xtding233/setcollect/internal/strategy"
)

const barWidth = 20

// Fmt2 rounds to two decimals and trims trailing zeros: 3 -> "3",
// 2.7272 -> "2.73", 26.25 -> "26.25".
func Fmt2(x float64) string {
	s := strconv.FormatFloat(math.Round(x*100)/100, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// RoundHalfEven rounds to the nearest integer, ties to even.
func RoundHalfEven(x float64) int {
	return int(math.RoundToEven(x))
}

// StrategyInput is everything the recommendation message needs.
type StrategyInput struct {
	Title  string
	Set    strategy.SetParams
	Result strategy.Result
	// Plan is optional; when set the purchase plan is appended.
	Plan *store.Plan
}

// Strategy writes the human-readable recommendation for one query.
func Strategy(w io.Writer, in StrategyInput) error {
	var ss strings.Builder
	res := in.Result
	totals := in.Set.Totals

	if in.Title != "" {
		fmt.Fprintf(&ss, "### %s\n\n", in.Title)
	}
	if in.Set.Alpha > 0 {
		fmt.Fprintf(&ss, "alpha = %s\n\n", Fmt2(in.Set.Alpha))
	}

	ss.WriteString("For this set, wildcards have the following equivalent pack values:\n")
	for _, r := range strategy.Rarities {
		fmt.Fprintf(&ss, "%s wildcards are worth approximately %s packs each.\n",
			title(r), Fmt2(res.WildcardValues.Of(r)))
	}

	ss.WriteString("\nYou started with:\n")
	for _, r := range strategy.Rarities {
		if totals.Of(r) <= 0 {
			continue
		}
		ss.WriteString(barRow(r, res.Owned.Of(r), totals.Of(r)))
	}

	fmt.Fprintf(&ss, "\nOn average, the minimum overall cost will be incurred by opening %d more packs.\n", res.ChosenT)
	fmt.Fprintf(&ss, "Minimum expected effective pack cost: %s\n", Fmt2(res.MinCost))

	ss.WriteString("\nDoing so is expected to result in:\n")
	var rem []string
	for _, r := range strategy.Rarities {
		if totals.Of(r) <= 0 {
			continue
		}
		exp := RoundHalfEven(res.ExpectedCollected.Of(r))
		ss.WriteString(barRow(r, exp, totals.Of(r)))
		rem = append(rem, fmt.Sprintf("%d %s", max(0, totals.Of(r)-exp), plural(r)))
	}
	ss.WriteString("being opened in packs. Wildcards should be used to obtain the remaining cards:\n")
	ss.WriteString(strings.Join(rem, ", "))
	ss.WriteString(". Actual results vary.\n")

	if len(res.Warnings) > 0 {
		ss.WriteString("\nWarnings:\n")
		for _, wn := range res.Warnings {
			fmt.Fprintf(&ss, "- %s\n", wn)
		}
	}

	if in.Plan != nil {
		ss.WriteString("\n")
		ss.WriteString(planString(*in.Plan))
	}

	_, err := io.WriteString(w, ss.String())
	return err
}

// Plan writes a store purchase plan.
func Plan(w io.Writer, p store.Plan) error {
	_, err := io.WriteString(w, planString(p))
	return err
}

func planString(p store.Plan) string {
	var ss strings.Builder
	if len(p.Purchases) == 0 {
		ss.WriteString("Store: no purchase needed.\n")
		return ss.String()
	}
	ss.WriteString("Store plan:\n")
	for _, pu := range p.Purchases {
		fmt.Fprintf(&ss, "%3d x %-24s %4d packs  %8d %s\n",
			pu.Qty, pu.Name, pu.Qty*pu.UnitPacks, pu.Subtotal, p.Currency)
	}
	fmt.Fprintf(&ss, "Total: %d packs for %d %s\n", p.TotalPacks, p.TotalPrice, p.Currency)
	return ss.String()
}

func barRow(r strategy.Rarity, have, total int) string {
	filled := 0
	if total > 0 {
		filled = min(barWidth, max(0, have*barWidth/total))
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
	return fmt.Sprintf("%-9s %4d / %-4d [%s]\n", plural(r), have, total, bar)
}

func title(r strategy.Rarity) string {
	s := r.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func plural(r strategy.Rarity) string {
	return title(r) + "s"
}

// CompletionTable writes F_t, P_t and E[s_t] every step packs. The last row
// of the horizon is always included.
func CompletionTable(w io.Writer, d completion.Distribution, step int) error {
	if step < 1 {
		step = 1
	}
	var ss strings.Builder
	fmt.Fprintf(&ss, "N=%d n=%d horizon=%d\n", d.Deck, d.Draw, d.TMax)
	fmt.Fprintf(&ss, "%6s  %10s  %10s  %10s\n", "t", "F_t", "P_t", "E[s_t]")
	row := func(t int) {
		fmt.Fprintf(&ss, "%6d  %10.6f  %10.6f  %10.4f\n", t, d.Cumulative[t], d.Mass[t], d.Expected[t])
	}
	for t := 0; t <= d.TMax; t += step {
		row(t)
	}
	if d.TMax%step != 0 {
		row(d.TMax)
	}
	if q, ok := d.Quantile(0.5); ok {
		fmt.Fprintf(&ss, "median packs to complete: %d\n", q)
	}
	fmt.Fprintf(&ss, "mean within horizon: %.3f\n", d.MeanWithinHorizon())
	_, err := io.WriteString(w, ss.String())
	return err
}
