package report

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/xtding233/setcollect/internal/completion"
)

const (
	histBins  = 15
	histWidth = 50
)

// Histogram prints a terminal histogram of packs-to-complete samples.
func Histogram(w io.Writer, samples []int) error {
	if len(samples) == 0 {
		_, err := fmt.Fprintln(w, "no trials")
		return err
	}
	h := histogram.Hist(histBins, lo.Map(samples, func(x int, _ int) float64 { return float64(x) }))
	return histogram.Fprint(w, h, histogram.Linear(histWidth))
}

// SimulationSummary writes the Monte Carlo statistics followed by the
// histogram of all trials. Censored trials count at the cap.
func SimulationSummary(w io.Writer, p completion.SimParams, st completion.Stats) error {
	if _, err := fmt.Fprintf(w,
		"N=%d n=%d trials=%d censored=%d\nmean=%.3f sd=%.3f p50=%.0f p90=%.0f p99=%.0f\n\n",
		p.Deck, p.Draw, len(st.Samples), st.Censored,
		st.Mean, st.StdDev, st.P50, st.P90, st.P99); err != nil {
		return err
	}
	return Histogram(w, st.Samples)
}
