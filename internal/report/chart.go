package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"

	"github.com/xtding233/setcollect/internal/completion"
	"github.com/xtding233/setcollect/internal/strategy"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string // e.g., "900px"
	Height   string
	Theme    string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
	}
}

// NamedSeries labels one completion distribution in a chart legend.
type NamedSeries struct {
	Name string
	Dist completion.Distribution
}

func newLine(cfg ChartConfig, title, xName, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  cfg.Width,
			Height: cfg.Height,
			Theme:  cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: cfg.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	return line
}

func axisLabels(n int) []string {
	return lo.Times(n, strconv.Itoa)
}

func lineData(xs []float64) []opts.LineData {
	return lo.Map(xs, func(x float64, _ int) opts.LineData {
		return opts.LineData{Value: x}
	})
}

// RenderCompletionChart writes an HTML page with two line charts: the
// cumulative completion probability F_t and the per-pack mass P_t of every
// series. Series with shorter horizons are padded with their last value.
func RenderCompletionChart(w io.Writer, series []NamedSeries, cfg ChartConfig) error {
	if len(series) == 0 {
		return fmt.Errorf("no series to chart")
	}
	tMax := lo.MaxBy(series, func(a, b NamedSeries) bool { return a.Dist.TMax > b.Dist.TMax }).Dist.TMax
	x := axisLabels(tMax + 1)

	title := cfg.Title
	if title == "" {
		title = "Set completion"
	}
	cum := newLine(cfg, title+": P(complete by t)", "packs opened", "probability")
	mass := newLine(cfg, title+": P(complete at t)", "packs opened", "probability")
	cum.SetXAxis(x)
	mass.SetXAxis(x)

	for _, s := range series {
		cum.AddSeries(s.Name, lineData(pad(s.Dist.Cumulative, tMax+1)))
		mass.AddSeries(s.Name, lineData(padZero(s.Dist.Mass, tMax+1)))
	}
	cum.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	mass.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	page := components.NewPage()
	page.AddCharts(cum, mass)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render completion chart: %w", err)
	}
	return nil
}

// RenderCostChart writes a line chart of cost(t) plus the expected missing
// cards of each rarity, with the chosen t marked.
func RenderCostChart(w io.Writer, trace []strategy.Point, chosenT int, cfg ChartConfig) error {
	if len(trace) == 0 {
		return fmt.Errorf("no cost trace to chart")
	}
	title := cfg.Title
	if title == "" {
		title = "Expected cost"
	}
	line := newLine(cfg, title, "packs opened", "effective packs")
	line.SetXAxis(lo.Map(trace, func(p strategy.Point, _ int) string { return strconv.Itoa(p.T) }))

	costs := lo.Map(trace, func(p strategy.Point, _ int) float64 { return p.Cost })
	line.AddSeries("cost", lineData(costs),
		charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
			Name:       "minimum",
			Coordinate: []interface{}{strconv.Itoa(chosenT), costAt(trace, chosenT)},
		}),
	)
	for _, r := range strategy.Rarities {
		missing := lo.Map(trace, func(p strategy.Point, _ int) float64 { return p.Missing.Of(r) })
		line.AddSeries("missing "+r.String(), lineData(missing))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render cost chart: %w", err)
	}
	return nil
}

func costAt(trace []strategy.Point, t int) float64 {
	p, ok := lo.Find(trace, func(p strategy.Point) bool { return p.T == t })
	if !ok {
		return 0
	}
	return p.Cost
}

func pad(xs []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, xs)
	if len(xs) > 0 {
		for i := len(xs); i < n; i++ {
			out[i] = xs[len(xs)-1]
		}
	}
	return out
}

func padZero(xs []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, xs)
	return out
}
