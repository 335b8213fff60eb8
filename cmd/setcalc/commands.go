package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/xtding233/setcollect/internal/completion"
	"github.com/xtding233/setcollect/internal/report"
	"github.com/xtding233/setcollect/internal/setcfg"
	"github.com/xtding233/setcollect/internal/store"
	"github.com/xtding233/setcollect/internal/strategy"
)

func runList(args []string, out io.Writer) error {
	fs := newFlags("list")
	v, err := parse(fs, args)
	if err != nil {
		return err
	}
	loader := setcfg.NewLoader(v.GetString("config-dir"))
	codes, err := loader.ListSets()
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		log.Warn().Str("dir", loader.Paths().SetsDir()).Msg("no sets configured")
		return nil
	}
	for _, code := range codes {
		_, res, err := loader.Resolve(code, "", setcfg.Overrides{})
		if err != nil {
			log.Warn().Err(err).Str("set", code).Msg("skipping invalid set")
			continue
		}
		t := res.Set.Totals
		fmt.Fprintf(out, "%-6s %-32s C=%-3d U=%-3d R=%-3d M=%-3d alpha=%s\n",
			code, res.Name, t.Common, t.Uncommon, t.Rare, t.Mythic, report.Fmt2(res.Set.Alpha))
	}
	return nil
}

func runStrategy(args []string, out io.Writer) error {
	fs := newFlags("strategy")
	fs.String("owned", "", "owned distinct cards as common,uncommon,rare,mythic")
	fs.String("profile", "", "profile layered over the set config")
	fs.Float64("alpha", 0, "rare to mythic slot ratio, overrides the config")
	for _, r := range strategy.Rarities {
		fs.Float64("wc-"+r.String(), 0, "pack value of one "+r.String()+" wildcard, overrides the model")
	}
	fs.Bool("clamp", false, "clamp owned counts above the set totals instead of failing")
	fs.Int("horizon", 0, "largest pack count considered")
	fs.String("chart", "", "write an HTML cost chart to this file")
	fs.Int("budget", 0, "also plan the most packs this much currency buys")
	fs.Bool("watch", false, "recompute whenever set config files change")
	v, err := parse(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: strategy needs exactly one set code", errUsage)
	}
	owned, err := parseOwned(v.GetString("owned"))
	if err != nil {
		return err
	}

	q := &strategyQuery{
		loader:    setcfg.NewLoader(v.GetString("config-dir")),
		code:      fs.Arg(0),
		profile:   v.GetString("profile"),
		overrides: overridesFrom(v),
		owned:     owned,
		chart:     v.GetString("chart"),
		budget:    v.GetInt("budget"),
	}
	if err := q.run(out); err != nil {
		return err
	}
	if !v.GetBool("watch") {
		return nil
	}
	return watch(q.loader, func() {
		if err := q.run(out); err != nil {
			log.Error().Err(err).Msg("recompute failed")
		}
	})
}

type strategyQuery struct {
	loader    *setcfg.Loader
	code      string
	profile   string
	overrides setcfg.Overrides
	owned     strategy.Counts
	chart     string
	budget    int
}

func (q *strategyQuery) run(out io.Writer) error {
	_, set, err := q.loader.Resolve(q.code, q.profile, q.overrides)
	if err != nil {
		return err
	}
	res, err := strategy.Compute(set.Set, q.owned, set.Options)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn().Str("rarity", w.Rarity.String()).Int("owned", w.Owned).Int("total", w.Total).Msg("owned count clamped")
	}
	log.Debug().Int("t", res.ChosenT).Float64("cost", res.MinCost).Str("set", q.code).Msg("strategy computed")

	in := report.StrategyInput{
		Title:  fmt.Sprintf("%s (%s)", set.Name, q.code),
		Set:    set.Set,
		Result: res,
	}
	if len(set.Store.Bundles) > 0 {
		plan := store.MinCostAtLeastPacks(set.Store, res.ChosenT)
		in.Plan = &plan
	}
	if err := report.Strategy(out, in); err != nil {
		return err
	}

	if q.budget > 0 {
		if len(set.Store.Bundles) == 0 {
			log.Warn().Str("set", q.code).Msg("budget given but the set has no store bundles")
		} else {
			fmt.Fprintf(out, "\nWith a budget of %d %s:\n", q.budget, set.Store.Currency)
			if err := report.Plan(out, store.MaxPacksUnderBudget(set.Store, q.budget)); err != nil {
				return err
			}
		}
	}

	if q.chart == "" {
		return nil
	}
	trace, err := strategy.Trace(set.Set, q.owned, set.Options)
	if err != nil {
		return err
	}
	cfg := report.DefaultChartConfig()
	cfg.Title = in.Title
	return writeFile(q.chart, func(w io.Writer) error {
		return report.RenderCostChart(w, trace, res.ChosenT, cfg)
	})
}

func overridesFrom(v *viper.Viper) setcfg.Overrides {
	var o setcfg.Overrides
	if v.IsSet("alpha") {
		a := v.GetFloat64("alpha")
		o.Alpha = &a
	}
	for _, r := range strategy.Rarities {
		key := "wc-" + r.String()
		if !v.IsSet(key) {
			continue
		}
		x := v.GetFloat64(key)
		switch r {
		case strategy.Common:
			o.WildcardValues.Common = &x
		case strategy.Uncommon:
			o.WildcardValues.Uncommon = &x
		case strategy.Rare:
			o.WildcardValues.Rare = &x
		case strategy.Mythic:
			o.WildcardValues.Mythic = &x
		}
	}
	if v.IsSet("horizon") {
		h := v.GetInt("horizon")
		o.HorizonCap = &h
	}
	if v.GetBool("clamp") {
		p := string(strategy.ClampOwned)
		o.Validation = &p
	}
	return o
}

// parseOwned reads "c,u,r,m". Range checks are left to the cost model.
func parseOwned(s string) (strategy.Counts, error) {
	var c strategy.Counts
	if s == "" {
		return c, fmt.Errorf("%w: --owned is required, e.g. --owned 40,30,10,2", errUsage)
	}
	parts := strings.Split(s, ",")
	if len(parts) != len(strategy.Rarities) {
		return c, fmt.Errorf("%w: --owned needs %d comma separated counts, got %q", errUsage, len(strategy.Rarities), s)
	}
	for i, r := range strategy.Rarities {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return c, fmt.Errorf("%w: --owned %s: %v", errUsage, r, err)
		}
		c.Set(r, n)
	}
	return c, nil
}

func runCompletion(args []string, out io.Writer) error {
	fs := newFlags("completion")
	fs.Int("deck", 0, "distinct cards of the rarity (N)")
	fs.Int("draw", 1, "distinct cards of the rarity per pack (n)")
	fs.Int("horizon", 0, "last pack count computed; 0 picks min(1500, max(50, 6N))")
	fs.Int("step", 10, "table row spacing in packs")
	fs.String("chart", "", "write an HTML completion chart to this file")
	fs.String("set", "", "chart every rarity of a configured set instead")
	fs.String("profile", "", "profile layered over the set config")
	v, err := parse(fs, args)
	if err != nil {
		return err
	}

	var series []report.NamedSeries
	if code := v.GetString("set"); code != "" {
		series, err = setCompletion(v, code)
	} else {
		var d completion.Distribution
		d, err = singleCompletion(v)
		series = []report.NamedSeries{{Name: fmt.Sprintf("N=%d n=%d", d.Deck, d.Draw), Dist: d}}
	}
	if err != nil {
		return err
	}

	for i, s := range series {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if len(series) > 1 {
			fmt.Fprintf(out, "### %s\n", s.Name)
		}
		if err := report.CompletionTable(out, s.Dist, v.GetInt("step")); err != nil {
			return err
		}
	}

	if path := v.GetString("chart"); path != "" {
		return writeFile(path, func(w io.Writer) error {
			return report.RenderCompletionChart(w, series, report.DefaultChartConfig())
		})
	}
	return nil
}

func singleCompletion(v *viper.Viper) (completion.Distribution, error) {
	deck, draw := v.GetInt("deck"), v.GetInt("draw")
	if deck <= 0 {
		return completion.Distribution{}, fmt.Errorf("%w: --deck must be > 0", errUsage)
	}
	if h := v.GetInt("horizon"); h > 0 {
		return completion.SeriesWithHorizon(draw, deck, h)
	}
	return completion.Series(draw, deck)
}

// setCompletion runs one chain per rarity of a set. Fractional per-pack
// yields are rounded down to whole cards per step (at least one), and the
// step is reported in packs.
func setCompletion(v *viper.Viper, code string) ([]report.NamedSeries, error) {
	loader := setcfg.NewLoader(v.GetString("config-dir"))
	_, set, err := loader.Resolve(code, v.GetString("profile"), setcfg.Overrides{})
	if err != nil {
		return nil, err
	}
	y, err := strategy.ResolveYield(set.Set, set.Options)
	if err != nil {
		return nil, err
	}

	var decks []completion.Deck
	for _, r := range strategy.Rarities {
		total, perPack := set.Set.Totals.Of(r), y.PerPack.Of(r)
		if total <= 0 || perPack <= 0 {
			continue
		}
		draw := max(1, int(math.Floor(perPack)))
		log.Info().Str("rarity", r.String()).Int("cards_per_step", draw).
			Str("packs_per_step", report.Fmt2(float64(draw)/perPack)).Msg("completion chain")
		decks = append(decks, completion.Deck{Name: r.String(), Draw: draw, Size: total})
	}
	if len(decks) == 0 {
		return nil, fmt.Errorf("set %s has no rarity to complete", code)
	}

	h := completion.DefaultHorizon
	if hc := v.GetInt("horizon"); hc > 0 {
		h.Cap = hc
	}
	dists, err := completion.SetSeries(context.Background(), decks, h)
	if err != nil {
		return nil, err
	}
	series := make([]report.NamedSeries, len(decks))
	for i, d := range decks {
		series[i] = report.NamedSeries{Name: d.Name, Dist: dists[i]}
	}
	return series, nil
}

func runSimulate(args []string, out io.Writer) error {
	fs := newFlags("simulate")
	fs.Int("deck", 0, "distinct cards of the rarity (N)")
	fs.Int("draw", 1, "distinct cards of the rarity per pack (n)")
	fs.Int("trials", 10_000, "simulated collectors")
	fs.Uint64("seed", 0, "PCG seed for a reproducible run; 0 draws from the system CSPRNG")
	fs.Int("max-packs", completion.DefaultMaxPacks, "packs after which a trial is censored")
	v, err := parse(fs, args)
	if err != nil {
		return err
	}
	p := completion.SimParams{
		Draw:     v.GetInt("draw"),
		Deck:     v.GetInt("deck"),
		MaxPacks: v.GetInt("max-packs"),
	}
	if p.Deck <= 0 {
		return fmt.Errorf("%w: --deck must be > 0", errUsage)
	}
	rng := completion.DefaultRNG()
	if seed := v.GetUint64("seed"); seed != 0 {
		rng = completion.NewSeededRNG(seed)
	}
	st, err := completion.Simulate(p, v.GetInt("trials"), rng)
	if err != nil {
		return err
	}
	if st.Censored > 0 {
		log.Warn().Int("censored", st.Censored).Int("max_packs", p.MaxPacks).Msg("some trials never completed")
	}
	return report.SimulationSummary(out, p, st)
}

// watch reruns fn after every relevant config change until interrupted.
func watch(l *setcfg.Loader, fn func()) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := setcfg.NewWatcher(l.Paths(), func(path string) {
		log.Info().Str("path", path).Msg("set config changed, recomputing")
		l.Invalidate()
		fn()
	})
	if err != nil {
		return err
	}
	w.Start(ctx)
	log.Info().Str("dir", l.Paths().SetsDir()).Msg("watching set configs, Ctrl-C to stop")

	select {
	case <-ctx.Done():
	case <-w.Done():
	}
	err = w.Stop()
	<-w.Done()
	return err
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("chart written")
	return nil
}
