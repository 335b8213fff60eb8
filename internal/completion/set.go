package completion

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Deck is one rarity's (draw, size) pair.
type Deck struct {
	Name string
	Draw int
	Size int
}

// SetSeries computes the completion distribution of every deck. Decks are
// independent chains, so each runs in its own goroutine. Results keep the
// order of decks.
func SetSeries(ctx context.Context, decks []Deck, h Horizon) ([]Distribution, error) {
	out := make([]Distribution, len(decks))
	g, ctx := errgroup.WithContext(ctx)
	for i, d := range decks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dist, err := SeriesWithHorizon(d.Draw, d.Size, h.TMax(d.Size))
			if err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			out[i] = dist
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
