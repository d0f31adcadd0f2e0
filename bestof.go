package kohonen

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kohonen/dataset"
	"github.com/hupe1980/kohonen/lattice"
	"github.com/hupe1980/kohonen/quality"
)

// Member is the outcome of one BestOf candidate.
type Member struct {
	Seed    int64
	State   State
	Quality quality.Report
}

// BestOf trains one independent Map per seed concurrently, each on a fresh
// lattice from newLattice, and returns the map with the lowest quantization
// error together with the outcome of every candidate (in seed order).
// Ties keep the earlier seed.
func BestOf(ctx context.Context, ds *dataset.Dataset, newLattice func() (*lattice.Lattice, error), seeds []int64, steps int, optFns ...Option) (*Map, []Member, error) {
	if len(seeds) == 0 {
		return nil, nil, ErrNoSeeds
	}

	maps := make([]*Map, len(seeds))
	members := make([]Member, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, seed := range seeds {
		g.Go(func() error {
			lat, err := newLattice()
			if err != nil {
				return err
			}

			fns := append(append([]Option(nil), optFns...), WithSeed(seed))
			m, err := New(ds, lat, fns...)
			if err != nil {
				return err
			}
			m.logger = m.logger.WithSeed(seed)

			st, err := m.RunContext(ctx, steps)
			if err != nil {
				return err
			}

			q, err := m.Quality()
			if err != nil {
				return err
			}

			maps[i] = m
			members[i] = Member{Seed: seed, State: st, Quality: q}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	best := 0
	for i := 1; i < len(members); i++ {
		if members[i].Quality.QuantizationError < members[best].Quality.QuantizationError {
			best = i
		}
	}

	return maps[best], members, nil
}
