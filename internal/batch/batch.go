// Package batch runs many independent simulations on a bounded pool of
// goroutines.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cellmachine/internal/core"
	"cellmachine/internal/options"
	"cellmachine/internal/runner"
)

// DefaultWorkers is used when a non-positive worker count is given.
const DefaultWorkers = 4

// Summary is the frame-free outcome of one simulated run.
type Summary struct {
	Options options.Options
	runner.Outcome
}

// Simulate runs every option set through r with discarding sinks.
// Summaries are returned in input order. The first failure cancels runs
// that have not started yet.
func Simulate(ctx context.Context, r *runner.Runner, runs []options.Options, workers int) ([]Summary, error) {
	out := make([]Summary, len(runs))
	err := each(ctx, len(runs), workers, func(ctx context.Context, i int) error {
		res, err := r.Run(ctx, runs[i], &core.DiscardSink{})
		if err != nil {
			return fmt.Errorf("run %d (%s): %w", i, runs[i].Serialize(), err)
		}
		res.Final = nil
		out[i] = Summary{Options: runs[i], Outcome: res}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Render encodes every option set through r. Results are returned in
// input order.
func Render(ctx context.Context, r *runner.Runner, runs []options.Options, workers int) ([]runner.Result, error) {
	out := make([]runner.Result, len(runs))
	err := each(ctx, len(runs), workers, func(ctx context.Context, i int) error {
		res, err := r.Render(ctx, runs[i])
		if err != nil {
			return fmt.Errorf("render %d (%s): %w", i, runs[i].Serialize(), err)
		}
		out[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func each(ctx context.Context, n, workers int, fn func(context.Context, int) error) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
