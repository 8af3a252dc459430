package dynamo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelFor splits [0, n) into contiguous chunks, one per worker, and runs
// fn on each chunk concurrently. It returns after every worker has finished.
// The first non-nil error cancels ctx for the remaining workers and is returned.
func ParallelFor(ctx context.Context, n, workers int, fn func(ctx context.Context, start, end int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(ctx, 0, n)
	}

	chunkSize := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		s, e := start, end
		g.Go(func() error {
			return fn(gctx, s, e)
		})
	}
	return g.Wait()
}
