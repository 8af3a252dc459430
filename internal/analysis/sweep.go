package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/bifurcation/internal/dynamo"
)

// Sweep samples cfg at every value of params using up to workers goroutines
// and returns the batches concatenated in the order of params.
//
// The output does not depend on workers. Any worker failure, including a panic
// inside the map, aborts the whole sweep and no points are returned.
func Sweep(ctx context.Context, cfg SweepConfig, params []float64, workers int) ([]dynamo.Point, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("%w: workers must be >= 1, got %d", dynamo.ErrInvalidConfig, workers)
	}

	batches := make([][]dynamo.Point, len(params))

	err := dynamo.ParallelFor(ctx, len(params), workers, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch, err := sampleIndexed(cfg, i, params[i])
			if err != nil {
				return err
			}
			batches[i] = batch
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dynamo.Point, 0, len(params)*cfg.Samples)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out, nil
}

func sampleIndexed(cfg SweepConfig, idx int, r float64) (batch []dynamo.Point, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &dynamo.SweepError{Index: idx, Param: r, Cause: rec, Wrapped: dynamo.ErrMapPanic}
		}
	}()
	return cfg.Sample(r), nil
}
