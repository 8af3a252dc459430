package analysis

import (
	"fmt"

	"github.com/san-kum/bifurcation/internal/dynamo"
)

// Sample iterates m from x0 at parameter r, discards the first skip iterates
// and returns the next n as (r, x) points.
//
// The result always has exactly n points. Non-finite states are returned as is.
// A negative n is treated as zero; SweepConfig.Validate rejects it instead.
func Sample(m dynamo.Map, x0 float64, skip, n int, r float64) []dynamo.Point {
	if n < 0 {
		n = 0
	}

	x := x0
	for i := 0; i < skip; i++ {
		x = m.Next(x, r)
	}

	out := make([]dynamo.Point, n)
	for i := range out {
		x = m.Next(x, r)
		out[i] = dynamo.Point{Param: r, State: x}
	}
	return out
}

// SweepConfig fixes everything about an orbit except the parameter value.
type SweepConfig struct {
	Map     dynamo.Map
	X0      float64
	Skip    int
	Samples int
}

func (c SweepConfig) Validate() error {
	if c.Map == nil {
		return fmt.Errorf("%w: no map", dynamo.ErrInvalidConfig)
	}
	if c.Skip < 0 {
		return fmt.Errorf("%w: skip must be >= 0, got %d", dynamo.ErrInvalidConfig, c.Skip)
	}
	if c.Samples < 0 {
		return fmt.Errorf("%w: samples must be >= 0, got %d", dynamo.ErrInvalidConfig, c.Samples)
	}
	return nil
}

// Sample computes the post-transient orbit for a single parameter value.
func (c SweepConfig) Sample(r float64) []dynamo.Point {
	return Sample(c.Map, c.X0, c.Skip, c.Samples, r)
}
