// Package analysis computes bifurcation diagrams of one-dimensional maps.
//
// The pipeline runs strictly one way:
//
//   - [Linspace]: the parameter sequence
//   - [Sample]: the post-transient orbit for one parameter value
//   - [Sweep]: [Sample] over every parameter, fanned out across workers and
//     gathered back in parameter order
//
// # Example
//
//	cfg := analysis.SweepConfig{Map: maps.Logistic.Map(), X0: 0.5, Skip: 600, Samples: 200}
//	rs, _ := analysis.Linspace(2.8, 4.0, 2000)
//	points, err := analysis.Sweep(ctx, cfg, rs, runtime.NumCPU())
//
// A sweep is deterministic: the same configuration and parameters produce
// bit-identical points for any worker count.
package analysis
