// Package dynamo provides core primitives for iterated one-dimensional maps.
//
// The package defines the shared vocabulary of the sweep pipeline:
//
//   - [Map]: a pure state transition x' = f(x, r)
//   - [Point]: one (parameter, state) sample
//   - [ParallelFor]: chunked, scoped fan-out over an index range
//   - [SweepError]: a worker failure tied to the parameter that caused it
//
// # Example
//
//	m := maps.Logistic.Map()
//	x := m.Next(0.5, 3.2) // 0.8
//
// # Thread Safety
//
// Map implementations must be stateless so that a single value can be
// shared read-only across all workers of a sweep.
package dynamo
