// Package maps provides the built-in one-dimensional maps.
//
// Each map is identified by a [Kind], a closed enumeration selected by the
// integer id used on the command line:
//
//   - [Logistic] (0): f(x) = r*x*(1-x)
//   - [Sine] (1): f(x) = r/4*sin(pi*x)
//   - [Tent] (2): f(x) = r/2*min(x, 1-x)
//
// All three are unimodal on [0, 1] with the bifurcation parameter r in [0, 4],
// so they share the same default sweep window.
package maps
