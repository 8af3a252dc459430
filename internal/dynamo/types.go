package dynamo

import (
	"fmt"
	"math"
)

// Map is a one-dimensional iterated map x' = f(x, r).
type Map interface {
	Name() string
	Next(x, r float64) float64
}

// MapFunc adapts a plain function to the Map interface.
type MapFunc struct {
	Label string
	Fn    func(x, r float64) float64
}

func (m MapFunc) Name() string              { return m.Label }
func (m MapFunc) Next(x, r float64) float64 { return m.Fn(x, r) }

// Point is a single (parameter, state) sample of a bifurcation diagram.
type Point struct {
	Param float64
	State float64
}

func (p Point) IsFinite() bool {
	return !math.IsNaN(p.State) && !math.IsInf(p.State, 0) &&
		!math.IsNaN(p.Param) && !math.IsInf(p.Param, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.Param, p.State)
}

// Bounds returns the extent of the finite points. ok is false when there are none.
func Bounds(points []Point) (minP, maxP, minS, maxS float64, ok bool) {
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		if !ok {
			minP, maxP, minS, maxS = p.Param, p.Param, p.State, p.State
			ok = true
			continue
		}
		minP = math.Min(minP, p.Param)
		maxP = math.Max(maxP, p.Param)
		minS = math.Min(minS, p.State)
		maxS = math.Max(maxS, p.State)
	}
	return minP, maxP, minS, maxS, ok
}
