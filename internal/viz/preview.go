package viz

import (
	"github.com/san-kum/bifurcation/internal/dynamo"
)

// Plot draws points on a w x h cell canvas, parameter across and state up.
// The view spans the extent of the finite points.
func Plot(points []dynamo.Point, w, h int) *Canvas {
	c := NewCanvas(w, h)
	minP, maxP, minS, maxS, ok := dynamo.Bounds(points)
	if !ok || c.DotsX() == 0 || c.DotsY() == 0 {
		return c
	}

	spanP, spanS := maxP-minP, maxS-minS
	dx, dy := float64(c.DotsX()-1), float64(c.DotsY()-1)
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		x, y := dx/2, dy/2
		if spanP > 0 {
			x = (p.Param - minP) / spanP * dx
		}
		if spanS > 0 {
			y = (1 - (p.State-minS)/spanS) * dy
		}
		c.Set(int(x+0.5), int(y+0.5))
	}
	return c
}

// Preview renders points as styled braille text.
func Preview(points []dynamo.Point, w, h int) string {
	return Dots.Render(Plot(points, w, h).String())
}
