package render

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownMarker = errors.New("render: unknown marker")

// Marker is a scatter marker shape, named like matplotlib's.
type Marker string

const (
	MarkerCircle Marker = "o"
	MarkerPoint  Marker = "."
	MarkerPixel  Marker = ","
	MarkerSquare Marker = "s"
	MarkerPlus   Marker = "+"
	MarkerCross  Marker = "x"
)

var markers = []Marker{MarkerCircle, MarkerPoint, MarkerPixel, MarkerSquare, MarkerPlus, MarkerCross}

func ParseMarker(s string) (Marker, error) {
	for _, m := range markers {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownMarker, s, markers)
}

// coverage returns the fraction of pixel (px, py) covered by a marker of
// diameter d centred at (cx, cy). All values are in pixels.
func (m Marker) coverage(px, py int, cx, cy, d float64) float64 {
	// Sample the pixel on a 4x4 grid.
	const n = 4
	hits := 0
	for sy := 0; sy < n; sy++ {
		for sx := 0; sx < n; sx++ {
			x := float64(px) + (float64(sx)+0.5)/n - cx
			y := float64(py) + (float64(sy)+0.5)/n - cy
			if m.contains(x, y, d) {
				hits++
			}
		}
	}
	return float64(hits) / (n * n)
}

func (m Marker) contains(x, y, d float64) bool {
	r := d / 2
	stroke := math.Max(d/6, 0.5)
	switch m {
	case MarkerPoint:
		return x*x+y*y <= r*r/4
	case MarkerSquare:
		return math.Abs(x) <= r && math.Abs(y) <= r
	case MarkerPlus:
		return (math.Abs(x) <= stroke/2 && math.Abs(y) <= r) || (math.Abs(y) <= stroke/2 && math.Abs(x) <= r)
	case MarkerCross:
		u, v := (x+y)/math.Sqrt2, (x-y)/math.Sqrt2
		return (math.Abs(u) <= stroke/2 && math.Abs(v) <= r) || (math.Abs(v) <= stroke/2 && math.Abs(u) <= r)
	default:
		return x*x+y*y <= r*r
	}
}

// area is the marker's filled area for diameter d, used for sub-pixel markers.
func (m Marker) area(d float64) float64 {
	r := d / 2
	stroke := math.Max(d/6, 0.5)
	switch m {
	case MarkerPoint:
		return math.Pi * r * r / 4
	case MarkerSquare:
		return d * d
	case MarkerPlus, MarkerCross:
		return math.Min(2*d*stroke, d*d)
	default:
		return math.Pi * r * r
	}
}
