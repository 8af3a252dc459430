package render

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Blueish is the gradient used for bifurcation markers.
var Blueish = []string{"#5e81ab", "#81a1c0", "#88c0d1", "#81a1c0"}

// Colormap maps [0, 1] onto evenly spaced colour stops with linear RGB interpolation.
type Colormap struct {
	stops []colorful.Color
}

func NewColormap(hexStops ...string) (*Colormap, error) {
	if len(hexStops) == 0 {
		return nil, fmt.Errorf("render: colormap needs at least one stop")
	}
	stops := make([]colorful.Color, len(hexStops))
	for i, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("render: colormap stop %d: %w", i, err)
		}
		stops[i] = c
	}
	return &Colormap{stops: stops}, nil
}

// At returns the colour for t. Values outside [0, 1] are clamped; NaN maps to 0.
func (m *Colormap) At(t float64) colorful.Color {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if len(m.stops) == 1 {
		return m.stops[0]
	}

	pos := t * float64(len(m.stops)-1)
	i := int(pos)
	if i >= len(m.stops)-1 {
		return m.stops[len(m.stops)-1]
	}
	return m.stops[i].BlendRgb(m.stops[i+1], pos-float64(i)).Clamped()
}

// RGBA returns the colour for t as an opaque color.RGBA.
func (m *Colormap) RGBA(t float64) color.RGBA {
	r, g, b := m.At(t).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// ParseHex converts "#rrggbb" into an opaque color.RGBA.
func ParseHex(h string) (color.RGBA, error) {
	c, err := colorful.Hex(h)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
