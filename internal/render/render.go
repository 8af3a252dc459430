package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/san-kum/bifurcation/internal/dynamo"
)

var ErrCanvasSize = errors.New("render: invalid canvas size")

// maxPixels bounds the canvas so a typo in --dpi cannot exhaust memory.
const maxPixels = 1 << 28

// Figure defaults: a 16x9 inch canvas at 350 dpi with 0.02 pt^2 markers.
const (
	DefaultDPI        = 350
	DefaultWidth      = 16.0
	DefaultHeight     = 9.0
	DefaultMarkerSize = 0.02
)

// Background is the figure face colour.
var Background = color.RGBA{R: 0x2e, G: 0x34, B: 0x40, A: 0xff}

type Options struct {
	DPI        int
	Width      float64 // inches
	Height     float64 // inches
	MarkerSize float64 // marker area in points^2
	Marker     Marker
	Background color.RGBA
	Colormap   *Colormap
	Margin     float64 // fraction of the data range added on each side
}

func DefaultOptions() Options {
	return Options{
		DPI:        DefaultDPI,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		MarkerSize: DefaultMarkerSize,
		Marker:     MarkerCircle,
		Background: Background,
		Colormap:   defaultColormap(),
		Margin:     0.05,
	}
}

func defaultColormap() *Colormap {
	cm, err := NewColormap(Blueish...)
	if err != nil {
		panic(err)
	}
	return cm
}

// Size returns the pixel dimensions of the canvas. Only meaningful once
// Validate has accepted o.
func (o Options) Size() (int, int) {
	w, h := o.sizeFloat()
	return int(w), int(h)
}

func (o Options) sizeFloat() (float64, float64) {
	return math.Round(o.Width * float64(o.DPI)), math.Round(o.Height * float64(o.DPI))
}

// Validate checks that the canvas is at least one pixel each way and no
// larger than maxPixels. The product is taken in float64 so huge dpi values
// cannot wrap around.
func (o Options) Validate() error {
	w, h := o.sizeFloat()
	if !(w >= 1) || !(h >= 1) || w*h > maxPixels {
		return fmt.Errorf("%w: %gx%g", ErrCanvasSize, w, h)
	}
	return nil
}

// Render draws points as a scatter plot with parameter on the x axis and state
// on the y axis. Non-finite points are skipped.
func Render(points []dynamo.Point, opts Options) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	w, h := opts.Size()
	if opts.Colormap == nil {
		opts.Colormap = defaultColormap()
	}
	if opts.Marker == "" {
		opts.Marker = MarkerCircle
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	minP, maxP, minS, maxS, ok := dynamo.Bounds(points)
	if !ok {
		return img, nil
	}
	x0, x1 := expand(minP, maxP, opts.Margin)
	y0, y1 := expand(minS, maxS, opts.Margin)
	colorSpan := maxS - minS

	// matplotlib sizes markers by area in points^2; one point is 1/72 inch.
	diameter := math.Sqrt(opts.MarkerSize) * float64(opts.DPI) / 72

	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		cx := (p.Param - x0) / (x1 - x0) * float64(w)
		cy := (1 - (p.State-y0)/(y1-y0)) * float64(h)

		t := 0.0
		if colorSpan > 0 {
			t = (p.State - minS) / colorSpan
		}
		plot(img, cx, cy, diameter, opts.Marker, opts.Colormap.RGBA(t))
	}
	return img, nil
}

func expand(lo, hi, margin float64) (float64, float64) {
	if hi == lo {
		d := math.Abs(lo) * 0.05
		if d == 0 {
			d = 0.5
		}
		lo, hi = lo-d, hi+d
	}
	pad := (hi - lo) * margin
	return lo - pad, hi + pad
}

func plot(img *image.RGBA, cx, cy, d float64, m Marker, c color.RGBA) {
	px, py := int(math.Floor(cx)), int(math.Floor(cy))

	switch {
	case m == MarkerPixel:
		blend(img, px, py, c, 1)
	case d < 1:
		blend(img, px, py, c, math.Min(1, m.area(d)))
	default:
		r := d/2 + 1
		for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
			for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
				if cov := m.coverage(x, y, cx, cy, d); cov > 0 {
					blend(img, x, y, c, cov)
				}
			}
		}
	}
}

// blend composites c over the pixel at (x, y) with opacity a.
func blend(img *image.RGBA, x, y int, c color.RGBA, a float64) {
	if !image.Pt(x, y).In(img.Rect) || a <= 0 {
		return
	}
	i := img.PixOffset(x, y)
	pix := img.Pix[i : i+4 : i+4]
	pix[0] = mix(c.R, pix[0], a)
	pix[1] = mix(c.G, pix[1], a)
	pix[2] = mix(c.B, pix[2], a)
	pix[3] = 0xff
}

func mix(src, dst uint8, a float64) uint8 {
	return uint8(float64(src)*a + float64(dst)*(1-a) + 0.5)
}
