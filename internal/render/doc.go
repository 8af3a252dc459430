// Package render rasterises bifurcation points into an image.
//
// The look follows a dark "nord" style: a #2e3440 background, no axes, and
// markers coloured by state through the [Blueish] gradient.
//
//	opts := render.DefaultOptions()
//	img, err := render.Render(points, opts)
//	err = render.Save("bifurcation.jpg", img, 95)
//
// [Save] writes through a temporary file, so an interrupted run never leaves a
// truncated image under the final name.
package render
