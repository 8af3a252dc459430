package main

import (
	"github.com/spf13/pflag"

	"github.com/san-kum/bifurcation/internal/config"
)

func registerSweepFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.Float64VarP(&cfg.X0, "x0", "0", config.DefaultX0, "initial value of the map")
	fs.Float64Var(&cfg.RMin, "r-min", config.DefaultRMin, "minimal value of the bifurcation parameter")
	fs.Float64Var(&cfg.RMax, "r-max", config.DefaultRMax, "maximal value of the bifurcation parameter")
	fs.IntVar(&cfg.RPoints, "r-points", config.DefaultRPoints, "number of parameter values sampled between r-min and r-max")
	fs.IntVar(&cfg.Skip, "skip", config.DefaultSkip, "iterations to skip so the map reaches its final state")
	fs.IntVarP(&cfg.Samples, "points-to-draw-after-skip", "n", config.DefaultSamples, "points to draw after the skipping period")
	fs.IntVar(&cfg.Workers, "n-cpus", config.DefaultWorkers, "number of CPUs to use")
	fs.IntVar(&cfg.Map, "map", config.DefaultMap, "map id (0: logistic, 1: sine, 2: tent)")
}

func registerRenderFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.IntVar(&cfg.Render.DPI, "dpi", config.DefaultDPI, "image resolution in dpi")
	fs.Float64Var(&cfg.Render.MarkerSize, "marker-size", config.DefaultMarkerSize, "marker size in points^2")
	fs.StringVar(&cfg.Render.Marker, "marker", config.DefaultMarker, "marker type (o . , s + x)")
	fs.StringVarP(&cfg.Render.Output, "output", "o", config.DefaultOutput, "output image (.jpg, .jpeg or .png)")
	fs.IntVar(&cfg.Render.Quality, "quality", config.DefaultQuality, "jpeg quality (1-100)")
}

// applyChangedFlags copies every flag set on the command line from src into dst.
func applyChangedFlags(fs *pflag.FlagSet, dst, src *config.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "x0":
			dst.X0 = src.X0
		case "r-min":
			dst.RMin = src.RMin
		case "r-max":
			dst.RMax = src.RMax
		case "r-points":
			dst.RPoints = src.RPoints
		case "skip":
			dst.Skip = src.Skip
		case "points-to-draw-after-skip":
			dst.Samples = src.Samples
		case "n-cpus":
			dst.Workers = src.Workers
		case "map":
			dst.Map = src.Map
		case "dpi":
			dst.Render.DPI = src.Render.DPI
		case "marker-size":
			dst.Render.MarkerSize = src.Render.MarkerSize
		case "marker":
			dst.Render.Marker = src.Render.Marker
		case "output":
			dst.Render.Output = src.Render.Output
		case "quality":
			dst.Render.Quality = src.Render.Quality
		}
	})
}
