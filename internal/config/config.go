package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bifurcation/internal/render"
)

const (
	DefaultX0         = 0.5
	DefaultRMin       = 2.8
	DefaultRMax       = 4.0
	DefaultRPoints    = 2000
	DefaultSkip       = 600
	DefaultSamples    = 200
	DefaultWorkers    = 1
	DefaultMap        = 0
	DefaultDPI        = render.DefaultDPI
	DefaultMarkerSize = render.DefaultMarkerSize
	DefaultMarker     = string(render.MarkerCircle)
	DefaultOutput     = "bifurcation.jpg"
	DefaultWidth      = render.DefaultWidth
	DefaultHeight     = render.DefaultHeight
	DefaultQuality    = 95
)

type Config struct {
	Map     int          `yaml:"map"`
	X0      float64      `yaml:"x0"`
	RMin    float64      `yaml:"r_min"`
	RMax    float64      `yaml:"r_max"`
	RPoints int          `yaml:"r_points"`
	Skip    int          `yaml:"skip"`
	Samples int          `yaml:"points_to_draw_after_skip"`
	Workers int          `yaml:"n_cpus"`
	Render  RenderConfig `yaml:"render"`
}

type RenderConfig struct {
	DPI        int     `yaml:"dpi"`
	MarkerSize float64 `yaml:"marker_size"`
	Marker     string  `yaml:"marker"`
	Output     string  `yaml:"output"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Quality    int     `yaml:"quality"`
}

func DefaultConfig() *Config {
	return &Config{
		Map:     DefaultMap,
		X0:      DefaultX0,
		RMin:    DefaultRMin,
		RMax:    DefaultRMax,
		RPoints: DefaultRPoints,
		Skip:    DefaultSkip,
		Samples: DefaultSamples,
		Workers: DefaultWorkers,
		Render: RenderConfig{
			DPI:        DefaultDPI,
			MarkerSize: DefaultMarkerSize,
			Marker:     DefaultMarker,
			Output:     DefaultOutput,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Quality:    DefaultQuality,
		},
	}
}

// Load reads a YAML file on top of base. Keys missing from the file keep
// their value from base; a nil base means DefaultConfig.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if base != nil {
		c := *base
		cfg = &c
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that would make a run meaningless.
// Map ids and marker names are checked by the packages that own them.
func (c *Config) Validate() error {
	switch {
	case math.IsNaN(c.X0) || math.IsInf(c.X0, 0):
		return fmt.Errorf("x0 must be finite, got %v", c.X0)
	case math.IsNaN(c.RMin) || math.IsInf(c.RMin, 0):
		return fmt.Errorf("r-min must be finite, got %v", c.RMin)
	case math.IsNaN(c.RMax) || math.IsInf(c.RMax, 0):
		return fmt.Errorf("r-max must be finite, got %v", c.RMax)
	case c.RPoints < 0:
		return fmt.Errorf("r-points must be >= 0, got %d", c.RPoints)
	case c.Skip < 0:
		return fmt.Errorf("skip must be >= 0, got %d", c.Skip)
	case c.Samples < 0:
		return fmt.Errorf("points-to-draw-after-skip must be >= 0, got %d", c.Samples)
	case c.Workers < 1:
		return fmt.Errorf("n-cpus must be >= 1, got %d", c.Workers)
	case c.Render.DPI <= 0:
		return fmt.Errorf("dpi must be > 0, got %d", c.Render.DPI)
	case c.Render.MarkerSize < 0:
		return fmt.Errorf("marker-size must be >= 0, got %v", c.Render.MarkerSize)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("figure size must be positive, got %vx%v", c.Render.Width, c.Render.Height)
	case c.Render.Quality < 1 || c.Render.Quality > 100:
		return fmt.Errorf("quality must be in [1, 100], got %d", c.Render.Quality)
	case c.Render.Output == "":
		return fmt.Errorf("output path must not be empty")
	}
	return nil
}
