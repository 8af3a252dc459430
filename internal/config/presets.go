package config

import "sort"

// Presets are parameter windows of the logistic map worth looking at.
var Presets = map[string]*Config{
	"full":     {RMin: 2.8, RMax: 4.0, RPoints: 2000, Skip: 600, Samples: 200},
	"doubling": {RMin: 2.9, RMax: 3.57, RPoints: 2000, Skip: 1000, Samples: 200},
	"window":   {RMin: 3.82, RMax: 3.86, RPoints: 2000, Skip: 1000, Samples: 300},
	"edge":     {RMin: 3.54, RMax: 3.58, RPoints: 2000, Skip: 3000, Samples: 300},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

// Apply overlays the sweep window of preset p on c.
func (c *Config) Apply(p *Config) {
	c.RMin, c.RMax = p.RMin, p.RMax
	c.RPoints = p.RPoints
	c.Skip = p.Skip
	c.Samples = p.Samples
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
