package config

import (
	"math"
	"sort"
)

var sqrt3 = math.Sqrt(3)

var Presets = map[string]*Config{
	"triangle": DefaultConfig(),
	"binary": {
		Name: "binary",
		Bodies: []BodyConfig{
			{Mass: 5000, Pos: [2]float64{-50, 0}, Vel: [2]float64{0, -1.29}},
			{Mass: 5000, Pos: [2]float64{50, 0}, Vel: [2]float64{0, 1.29}},
			{Mass: 10, Pos: [2]float64{0, 150}, Vel: [2]float64{-2.1, 0}},
		},
		Duration: 400, Dt: 0.5, Render: DefaultRenderConfig(), Output: "binary.gif",
	},
	"collapse": {
		Name: "collapse",
		Bodies: []BodyConfig{
			{Mass: 1000, Pos: [2]float64{0, 0}},
			{Mass: 1000, Pos: [2]float64{60, 0}},
			{Mass: 1000, Pos: [2]float64{30, 30 * sqrt3}},
		},
		Duration: 200, Dt: 0.5, Render: DefaultRenderConfig(), Output: "collapse.gif",
	},
}

// GetPreset returns a copy that callers may modify.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
