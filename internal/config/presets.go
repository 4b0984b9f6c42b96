package config

import (
	"fmt"
	"sort"
)

// Presets tune only the force model; everything else keeps its default.
var Presets = map[string]LayoutConfig{
	"default": DefaultConfig().Layout,
	"compact": {
		Repulsion: 0.5, Attraction: 1.0, Centering: 0.1, Damping: 0.8, Timestep: 0.1,
		MinDistance: 0.05, MaxDisplacement: 0.4, EnergyThreshold: 1e-5, MaxTicks: 500, RadiusScale: 0.7,
	},
	"spread": {
		Repulsion: 2.5, Attraction: 0.3, Centering: 0.03, Damping: 0.85, Timestep: 0.1,
		MinDistance: 0.05, MaxDisplacement: 0.6, EnergyThreshold: 1e-5, MaxTicks: 500, RadiusScale: 1.5,
	},
}

// GetPreset returns a fresh default config with the named layout preset.
func GetPreset(name string) (*Config, error) {
	l, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg := DefaultConfig()
	cfg.Layout = l
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
