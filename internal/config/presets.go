package config

import "sort"

func preset(g, dt, duration float64, init InitStateConfig) *Config {
	cfg := DefaultConfig()
	cfg.Constants.G = g
	cfg.Dt = dt
	cfg.Duration = duration
	cfg.InitState = init
	return cfg
}

var Presets = map[string]*Config{
	"reference": preset(1.2, 0.016, 30.0, InitStateConfig{Angle0: 2.5, Angle1: 2.6}),
	"heavy":     preset(2.0, 0.016, 30.0, InitStateConfig{Random: true}),
	"strong":    preset(3.0, 1.0/60, 30.0, InitStateConfig{Random: true}),
	"mirror":    preset(1.2, 0.01, 20.0, InitStateConfig{Angle0: 0.7, Angle1: 0.7}),
	"gentle":    preset(1.2, 0.01, 30.0, InitStateConfig{Angle0: 0.3, Angle1: 0.3}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
