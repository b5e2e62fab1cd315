package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dblpend/internal/physics"
)

const (
	DefaultG             = 1.2
	DefaultM             = 1.0
	DefaultL             = 1.0
	DefaultDt            = 0.016
	DefaultDuration      = 30.0
	DefaultTrailCapacity = 400
	DefaultMaxStepMs     = 30.0
	DefaultIntegrator    = "rk4"
	DefaultWidth         = 800
	DefaultHeight        = 800
	DefaultTheme         = "minimal"
)

type Config struct {
	Constants     ConstantsConfig `yaml:"constants"`
	Integrator    string          `yaml:"integrator"`
	Dt            float64         `yaml:"dt"`
	Duration      float64         `yaml:"duration"`
	Seed          int64           `yaml:"seed"`
	TrailCapacity int             `yaml:"trail_capacity"`
	MaxStepMs     float64         `yaml:"max_step_ms"`
	InitState     InitStateConfig `yaml:"init_state"`
	Render        RenderConfig    `yaml:"render"`
}

type ConstantsConfig struct {
	G float64 `yaml:"g"`
	M float64 `yaml:"m"`
	L float64 `yaml:"l"`
}

// InitStateConfig fixes the starting configuration. With Random set the
// angles are drawn from the seed instead.
type InitStateConfig struct {
	Random    bool    `yaml:"random"`
	Angle0    float64 `yaml:"angle0"`
	Angle1    float64 `yaml:"angle1"`
	Momentum0 float64 `yaml:"momentum0"`
	Momentum1 float64 `yaml:"momentum1"`
}

type RenderConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Theme  string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Constants: ConstantsConfig{
			G: DefaultG,
			M: DefaultM,
			L: DefaultL,
		},
		Integrator:    DefaultIntegrator,
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		TrailCapacity: DefaultTrailCapacity,
		MaxStepMs:     DefaultMaxStepMs,
		InitState: InitStateConfig{
			Random: true,
		},
		Render: RenderConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Theme:  DefaultTheme,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case !finitePositive(c.Constants.G):
		return fmt.Errorf("constants.g must be positive and finite, got %g", c.Constants.G)
	case !finitePositive(c.Constants.M):
		return fmt.Errorf("constants.m must be positive and finite, got %g", c.Constants.M)
	case !finitePositive(c.Constants.L):
		return fmt.Errorf("constants.l must be positive and finite, got %g", c.Constants.L)
	case !finitePositive(c.Dt):
		return fmt.Errorf("dt must be positive and finite, got %g", c.Dt)
	case !finitePositive(c.Duration):
		return fmt.Errorf("duration must be positive and finite, got %g", c.Duration)
	case c.TrailCapacity <= 0:
		return fmt.Errorf("trail_capacity must be positive, got %d", c.TrailCapacity)
	case !finitePositive(c.MaxStepMs):
		return fmt.Errorf("max_step_ms must be positive and finite, got %g", c.MaxStepMs)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func (c *Config) PhysicalConstants() physics.Constants {
	return physics.Constants{G: c.Constants.G, M: c.Constants.M, L: c.Constants.L}
}

// GetInitState returns the configured start, drawing it from rng when the
// config asks for a random one.
func (c *Config) GetInitState(rng physics.Source) physics.State {
	if c.InitState.Random {
		return physics.NewState(rng)
	}
	return physics.State{
		Angle0:    c.InitState.Angle0,
		Angle1:    c.InitState.Angle1,
		Momentum0: c.InitState.Momentum0,
		Momentum1: c.InitState.Momentum1,
	}
}
