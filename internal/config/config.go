// Package config loads and saves damsim configuration: scenario constants,
// stepping parameters and fluid material constants.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fluidlab/damsim/internal/scene"
	"github.com/fluidlab/damsim/internal/solver"
)

const (
	DefaultStepSize      = 0.0025
	DefaultStepsPerFrame = 2
	DefaultRadius        = 0.025
)

type Config struct {
	Scenario ScenarioConfig `yaml:"scenario"`
	Sim      SimConfig      `yaml:"sim"`
	Fluid    FluidConfig    `yaml:"fluid"`
}

type ScenarioConfig struct {
	ParticleRadius  float64 `yaml:"particle_radius"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Depth           int     `yaml:"depth"`
	ContainerHeight float64 `yaml:"container_height"`
}

type SimConfig struct {
	StepSize      float64 `yaml:"step_size"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
	// PauseAt forces a sticky pause once simulation time passes it.
	// Zero disables the check.
	PauseAt float64 `yaml:"pause_at"`
}

type FluidConfig struct {
	RestDensity float64 `yaml:"rest_density"`
	Stiffness   float64 `yaml:"stiffness"`
	Viscosity   float64 `yaml:"viscosity"`
	Gravity     float64 `yaml:"gravity"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: ScenarioConfig{
			ParticleRadius:  DefaultRadius,
			Width:           15,
			Height:          20,
			Depth:           15,
			ContainerHeight: 4.0,
		},
		Sim: SimConfig{
			StepSize:      DefaultStepSize,
			StepsPerFrame: DefaultStepsPerFrame,
			PauseAt:       0,
		},
		Fluid: FluidConfig{
			RestDensity: 1000.0,
			Stiffness:   50000.0,
			Viscosity:   0.02,
			Gravity:     9.81,
		},
	}
}

// Load reads path over the defaults, so partial files are fine.
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
		return nil, fmt.Errorf("config %s: %w", path, err)
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

func (c *Config) Validate() error {
	if c.Scenario.ParticleRadius <= 0 {
		return fmt.Errorf("particle_radius must be positive, got %f", c.Scenario.ParticleRadius)
	}
	if c.Scenario.Width <= 0 || c.Scenario.Height <= 0 || c.Scenario.Depth <= 0 {
		return fmt.Errorf("scenario lattice counts must be positive, got %dx%dx%d",
			c.Scenario.Width, c.Scenario.Height, c.Scenario.Depth)
	}
	if c.Sim.StepSize <= 0 {
		return fmt.Errorf("step_size must be positive, got %f", c.Sim.StepSize)
	}
	if c.Sim.StepsPerFrame <= 0 {
		return fmt.Errorf("steps_per_frame must be positive, got %d", c.Sim.StepsPerFrame)
	}
	return nil
}

// SceneParams converts the scenario section into sampler parameters.
func (c *Config) SceneParams() scene.Params {
	return scene.Params{
		ParticleRadius:  c.Scenario.ParticleRadius,
		Width:           c.Scenario.Width,
		Height:          c.Scenario.Height,
		Depth:           c.Scenario.Depth,
		ContainerHeight: c.Scenario.ContainerHeight,
	}
}

// SolverParams converts the fluid section into solver parameters.
func (c *Config) SolverParams() solver.Params {
	return solver.Params{
		RestDensity: c.Fluid.RestDensity,
		Stiffness:   c.Fluid.Stiffness,
		Viscosity:   c.Fluid.Viscosity,
		Gravity:     c.Fluid.Gravity,
	}
}
