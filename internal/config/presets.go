package config

var presets = map[string]func() *Config{
	// The classic breaking dam: 4500 particles, runs until stopped.
	"default": DefaultConfig,

	// Smaller block for quick checks; auto-pauses after two seconds.
	"quick": func() *Config {
		cfg := DefaultConfig()
		cfg.Scenario.Width = 8
		cfg.Scenario.Height = 10
		cfg.Scenario.Depth = 8
		cfg.Sim.PauseAt = 2.0
		return cfg
	},

	// Tall narrow column, collapses hard against the far wall.
	"column": func() *Config {
		cfg := DefaultConfig()
		cfg.Scenario.Width = 8
		cfg.Scenario.Height = 40
		cfg.Scenario.Depth = 8
		cfg.Scenario.ContainerHeight = 6.0
		return cfg
	},

	// Syrup-like fluid for watching individual particle paths.
	"viscous": func() *Config {
		cfg := DefaultConfig()
		cfg.Fluid.Viscosity = 0.5
		return cfg
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	f, ok := presets[name]
	if !ok {
		return nil
	}
	return f()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
