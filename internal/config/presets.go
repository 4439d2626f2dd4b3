package config

import "sort"

// Presets tune the defaults for a target. Each preset starts from DefaultConfig.
var Presets = map[string]func(*Config){
	"desktop": func(c *Config) {},
	"mobile": func(c *Config) {
		c.NumEntities = 25
		c.StaticIterations = 500
		c.ParticleRadius = 1.0
		c.TargetFPS = 30
		c.MaxTracers = 6
	},
	"lowpower": func(c *Config) {
		c.NumEntities = 16
		c.TrailLength = 8
		c.TargetFPS = 20
		c.FramesPerIteration = 8
		c.RefreshIntervalMs = 0
		c.MaxTracers = 4
		c.FastTrig = true
	},
	"ranking": func(c *Config) {
		c.Variant = "ranking"
		c.FadeAlpha = 1
		c.FramesPerIteration = 1
		c.RefreshIntervalMs = 0
		c.StartDelayMs = 300
		c.ParamMin = 0.25
		c.ParamMax = 4
	},
	"chaos": func(c *Config) {
		c.K = 4.5
		c.ColorMode = ColorHue
		c.TrailLength = 48
		c.FadeAlpha = 0.04
		c.RefreshIntervalMs = 15000
	},
}

// SwitchVariant changes the variant and, when it actually changes, retunes the pacing
// fields to that variant's defaults. Other settings are kept.
func (c *Config) SwitchVariant(name string) {
	if c.Variant == name {
		return
	}
	base := DefaultConfig()
	if name == "ranking" {
		Presets["ranking"](base)
	}
	c.Variant = name
	c.FadeAlpha = base.FadeAlpha
	c.FramesPerIteration = base.FramesPerIteration
	c.RefreshIntervalMs = base.RefreshIntervalMs
	c.StartDelayMs = base.StartDelayMs
	c.ParamMin = base.ParamMin
	c.ParamMax = base.ParamMax
}

// GetPreset returns a fresh config for name, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
