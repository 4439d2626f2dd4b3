package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	DefaultK                  = 1.0
	DefaultNumEntities        = 40
	DefaultTrailLength        = 24
	DefaultParticleRadius     = 1.2
	DefaultFadeAlpha          = 0.08
	DefaultTargetFPS          = 60
	DefaultFramesPerIteration = 4
	DefaultRefreshIntervalMs  = 30000
	DefaultMaxTracers         = 12
	DefaultTracerMaxAge       = 600
	DefaultTracerTrailLength  = 80
	DefaultStaticIterations   = 800
	DefaultJitter             = 0.02
	DefaultParamMin           = 0.0
	DefaultParamMax           = 5.0
	DefaultRankTotal          = 100
	DefaultRank               = 10

	MaxTargetFPS        = 240
	MaxStaticIterations = 100000
)

const (
	ColorPrimary = "primary"
	ColorHue     = "hue"
)

// RGB is a colour written in YAML either as {r, g, b} or as a "#rrggbb" string.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c *RGB) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		col, err := colorful.Hex(strings.TrimSpace(node.Value))
		if err != nil {
			return fmt.Errorf("line %d: invalid colour %q", node.Line, node.Value)
		}
		c.R, c.G, c.B = col.RGB255()
		return nil
	}
	type plain RGB
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = RGB(p)
	return nil
}

type RankingConfig struct {
	Total int `yaml:"total"`
	Rank  int `yaml:"rank"`
	// Percentile is shown verbatim; empty means 100*rank/total.
	Percentile string `yaml:"percentile,omitempty"`
	Label      string `yaml:"label,omitempty"`
}

type Config struct {
	Variant string `yaml:"variant"`
	Seed    int64  `yaml:"seed"`

	K float64 `yaml:"k"`
	// Alpha is accepted as an alias of K when reading.
	Alpha *float64 `yaml:"alpha,omitempty"`

	NumEntities        int     `yaml:"num_entities"`
	TrailLength        int     `yaml:"trail_length"`
	ParticleRadius     float64 `yaml:"particle_radius"`
	FadeAlpha          float64 `yaml:"fade_alpha"`
	TargetFPS          int     `yaml:"target_fps"`
	FramesPerIteration int     `yaml:"frames_per_iteration"`
	RefreshIntervalMs  int     `yaml:"refresh_interval_ms"`

	PrimaryColor   RGB    `yaml:"primary_color"`
	HighlightColor RGB    `yaml:"highlight_color"`
	Background     RGB    `yaml:"background"`
	ColorMode      string `yaml:"color_mode"`

	MaxTracers        int `yaml:"max_tracers"`
	TracerMaxAge      int `yaml:"tracer_max_age"`
	TracerTrailLength int `yaml:"tracer_trail_length"`

	StaticIterations int     `yaml:"static_iterations"`
	Jitter           float64 `yaml:"jitter"`
	IslandSeeds      bool    `yaml:"island_seeds"`
	FastTrig         bool    `yaml:"fast_trig"`

	ParamMin     float64 `yaml:"param_min"`
	ParamMax     float64 `yaml:"param_max"`
	StartDelayMs int     `yaml:"start_delay_ms"`

	Ranking RankingConfig `yaml:"ranking"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:            "map",
		K:                  DefaultK,
		NumEntities:        DefaultNumEntities,
		TrailLength:        DefaultTrailLength,
		ParticleRadius:     DefaultParticleRadius,
		FadeAlpha:          DefaultFadeAlpha,
		TargetFPS:          DefaultTargetFPS,
		FramesPerIteration: DefaultFramesPerIteration,
		RefreshIntervalMs:  DefaultRefreshIntervalMs,
		PrimaryColor:       RGB{R: 0, G: 212, B: 170},
		HighlightColor:     RGB{R: 100, G: 255, B: 220},
		Background:         RGB{R: 10, G: 10, B: 10},
		ColorMode:          ColorHue,
		MaxTracers:         DefaultMaxTracers,
		TracerMaxAge:       DefaultTracerMaxAge,
		TracerTrailLength:  DefaultTracerTrailLength,
		StaticIterations:   DefaultStaticIterations,
		Jitter:             DefaultJitter,
		IslandSeeds:        true,
		ParamMin:           DefaultParamMin,
		ParamMax:           DefaultParamMax,
		Ranking: RankingConfig{
			Total: DefaultRankTotal,
			Rank:  DefaultRank,
		},
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Alpha != nil {
		a := *c.Alpha
		out.Alpha = &a
	}
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse reads YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.resolveAlias()
	return cfg, nil
}

func (c *Config) resolveAlias() {
	if c.Alpha != nil {
		c.K = *c.Alpha
		c.Alpha = nil
	}
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Sanitize clamps every out-of-range value to a safe one and describes each change.
func (c *Config) Sanitize() []string {
	var adj []string
	note := func(field string, from, to any) {
		adj = append(adj, fmt.Sprintf("%s: %v -> %v", field, from, to))
	}
	minInt := func(field string, v *int, lo int) {
		if *v < lo {
			note(field, *v, lo)
			*v = lo
		}
	}
	rangeInt := func(field string, v *int, lo, hi int) {
		minInt(field, v, lo)
		if *v > hi {
			note(field, *v, hi)
			*v = hi
		}
	}
	rangeFloat := func(field string, v *float64, lo, hi, fallback float64) {
		switch {
		case math.IsNaN(*v) || math.IsInf(*v, 0):
			note(field, *v, fallback)
			*v = fallback
		case *v < lo:
			note(field, *v, lo)
			*v = lo
		case *v > hi:
			note(field, *v, hi)
			*v = hi
		}
	}

	c.resolveAlias()

	minInt("num_entities", &c.NumEntities, 1)
	minInt("trail_length", &c.TrailLength, 0)
	rangeFloat("particle_radius", &c.ParticleRadius, 0.1, 50, DefaultParticleRadius)
	rangeFloat("fade_alpha", &c.FadeAlpha, 0.01, 1, DefaultFadeAlpha)
	rangeInt("target_fps", &c.TargetFPS, 1, MaxTargetFPS)
	minInt("frames_per_iteration", &c.FramesPerIteration, 1)
	minInt("refresh_interval_ms", &c.RefreshIntervalMs, 0)
	minInt("max_tracers", &c.MaxTracers, 0)
	minInt("tracer_max_age", &c.TracerMaxAge, 1)
	minInt("tracer_trail_length", &c.TracerTrailLength, 0)
	rangeInt("static_iterations", &c.StaticIterations, 0, MaxStaticIterations)
	rangeFloat("jitter", &c.Jitter, 0, 0.5, DefaultJitter)
	minInt("start_delay_ms", &c.StartDelayMs, 0)

	if math.IsNaN(c.ParamMin) || math.IsNaN(c.ParamMax) {
		note("param_range", fmt.Sprintf("[%v, %v]", c.ParamMin, c.ParamMax), fmt.Sprintf("[%v, %v]", DefaultParamMin, DefaultParamMax))
		c.ParamMin, c.ParamMax = DefaultParamMin, DefaultParamMax
	}
	if c.ParamMin > c.ParamMax {
		note("param_range", fmt.Sprintf("[%v, %v]", c.ParamMin, c.ParamMax), fmt.Sprintf("[%v, %v]", c.ParamMax, c.ParamMin))
		c.ParamMin, c.ParamMax = c.ParamMax, c.ParamMin
	}
	if c.Variant == "map" || c.Variant == "" {
		rangeFloat("k", &c.K, c.ParamMin, c.ParamMax, DefaultK)
	}

	switch c.ColorMode {
	case ColorPrimary, ColorHue:
	default:
		note("color_mode", c.ColorMode, ColorPrimary)
		c.ColorMode = ColorPrimary
	}

	minInt("ranking.total", &c.Ranking.Total, 1)
	rangeInt("ranking.rank", &c.Ranking.Rank, 1, c.Ranking.Total)

	return adj
}
