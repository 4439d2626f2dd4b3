package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Variant != "map" {
		t.Errorf("expected variant map, got %s", cfg.Variant)
	}
	if cfg.K != DefaultK {
		t.Errorf("expected K %v, got %v", DefaultK, cfg.K)
	}
	if adj := cfg.Sanitize(); len(adj) != 0 {
		t.Errorf("defaults should need no adjustment, got %v", adj)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
alpha: 2.5
num_entities: 64
primary_color: "#ff8800"
highlight_color: {r: 1, g: 2, b: 3}
ranking:
  rank: 1234
  total: 1200000
  percentile: "0.1"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.K != 2.5 || cfg.Alpha != nil {
		t.Errorf("alpha should set K, got K=%v alpha=%v", cfg.K, cfg.Alpha)
	}
	if cfg.NumEntities != 64 {
		t.Errorf("expected 64 entities, got %d", cfg.NumEntities)
	}
	if cfg.PrimaryColor != (RGB{R: 255, G: 136, B: 0}) {
		t.Errorf("unexpected primary colour %+v", cfg.PrimaryColor)
	}
	if cfg.HighlightColor != (RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("unexpected highlight colour %+v", cfg.HighlightColor)
	}
	if cfg.TargetFPS != DefaultTargetFPS {
		t.Error("unset fields should keep their defaults")
	}
	if cfg.Ranking.Rank != 1234 || cfg.Ranking.Percentile != "0.1" {
		t.Errorf("unexpected ranking %+v", cfg.Ranking)
	}
}

func TestParseInvalidColour(t *testing.T) {
	if _, err := Parse([]byte(`primary_color: "teal"`)); err == nil {
		t.Error("expected an error for a colour name")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz.yaml")
	cfg := DefaultConfig()
	cfg.K = 3.3
	cfg.Ranking.Label = "me"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.K != 3.3 || loaded.Ranking.Label != "me" || loaded.PrimaryColor != cfg.PrimaryColor {
		t.Errorf("round trip lost values: %+v", loaded)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		check func(*Config) bool
	}{
		{"zero entities", func(c *Config) { c.NumEntities = 0 }, func(c *Config) bool { return c.NumEntities == 1 }},
		{"negative radius", func(c *Config) { c.ParticleRadius = -2 }, func(c *Config) bool { return c.ParticleRadius == 0.1 }},
		{"zero fps", func(c *Config) { c.TargetFPS = 0 }, func(c *Config) bool { return c.TargetFPS == 1 }},
		{"huge fps", func(c *Config) { c.TargetFPS = 1000 }, func(c *Config) bool { return c.TargetFPS == MaxTargetFPS }},
		{"zero fpi", func(c *Config) { c.FramesPerIteration = 0 }, func(c *Config) bool { return c.FramesPerIteration == 1 }},
		{"fade above one", func(c *Config) { c.FadeAlpha = 3 }, func(c *Config) bool { return c.FadeAlpha == 1 }},
		{"nan k", func(c *Config) { c.K = math.NaN() }, func(c *Config) bool { return c.K == DefaultK }},
		{"k above range", func(c *Config) { c.K = 9 }, func(c *Config) bool { return c.K == DefaultParamMax }},
		{"swapped range", func(c *Config) { c.ParamMin, c.ParamMax = 3, 1; c.K = 2 }, func(c *Config) bool { return c.ParamMin == 1 && c.ParamMax == 3 }},
		{"unknown colour mode", func(c *Config) { c.ColorMode = "plaid" }, func(c *Config) bool { return c.ColorMode == ColorPrimary }},
		{"rank above total", func(c *Config) { c.Ranking.Rank = 500 }, func(c *Config) bool { return c.Ranking.Rank == c.Ranking.Total }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(cfg)
			adj := cfg.Sanitize()
			if len(adj) == 0 {
				t.Error("expected an adjustment")
			}
			if !tt.check(cfg) {
				t.Errorf("unexpected result %+v", cfg)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("ranking")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Variant != "ranking" || cfg.StartDelayMs != 300 {
		t.Errorf("unexpected ranking preset %+v", cfg)
	}

	a, b := GetPreset("chaos"), GetPreset("chaos")
	a.K = 0
	if b.K == 0 {
		t.Error("presets must not share state")
	}
	if adj := b.Sanitize(); len(adj) != 0 {
		t.Errorf("chaos preset should be valid, got %v", adj)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Error("presets should be sorted")
		}
	}
}

func TestSwitchVariant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumEntities = 16
	cfg.SwitchVariant("ranking")

	want := GetPreset("ranking")
	if cfg.Variant != "ranking" || cfg.FramesPerIteration != want.FramesPerIteration ||
		cfg.StartDelayMs != want.StartDelayMs || cfg.ParamMax != want.ParamMax || cfg.FadeAlpha != want.FadeAlpha {
		t.Errorf("ranking pacing not applied: %+v", cfg)
	}
	if cfg.NumEntities != 16 {
		t.Error("unrelated settings should be kept")
	}

	cfg.FramesPerIteration = 3
	cfg.SwitchVariant("ranking")
	if cfg.FramesPerIteration != 3 {
		t.Error("switching to the current variant should change nothing")
	}

	cfg.SwitchVariant("map")
	def := DefaultConfig()
	if cfg.Variant != "map" || cfg.FramesPerIteration != def.FramesPerIteration || cfg.StartDelayMs != 0 {
		t.Errorf("map pacing not restored: %+v", cfg)
	}
}
