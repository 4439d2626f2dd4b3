package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/dynamo"
)

// Factory builds a variant from a sanitized config.
type Factory func(cfg *config.Config, rng *rand.Rand) Variant

type Registry struct {
	variants map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{variants: make(map[string]Factory)}
	r.variants["map"] = func(cfg *config.Config, rng *rand.Rand) Variant { return NewMapVariant(cfg, rng) }
	r.variants["ranking"] = func(cfg *config.Config, rng *rand.Rand) Variant { return NewRankingVariant(cfg, rng) }
	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.variants[name] = f
}

func (r *Registry) Get(name string, cfg *config.Config, rng *rand.Rand) (Variant, error) {
	fn, ok := r.variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownVariant, name)
	}
	return fn(cfg, rng), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
