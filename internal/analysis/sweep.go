package analysis

import (
	"context"
	"math"
	"runtime"

	"github.com/san-kum/phaseviz/internal/optim"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// SweepConfig describes a scan over kick strength.
type SweepConfig struct {
	KMin, KMax float64
	Steps      int

	Grid       int
	Transient  int
	Iterations int
	Threshold  float64

	// Workers limits concurrency; 0 means GOMAXPROCS.
	Workers int
}

func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		KMin:       0,
		KMax:       5,
		Steps:      21,
		Grid:       8,
		Transient:  100,
		Iterations: 1000,
		Threshold:  ChaosThreshold,
	}
}

// SweepPoint summarizes the grid sample for one K.
type SweepPoint struct {
	K               float64
	MeanExponent    float64
	StdDevExponent  float64
	ChaoticFraction float64
}

// Sweep samples each K in [KMin, KMax] in parallel. Results are ordered by K.
func Sweep(ctx context.Context, cfg SweepConfig) ([]SweepPoint, error) {
	if cfg.Steps < 1 {
		cfg.Steps = 1
	}
	if cfg.Grid < 1 {
		cfg.Grid = 1
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]SweepPoint, cfg.Steps)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < cfg.Steps; i++ {
		k := cfg.KMin
		if cfg.Steps > 1 {
			k += (cfg.KMax - cfg.KMin) * float64(i) / float64(cfg.Steps-1)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := SampleGrid(k, cfg.Grid, cfg.Transient, cfg.Iterations)
			mean, std := stat.MeanStdDev(s.Exponents, nil)
			out[i] = SweepPoint{
				K:               k,
				MeanExponent:    mean,
				StdDevExponent:  std,
				ChaoticFraction: ChaoticFraction(s.Exponents, cfg.Threshold),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Series extracts one measure from sweep results, for plotting.
func Series(points []SweepPoint, pick func(SweepPoint) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = pick(p)
	}
	return out
}

// CriticalK returns the K in [KMin, KMax] whose chaotic fraction lies closest to target,
// scanning resolution evenly spaced values.
func CriticalK(ctx context.Context, cfg SweepConfig, target float64, resolution int) (float64, float64, error) {
	g := optim.NewGridSearch([]string{"k"}, [][]float64{optim.Linspace(cfg.KMin, cfg.KMax, resolution)})
	best, _, err := g.Search(ctx, func(_ context.Context, p map[string]float64) (float64, error) {
		s := SampleGrid(p["k"], cfg.Grid, cfg.Transient, cfg.Iterations)
		return math.Abs(ChaoticFraction(s.Exponents, cfg.Threshold) - target), nil
	})
	if err != nil {
		return 0, 0, err
	}
	k := best["k"]
	s := SampleGrid(k, cfg.Grid, cfg.Transient, cfg.Iterations)
	return k, ChaoticFraction(s.Exponents, cfg.Threshold), nil
}
