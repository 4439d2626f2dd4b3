package analysis

import (
	"github.com/san-kum/phaseviz/internal/dynamo"
	"github.com/san-kum/phaseviz/internal/physics"
	"github.com/san-kum/phaseviz/internal/population"
)

// ChaosThreshold separates chaotic orbits from regular ones.
const ChaosThreshold = 0.01

// GridSample holds the per-orbit exponents of a grid of initial conditions.
type GridSample struct {
	K         float64
	Exponents []float64
}

// SampleGrid computes the Lyapunov exponent for the centre of every slot of an n-by-n grid.
func SampleGrid(k float64, n, transient, steps int) GridSample {
	pts := make([]dynamo.Point, n*n)
	for i := range pts {
		pts[i] = population.SlotCenter(i, n)
	}
	return GridSample{K: k, Exponents: OrbitExponents(physics.NewStandardMap(k), pts, transient, steps)}
}

// ChaoticFraction returns the share of exponents above threshold.
func ChaoticFraction(exponents []float64, threshold float64) float64 {
	if len(exponents) == 0 {
		return 0
	}
	n := 0
	for _, l := range exponents {
		if l > threshold {
			n++
		}
	}
	return float64(n) / float64(len(exponents))
}

// OrbitExponents returns the exponent of each point under m.
func OrbitExponents(m *physics.StandardMap, pts []dynamo.Point, transient, steps int) []float64 {
	out := make([]float64, len(pts))
	for i, pt := range pts {
		out[i] = LyapunovExponent(m, pt, transient, steps)
	}
	return out
}
