package analysis

import (
	"math"

	"github.com/san-kum/phaseviz/internal/dynamo"
	"github.com/san-kum/phaseviz/internal/physics"
)

// LyapunovExponent estimates the maximal Lyapunov exponent of the orbit through pt by
// propagating a tangent vector and renormalizing it every step. The first transient steps
// are discarded. The result is in nats per iteration.
func LyapunovExponent(m *physics.StandardMap, pt dynamo.Point, transient, steps int) float64 {
	if steps <= 0 {
		return 0
	}
	q, p := pt.Q, pt.P
	for i := 0; i < transient; i++ {
		q, p = m.Step(q, p)
	}

	dq, dp := 1.0, 0.0
	sumLog := 0.0
	for i := 0; i < steps; i++ {
		dq, dp = m.Tangent(q, p, dq, dp)
		q, p = m.Step(q, p)

		norm := math.Hypot(dq, dp)
		if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
			return 0
		}
		sumLog += math.Log(norm)
		dq /= norm
		dp /= norm
	}
	return sumLog / float64(steps)
}

// torusDelta returns b-a on the unit circle, in (-0.5, 0.5].
func torusDelta(a, b float64) float64 {
	d := b - a
	d -= math.Round(d)
	return d
}

// SeparationExponent estimates the same exponent from two orbits started perturbation apart.
// The separation is measured on the torus and pulled back to perturbation whenever it grows.
func SeparationExponent(m dynamo.Map, pt dynamo.Point, steps int, perturbation float64) float64 {
	if steps <= 0 || perturbation <= 0 {
		return 0
	}
	d0 := perturbation

	q, p := pt.Q, pt.P
	qp, pp := dynamo.Mod1(q+d0), p

	sumLog := 0.0
	count := 0
	for i := 0; i < steps; i++ {
		q, p = m.Step(q, p)
		qp, pp = m.Step(qp, pp)

		dq, dp := torusDelta(q, qp), torusDelta(p, pp)
		sep := math.Hypot(dq, dp)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++

			// renormalize
			scale := d0 / sep
			qp = dynamo.Mod1(q + dq*scale)
			pp = dynamo.Mod1(p + dp*scale)
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}
