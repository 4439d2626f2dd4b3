package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/phaseviz/internal/dynamo"
)

// StandardMap is the Chirikov standard map of the kicked rotor on the unit torus:
//
//	p' = p - (K/2pi) sin(2pi q)   (mod 1)
//	q' = q + p'                   (mod 1)
type StandardMap struct {
	K float64

	// Trig, when set, replaces math.Sin with a lookup table.
	Trig *dynamo.TrigTable
}

func NewStandardMap(k float64) *StandardMap {
	return &StandardMap{K: k}
}

func (m *StandardMap) Step(q, p float64) (float64, float64) {
	var s float64
	if m.Trig != nil {
		s = m.Trig.SinTurns(q)
	} else {
		s = math.Sin(2 * math.Pi * q)
	}
	pNext := dynamo.Mod1(p - m.K/(2*math.Pi)*s)
	qNext := dynamo.Mod1(q + pNext)
	return qNext, pNext
}

// Tangent propagates a tangent vector (dq, dp) at (q, p) through one step.
// Derivatives are taken on the covering plane, so the result is not wrapped.
func (m *StandardMap) Tangent(q, p, dq, dp float64) (float64, float64) {
	dpNext := dp - m.K*math.Cos(2*math.Pi*q)*dq
	dqNext := dq + dpNext
	return dqNext, dpNext
}

func (m *StandardMap) GetParams() map[string]float64 {
	return map[string]float64{"k": m.K}
}

func (m *StandardMap) SetParam(name string, value float64) error {
	switch name {
	case "k", "alpha":
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return &dynamo.ParamError{Name: name, Value: value, Wrapped: dynamo.ErrParameterBounds}
		}
		m.K = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
