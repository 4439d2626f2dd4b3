package dynamo

import (
	"fmt"
	"math"
)

// Point is a position in the unit torus [0,1)x[0,1).
type Point struct {
	Q float64
	P float64
}

// Wrap reduces both coordinates onto the torus.
func (pt Point) Wrap() Point {
	return Point{Q: Mod1(pt.Q), P: Mod1(pt.P)}
}

func (pt Point) IsValid() bool {
	return !math.IsNaN(pt.Q) && !math.IsInf(pt.Q, 0) && !math.IsNaN(pt.P) && !math.IsInf(pt.P, 0)
}

func (pt Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", pt.Q, pt.P)
}

// Mod1 is the floor-based modulo: the result is always in [0,1), also for negative input.
func Mod1(x float64) float64 {
	r := x - math.Floor(x)
	// x - floor(x) rounds up to exactly 1 for tiny negative x.
	if r >= 1 {
		return 0
	}
	return r
}

// Map is an area-preserving map of the torus onto itself.
type Map interface {
	Step(q, p float64) (float64, float64)
}

// Configurable exposes named scalar parameters that may change between steps.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Iterate applies m n times to pt and returns every visited point, pt first.
func Iterate(m Map, pt Point, n int) []Point {
	if n <= 0 {
		return nil
	}
	out := make([]Point, 0, n)
	q, p := pt.Q, pt.P
	for i := 0; i < n; i++ {
		out = append(out, Point{Q: q, P: p})
		q, p = m.Step(q, p)
	}
	return out
}
