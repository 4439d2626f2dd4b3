package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/phaseviz/internal/dynamo"
)

func TestStandardMapWrapInvariant(t *testing.T) {
	ks := []float64{0, 0.5, 0.971635, 1, 2, 5, 12.5, -3}
	coords := []float64{0, 1e-12, 0.25, 0.5, 0.75, 0.999999999, math.Nextafter(1, 0)}

	for _, k := range ks {
		m := NewStandardMap(k)
		for _, q := range coords {
			for _, p := range coords {
				q2, p2 := m.Step(q, p)
				if q2 < 0 || q2 >= 1 || p2 < 0 || p2 >= 1 {
					t.Fatalf("K=%v step(%v,%v) = (%v,%v) left the torus", k, q, p, q2, p2)
				}
			}
		}
	}
}

func TestStandardMapZeroKickIsRotation(t *testing.T) {
	m := NewStandardMap(0)
	q, p := 0.125, 0.25
	for i := 0; i < 16; i++ {
		q2, p2 := m.Step(q, p)
		if p2 != p {
			t.Fatalf("step %d: p changed from %v to %v", i, p, p2)
		}
		if want := dynamo.Mod1(q + p); q2 != want {
			t.Fatalf("step %d: q = %v, want %v", i, q2, want)
		}
		q, p = q2, p2
	}
	// p = 1/4 is a rational rotation: period 4 returns to the start.
	if q != 0.125 {
		t.Errorf("expected periodic orbit to return to 0.125, got %v", q)
	}
}

func TestStandardMapFixedPoints(t *testing.T) {
	// (0,0) and (0.5,0) are fixed for every K.
	for _, k := range []float64{0, 0.7, 1.5, 4} {
		m := NewStandardMap(k)
		for _, pt := range []dynamo.Point{{Q: 0, P: 0}, {Q: 0.5, P: 0}} {
			q, p := m.Step(pt.Q, pt.P)
			if math.Abs(q-pt.Q) > 1e-12 || math.Min(p, 1-p) > 1e-12 {
				t.Errorf("K=%v: %v is not fixed, got (%v,%v)", k, pt, q, p)
			}
		}
	}
}

func TestStandardMapKickOrder(t *testing.T) {
	m := NewStandardMap(1)
	q, p := m.Step(0.25, 0.5)
	wantP := dynamo.Mod1(0.5 - 1/(2*math.Pi))
	wantQ := dynamo.Mod1(0.25 + wantP)
	if math.Abs(p-wantP) > 1e-12 || math.Abs(q-wantQ) > 1e-12 {
		t.Errorf("got (%v,%v), want (%v,%v)", q, p, wantQ, wantP)
	}
}

func TestStandardMapParamChangeAffectsNextStepOnly(t *testing.T) {
	m := NewStandardMap(0)
	q, p := m.Step(0.3, 0.2)
	if err := m.SetParam("k", 2); err != nil {
		t.Fatal(err)
	}
	if q != dynamo.Mod1(0.5) || p != 0.2 {
		t.Errorf("first step should use K=0, got (%v,%v)", q, p)
	}
	q2, p2 := m.Step(q, p)
	ref := NewStandardMap(2)
	rq, rp := ref.Step(q, p)
	if q2 != rq || p2 != rp {
		t.Errorf("second step should use K=2")
	}
}

func TestStandardMapParams(t *testing.T) {
	m := NewStandardMap(1)
	if err := m.SetParam("alpha", 1.5); err != nil {
		t.Fatal(err)
	}
	if m.GetParams()["k"] != 1.5 {
		t.Errorf("expected k=1.5, got %v", m.GetParams()["k"])
	}
	if err := m.SetParam("gravity", 1); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if err := m.SetParam("k", math.NaN()); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestStandardMapTrigTable(t *testing.T) {
	exact := NewStandardMap(1.2)
	fast := NewStandardMap(1.2)
	fast.Trig = dynamo.NewTrigTable(4096)

	q, p := exact.Step(0.13, 0.71)
	fq, fp := fast.Step(0.13, 0.71)
	if math.Abs(q-fq) > 1e-5 || math.Abs(p-fp) > 1e-5 {
		t.Errorf("table step diverged: (%v,%v) vs (%v,%v)", q, p, fq, fp)
	}
}

func TestStandardMapTangentZeroKick(t *testing.T) {
	m := NewStandardMap(0)
	dq, dp := m.Tangent(0.3, 0.4, 1, 0)
	if dq != 1 || dp != 0 {
		t.Errorf("expected shear-free tangent (1,0), got (%v,%v)", dq, dp)
	}
}
