package dynamo

import "math"

// TrigTable provides precomputed sine values indexed by fraction of a turn.
// Uses linear interpolation for values between table entries.
type TrigTable struct {
	sin []float64
	n   int
}

// Global default trig table (4096 entries = ~0.0015 rad resolution)
var DefaultTrigTable = NewTrigTable(4096)

// NewTrigTable creates a precomputed lookup table with n samples per turn.
func NewTrigTable(n int) *TrigTable {
	if n < 4 {
		n = 4
	}
	t := &TrigTable{
		sin: make([]float64, n),
		n:   n,
	}
	for i := 0; i < n; i++ {
		t.sin[i] = math.Sin(float64(i) * 2 * math.Pi / float64(n))
	}
	return t
}

// SinTurns returns approximately sin(2*pi*x).
func (t *TrigTable) SinTurns(x float64) float64 {
	idx := Mod1(x) * float64(t.n)
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n

	return t.sin[i0]*(1-frac) + t.sin[i1]*frac
}
