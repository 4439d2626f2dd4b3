package population

import (
	"math"
	"math/rand"

	"github.com/san-kum/phaseviz/internal/dynamo"
)

// Options sizes a population.
type Options struct {
	TrailLength       int
	MaxTracers        int
	TracerMaxAge      int
	TracerTrailLength int
	Jitter            float64
}

// Population holds a fixed-size primary population and a bounded tracer sub-population.
// It is not safe for concurrent use.
type Population struct {
	opts    Options
	rng     *rand.Rand
	primary []Entity
	tracers []Entity
}

func New(opts Options, rng *rand.Rand) *Population {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if opts.MaxTracers < 0 {
		opts.MaxTracers = 0
	}
	return &Population{opts: opts, rng: rng}
}

// GridSide returns the side length of the square grid that holds count slots.
func GridSide(count int) int {
	if count <= 0 {
		return 0
	}
	n := int(math.Ceil(math.Sqrt(float64(count))))
	// guard against float rounding for perfect squares
	for (n-1)*(n-1) >= count {
		n--
	}
	for n*n < count {
		n++
	}
	return n
}

// SlotCenter returns the centre of slot index in an n-by-n grid, row 0 at the top (p near 1).
func SlotCenter(index, n int) dynamo.Point {
	col := index % n
	row := index / n
	return dynamo.Point{
		Q: (float64(col) + 0.5) / float64(n),
		P: 1 - (float64(row)+0.5)/float64(n),
	}
}

// InitializeGrid replaces the primary population with count entities laid out on a square grid.
func (pop *Population) InitializeGrid(count int) {
	if count < 0 {
		count = 0
	}
	n := GridSide(count)
	pop.primary = make([]Entity, count)
	for i := range pop.primary {
		home := SlotCenter(i, n)
		pop.primary[i] = Entity{
			Home:  home,
			Pos:   pop.jitter(home),
			Trail: NewTrail(pop.opts.TrailLength),
			Alive: true,
		}
	}
}

// AddAnchored appends primaries with fixed homes. Call it during construction only: the
// primary cardinality is constant once the engine runs.
func (pop *Population) AddAnchored(homes []dynamo.Point) {
	for _, h := range homes {
		h = h.Wrap()
		pop.primary = append(pop.primary, Entity{
			Home:     h,
			Pos:      pop.jitter(h),
			Trail:    NewTrail(pop.opts.TrailLength),
			Alive:    true,
			Anchored: true,
		})
	}
}

func (pop *Population) jitter(home dynamo.Point) dynamo.Point {
	j := pop.opts.Jitter
	if j <= 0 {
		return home.Wrap()
	}
	return dynamo.Point{
		Q: home.Q + (pop.rng.Float64()-0.5)*j,
		P: home.P + (pop.rng.Float64()-0.5)*j,
	}.Wrap()
}

// AddSpecial appends a tracer at pos, evicting the oldest tracer when at capacity.
// It reports whether a tracer was added.
func (pop *Population) AddSpecial(pos dynamo.Point) bool {
	if pop.opts.MaxTracers == 0 {
		return false
	}
	if len(pop.tracers) >= pop.opts.MaxTracers {
		n := copy(pop.tracers, pop.tracers[1:])
		pop.tracers = pop.tracers[:n]
	}
	pos = pos.Wrap()
	pop.tracers = append(pop.tracers, Entity{
		Pos:     pos,
		Home:    pos,
		Trail:   NewTrail(pop.opts.TracerTrailLength),
		MaxAge:  pop.opts.TracerMaxAge,
		Special: true,
		Alive:   true,
	})
	return true
}

// PruneExpired drops tracers whose age exceeds their maximum and returns how many were removed.
func (pop *Population) PruneExpired() int {
	kept := pop.tracers[:0]
	for _, t := range pop.tracers {
		if t.Expired() {
			continue
		}
		kept = append(kept, t)
	}
	removed := len(pop.tracers) - len(kept)
	for i := len(kept); i < len(pop.tracers); i++ {
		pop.tracers[i] = Entity{}
	}
	pop.tracers = kept
	return removed
}

// SoftRefresh re-jitters every primary around its home and clears trails and ages.
// Order and identity of the slice are kept; tracers are untouched.
func (pop *Population) SoftRefresh() {
	for i := range pop.primary {
		e := &pop.primary[i]
		e.Pos = pop.jitter(e.Home)
		e.Trail.Clear()
		e.Age = 0
	}
}

// AdvancePrimary applies one step of m to every live primary entity.
func (pop *Population) AdvancePrimary(m dynamo.Map) {
	for i := range pop.primary {
		if pop.primary[i].Alive {
			pop.primary[i].Advance(m)
		}
	}
}

// AdvanceTracers applies one step of m to every live tracer.
func (pop *Population) AdvanceTracers(m dynamo.Map) {
	for i := range pop.tracers {
		if pop.tracers[i].Alive {
			pop.tracers[i].Advance(m)
		}
	}
}

// ClearTracers drops the whole tracer sub-population.
func (pop *Population) ClearTracers() {
	pop.tracers = pop.tracers[:0]
}

func (pop *Population) Primary() []Entity { return pop.primary }
func (pop *Population) Tracers() []Entity { return pop.tracers }
func (pop *Population) Len() int          { return len(pop.primary) + len(pop.tracers) }
func (pop *Population) Options() Options  { return pop.opts }
