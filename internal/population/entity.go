package population

import "github.com/san-kum/phaseviz/internal/dynamo"

// Trail is a bounded history of prior positions, oldest first.
type Trail struct {
	points []dynamo.Point
	limit  int
}

func NewTrail(limit int) Trail {
	if limit < 0 {
		limit = 0
	}
	return Trail{points: make([]dynamo.Point, 0, limit), limit: limit}
}

// Push records pt, dropping the oldest entry once the limit is reached.
func (t *Trail) Push(pt dynamo.Point) {
	if t.limit == 0 {
		return
	}
	if len(t.points) == t.limit {
		copy(t.points, t.points[1:])
		t.points = t.points[:t.limit-1]
	}
	t.points = append(t.points, pt)
}

func (t *Trail) Clear()     { t.points = t.points[:0] }
func (t *Trail) Len() int   { return len(t.points) }
func (t *Trail) Limit() int { return t.limit }

// Points returns the stored positions, oldest first. The slice is owned by the trail.
func (t *Trail) Points() []dynamo.Point { return t.points }

// Entity is a point-like member of a population.
type Entity struct {
	Pos  dynamo.Point
	Home dynamo.Point

	Trail Trail

	Age    int
	MaxAge int

	// Special marks tracers in the map engine and highlighted dots in the ranking engine.
	Special bool
	Alive   bool

	// Anchored entities keep a fixed home across refreshes (island seeds).
	Anchored bool
}

// Expired reports whether a finite-lifetime entity has outlived MaxAge.
func (e *Entity) Expired() bool {
	return e.MaxAge > 0 && e.Age > e.MaxAge
}

// Advance records the current position in the trail, applies m and ages the entity.
func (e *Entity) Advance(m dynamo.Map) {
	e.Trail.Push(e.Pos)
	q, p := m.Step(e.Pos.Q, e.Pos.P)
	e.Pos = dynamo.Point{Q: q, P: p}
	e.Age++
}
