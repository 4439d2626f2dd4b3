package ranking

import (
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/phaseviz/internal/population"
)

// Selection is the outcome of one ranking draw: which dots survive, which one is marked, and
// the order in which the others are eliminated.
type Selection struct {
	Total int
	Rank  int
	Cols  int

	// Survivors is sorted ascending.
	Survivors []int
	Marked    int
	// Order is a permutation of every non-survivor index.
	Order []int

	survivor  []bool
	orderPos  []int
	highWater int
}

// NewSelection draws rank survivors out of total dots. Out-of-range values are clamped so
// that at least one dot exists and at least one survives.
func NewSelection(total, rank int, rng *rand.Rand) *Selection {
	if total < 1 {
		total = 1
	}
	if rank < 1 {
		rank = 1
	}
	if rank > total {
		rank = total
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	s := &Selection{
		Total:    total,
		Rank:     rank,
		Cols:     population.GridSide(total),
		survivor: make([]bool, total),
		orderPos: make([]int, total),
	}

	// partial Fisher-Yates: the first rank entries of idx become the survivors
	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < rank; i++ {
		j := i + rng.Intn(total-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	s.Survivors = append([]int(nil), idx[:rank]...)
	sort.Ints(s.Survivors)
	for _, i := range s.Survivors {
		s.survivor[i] = true
	}

	s.Order = make([]int, 0, total-rank)
	for i := 0; i < total; i++ {
		if !s.survivor[i] {
			s.Order = append(s.Order, i)
		}
	}
	for i := len(s.Order) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s.Order[i], s.Order[j] = s.Order[j], s.Order[i]
	}
	for i := range s.orderPos {
		s.orderPos[i] = -1
	}
	for pos, i := range s.Order {
		s.orderPos[i] = pos
	}

	s.Marked = s.nearestCenter()
	return s
}

// nearestCenter picks the survivor with the smallest Manhattan distance to the grid centre.
// Survivors are scanned in index order and ties keep the first one found.
func (s *Selection) nearestCenter() int {
	half := float64(s.Cols) / 2
	best := s.Survivors[0]
	minDist := math.Inf(1)
	for _, i := range s.Survivors {
		col := float64(i % s.Cols)
		row := float64(i / s.Cols)
		d := math.Abs(col-half) + math.Abs(row-half)
		if d < minDist {
			minDist = d
			best = i
		}
	}
	return best
}

func (s *Selection) IsSurvivor(i int) bool {
	return i >= 0 && i < s.Total && s.survivor[i]
}

// EliminationOrder returns the position of i in the elimination order, or -1 for survivors.
func (s *Selection) EliminationOrder(i int) int {
	if i < 0 || i >= s.Total {
		return -1
	}
	return s.orderPos[i]
}

// Reveal converts a progress fraction into the number of eliminated dots. The count never
// decreases, even if progress is later reported lower.
func (s *Selection) Reveal(progress float64) int {
	if progress < 0 || math.IsNaN(progress) {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	n := int(math.Floor(progress * float64(len(s.Order))))
	if n > s.highWater {
		s.highWater = n
	}
	return s.highWater
}

// Revealed returns the current eliminated count without changing it.
func (s *Selection) Revealed() int { return s.highWater }

// IsEliminated reports whether i is among the revealed eliminations.
func (s *Selection) IsEliminated(i int) bool {
	pos := s.EliminationOrder(i)
	return pos >= 0 && pos < s.highWater
}

// ResetReveal rewinds the reveal so a restarted animation can play again.
func (s *Selection) ResetReveal() { s.highWater = 0 }
