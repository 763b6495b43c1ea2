// Package successor - the candidate Set and its selection helpers.
package successor

import (
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/armlift/arm"
)

// Set collects candidate successors and samples among them.
type Set struct {
	rng    *rand.Rand
	sel    []arm.Config
	moveL1 int
}

// New returns an empty Set drawing randomness from rng.
func New(rng *rand.Rand) *Set {
	return &Set{rng: rng, sel: make([]arm.Config, 0, 64)}
}

// Clear removes all candidates.
func (s *Set) Clear() { s.sel = s.sel[:0] }

// Add appends every c+m, with m a unit delta moving exactly
// L1(cfg.Pos()-target)+2·detour arms, whose tip is target. It returns the
// number of candidates appended, 0 when the step would move more than eight
// arms. Calling Add twice with the same arguments appends the same candidates
// twice; callers clear between queries.
//
// Complexity: O(|bucket|·8).
func (s *Set) Add(cfg arm.Config, target arm.Point, detour int) int {
	s.moveL1 = cfg.Pos().Sub(target).L1()
	nb := s.moveL1 + 2*detour
	if detour < 0 || nb > arm.NumArms {
		return 0
	}

	var (
		c    int
		next arm.Config
	)
	for _, m := range Buckets(nb) {
		next = cfg.Add(m)
		if next.Pos() == target {
			s.sel = append(s.sel, next)
			c++
		}
	}
	return c
}

// Penalty returns the extra movement cost of a detour of the given length for
// the displacement of the last Add: √(d0+2·detour) − √d0, or +Inf when the
// step would move more than eight arms.
func (s *Set) Penalty(detour int) float64 {
	nb := s.moveL1 + 2*detour
	if nb > arm.NumArms {
		return math.Inf(1)
	}
	return math.Sqrt(float64(nb)) - math.Sqrt(float64(s.moveL1))
}

// JumpNormL1 returns the pixel displacement of the last Add.
func (s *Set) JumpNormL1() int { return s.moveL1 }

// Len returns the number of candidates.
func (s *Set) Len() int { return len(s.sel) }

// At returns candidate i.
func (s *Set) At(i int) arm.Config { return s.sel[i] }

// Selection returns the candidates. The slice is reused by later calls.
func (s *Set) Selection() []arm.Config { return s.sel }

// Rand returns the RNG of the set.
func (s *Set) Rand() *rand.Rand { return s.rng }

// Choice samples a candidate from the cumulative weights cdf, where cdf[i] is
// the probability of picking one of the candidates 0..i. Only the first Len()
// entries are read; the last candidate absorbs any rounding slack.
// Choice panics on an empty set.
func (s *Set) Choice(cdf []float64) arm.Config {
	n := len(s.sel)
	if n == 0 {
		panic("successor: choice from an empty set")
	}
	u := s.rng.Float64()
	i := sort.SearchFloat64s(cdf[:n-1], u)
	return s.sel[i]
}

// Uniform returns a candidate chosen uniformly. It panics on an empty set.
func (s *Set) Uniform() arm.Config {
	if len(s.sel) == 0 {
		panic("successor: uniform choice from an empty set")
	}
	return s.sel[s.rng.Intn(len(s.sel))]
}
