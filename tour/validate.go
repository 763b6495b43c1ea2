// Package tour - closed-tour and segment validation, rotation and cost.
package tour

import (
	"fmt"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
)

// ValidateClosed checks the invariants of a complete tour: it starts and ends
// at the origin, stays in the lattice, visits every pixel exactly once (the
// closing origin aside) and never moves further than one arm step can.
//
// Complexity: O(n) time, O(257²) space.
func ValidateClosed(t Tour) error {
	if len(t) == 0 {
		return ErrEmpty
	}
	if len(t) != canvas.Pixels+1 {
		return fmt.Errorf("%w: got %d", ErrLength, len(t))
	}
	if t[0] != (arm.Point{}) || t[len(t)-1] != (arm.Point{}) {
		return ErrEndpoint
	}

	seen := make([]bool, canvas.Pixels)

	var (
		i   int
		p   arm.Point
		idx int
	)
	for i = 0; i < len(t)-1; i++ {
		p = t[i]
		if !p.InLattice() {
			return fmt.Errorf("%w: (%s) at %d", ErrOutOfLattice, p, i)
		}
		idx = canvas.Index(p)
		if seen[idx] {
			return fmt.Errorf("%w: (%s) at %d", ErrDuplicate, p, i)
		}
		seen[idx] = true
	}
	for i = 1; i < len(t); i++ {
		if t[i-1].Sub(t[i]).L1() > arm.MaxStepL1 {
			return fmt.Errorf("%w: %d→%d", ErrForbiddenMove, i-1, i)
		}
	}
	return nil
}

// ValidateSegment checks a tour piece given to the search engine: non-empty,
// inside the lattice and starting at the origin or at a corner.
func ValidateSegment(t Tour) error {
	if len(t) == 0 {
		return ErrEmpty
	}
	if t[0] != (arm.Point{}) && arm.Corner(t[0]) == 0 {
		return fmt.Errorf("%w: segment starts at (%s)", ErrEndpoint, t[0])
	}
	for i, p := range t {
		if !p.InLattice() {
			return fmt.Errorf("%w: (%s) at %d", ErrOutOfLattice, p, i)
		}
	}
	return nil
}

// RotateToOrigin returns a closed copy of an open cyclic tour starting and
// ending at the origin. A tour that is already closed is rotated without
// duplicating the closing point.
func RotateToOrigin(t Tour) (Tour, error) {
	if len(t) == 0 {
		return nil, ErrEmpty
	}
	n := len(t)
	if n > 1 && t[0] == t[n-1] {
		n--
	}
	pivot := -1
	for i := 0; i < n; i++ {
		if t[i] == (arm.Point{}) {
			if pivot >= 0 {
				return nil, ErrNoOrigin
			}
			pivot = i
		}
	}
	if pivot < 0 {
		return nil, ErrNoOrigin
	}
	out := make(Tour, n+1)
	for i := 0; i < n; i++ {
		out[i] = t[(pivot+i)%n]
	}
	out[n] = arm.Point{}
	return out, nil
}

// Cost sums the image step cost √L1 + colour distance along t. It is +Inf
// when t contains a forbidden move.
func Cost(t Tour, img *canvas.Image) float64 {
	var (
		s float64
		i int
	)
	for i = 1; i < len(t); i++ {
		s += img.StepCost(t[i-1], t[i])
	}
	return s
}
