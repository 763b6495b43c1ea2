// Package tour - Tour type, lattice ids and sentinel errors.
package tour

import (
	"errors"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
)

// Sentinel errors for tour operations.
var (
	// ErrEmpty indicates a tour without points.
	ErrEmpty = errors.New("tour: empty tour")
	// ErrLength indicates a closed tour whose length is not 257²+1.
	ErrLength = errors.New("tour: closed tour must have 257²+1 points")
	// ErrEndpoint indicates a closed tour that does not start and end at the origin,
	// or a segment that does not start at the origin or a corner.
	ErrEndpoint = errors.New("tour: invalid endpoint")
	// ErrOutOfLattice indicates a point outside [-128,128]².
	ErrOutOfLattice = errors.New("tour: point out of lattice")
	// ErrDuplicate indicates a pixel visited twice in a closed tour.
	ErrDuplicate = errors.New("tour: pixel visited twice")
	// ErrMissing indicates a closed tour that skips some pixel.
	ErrMissing = errors.New("tour: pixel not visited")
	// ErrForbiddenMove indicates consecutive points more than 8 apart in L1.
	ErrForbiddenMove = errors.New("tour: forbidden move")
	// ErrNoTourSection indicates an LKH file without TOUR_SECTION.
	ErrNoTourSection = errors.New("tour: no TOUR_SECTION found")
	// ErrNoOrigin indicates an LKH tour without (or with several) origin nodes.
	ErrNoOrigin = errors.New("tour: origin missing or repeated")
	// ErrBadID indicates an LKH node id outside [1, 257²].
	ErrBadID = errors.New("tour: node id out of range")
	// ErrMissingCorner indicates a tour that does not pass through the four corners.
	ErrMissingCorner = errors.New("tour: missing corner")
)

// Tour is an ordered sequence of lattice points.
type Tour []arm.Point

// Len returns the number of points.
func (t Tour) Len() int { return len(t) }

// Clone returns an independent copy.
func (t Tour) Clone() Tour {
	if t == nil {
		return nil
	}
	out := make(Tour, len(t))
	copy(out, t)
	return out
}

// Reversed returns a reversed copy.
func (t Tour) Reversed() Tour {
	out := make(Tour, len(t))
	for i, p := range t {
		out[len(t)-1-i] = p
	}
	return out
}

// ID returns the 1-based LKH node id of p.
func ID(p arm.Point) int { return canvas.Index(p) + 1 }

// PointOf is the inverse of ID.
func PointOf(id int) arm.Point { return canvas.Coordinate(id - 1) }
