// Package tour holds pixel tours over the 257×257 lattice and the utilities
// around them.
//
// What:
//
//   - Tour is an ordered list of lattice points. A closed tour starts and ends
//     at the origin and visits each of the 257² pixels (len == 257²+1).
//   - ValidateClosed enforces the closed-tour invariants; ValidateSegment the
//     weaker invariants of a tour piece handed to the search engine.
//   - ReadLKH / WriteLKH convert to and from the TOUR_SECTION format of LKH,
//     whose node ids are 1-based row-major pixel indices.
//   - Split cuts a closed tour at the four corners into five pieces that can
//     be lifted independently; the last one is reversed so that every piece
//     starts at the origin or at a corner.
//   - Cost sums the image step cost along the tour.
//
// Errors:
//
//   - ErrEmpty, ErrLength, ErrEndpoint, ErrOutOfLattice, ErrDuplicate,
//     ErrMissing: closed tour violations.
//   - ErrForbiddenMove: a consecutive pair too far apart for one arm step.
//   - ErrNoTourSection, ErrNoOrigin, ErrBadID: LKH input problems.
//   - ErrMissingCorner: Split could not find the four corners.
package tour
