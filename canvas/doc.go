// Package canvas holds the 257×257 colour image the arm draws over and the
// per-step cost derived from it.
//
// Pixels are addressed by lattice points in [-128,128]², stored row-major with
// y as the slow index. The colour cost of moving between two pixels is three
// times the L1 distance of their RGB triples; the full image cost of a step
// adds √(L1 pixel displacement) and is +Inf beyond the reach of one step.
//
// A blank Image (every pixel black) turns every colour cost into zero, which is
// what the search uses when no image is supplied.
package canvas
