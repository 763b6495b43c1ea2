// Package solution reads, writes, scores and assembles arm paths.
//
// A solution file holds one configuration per line, eight "x y" arm offsets
// from the largest arm to the smallest separated by ';', optionally preceded
// by a "configuration" header line. Any malformed record fails the load.
//
// Score sums, over consecutive configurations, the movement cost
// √(arms moved) and the colour distance of the drawn pixels. In strict mode
// it also checks that the path is a complete closed drawing of the lattice.
//
// Patch joins the lifted pieces of a split tour back into one closed path,
// reversing pieces as needed.
package solution
