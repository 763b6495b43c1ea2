// Package successor enumerates the configurations one valid step away from a
// given configuration that land on a target pixel.
//
// The 3^8 unit deltas are partitioned once, by the number of arms they move,
// into nine buckets. A step from cfg to target with pixel displacement d0 and
// detour d moves exactly d0+2d arms, so only one bucket has to be scanned.
//
// Set is the per-search working buffer: it accumulates the candidates of one
// or more Add calls and samples among them with the search's RNG. A Set is not
// safe for concurrent use.
package successor
