// Package successor - the unit deltas of all arms, grouped by the number of
// arms they move. Built once.
package successor

import (
	"sync"

	"github.com/katalvlaran/armlift/arm"
)

// MaxDetour is the largest detour Add accepts; larger detours cannot fit
// in a single step.
const MaxDetour = 4

var (
	bucketsOnce sync.Once
	buckets     [arm.NumArms + 1][]arm.Config
)

// buildBuckets decodes every u ∈ [0, 3^8) as eight base-3 digits in
// {0, +1, -1} and files the delta by its number of non-zero digits.
func buildBuckets() {
	var (
		u, i, k, d, nb int
		delta          arm.Config
	)
	for u = 0; u < 6561; u++ {
		i, nb, delta = u, 0, 0
		for k = arm.NumArms - 1; k >= 0; k-- {
			d = i % 3
			i /= 3
			if d == 2 {
				d = -1
			}
			if d != 0 {
				nb++
				delta = delta.WithAngle(k, d)
			}
		}
		buckets[nb] = append(buckets[nb], delta)
	}
}

// Buckets returns the unit deltas moving exactly n arms. The returned slice
// is shared and must not be modified.
//
// Sizes for n = 0..8: 1, 16, 112, 448, 1120, 1792, 1792, 1024, 256.
func Buckets(n int) []arm.Config {
	bucketsOnce.Do(buildBuckets)
	if n < 0 || n > arm.NumArms {
		return nil
	}
	return buckets[n]
}
