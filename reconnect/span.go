// Package reconnect - lower bound on the steps between two configurations.
package reconnect

import (
	"math"
	"sort"

	"github.com/katalvlaran/armlift/arm"
)

// Span returns lower bounds for going from a to b with unit rotations: the
// number of steps (the largest per-arm rotation) and the √-cost obtained when
// arms stop moving one after another, most-rotated last.
func Span(a, b arm.Config) (steps int, sqrtL1 float64) {
	var (
		d    = b.Sub(a)
		norm [arm.NumArms]int
		k    int
	)
	for k = 0; k < arm.NumArms; k++ {
		norm[k] = arm.DTorus(d.Angle(k), 0, arm.Length(k))
	}
	sort.Ints(norm[:])
	steps = norm[arm.NumArms-1]

	// Between norm[k-1] and norm[k] exactly NumArms-k arms are still moving.
	prev := 0
	for k = 0; k < arm.NumArms; k++ {
		sqrtL1 += float64(norm[k]-prev) * math.Sqrt(float64(arm.NumArms-k))
		prev = norm[k]
	}
	return steps, sqrtL1
}
