// Package arm_test - shared helpers for the arm tests.
package arm_test

import (
	"math/rand"

	"github.com/katalvlaran/armlift/arm"
)

const (
	// seedDet is the deterministic seed used by randomized property tests.
	seedDet = int64(42)
	// trials is the number of random instances per property test.
	trials = 300
)

// randomConfig draws every angle uniformly.
func randomConfig(r *rand.Rand) arm.Config {
	var (
		a [arm.NumArms]int
		k int
	)
	for k = 0; k < arm.NumArms; k++ {
		a[k] = r.Intn(arm.Modulus(k))
	}
	return arm.FromAngles(a)
}

// randomNear draws a lattice point within Chebyshev distance rad of c.
func randomNear(r *rand.Rand, c arm.Point, rad int) arm.Point {
	return arm.Point{X: c.X + r.Intn(2*rad+1) - rad, Y: c.Y + r.Intn(2*rad+1) - rad}
}
